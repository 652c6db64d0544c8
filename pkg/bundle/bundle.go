// Package bundle resolves and catalogs the skill documents that ship
// embedded in the fhir-skills binary. A skill is a directory containing a
// SKILL.md file with YAML frontmatter; directories group related skills
// into categories. The bundle is read-only for the lifetime of an
// invocation.
package bundle

import (
	"io/fs"
	"sort"

	"github.com/ihis/fhir-engine-skills/pkg/version"
	"github.com/pkg/errors"
)

const skillFileName = "SKILL.md"

// ErrNotFound indicates the bundled skills tree is absent or empty,
// which means the installation of the tool itself is broken.
var ErrNotFound = errors.New("bundled skills tree not found")

// Bundle is the immutable skills tree shipped with the tool.
type Bundle struct {
	fsys fs.FS

	// Version is the declared bundle version, matching the tool's own
	// release version.
	Version string
}

// Load resolves the bundle embedded in the binary. The result is
// independent of the caller's working directory or how the tool was
// invoked. It fails with ErrNotFound when the embedded tree is missing,
// which indicates a corrupted build.
func Load() (*Bundle, error) {
	fsys, err := fs.Sub(payload, "skills")
	if err != nil {
		return nil, errors.Wrap(ErrNotFound, err.Error())
	}
	return New(fsys, version.Version)
}

// New wraps an arbitrary filesystem as a Bundle. The tree must contain
// at least one entry; an empty tree is reported as ErrNotFound.
func New(fsys fs.FS, bundleVersion string) (*Bundle, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Wrap(ErrNotFound, err.Error())
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}

	return &Bundle{fsys: fsys, Version: bundleVersion}, nil
}

// FS returns the read-only filesystem rooted at the bundle.
func (b *Bundle) FS() fs.FS {
	return b.fsys
}

// Files returns every regular file in the bundle as a slash-separated
// path relative to the bundle root, in lexicographic order.
func (b *Bundle) Files() ([]string, error) {
	var files []string

	err := fs.WalkDir(b.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to walk bundle tree")
	}

	sort.Strings(files)
	return files, nil
}
