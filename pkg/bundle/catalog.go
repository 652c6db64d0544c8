package bundle

import (
	"bytes"
	"io/fs"
	"path"
	"sort"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// Categories may nest one level: a top-level category can contain
// sub-categories, whose children must be skills.
const maxCategoryDepth = 2

// SkillEntry is one installable unit: a directory holding a SKILL.md
// definition plus any templates, examples, or reference files.
type SkillEntry struct {
	Name        string   // Unique name, from frontmatter or directory name
	Description string   // Brief description from frontmatter, may be empty
	Path        string   // Slash-separated path relative to the bundle root
	Files       []string // Every file belonging to the skill, sorted
}

// Category is a directory-level grouping of related skills.
type Category struct {
	Name     string
	Path     string
	Skills   []SkillEntry
	Children []Category
}

// Catalog is the typed view of the bundle tree, built once per
// invocation so commands never re-derive the category/skill distinction
// from filesystem shape.
type Catalog struct {
	Categories []Category

	// Ungrouped holds skills that sit directly at the bundle root
	// without a category directory.
	Ungrouped []SkillEntry
}

// BuildCatalog walks the bundle and produces its typed catalog.
// Traversal is lexicographic by path so list output is stable across
// runs. A directory with neither a SKILL.md nor skill-bearing
// subdirectories is silently skipped. Duplicate skill names anywhere in
// the tree indicate a corrupted bundle and are an error.
func BuildCatalog(b *Bundle) (*Catalog, error) {
	fsys := b.FS()

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read bundle root")
	}

	catalog := &Catalog{}
	seen := make(map[string]string) // skill name -> path

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		if skill, ok, err := loadSkillEntry(fsys, entry.Name(), seen); err != nil {
			return nil, err
		} else if ok {
			catalog.Ungrouped = append(catalog.Ungrouped, *skill)
			continue
		}

		category, err := buildCategory(fsys, entry.Name(), 1, seen)
		if err != nil {
			return nil, err
		}
		if category != nil {
			catalog.Categories = append(catalog.Categories, *category)
		}
	}

	return catalog, nil
}

// buildCategory builds the category rooted at dir, or returns nil when
// the directory contains no skills at all.
func buildCategory(fsys fs.FS, dir string, depth int, seen map[string]string) (*Category, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read category directory %s", dir)
	}

	category := &Category{
		Name: path.Base(dir),
		Path: dir,
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		childPath := path.Join(dir, entry.Name())

		if skill, ok, err := loadSkillEntry(fsys, childPath, seen); err != nil {
			return nil, err
		} else if ok {
			category.Skills = append(category.Skills, *skill)
			continue
		}

		if depth < maxCategoryDepth {
			child, err := buildCategory(fsys, childPath, depth+1, seen)
			if err != nil {
				return nil, err
			}
			if child != nil {
				category.Children = append(category.Children, *child)
			}
		}
	}

	if len(category.Skills) == 0 && len(category.Children) == 0 {
		return nil, nil
	}

	return category, nil
}

// loadSkillEntry loads dir as a skill when it directly contains a
// SKILL.md file. The second return value reports whether dir is a skill.
func loadSkillEntry(fsys fs.FS, dir string, seen map[string]string) (*SkillEntry, bool, error) {
	definition := path.Join(dir, skillFileName)

	content, err := fs.ReadFile(fsys, definition)
	if err != nil {
		return nil, false, nil
	}

	name, description := parseFrontmatter(content)
	if name == "" {
		name = path.Base(dir)
	}

	if prev, exists := seen[name]; exists {
		return nil, false, errors.Errorf("corrupted bundle: skill name %q declared by both %s and %s", name, prev, dir)
	}
	seen[name] = dir

	var files []string
	err = fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to walk skill directory %s", dir)
	}
	sort.Strings(files)

	return &SkillEntry{
		Name:        name,
		Description: description,
		Path:        dir,
		Files:       files,
	}, true, nil
}

// parseFrontmatter extracts the name and description fields from the
// YAML frontmatter of a SKILL.md document. Malformed frontmatter yields
// empty values rather than an error; the payload is opaque data and a
// skill is recognized by the presence of its definition file alone.
func parseFrontmatter(content []byte) (name, description string) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return "", ""
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return "", ""
	}

	name, _ = metaData["name"].(string)
	description, _ = metaData["description"].(string)
	return name, description
}

// SkillCount returns the total number of skills in the catalog.
func (c *Catalog) SkillCount() int {
	return len(c.Skills())
}

// Skills returns every skill in the catalog in traversal order.
func (c *Catalog) Skills() []SkillEntry {
	var skills []SkillEntry
	skills = append(skills, c.Ungrouped...)
	for _, category := range c.Categories {
		skills = append(skills, collectSkills(category)...)
	}
	return skills
}

func collectSkills(category Category) []SkillEntry {
	skills := append([]SkillEntry{}, category.Skills...)
	for _, child := range category.Children {
		skills = append(skills, collectSkills(child)...)
	}
	return skills
}

// CategoryNames returns the top-level category names in traversal order.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for _, category := range c.Categories {
		names = append(names, category.Name)
	}
	return names
}
