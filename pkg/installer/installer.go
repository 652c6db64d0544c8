// Package installer materializes the bundled skills tree into a target
// project's workspace skills directory. Install refuses to touch a
// populated destination unless forced; Update always merges the bundle
// over the destination without deleting files the bundle does not know
// about. Both share one copy engine that plans every file operation
// before mutating anything.
package installer

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/ihis/fhir-engine-skills/pkg/bundle"
	"github.com/ihis/fhir-engine-skills/pkg/logger"
	"github.com/pkg/errors"
)

// SkillsSubdir is the fixed path under the target root where skills are
// installed. Downstream assistants discover skills at this exact
// location, so it must never change.
const SkillsSubdir = ".claude/skills"

// CopyEntry is one planned file operation.
type CopyEntry struct {
	Source string // Slash-separated path relative to the bundle root
	Dest   string // Absolute destination path
}

// CopyPlan is the precomputed set of file operations for one
// install/update invocation. It is built before any filesystem mutation
// and discarded once applied.
type CopyPlan struct {
	Entries []CopyEntry
	DestDir string

	// DestExists reports whether the destination skills directory
	// already exists and is non-empty.
	DestExists bool
}

// ConflictError indicates the destination already holds an installation
// and force was not supplied. No filesystem mutation has occurred.
type ConflictError struct {
	Dir string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("skills directory already exists at %s", e.Dir)
}

// PartialCopyError aggregates per-file failures from one copy run. The
// engine attempts every remaining file after a failure, so Failed lists
// only the destinations that could not be written.
type PartialCopyError struct {
	Failed []string
	err    error
}

func (e *PartialCopyError) Error() string {
	return fmt.Sprintf("failed to copy %d file(s): %s", len(e.Failed), strings.Join(e.Failed, ", "))
}

func (e *PartialCopyError) Unwrap() error {
	return e.err
}

// Plan computes the copy plan mirroring the bundle into
// <targetRoot>/.claude/skills without touching the filesystem.
func Plan(b *bundle.Bundle, targetRoot string) (*CopyPlan, error) {
	destDir := filepath.Join(targetRoot, filepath.FromSlash(SkillsSubdir))

	files, err := b.Files()
	if err != nil {
		return nil, err
	}

	plan := &CopyPlan{
		DestDir:    destDir,
		DestExists: dirPopulated(destDir),
	}
	for _, file := range files {
		plan.Entries = append(plan.Entries, CopyEntry{
			Source: file,
			Dest:   filepath.Join(destDir, filepath.FromSlash(file)),
		})
	}

	return plan, nil
}

// Install copies the bundle into the target's skills directory. When the
// destination is already populated and force is false it aborts with a
// ConflictError before any mutation.
func Install(ctx context.Context, b *bundle.Bundle, targetRoot string, force bool) error {
	plan, err := Plan(b, targetRoot)
	if err != nil {
		return err
	}

	if plan.DestExists && !force {
		return &ConflictError{Dir: plan.DestDir}
	}

	return apply(ctx, b.FS(), plan)
}

// Update refreshes an existing installation to the bundled version. It
// behaves as Install with force implied and merges rather than replaces:
// destination files with no counterpart in the bundle are left alone.
// Re-running Update is idempotent and self-heals a previously
// interrupted run.
func Update(ctx context.Context, b *bundle.Bundle, targetRoot string) error {
	return Install(ctx, b, targetRoot, true)
}

// apply executes the plan. Per-file failures do not stop the run; they
// are collected and reported together so one unwritable file does not
// block installation of the rest.
func apply(ctx context.Context, fsys fs.FS, plan *CopyPlan) error {
	log := logger.G(ctx)

	var errs *multierror.Error
	var failed []string

	for _, entry := range plan.Entries {
		if err := copyFile(fsys, entry.Source, entry.Dest); err != nil {
			log.WithError(err).WithField("file", entry.Dest).Warn("failed to copy skill file")
			errs = multierror.Append(errs, errors.Wrapf(err, "copy %s", entry.Dest))
			failed = append(failed, entry.Dest)
			continue
		}
		log.WithField("file", entry.Dest).Debug("copied skill file")
	}

	if errs != nil {
		return &PartialCopyError{Failed: failed, err: errs.ErrorOrNil()}
	}

	return nil
}

// copyFile writes the source file to dest atomically: bytes go to a
// temporary file in the destination directory which is renamed into
// place, so a failed write leaves any prior file untouched.
func copyFile(fsys fs.FS, source, dest string) error {
	src, err := fsys.Open(source)
	if err != nil {
		return errors.Wrap(err, "failed to open bundled file")
	}
	defer src.Close()

	destDir := filepath.Dir(dest)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create destination directory")
	}

	tmp, err := os.CreateTemp(destDir, ".fhir-skills-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write file contents")
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to set file mode")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temporary file")
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return errors.Wrap(err, "failed to move file into place")
	}

	return nil
}

// dirPopulated reports whether dir exists and contains at least one entry.
func dirPopulated(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	return len(entries) > 0
}
