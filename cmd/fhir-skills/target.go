package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// resolveTarget validates the --path option and returns it as an
// absolute path. The path must be an existing directory or not exist at
// all (the installer creates missing directories). A path that exists
// but is not a directory is rejected before any bundle resolution or
// filesystem mutation.
func resolveTarget(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve target path")
	}

	info, err := os.Stat(abs)
	switch {
	case os.IsNotExist(err):
		return abs, nil
	case err != nil:
		return "", errors.Wrap(err, "failed to inspect target path")
	case !info.IsDir():
		return "", errors.Errorf("target path %s is not a directory", abs)
	}

	return abs, nil
}
