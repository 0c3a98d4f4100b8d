// Package discovery finds the input files of a load pass.
package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// Find walks the tree under root and returns the absolute path of every
// regular file whose base name matches pattern, in traversal order.
// An empty result is not an error; a missing root is.
func Find(root, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		ok, _ := filepath.Match(pattern, d.Name())
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}
