package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureParentDir creates the directory that will hold file, relative to the
// working directory when file is relative. SQLite DSNs that are not plain
// paths (":memory:", "file:...") are left alone.
func EnsureParentDir(file string) (string, error) {
	if file == "" || strings.HasPrefix(file, ":") || strings.HasPrefix(file, "file:") {
		return "", nil
	}

	dir := filepath.Dir(file)
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
