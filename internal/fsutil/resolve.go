package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

var fileRe = regexp.MustCompile(`^(\d+)_([a-zA-Z0-9_\-]+)\.sql$`)

// Resolve maps a payload path to the SQL file to run. A path naming a file is
// returned as-is. A path naming a directory is treated as a migrations
// directory laid out NNN_name.sql; the highest-numbered entry wins (versions
// are zero-padded, so string order is version order). A directory with no
// matching entries resolves to fs.ErrNotExist, same as a missing path.
func Resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", err
	}
	var latest string
	for _, e := range entries {
		if e.IsDir() || fileRe.FindStringSubmatch(e.Name()) == nil {
			continue
		}
		if e.Name() > latest {
			latest = e.Name()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no migration files in %s: %w", path, fs.ErrNotExist)
	}
	return filepath.Join(path, latest), nil
}
