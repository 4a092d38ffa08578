package templates

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	derrors "github.com/igor47/dcsm/internal/errors"
)

// Suffix identifies template files. The rendered file is the same path with
// the suffix stripped, in the same directory.
const Suffix = ".template"

// Scan returns every template file under the configured directories. Each
// directory is searched recursively; results are merged and sorted
// lexicographically by full path so two runs over identical inputs process
// files in the same order.
//
// A directory that does not exist is a configuration error: a missing mount
// usually means a misconfigured deployment, and silently skipping it would
// leave services unconfigured. Zero matches is not an error.
func Scan(dirs []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return nil, &derrors.ConfigurationError{Setting: dir, Reason: "template directory does not exist"}
		}

		matches, err := doublestar.Glob(os.DirFS(dir), "**/*"+Suffix)
		if err != nil {
			return nil, &derrors.IOError{Op: "scan", Path: dir, Err: err}
		}

		for _, match := range matches {
			path := filepath.Join(dir, filepath.FromSlash(match))

			// A file named exactly ".template" has no stem left once the
			// suffix is stripped.
			if filepath.Base(path) == Suffix {
				continue
			}
			fileInfo, err := os.Stat(path)
			if err != nil {
				return nil, &derrors.IOError{Op: "stat", Path: path, Err: err}
			}
			if !fileInfo.Mode().IsRegular() {
				continue
			}

			if !seen[path] {
				seen[path] = true
				paths = append(paths, path)
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}
