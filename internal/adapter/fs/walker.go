package fs

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker finds corpus files under a root by include/exclude glob patterns.
type Walker struct {
	includes []string
	excludes []string
}

func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	return &Walker{includes: includes, excludes: excludes}
}

// Walk returns the relative (slash-separated) paths of matching files.
func (w *Walker) Walk(root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && matchAny(w.excludes, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if matchAny(w.includes, rel) && !matchAny(w.excludes, rel) {
			files = append(files, rel)
		}
		return nil
	})
	return files, err
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// ReadFile reads a corpus file relative to root.
func ReadFile(root, rel string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
