package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	".designlint":  true,
	"dist":         true,
	"bin":          true,
}

var documentExts = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// FileScanner finds exported design documents by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan returns the document paths under root, sorted. A root that is itself a
// file is returned as is. Dot files and the project config are skipped.
func (s *FileScanner) Scan(root string, excludePaths ...string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	extraSkip := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	var docs []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && (skipDirs[d.Name()] || extraSkip[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") || extraSkip[d.Name()] {
			return nil
		}
		if documentExts[strings.ToLower(filepath.Ext(d.Name()))] {
			docs = append(docs, path)
		}
		return nil
	})

	sort.Strings(docs)
	return docs, err
}
