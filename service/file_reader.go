package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/cobscan/domain"
)

// SourceFileReaderImpl implements the SourceFileReader interface
type SourceFileReaderImpl struct{}

// NewSourceFileReader creates a new source file reader service
func NewSourceFileReader() *SourceFileReaderImpl {
	return &SourceFileReaderImpl{}
}

// CollectSourceFiles resolves the given paths into a sorted, deduplicated
// list of source files matching the include/exclude patterns. Explicitly
// named files bypass the include patterns; directory walks apply them.
func (r *SourceFileReaderImpl) CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access path %s: %w", path, err)
		}

		if !info.IsDir() {
			if !matchesAny(path, excludePatterns) {
				add(path)
			}
			continue
		}

		err = filepath.WalkDir(path, func(entry string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if !recursive && entry != path {
					return filepath.SkipDir
				}
				return nil
			}
			if matchesAny(entry, includePatterns) && !matchesAny(entry, excludePatterns) {
				add(entry)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %s: %w", path, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// matchesAny matches the file's base name against the patterns.
func matchesAny(path string, patterns []string) bool {
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, base); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, filepath.ToSlash(path)); matched {
			return true
		}
	}
	return false
}

var _ domain.SourceFileReader = (*SourceFileReaderImpl)(nil)
