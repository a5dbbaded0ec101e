package collections

import (
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// CollectFiles gathers the files under dir matching any of the include
// patterns and none of the exclude patterns.  Returned paths are relative to
// dir and sorted.
func CollectFiles(dir string, include, exclude []string) ([]string, error) {
	return CollectFilesFS(os.DirFS(dir), include, exclude)
}

// CollectFilesFS is CollectFiles over an fs.FS.
func CollectFilesFS(fsys fs.FS, include, exclude []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range include {
		names, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, name := range names {
			if seen[name] || MatchAny(exclude, name) {
				continue
			}
			seen[name] = true
			files = append(files, name)
		}
	}
	sort.Strings(files)
	return files, nil
}

// MatchAny reports whether the slash-separated filename matches one of the
// doublestar patterns.  Invalid patterns never match.
func MatchAny(patterns []string, filename string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, filename); ok {
			return true
		}
	}
	return false
}
