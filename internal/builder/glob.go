package builder

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandGlob expands a doublestar pattern relative to baseDir and returns the
// matching regular files as slash-separated relative paths. A pattern naming
// a directory expands to every file below it.
func ExpandGlob(baseDir, pattern string) ([]string, error) {
	pattern = strings.TrimPrefix(path.Clean(strings.ReplaceAll(pattern, "\\", "/")), "./")
	fsys := os.DirFS(baseDir)

	if !containsGlobChars(pattern) {
		info, err := fs.Stat(fsys, pattern)
		if err != nil {
			return nil, nil
		}
		if !info.IsDir() {
			return []string{pattern}, nil
		}
		if pattern == "." {
			pattern = "**"
		} else {
			pattern += "/**"
		}
	}

	return doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
}

// containsGlobChars checks if a pattern contains glob special characters
func containsGlobChars(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// IsExcluded checks if a path matches any of the exclude patterns
func IsExcluded(path string, excludes []string) bool {
	for _, pattern := range excludes {
		if matchPattern(path, pattern) {
			return true
		}
	}
	return false
}

// matchPattern matches a relative path against a doublestar pattern. Patterns
// without a slash also match the base name, and plain directory names match
// everything below them.
func matchPattern(name, pattern string) bool {
	name = strings.ReplaceAll(name, "\\", "/")
	pattern = strings.TrimSuffix(strings.ReplaceAll(pattern, "\\", "/"), "/")

	if matched, _ := doublestar.Match(pattern, name); matched {
		return true
	}

	if !strings.Contains(pattern, "/") {
		if matched, _ := doublestar.Match(pattern, path.Base(name)); matched {
			return true
		}
	}

	if !containsGlobChars(pattern) {
		return strings.HasPrefix(name, pattern+"/")
	}
	return false
}

// ExpandIncludes expands all include patterns and returns the unique, sorted
// file paths that are not excluded.
func ExpandIncludes(baseDir string, includes []string, excludes []string) ([]string, error) {
	seen := make(map[string]bool)
	var results []string

	for _, pattern := range includes {
		expanded, err := ExpandGlob(baseDir, pattern)
		if err != nil {
			return nil, err
		}

		for _, p := range expanded {
			if seen[p] || IsExcluded(p, excludes) {
				continue
			}
			seen[p] = true
			results = append(results, p)
		}
	}

	sort.Strings(results)
	return results, nil
}
