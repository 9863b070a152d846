package builder

import (
	"os"
	"path/filepath"
	"testing"
)

func createFiles(t *testing.T, dir string, files []string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("var x = 1;"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExpandGlob(t *testing.T) {
	tmpDir := t.TempDir()
	createFiles(t, tmpDir, []string{
		"app.js",
		"util.js",
		"app.min.js",
		"style.css",
		"src/main.js",
		"src/helpers.js",
		"src/lib/dom.js",
		"vendor/jquery.js",
		"vendor/jquery.min.js",
	})

	tests := []struct {
		name     string
		pattern  string
		expected int
	}{
		{"single wildcard js", "*.js", 3},
		{"all css files", "*.css", 1},
		{"directory", "src", 3},
		{"directory with trailing slash", "src/", 3},
		{"recursive js", "**/*.js", 8},
		{"recursive min js", "**/*.min.js", 2},
		{"specific file", "util.js", 1},
		{"dot prefix", "./util.js", 1},
		{"subdirectory wildcard", "src/*.js", 2},
		{"subdirectory recursive", "src/**/*.js", 3},
		{"alternation", "{src,vendor}/*.js", 4},
		{"missing file", "missing.js", 0},
		{"whole tree", ".", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := ExpandGlob(tmpDir, tt.pattern)
			if err != nil {
				t.Errorf("ExpandGlob(%q) error = %v", tt.pattern, err)
				return
			}
			if len(results) != tt.expected {
				t.Errorf("ExpandGlob(%q) = %d files, want %d. Got: %v", tt.pattern, len(results), tt.expected, results)
			}
		})
	}
}

func TestExpandGlobBadPattern(t *testing.T) {
	if _, err := ExpandGlob(t.TempDir(), "src/[.js"); err == nil {
		t.Error("ExpandGlob with an unclosed class should fail")
	}
}

func TestContainsGlobChars(t *testing.T) {
	tests := []struct {
		pattern  string
		expected bool
	}{
		{"*.js", true},
		{"file?.js", true},
		{"[abc].js", true},
		{"{a,b}.js", true},
		{"file.js", false},
		{"src/file.js", false},
		{"**/*.js", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			result := containsGlobChars(tt.pattern)
			if result != tt.expected {
				t.Errorf("containsGlobChars(%q) = %v, want %v", tt.pattern, result, tt.expected)
			}
		})
	}
}

func TestIsExcluded(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		excludes []string
		expected bool
	}{
		{"no excludes", "app.js", []string{}, false},
		{"exact match", "app.js", []string{"app.js"}, true},
		{"wildcard match", "app.min.js", []string{"*.min.js"}, true},
		{"wildcard matches base name", "src/app.min.js", []string{"*.min.js"}, true},
		{"no match", "app.js", []string{"*.css"}, false},
		{"directory glob", "build/app.js", []string{"build/*"}, true},
		{"plain directory", "vendor/lib/a.js", []string{"vendor"}, true},
		{"plain directory with slash", "vendor/a.js", []string{"vendor/"}, true},
		{"directory name prefix only", "vendored/a.js", []string{"vendor"}, false},
		{"recursive exclude", "src/lib/a.min.js", []string{"**/*.min.js"}, true},
		{"node modules at root", "node_modules/x/index.js", []string{"**/node_modules/**"}, true},
		{"nested node modules", "web/node_modules/x/index.js", []string{"**/node_modules/**"}, true},
		{"multiple excludes match", "app.js", []string{"*.css", "*.js"}, true},
		{"multiple excludes no match", "app.ts", []string{"*.css", "*.js"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsExcluded(tt.path, tt.excludes)
			if result != tt.expected {
				t.Errorf("IsExcluded(%q, %v) = %v, want %v", tt.path, tt.excludes, result, tt.expected)
			}
		})
	}
}

func TestExpandIncludes(t *testing.T) {
	tmpDir := t.TempDir()
	createFiles(t, tmpDir, []string{
		"app.js",
		"app.min.js",
		"src/main.js",
		"node_modules/lib/index.js",
	})

	tests := []struct {
		name     string
		includes []string
		excludes []string
		expected []string
	}{
		{"root js", []string{"*.js"}, []string{}, []string{"app.js", "app.min.js"}},
		{"recursive with excludes", []string{"**/*.js"}, []string{"**/node_modules/**", "**/*.min.js"}, []string{"app.js", "src/main.js"}},
		{"overlapping patterns deduplicated", []string{"*.js", "app.js", "src"}, []string{"*.min.js"}, []string{"app.js", "src/main.js"}},
		{"nothing matches", []string{"*.ts"}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := ExpandIncludes(tmpDir, tt.includes, tt.excludes)
			if err != nil {
				t.Fatalf("ExpandIncludes() error = %v", err)
			}
			if len(results) != len(tt.expected) {
				t.Fatalf("ExpandIncludes() = %v, want %v", results, tt.expected)
			}
			for i := range results {
				if results[i] != tt.expected[i] {
					t.Errorf("ExpandIncludes()[%d] = %q, want %q", i, results[i], tt.expected[i])
				}
			}
		})
	}
}
