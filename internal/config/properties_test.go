package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseProperties(t *testing.T) {
	tmpDir := t.TempDir()

	content := `# Comment
! also a comment
include=src/**/*.js, lib/*.js
exclude=
suffix=.min.js
jobs=4
`
	propsPath := filepath.Join(tmpDir, "minify.properties")
	if err := os.WriteFile(propsPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	props, err := ParseProperties(propsPath)
	if err != nil {
		t.Fatalf("ParseProperties error: %v", err)
	}

	if props.Get("suffix") != ".min.js" {
		t.Errorf("Get(suffix) = %q, want %q", props.Get("suffix"), ".min.js")
	}
	if props.Get("missing") != "" {
		t.Errorf("Get(missing) = %q, want empty string", props.Get("missing"))
	}
	if props.Get("exclude") != "" {
		t.Errorf("Get(exclude) = %q, want empty string", props.Get("exclude"))
	}
	if len(props) != 4 {
		t.Errorf("parsed %d keys, want 4: %v", len(props), props)
	}
}

func TestParsePropertiesColonDelimiter(t *testing.T) {
	tmpDir := t.TempDir()

	content := `suffix: .mini.js
watch-interval: 2s
report=build/report.json
`
	propsPath := filepath.Join(tmpDir, "minify.properties")
	if err := os.WriteFile(propsPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	props, err := ParseProperties(propsPath)
	if err != nil {
		t.Fatalf("ParseProperties error: %v", err)
	}

	if props.Get("suffix") != ".mini.js" {
		t.Errorf("Get(suffix) = %q, want %q", props.Get("suffix"), ".mini.js")
	}
	if props.Get("watch-interval") != "2s" {
		t.Errorf("Get(watch-interval) = %q, want %q", props.Get("watch-interval"), "2s")
	}
	if props.Get("report") != "build/report.json" {
		t.Errorf("Get(report) = %q, want %q", props.Get("report"), "build/report.json")
	}
}

func TestParsePropertiesMissingFile(t *testing.T) {
	if _, err := ParseProperties(filepath.Join(t.TempDir(), "nope.properties")); err == nil {
		t.Error("ParseProperties on a missing file should fail")
	}
}

func TestGetList(t *testing.T) {
	props := Properties{
		"list":   "a.js, b.js ,, c.js",
		"single": "only.js",
		"empty":  "",
	}

	tests := []struct {
		key      string
		expected []string
	}{
		{"list", []string{"a.js", "b.js", "c.js"}},
		{"single", []string{"only.js"}},
		{"empty", []string{}},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			result := props.GetList(tt.key)
			if (result == nil) != (tt.expected == nil) {
				t.Fatalf("GetList(%q) = %#v, want %#v", tt.key, result, tt.expected)
			}
			if len(result) != len(tt.expected) {
				t.Fatalf("GetList(%q) = %v, want %v", tt.key, result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("GetList(%q)[%d] = %q, want %q", tt.key, i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestGetInt(t *testing.T) {
	props := Properties{"jobs": "8", "bad": "many"}

	if n, err := props.GetInt("jobs"); err != nil || n != 8 {
		t.Errorf("GetInt(jobs) = %d, %v; want 8, nil", n, err)
	}
	if n, err := props.GetInt("missing"); err != nil || n != 0 {
		t.Errorf("GetInt(missing) = %d, %v; want 0, nil", n, err)
	}
	if _, err := props.GetInt("bad"); err == nil {
		t.Error("GetInt(bad) should fail")
	}
}

func TestGetWithDefault(t *testing.T) {
	props := Properties{"set": "value", "empty": ""}

	tests := []struct {
		key      string
		expected string
	}{
		{"set", "value"},
		{"empty", "fallback"},
		{"missing", "fallback"},
	}

	for _, tt := range tests {
		if got := props.GetWithDefault(tt.key, "fallback"); got != tt.expected {
			t.Errorf("GetWithDefault(%q) = %q, want %q", tt.key, got, tt.expected)
		}
	}
}

func TestPropertiesFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "minify.properties"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	if !PropertiesFileExists(tmpDir, "minify.properties") {
		t.Error("PropertiesFileExists should find minify.properties")
	}
	if PropertiesFileExists(tmpDir, "other.properties") {
		t.Error("PropertiesFileExists should not find other.properties")
	}
	if FileExists(tmpDir) {
		t.Error("FileExists should be false for a directory")
	}
}
