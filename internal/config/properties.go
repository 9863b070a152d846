package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Properties is a parsed minify.properties file.
type Properties map[string]string

// ParseProperties parses a properties file supporting both = and : delimiters.
// Blank lines and lines starting with # or ! are ignored.
func ParseProperties(path string) (Properties, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	props := make(Properties)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		// = wins over : so values may contain colons
		var key, value string
		var found bool
		if strings.Contains(line, "=") {
			key, value, found = strings.Cut(line, "=")
		} else {
			key, value, found = strings.Cut(line, ":")
		}
		if !found {
			continue
		}

		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	return props, nil
}

// Get returns the value for a key, or empty string if not found
func (p Properties) Get(key string) string {
	return p[key]
}

// GetWithDefault returns the value for a key, or the default if missing or empty
func (p Properties) GetWithDefault(key, defaultValue string) string {
	if val, ok := p[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

// GetInt returns the integer value for a key, or 0 if the key is missing.
func (p Properties) GetInt(key string) (int, error) {
	val := p[key]
	if val == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", key, val)
	}
	return n, nil
}

// GetList parses a comma-separated value into a slice. A missing key yields nil
// so defaults can still apply; a present but empty key yields an empty slice.
func (p Properties) GetList(key string) []string {
	val, ok := p[key]
	if !ok {
		return nil
	}

	result := []string{}
	for _, item := range strings.Split(val, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// FileExists checks if a file exists at the given path
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// PropertiesFileExists checks if a properties file exists in the directory
func PropertiesFileExists(dir, filename string) bool {
	return FileExists(filepath.Join(dir, filename))
}
