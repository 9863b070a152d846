package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// On-error policies applied by the builder when a file cannot be minified.
const (
	OnErrorFail = "fail"
	OnErrorCopy = "copy"
	OnErrorSkip = "skip"
)

const (
	DefaultSuffix        = ".min.js"
	DefaultWatchInterval = "500ms"
)

// FileNames lists the config files Load looks for, in order of precedence.
var FileNames = []string{"minify.yaml", "minify.yml", "minify.json", "minify.properties"}

var (
	DefaultInclude = []string{"**/*.js"}
	DefaultExclude = []string{"**/node_modules/**", "**/*.min.js"}
)

// Project is the configuration of one directory tree of scripts.
type Project struct {
	// Include and Exclude are doublestar globs relative to the project root.
	Include []string `yaml:"include" json:"include,omitempty"`
	Exclude []string `yaml:"exclude" json:"exclude,omitempty"`

	// Suffix replaces the .js extension of each output file.
	Suffix string `yaml:"suffix" json:"suffix"`

	// OutDir mirrors outputs into a separate tree instead of writing siblings.
	OutDir string `yaml:"out_dir" json:"out_dir,omitempty"`

	OnError string `yaml:"on_error" json:"on_error"`
	Jobs    int    `yaml:"jobs" json:"jobs"`

	// Report is where the JSON build report is written, if anywhere.
	Report string `yaml:"report" json:"report,omitempty"`

	Watch WatchConfig `yaml:"watch" json:"watch"`

	path string
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	Interval string `yaml:"interval" json:"interval"`
}

// Default returns the configuration used when a project has no config file.
func Default() *Project {
	p := &Project{}
	p.applyDefaults()
	return p
}

// Load loads the first config file found in dir, or the defaults if there is none.
func Load(dir string) (*Project, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if FileExists(path) {
			return LoadFile(path)
		}
	}
	return Default(), nil
}

// LoadFile loads a config file, choosing the format from its extension.
func LoadFile(path string) (*Project, error) {
	var p Project

	switch strings.ToLower(filepath.Ext(path)) {
	case ".properties":
		props, err := ParseProperties(path)
		if err != nil {
			return nil, err
		}
		if err := p.fromProperties(props); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filepath.Base(path), err)
		}
	case ".json":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filepath.Base(path), err)
		}
	default:
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filepath.Base(path), err)
		}
	}

	p.applyDefaults()
	p.path = path

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &p, nil
}

func (p *Project) fromProperties(props Properties) error {
	jobs, err := props.GetInt("jobs")
	if err != nil {
		return err
	}

	p.Include = props.GetList("include")
	p.Exclude = props.GetList("exclude")
	p.Suffix = props.Get("suffix")
	p.OutDir = props.Get("out-dir")
	p.OnError = props.Get("on-error")
	p.Jobs = jobs
	p.Report = props.Get("report")
	p.Watch.Interval = props.Get("watch-interval")
	return nil
}

func (p *Project) applyDefaults() {
	if p.Include == nil {
		p.Include = append([]string(nil), DefaultInclude...)
	}
	if p.Exclude == nil {
		p.Exclude = append([]string(nil), DefaultExclude...)
	}
	if p.Suffix == "" {
		p.Suffix = DefaultSuffix
	}
	if p.OnError == "" {
		p.OnError = OnErrorCopy
	}
	if p.Jobs == 0 {
		p.Jobs = runtime.NumCPU()
	}
	if p.Watch.Interval == "" {
		p.Watch.Interval = DefaultWatchInterval
	}
}

// Path returns the file the configuration was loaded from, or "" for defaults.
func (p *Project) Path() string {
	return p.path
}

// WatchInterval returns the parsed polling interval for watch mode.
func (p *Project) WatchInterval() time.Duration {
	d, err := time.ParseDuration(p.Watch.Interval)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultWatchInterval)
	}
	return d
}

// Validate checks the configuration against the project schema.
func (p *Project) Validate() error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for _, pattern := range append(append([]string(nil), p.Include...), p.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: malformed glob pattern %q", ErrInvalidConfig, pattern)
		}
	}

	if d, err := time.ParseDuration(p.Watch.Interval); err != nil || d <= 0 {
		return fmt.Errorf("%w: watch interval %q is not a positive duration", ErrInvalidConfig, p.Watch.Interval)
	}
	return nil
}
