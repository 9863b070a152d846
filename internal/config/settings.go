package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrInvalidConfig is returned when a config file fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrParsingSettings is returned when environment variables cannot be parsed.
	ErrParsingSettings = errors.New("failed to parse environment settings")
)

// Settings holds machine-level knobs read from the environment. Jobs and
// OnError override the project file when set.
type Settings struct {
	LogLevel  string `env:"JSMIN_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"JSMIN_LOG_FORMAT" envDefault:"text"`
	Jobs      int    `env:"JSMIN_JOBS"`
	OnError   string `env:"JSMIN_ON_ERROR"`
	Force     bool   `env:"JSMIN_FORCE"`
}

// LoadSettings reads the given env files (or .env when none are given, if it
// exists) and parses the environment. Variables already set are not replaced
// by file values.
func LoadSettings(envFiles ...string) (*Settings, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, errors.Join(ErrParsingSettings, err)
	}
	return &s, nil
}

// Apply copies the environment overrides onto p.
func (s *Settings) Apply(p *Project) {
	if s.Jobs > 0 {
		p.Jobs = s.Jobs
	}
	if s.OnError != "" {
		p.OnError = s.OnError
	}
}
