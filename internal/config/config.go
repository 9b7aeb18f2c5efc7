package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/sprintdeck/internal/errors"
)

// Config holds client configuration loaded from the config file
// with environment variable overrides applied on top.
type Config struct {
	// APIURL is the base URL of the platform backend
	APIURL string `yaml:"api_url"`

	// RequestTimeout bounds every HTTP request
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// LogLevel is the minimum log level (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFormat is the log output format (text, json)
	LogFormat string `yaml:"log_format"`

	// Freshness overrides the per-entity cache freshness windows
	Freshness Freshness `yaml:"freshness"`
}

// Freshness holds per-entity cache freshness windows.
// Zero values fall back to the defaults below.
type Freshness struct {
	Projects      time.Duration `yaml:"projects"`
	Users         time.Duration `yaml:"users"`
	Tasks         time.Duration `yaml:"tasks"`
	Stats         time.Duration `yaml:"stats"`
	Notifications time.Duration `yaml:"notifications"`
}

// Default freshness windows. Project lists change rarely,
// notifications are volatile.
const (
	DefaultProjectsFreshness      = 10 * time.Minute
	DefaultUsersFreshness         = 10 * time.Minute
	DefaultTasksFreshness         = 5 * time.Minute
	DefaultStatsFreshness         = 5 * time.Minute
	DefaultNotificationsFreshness = 2 * time.Minute
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		APIURL:         "http://localhost:8000",
		RequestTimeout: 30 * time.Second,
		LogLevel:       "warn",
		LogFormat:      "text",
		Freshness: Freshness{
			Projects:      DefaultProjectsFreshness,
			Users:         DefaultUsersFreshness,
			Tasks:         DefaultTasksFreshness,
			Stats:         DefaultStatsFreshness,
			Notifications: DefaultNotificationsFreshness,
		},
	}
}

// Dir returns the sprintdeck config directory, creating nothing.
func Dir() string {
	if dir := os.Getenv("SPRINTDECK_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sprintdeck"
	}
	return filepath.Join(home, ".sprintdeck")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the config file if present, applies defaults for missing
// fields, then applies environment overrides. A missing file is not an
// error; the defaults are returned.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom loads configuration from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.NewConfigUnmarshalError(path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read config file", err)
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)

	return cfg, nil
}

// Save writes the configuration to the config file.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to marshal config", err)
	}

	if err := os.WriteFile(Path(), data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write config file", err)
	}

	return nil
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()

	if cfg.APIURL == "" {
		cfg.APIURL = def.APIURL
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = def.LogFormat
	}
	if cfg.Freshness.Projects == 0 {
		cfg.Freshness.Projects = def.Freshness.Projects
	}
	if cfg.Freshness.Users == 0 {
		cfg.Freshness.Users = def.Freshness.Users
	}
	if cfg.Freshness.Tasks == 0 {
		cfg.Freshness.Tasks = def.Freshness.Tasks
	}
	if cfg.Freshness.Stats == 0 {
		cfg.Freshness.Stats = def.Freshness.Stats
	}
	if cfg.Freshness.Notifications == 0 {
		cfg.Freshness.Notifications = def.Freshness.Notifications
	}
}

func applyEnv(cfg *Config) {
	if url := os.Getenv("SPRINTDECK_API_URL"); url != "" {
		cfg.APIURL = url
	}
	if level := os.Getenv("SPRINTDECK_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if format := os.Getenv("SPRINTDECK_LOG_FORMAT"); format != "" {
		cfg.LogFormat = format
	}
}
