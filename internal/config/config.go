package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the admin console and the dev API
type Config struct {
	API       APIConfig       `yaml:"api"`
	Session   SessionConfig   `yaml:"session"`
	Logging   LoggingConfig   `yaml:"logging"`
	DevServer DevServerConfig `yaml:"devserver"`
}

// APIConfig holds the admin API connection settings
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	TimeoutRaw string `yaml:"timeout"`
}

// SessionConfig selects where credentials are kept
type SessionConfig struct {
	Backend string `yaml:"backend"` // file, keyring, memory
	Path    string `yaml:"path"`    // file backend only
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, console
}

// DevServerConfig configures the local stand-in API
type DevServerConfig struct {
	Addr        string `yaml:"addr"`
	DatabaseURL string `yaml:"database_url"`
	JWTSecret   string `yaml:"jwt_secret"`
	Seed        bool   `yaml:"seed"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 30 * time.Second,
		},
		Session: SessionConfig{
			Backend: "file",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		DevServer: DevServerConfig{
			Addr:        ":5000",
			DatabaseURL: "file::memory:?cache=shared",
		},
	}
}

// DefaultPath returns the config file location used when AJASTRA_CONFIG is unset
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ajastra", "config.yaml"), nil
}

// Load loads configuration from .env files, the YAML config file and
// environment variables, later sources overriding earlier ones
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	path := os.Getenv("AJASTRA_CONFIG")
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			path = ""
		}
	}

	cfg := Defaults()
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML config file over the defaults without consulting
// the environment
func LoadFile(path string) (*Config, error) {
	cfg := Defaults()
	if err := cfg.loadFile(path, true); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if c.API.TimeoutRaw != "" {
		d, err := time.ParseDuration(c.API.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("invalid api.timeout %q: %w", c.API.TimeoutRaw, err)
		}
		c.API.Timeout = d
	}
	return nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.API.BaseURL, "AJASTRA_API_BASE")
	setFromEnv(&c.Session.Backend, "AJASTRA_SESSION_BACKEND")
	setFromEnv(&c.Session.Path, "AJASTRA_SESSION_PATH")
	setFromEnv(&c.Logging.Level, "LOG_LEVEL")
	setFromEnv(&c.Logging.Format, "LOG_FORMAT")
	setFromEnv(&c.DevServer.Addr, "DEVSERVER_ADDR")
	setFromEnv(&c.DevServer.DatabaseURL, "DEVSERVER_DATABASE_URL")
	setFromEnv(&c.DevServer.JWTSecret, "DEVSERVER_JWT_SECRET")

	if v := os.Getenv("AJASTRA_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.Timeout = d
		}
	}
	if v := os.Getenv("DEVSERVER_SEED"); v != "" {
		c.DevServer.Seed = v == "1" || v == "true"
	}
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks the values that would otherwise fail later and less clearly
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api base URL is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %s", c.API.Timeout)
	}
	switch c.Session.Backend {
	case "file", "keyring", "memory":
	default:
		return fmt.Errorf("unknown session backend %q (want file, keyring or memory)", c.Session.Backend)
	}
	return nil
}
