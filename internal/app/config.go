package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"asyncpfs/internal/crypto"
)

// ConfigFilename is the name of the config file inside Home.
const ConfigFilename = "config.yaml"

// Session store backends.
const (
	StoreFile = "file"
	StoreBolt = "bolt"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home         string        `yaml:"home"`          // config directory, e.g. $HOME/.asyncpfs
	DirectoryURL string        `yaml:"directory_url"` // e.g. http://127.0.0.1:8080
	Suite        string        `yaml:"suite"`
	SessionStore string        `yaml:"session_store"` // file or bolt
	LogLevel     string        `yaml:"log_level"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
	OneTimeKeys  int           `yaml:"one_time_keys"` // batch size for register
}

// DefaultConfig returns the built-in defaults with Home set to home.
func DefaultConfig(home string) Config {
	return Config{
		Home:         home,
		Suite:        crypto.SuiteChaCha20Poly1305,
		SessionStore: StoreFile,
		LogLevel:     "info",
		HTTPTimeout:  10 * time.Second,
		OneTimeKeys:  10,
	}
}

// DefaultHome returns ASYNCPFS_HOME, or ~/.asyncpfs.
func DefaultHome() (string, error) {
	if h := strings.TrimSpace(os.Getenv("ASYNCPFS_HOME")); h != "" {
		return h, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".asyncpfs"), nil
}

// LoadConfig builds the config for home: defaults, then <home>/config.yaml
// if present, then environment overrides. An empty home uses DefaultHome.
func LoadConfig(home string) (Config, error) {
	if home == "" {
		h, err := DefaultHome()
		if err != nil {
			return Config{}, err
		}
		home = h
	}
	cfg := DefaultConfig(home)

	data, err := os.ReadFile(filepath.Join(home, ConfigFilename))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, err
	default:
		var parsed Config
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", ConfigFilename, err)
		}
		Merge(&cfg, parsed)
	}

	if err := ApplyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Merge copies the non-zero fields of src into dst. Home is never taken
// from the file it was found in.
func Merge(dst *Config, src Config) {
	if src.DirectoryURL != "" {
		dst.DirectoryURL = src.DirectoryURL
	}
	if src.Suite != "" {
		dst.Suite = src.Suite
	}
	if src.SessionStore != "" {
		dst.SessionStore = src.SessionStore
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.HTTPTimeout != 0 {
		dst.HTTPTimeout = src.HTTPTimeout
	}
	if src.OneTimeKeys != 0 {
		dst.OneTimeKeys = src.OneTimeKeys
	}
}

// ApplyEnvOverrides applies the ASYNCPFS_* environment variables.
func ApplyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("ASYNCPFS_DIRECTORY")); v != "" {
		cfg.DirectoryURL = v
	}
	if v := strings.TrimSpace(os.Getenv("ASYNCPFS_SUITE")); v != "" {
		cfg.Suite = v
	}
	if v := strings.TrimSpace(os.Getenv("ASYNCPFS_STORE")); v != "" {
		cfg.SessionStore = v
	}
	if v := strings.TrimSpace(os.Getenv("ASYNCPFS_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("ASYNCPFS_HTTP_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ASYNCPFS_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if v := strings.TrimSpace(os.Getenv("ASYNCPFS_ONE_TIME_KEYS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ASYNCPFS_ONE_TIME_KEYS: %w", err)
		}
		cfg.OneTimeKeys = n
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Home == "" {
		return errors.New("config: home required")
	}
	if _, err := crypto.SuiteByName(c.Suite); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.SessionStore {
	case StoreFile, StoreBolt:
	default:
		return fmt.Errorf("config: unknown session store %q (want %s or %s)", c.SessionStore, StoreFile, StoreBolt)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	if c.HTTPTimeout < 0 {
		return errors.New("config: http_timeout must not be negative")
	}
	if c.OneTimeKeys < 0 {
		return errors.New("config: one_time_keys must not be negative")
	}
	return nil
}
