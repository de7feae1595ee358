package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverRedis  = "redis"
	DriverValkey = "valkey"
	DriverSQLite = "sqlite"
	DriverNone   = "none"
)

// Config holds the docsim configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Storage    StorageConfig    `yaml:"storage"`
	Upload     UploadConfig     `yaml:"upload"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// StorageConfig selects and configures the comparison result store.
type StorageConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey, sqlite, none (default: sqlite)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	SQLitePath       string   `yaml:"sqlite_path"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	SaveTimeoutMs    int      `yaml:"save_timeout_ms"`
	HistoryLimit     int      `yaml:"history_limit"` // records kept in the redis index list
	PageSize         int      `yaml:"history_page_size"`
	MaxPageSize      int      `yaml:"history_max_page_size"`
}

// UploadConfig limits accepted files.
type UploadConfig struct {
	MaxFileBytes int64 `yaml:"max_file_bytes"`
}

// SimilarityConfig tunes the comparison pipeline.
type SimilarityConfig struct {
	MinTokenLength int `yaml:"min_token_length"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 30
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "docsim.db"
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "docsim:"
	}
	if c.Storage.ReadinessTimeout <= 0 {
		c.Storage.ReadinessTimeout = 10
	}
	if c.Storage.SaveTimeoutMs <= 0 {
		c.Storage.SaveTimeoutMs = 2000
	}
	if c.Storage.HistoryLimit <= 0 {
		c.Storage.HistoryLimit = 10000
	}
	if c.Storage.PageSize <= 0 {
		c.Storage.PageSize = 20
	}
	if c.Storage.MaxPageSize <= 0 {
		c.Storage.MaxPageSize = 100
	}
	if c.Upload.MaxFileBytes <= 0 {
		c.Upload.MaxFileBytes = 20 << 20
	}
	if c.Similarity.MinTokenLength <= 0 {
		c.Similarity.MinTokenLength = 1
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Storage.Driver {
	case DriverRedis, DriverValkey:
		if len(c.Storage.Addrs) == 0 {
			return fmt.Errorf("storage.addrs is required for driver %q", c.Storage.Driver)
		}
	case DriverSQLite, DriverNone:
		// ok
	default:
		return fmt.Errorf(
			"storage.driver must be one of %q, %q, %q, %q, got %q",
			DriverRedis, DriverValkey, DriverSQLite, DriverNone, c.Storage.Driver,
		)
	}
	if c.Storage.PageSize > c.Storage.MaxPageSize {
		return fmt.Errorf("storage.history_page_size (%d) exceeds history_max_page_size (%d)",
			c.Storage.PageSize, c.Storage.MaxPageSize)
	}
	for i, k := range c.Auth.APIKeys {
		if strings.TrimSpace(k) != k {
			return fmt.Errorf("auth.api_keys[%d] has surrounding whitespace", i)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
