package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/fintrack/internal/aggregate"
	"github.com/cleared-dev/fintrack/internal/logger"
	"github.com/cleared-dev/fintrack/internal/model"
	"github.com/cleared-dev/fintrack/internal/store"
)

// FileName is the config file created by init.
const FileName = "fintrack.yaml"

// Environment overrides.
const (
	EnvBackend   = "FINTRACK_BACKEND"
	EnvDataPath  = "FINTRACK_DATA_PATH"
	EnvLogLevel  = "FINTRACK_LOG_LEVEL"
	EnvLogFormat = "FINTRACK_LOG_FORMAT"
)

// Config represents the top-level fintrack.yaml configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects where the transaction snapshot lives.
type StorageConfig struct {
	Backend string `yaml:"backend"` // json | sqlite
	Path    string `yaml:"path"`    // relative to the config file
}

// DisplayConfig holds view defaults for the CLI.
type DisplayConfig struct {
	SortBy        string `yaml:"sort_by"`
	SortOrder     string `yaml:"sort_order"`
	SeriesMonths  int    `yaml:"series_months"`
	TopCategories int    `yaml:"top_categories"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

// Load reads a fintrack.yaml file from disk. Fields missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data directory.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: store.BackendJSON,
			Path:    filepath.Join("data", "transactions.json"),
		},
		Display: DisplayConfig{
			SortBy:        string(model.SortByDate),
			SortOrder:     string(model.SortDesc),
			SeriesMonths:  aggregate.DefaultSeriesMonths,
			TopCategories: 3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logger.FormatConsole,
		},
	}
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment without overriding variables already set. A missing file is
// not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from FINTRACK_* environment variables.
func (c *Config) ApplyEnv() {
	c.Storage.Backend = getEnv(EnvBackend, c.Storage.Backend)
	c.Storage.Path = getEnv(EnvDataPath, c.Storage.Path)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)
	c.Log.Format = getEnv(EnvLogFormat, c.Log.Format)
}

// DataPath resolves the storage path against baseDir, the directory holding
// the config file.
func (c *Config) DataPath(baseDir string) string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(baseDir, c.Storage.Path)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if !slices.Contains(store.Backends(), c.Storage.Backend) {
		errs = append(errs, fmt.Sprintf("unknown storage backend %q: must be one of %s",
			c.Storage.Backend, strings.Join(store.Backends(), ", ")))
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, "storage path is required")
	}
	if !slices.Contains(model.SortFields(), model.SortField(c.Display.SortBy)) {
		errs = append(errs, fmt.Sprintf("invalid sort_by %q", c.Display.SortBy))
	}
	if o := model.SortOrder(c.Display.SortOrder); o != model.SortAsc && o != model.SortDesc {
		errs = append(errs, fmt.Sprintf("invalid sort_order %q: must be asc or desc", c.Display.SortOrder))
	}
	if c.Display.SeriesMonths < 0 {
		errs = append(errs, fmt.Sprintf("invalid series_months %d: must not be negative", c.Display.SeriesMonths))
	}
	if c.Display.TopCategories < 1 {
		errs = append(errs, fmt.Sprintf("invalid top_categories %d: must be at least 1", c.Display.TopCategories))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err.Error())
	}
	if !slices.Contains(logger.Formats(), c.Log.Format) {
		errs = append(errs, fmt.Sprintf("invalid log format %q: must be one of %s",
			c.Log.Format, strings.Join(logger.Formats(), ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
