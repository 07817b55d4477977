// Package config loads, validates and persists dealerdesk configuration.
//
// Configuration lives in ~/.dealerdesk/config.yaml (or $DEALERDESK_HOME/config.yaml).
// A project-local .dealerdesk/config.yaml may overlay whole sections on top of it,
// and a small set of environment variables override individual values.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/dealerdesk/internal/cache"
)

// Output formats accepted by the CLI.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Defaults applied by New.
const (
	DefaultBaseURL          = "http://localhost:8000"
	DefaultTimeoutSeconds   = 30
	DefaultCarsPageSize     = 6
	DefaultLeadsPageSize    = 5
	DefaultBlogsPageSize    = 6
	DefaultCatalogPageSize  = 10
	DefaultPaginationWindow = 5
	MinPaginationWindow     = 5

	outputTypeFile = "file"
	configFileName = "config.yaml"
	configDirName  = ".dealerdesk"
)

// Environment variables recognised by dealerdesk.
const (
	EnvHome     = "DEALERDESK_HOME"
	EnvAPIURL   = "DEALERDESK_API_URL"
	EnvLogLevel = "DEALERDESK_LOG_LEVEL"
	EnvOutput   = "DEALERDESK_OUTPUT"

	EnvCacheEnabled = "DEALERDESK_CACHE_ENABLED"
	EnvCacheTTL     = "DEALERDESK_CACHE_TTL_SECONDS"
	EnvCacheDir     = "DEALERDESK_CACHE_DIR"
)

// Sentinel errors returned by Validate and the dotted-key accessors.
var (
	ErrUnknownKey       = errors.New("unknown configuration key")
	ErrInvalidValue     = errors.New("invalid configuration value")
	ErrInvalidBaseURL   = errors.New("api.base_url must be an absolute http(s) URL")
	ErrInvalidFormat    = errors.New("output.default_format must be one of table, json, csv")
	ErrInvalidLogLevel  = errors.New("logging.level must be one of trace, debug, info, warn, error")
	ErrInvalidPageSize  = errors.New("page sizes must be positive")
	ErrInvalidWindow    = errors.New("list.pagination_window must be at least 5")
	ErrInvalidTimeout   = errors.New("api.timeout_seconds must be positive")
	ErrInvalidCacheSize = errors.New("cache.max_size_mb must not be negative")
)

// Config is the full dealerdesk configuration.
type Config struct {
	API     APIConfig     `yaml:"api"     json:"api"`
	Output  OutputConfig  `yaml:"output"  json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Cache   CacheConfig   `yaml:"cache"   json:"cache"`
	List    ListConfig    `yaml:"list"    json:"list"`

	configPath string
}

// APIConfig describes the backend connection.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"        json:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// CacheConfig controls the reference-data file cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"     json:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds" json:"ttl_seconds"`
	Directory  string `yaml:"directory"   json:"directory"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
}

// ListConfig holds per-screen page sizes and the pagination window width.
type ListConfig struct {
	CarsPageSize     int `yaml:"cars_page_size"    json:"cars_page_size"`
	LeadsPageSize    int `yaml:"leads_page_size"   json:"leads_page_size"`
	BlogsPageSize    int `yaml:"blogs_page_size"   json:"blogs_page_size"`
	CatalogPageSize  int `yaml:"catalog_page_size" json:"catalog_page_size"`
	PaginationWindow int `yaml:"pagination_window" json:"pagination_window"`
	// ExportDir receives lead exports written without an explicit path.
	ExportDir string `yaml:"export_dir,omitempty" json:"export_dir,omitempty"`
}

// Defaults returns a Config populated with default values only.
func Defaults() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), configDirName)
	}
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Output: OutputConfig{DefaultFormat: FormatTable},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: cache.DefaultTTLSeconds,
			Directory:  filepath.Join(dir, "cache"),
			MaxSizeMB:  50,
		},
		List: ListConfig{
			CarsPageSize:     DefaultCarsPageSize,
			LeadsPageSize:    DefaultLeadsPageSize,
			BlogsPageSize:    DefaultBlogsPageSize,
			CatalogPageSize:  DefaultCatalogPageSize,
			PaginationWindow: DefaultPaginationWindow,
		},
		configPath: filepath.Join(dir, configFileName),
	}
}

// New returns the configuration from the default path with environment
// overrides applied. A missing or unreadable file yields the defaults.
func New() *Config {
	cfg := Defaults()
	if err := cfg.Load(); err != nil {
		cfg = Defaults()
	}
	cfg.ApplyEnvOverrides()
	return cfg
}

// Load reads the config file at ConfigPath into c. A missing file is not an error.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", c.configPath, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes c to ConfigPath, creating the parent directory.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// ConfigPath returns the file the config is loaded from and saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file used by Load and Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// ApplyEnvOverrides applies DEALERDESK_* environment variables onto c.
func (c *Config) ApplyEnvOverrides() {
	c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvOutput); ok && v != "" {
		c.Output.DefaultFormat = strings.ToLower(v)
	}
	if v, ok := lookup(EnvCacheEnabled); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = b
		}
	}
	if v, ok := lookup(EnvCacheTTL); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Cache.TTLSeconds = n
		}
	}
	if v, ok := lookup(EnvCacheDir); ok && v != "" {
		c.Cache.Directory = v
	}
}

// Validate checks every section for semantic errors.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ErrInvalidBaseURL)
	}
	if c.API.TimeoutSeconds <= 0 {
		errs = append(errs, ErrInvalidTimeout)
	}
	if !isValidFormat(c.Output.DefaultFormat) {
		errs = append(errs, ErrInvalidFormat)
	}
	if !isValidLevel(c.Logging.Level) {
		errs = append(errs, ErrInvalidLogLevel)
	}
	if c.Cache.MaxSizeMB < 0 {
		errs = append(errs, ErrInvalidCacheSize)
	}
	if c.Cache.Enabled {
		if err := cache.ValidateTTL(c.Cache.TTLSeconds); err != nil {
			errs = append(errs, fmt.Errorf("cache.ttl_seconds: %w", err))
		}
	}
	if c.List.CarsPageSize <= 0 || c.List.LeadsPageSize <= 0 ||
		c.List.BlogsPageSize <= 0 || c.List.CatalogPageSize <= 0 {
		errs = append(errs, ErrInvalidPageSize)
	}
	if c.List.PaginationWindow < MinPaginationWindow {
		errs = append(errs, ErrInvalidWindow)
	}

	return errors.Join(errs...)
}

func isValidFormat(f string) bool {
	switch f {
	case FormatTable, FormatJSON, FormatCSV:
		return true
	}
	return false
}

func isValidLevel(l string) bool {
	switch l {
	case "trace", "debug", "info", "warn", "error":
		return true
	}
	return false
}

// GetConfigDir returns the dealerdesk configuration directory.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}
