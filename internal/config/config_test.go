package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dealerdesk/internal/cache"
)

func TestDefaultsAreValid(t *testing.T) {
	stubHome(t)
	require.NoError(t, Defaults().Validate())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	home := stubHome(t)

	cfg := Defaults()
	cfg.API.BaseURL = "https://cars.example.com"
	cfg.List.CarsPageSize = 8
	require.NoError(t, cfg.Save())

	info, err := os.Stat(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded := New()
	assert.Equal(t, "https://cars.example.com", loaded.API.BaseURL)
	assert.Equal(t, 8, loaded.List.CarsPageSize)
}

func TestNew_CorruptFileFallsBackToDefaults(t *testing.T) {
	home := stubHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("api: ["), 0o600))

	cfg := New()
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()
	env := map[string]string{
		EnvAPIURL:   "http://env.example.com",
		EnvLogLevel: "DEBUG",
		EnvOutput:   "JSON",
	}
	cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "http://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
}

func TestApplyEnv_Cache(t *testing.T) {
	cfg := Defaults()
	env := map[string]string{
		EnvCacheEnabled: "false",
		EnvCacheTTL:     "120",
		EnvCacheDir:     "/tmp/dd-cache",
	}
	cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 120, cfg.Cache.TTLSeconds)
	assert.Equal(t, "/tmp/dd-cache", cfg.Cache.Directory)

	cfg.applyEnv(func(k string) (string, bool) {
		if k == EnvCacheEnabled {
			return "maybe", true
		}
		return "", false
	})
	assert.False(t, cfg.Cache.Enabled, "unparsable values are ignored")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"relative base url", func(c *Config) { c.API.BaseURL = "/api" }, ErrInvalidBaseURL},
		{"ftp base url", func(c *Config) { c.API.BaseURL = "ftp://x" }, ErrInvalidBaseURL},
		{"zero timeout", func(c *Config) { c.API.TimeoutSeconds = 0 }, ErrInvalidTimeout},
		{"unknown format", func(c *Config) { c.Output.DefaultFormat = "xml" }, ErrInvalidFormat},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }, ErrInvalidLogLevel},
		{"zero page size", func(c *Config) { c.List.LeadsPageSize = 0 }, ErrInvalidPageSize},
		{"narrow window", func(c *Config) { c.List.PaginationWindow = 3 }, ErrInvalidWindow},
		{"negative cache size", func(c *Config) { c.Cache.MaxSizeMB = -1 }, ErrInvalidCacheSize},
		{"short cache ttl", func(c *Config) { c.Cache.TTLSeconds = 5 }, cache.ErrInvalidTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestGetSetKeys(t *testing.T) {
	cfg := Defaults()

	require.NoError(t, cfg.Set("api.base_url", "https://x.example.com"))
	require.NoError(t, cfg.Set("list.cars_page_size", "9"))
	require.NoError(t, cfg.Set("cache.enabled", "false"))

	v, err := cfg.Get("api.base_url")
	require.NoError(t, err)
	assert.Equal(t, "https://x.example.com", v)

	v, err = cfg.Get("list.cars_page_size")
	require.NoError(t, err)
	assert.Equal(t, "9", v)
	assert.False(t, cfg.Cache.Enabled)

	_, err = cfg.Get("nope")
	require.ErrorIs(t, err, ErrUnknownKey)
	require.ErrorIs(t, cfg.Set("nope", "1"), ErrUnknownKey)
	require.ErrorIs(t, cfg.Set("list.cars_page_size", "six"), ErrInvalidValue)
	require.ErrorIs(t, cfg.Set("cache.enabled", "maybe"), ErrInvalidValue)
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	require.NotEmpty(t, keys)
	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, "list.pagination_window")
}

func TestToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "debug", Format: "json"}
	out := lc.ToLoggingConfig()
	assert.Equal(t, "stderr", out.Output)

	lc.File = "/tmp/d.log"
	out = lc.ToLoggingConfig()
	assert.Equal(t, "file", out.Output)
	assert.Equal(t, "/tmp/d.log", out.File)
}
