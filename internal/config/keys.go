package config

import (
	"fmt"
	"sort"
	"strconv"
)

type keyAccessor struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringKey(field func(c *Config) *string) keyAccessor {
	return keyAccessor{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error {
			*field(c) = v
			return nil
		},
	}
}

func intKey(field func(c *Config) *int) keyAccessor {
	return keyAccessor{
		get: func(c *Config) string { return strconv.Itoa(*field(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, v)
			}
			*field(c) = n
			return nil
		},
	}
}

func boolKey(field func(c *Config) *bool) keyAccessor {
	return keyAccessor{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
			}
			*field(c) = b
			return nil
		},
	}
}

//nolint:gochecknoglobals // Static lookup table of dotted keys.
var keyAccessors = map[string]keyAccessor{
	"api.base_url":           stringKey(func(c *Config) *string { return &c.API.BaseURL }),
	"api.timeout_seconds":    intKey(func(c *Config) *int { return &c.API.TimeoutSeconds }),
	"output.default_format":  stringKey(func(c *Config) *string { return &c.Output.DefaultFormat }),
	"logging.level":          stringKey(func(c *Config) *string { return &c.Logging.Level }),
	"logging.format":         stringKey(func(c *Config) *string { return &c.Logging.Format }),
	"logging.file":           stringKey(func(c *Config) *string { return &c.Logging.File }),
	"cache.enabled":          boolKey(func(c *Config) *bool { return &c.Cache.Enabled }),
	"cache.ttl_seconds":      intKey(func(c *Config) *int { return &c.Cache.TTLSeconds }),
	"cache.directory":        stringKey(func(c *Config) *string { return &c.Cache.Directory }),
	"cache.max_size_mb":      intKey(func(c *Config) *int { return &c.Cache.MaxSizeMB }),
	"list.cars_page_size":    intKey(func(c *Config) *int { return &c.List.CarsPageSize }),
	"list.leads_page_size":   intKey(func(c *Config) *int { return &c.List.LeadsPageSize }),
	"list.blogs_page_size":   intKey(func(c *Config) *int { return &c.List.BlogsPageSize }),
	"list.catalog_page_size": intKey(func(c *Config) *int { return &c.List.CatalogPageSize }),
	"list.pagination_window": intKey(func(c *Config) *int { return &c.List.PaginationWindow }),
	"list.export_dir":        stringKey(func(c *Config) *string { return &c.List.ExportDir }),
}

// Get returns the value of a dotted key such as "api.base_url".
func (c *Config) Get(key string) (string, error) {
	acc, ok := keyAccessors[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return acc.get(c), nil
}

// Set parses value and assigns it to the dotted key. The config is not saved.
func (c *Config) Set(key, value string) error {
	acc, ok := keyAccessors[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return acc.set(c, value)
}

// Keys returns every settable dotted key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(keyAccessors))
	for k := range keyAccessors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
