package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file at ~/.dealerdesk/config.yaml, and the project
overlay when one is in use, for syntax and semantic correctness.

This includes:
- YAML syntax of both files
- api.base_url is an absolute http(s) URL and the timeout is positive
- output format and logging level are known values
- cache TTL and size limits
- page sizes are positive and the pagination window is at least 5`,
		Example: `  # Validate current configuration
  dealerdesk config validate

  # Validate and print the effective settings
  dealerdesk config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the effective configuration")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	// Load directly so syntax errors surface instead of falling back to defaults.
	cfg := config.Defaults()
	if err := cfg.Load(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if projectDir := config.GetResolvedProjectDir(); projectDir != "" {
		overlay := filepath.Join(projectDir, "config.yaml")
		if _, err := os.Stat(overlay); err == nil {
			if err := config.ShallowMergeYAML(cfg, overlay); err != nil {
				return fmt.Errorf("project configuration %s: %w", overlay, err)
			}
		}
	}
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	if projectDir := config.GetResolvedProjectDir(); projectDir != "" {
		cmd.Printf("  Project overlay: %s\n", filepath.Join(projectDir, "config.yaml"))
	}
	cmd.Printf("  Backend: %s (timeout %ds)\n", cfg.API.BaseURL, cfg.API.TimeoutSeconds)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}

	printCacheDetails(cmd, cfg)

	lc := cfg.List
	cmd.Printf("  Page sizes: cars %d, leads %d, blogs %d, catalog %d\n",
		lc.CarsPageSize, lc.LeadsPageSize, lc.BlogsPageSize, lc.CatalogPageSize)
	cmd.Printf("  Pagination window: %d\n", lc.PaginationWindow)
}

func printCacheDetails(cmd *cobra.Command, cfg *config.Config) {
	if !cfg.Cache.Enabled {
		cmd.Println("  Cache: disabled")
		return
	}
	cmd.Printf("  Cache: %s (ttl %ds, max %d MB)\n",
		cfg.Cache.Directory, cfg.Cache.TTLSeconds, cfg.Cache.MaxSizeMB)
}
