package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// annotationLogToFile marks commands that own the terminal and must log to a file.
const annotationLogToFile = "dealerdesk/log-to-file"

// NewRootCmd creates the root Cobra command for the dealerdesk CLI.
// It wires up configuration, logging and tracing before any subcommand runs.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		projectDir string
	)

	cmd := &cobra.Command{
		Use:           "dealerdesk",
		Short:         "DealerDesk admin client",
		Long:          "DealerDesk: manage car listings, catalog data, blogs and customer leads from the terminal",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cwd, _ := os.Getwd()
			resolved := config.ResolveProjectDir(cmd.Context(), projectDir, cwd)
			config.SetResolvedProjectDir(resolved)
			config.InitGlobalConfigWithProject(cmd.Context(), resolved)

			if format, _ := cmd.Flags().GetString("output"); format != "" && !slices.Contains(outputFormats, format) {
				return fmt.Errorf("%w: %q (want table, json or csv)", ErrInvalidOutput, format)
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("api-url", "", "backend base URL (overrides api.base_url)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json or csv (default from config)")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"project directory holding a .dealerdesk/config.yaml overlay")

	cmd.AddCommand(
		NewLoginCmd(), NewLogoutCmd(), NewWhoamiCmd(),
		NewDashboardCmd(),
		newCarsCmd(), newManufacturersCmd(), newVehicleTypesCmd(), newTrimsCmd(),
		newBlogsCmd(), newLeadsCmd(),
		newConfigCmd(), newCacheCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Sign in to the backend
  dealerdesk login --username admin@example.com

  # Open the interactive dashboard
  dealerdesk dashboard

  # List diesel SUVs from Toyota, second page
  dealerdesk cars list --filter manufacturer=Toyota --filter bodyType=suv --filter fuelType=diesel --page 2

  # Search test drive requests and print JSON
  dealerdesk leads list test-drive --search camry -o json

  # Export every finance lead to CSV
  dealerdesk leads export finance --file finance.csv

  # Point at another backend
  dealerdesk config set api.base_url https://api.example.com`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Catalog cache maintenance"}
	cmd.AddCommand(NewCacheClearCmd(), NewCacheCleanupCmd(), NewCacheStatsCmd())
	return cmd
}
