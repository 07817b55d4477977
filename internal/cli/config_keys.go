package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/export"
)

const configKeysHelp = "Run 'dealerdesk config list' for every key."

// NewConfigGetCmd prints one effective configuration value.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get KEY",
		Short:   "Print a configuration value",
		Long:    "Prints the effective value of a dotted key after the project overlay and environment variables. " + configKeysHelp,
		Example: `  dealerdesk config get api.base_url`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

// NewConfigSetCmd writes one value to the configuration file.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Sets a dotted key in ~/.dealerdesk/config.yaml. The file is only written when the result is valid. " + configKeysHelp,
		Example: `  dealerdesk config set api.base_url https://api.example-motors.com
  dealerdesk config set list.cars_page_size 12
  dealerdesk config set cache.enabled false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], strings.TrimSpace(args[1])

			cfg := config.Defaults()
			if err := cfg.Load(); err != nil {
				return err
			}
			if err := cfg.Set(key, value); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("refusing to save %s=%s: %w", key, value, err)
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			logger.Info().Ctx(cmd.Context()).
				Str("operation", "config_set").
				Str("key", key).
				Str("path", cfg.ConfigPath()).
				Msg("configuration updated")
			cmd.Printf("Set %s = %s\n", key, value)
			return nil
		},
	}
}

// NewConfigListCmd prints every key with its effective value.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every configuration key and value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			keys := config.Keys()

			table := export.Table{Columns: []string{"Key", "Value"}, Rows: make([][]string, 0, len(keys))}
			values := make(map[string]string, len(keys))
			for _, k := range keys {
				v, err := cfg.Get(k)
				if err != nil {
					return err
				}
				values[k] = v
				table.Rows = append(table.Rows, []string{k, v})
			}

			w := cmd.OutOrStdout()
			switch outputFormat(cmd) {
			case config.FormatJSON:
				return export.WriteJSON(w, values, true)
			case config.FormatCSV:
				return export.WriteCSV(w, table)
			default:
				return renderTable(w, table)
			}
		},
	}
}
