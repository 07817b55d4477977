package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/export"
	"github.com/rshade/dealerdesk/internal/listschema"
	"github.com/rshade/dealerdesk/internal/model"
)

const leadKindsHelp = "KIND is one of: finance, sell-car, test-drive, contact, buy-now."

func newLeadsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "leads", Short: "Browse and export customer leads", Long: leadKindsHelp}
	cmd.AddCommand(newLeadsListCmd(), newLeadsExportCmd())
	return cmd
}

func newLeadsListCmd() *cobra.Command {
	return newListCmd(listSpec[model.Lead]{
		Use:   "list KIND",
		Short: "List leads of one kind",
		Example: `  dealerdesk leads list test-drive --search camry
  dealerdesk leads list finance --page 3 -o json`,
		Args:     cobra.ExactArgs(1),
		Schema:   listschema.Leads(),
		Columns:  leadColumns(),
		PageSize: func(lc config.ListConfig) int { return lc.LeadsPageSize },
		Load: func(ctx context.Context, deps *appDeps, args []string) ([]model.Lead, error) {
			kind, err := model.ParseLeadKind(args[0])
			if err != nil {
				return nil, err
			}
			return deps.client.ListLeads(ctx, kind)
		},
	})
}

func newLeadsExportCmd() *cobra.Command {
	var (
		file    string
		filters []string
		search  string
	)
	cmd := &cobra.Command{
		Use:   "export KIND",
		Short: "Export leads of one kind to CSV or JSON",
		Long: `Writes every lead that matches --filter and --search, across all pages.
The format follows the file extension (.csv or .json). Without --file a
timestamped CSV is written to the configured export directory.

` + leadKindsHelp,
		Example: `  dealerdesk leads export finance --file finance.csv
  dealerdesk leads export contact --search toyota --file contact.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kind, err := model.ParseLeadKind(args[0])
			if err != nil {
				return err
			}
			deps, err := newAuthedDeps(cmd)
			if err != nil {
				return err
			}
			leads, err := deps.client.ListLeads(ctx, kind)
			if err != nil {
				return err
			}

			flags := newListFlags()
			flags.filters, flags.search = filters, search
			lv, err := buildView(ctx, listschema.Leads(), leads, flags, 0, 0)
			if err != nil {
				return err
			}
			matched := lv.Filtered()

			exporter := export.NewExporter(deps.cfg.List.ExportDir)
			path, format := file, export.FormatCSV
			if path == "" {
				path = exporter.Filename(kind.Title()+" leads", format)
			} else {
				format, err = exportFormat(path)
				if err != nil {
					return err
				}
			}

			table := export.NewTable(listschema.LeadColumns(), matched, func(l model.Lead) []string {
				return listschema.LeadRow(kind, l)
			})
			written, err := exporter.Export(path, format, table, matched)
			if err != nil {
				return err
			}

			logger.Info().Ctx(ctx).
				Str("operation", "export_leads").
				Str("kind", string(kind)).
				Str("path", written).
				Int("records", len(matched)).
				Msg("leads exported")
			printMessage(cmd, fmt.Sprintf("Exported %d %s leads to %s", len(matched), kind, written))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "output file (.csv or .json)")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "exact-match filter as key=value (repeatable)")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive search; every word must match")
	return cmd
}

// exportFormat maps a file extension to an export format.
func exportFormat(path string) (string, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case export.FormatCSV, export.FormatJSON:
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %q (use .csv or .json)", export.ErrUnknownFormat, filepath.Ext(path))
	}
}
