package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/listview"
)

// listSpec describes a list command over one record type.
type listSpec[T any] struct {
	Use      string
	Short    string
	Example  string
	Args     cobra.PositionalArgs
	Schema   listview.Schema[T]
	Columns  columnSet[T]
	PageSize func(config.ListConfig) int
	Load     func(ctx context.Context, deps *appDeps, args []string) ([]T, error)
}

// newListCmd builds a "list" command with the shared filter, search and page flags.
func newListCmd[T any](spec listSpec[T]) *cobra.Command {
	flags := newListFlags()
	cmd := &cobra.Command{
		Use:     spec.Use,
		Short:   spec.Short,
		Example: spec.Example,
		Args:    spec.Args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, flags, spec)
		},
	}
	if cmd.Args == nil {
		cmd.Args = cobra.NoArgs
	}
	flags.register(cmd)
	return cmd
}

func runList[T any](cmd *cobra.Command, args []string, flags *listFlags, spec listSpec[T]) error {
	ctx := cmd.Context()
	deps, err := newAuthedDeps(cmd)
	if err != nil {
		return err
	}

	records, err := spec.Load(ctx, deps, args)
	if err != nil {
		return err
	}

	lc := deps.cfg.List
	lv, err := buildView(ctx, spec.Schema, records, flags, spec.PageSize(lc), lc.PaginationWindow)
	if err != nil {
		return err
	}

	logger.Debug().Ctx(ctx).
		Str("operation", "list").
		Str("command", cmd.CommandPath()).
		Int("records", lv.SourceCount()).
		Int("matched", lv.FilteredCount()).
		Int("page", lv.Page()).
		Msg("list rendered")

	return renderList(cmd.OutOrStdout(), outputFormat(cmd), lv, spec.Columns)
}
