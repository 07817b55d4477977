package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/tui"
)

// ErrNotInteractive is returned by the dashboard when stdout is not a terminal.
var ErrNotInteractive = errors.New("the dashboard needs an interactive terminal; use the list commands instead")

// NewDashboardCmd starts the full-screen admin dashboard.
func NewDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive admin dashboard",
		Long: `Opens a full-screen dashboard with tabs for manufacturers, vehicle types,
trims, cars, blogs and leads. Each tab loads on first visit.

Keys: tab/shift+tab switch tabs, f picks a filter and [ ] change its value,
/ searches, left/right page, x resets, r refreshes, t switches the lead kind,
e exports leads, q quits.

Logs go to logging.file, or ~/.dealerdesk/logs/dealerdesk.log when unset.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLogToFile: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if tui.DetectOutputMode(false, false, false) != tui.OutputModeInteractive {
				return ErrNotInteractive
			}

			deps, err := newAuthedDeps(cmd)
			if err != nil {
				return err
			}

			lc := deps.cfg.List
			screens, err := tui.NewScreens(ctx, dashboardSource{client: deps.client, catalog: deps.catalog}, tui.ScreenOptions{
				CarsPageSize:    lc.CarsPageSize,
				LeadsPageSize:   lc.LeadsPageSize,
				BlogsPageSize:   lc.BlogsPageSize,
				CatalogPageSize: lc.CatalogPageSize,
				Window:          lc.PaginationWindow,
				Loading:         deps.session,
				ExportDir:       lc.ExportDir,
			})
			if err != nil {
				return fmt.Errorf("building dashboard: %w", err)
			}

			user := deps.session.State().Username
			logger.Info().Ctx(ctx).Str("operation", "dashboard").Str("user", user).Int("tabs", len(screens)).Msg("dashboard opened")

			p := tea.NewProgram(tui.NewDashboardModel(ctx, user, screens...), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running dashboard: %w", err)
			}
			logger.Info().Ctx(ctx).Str("operation", "dashboard").Msg("dashboard closed")
			return nil
		},
	}
}
