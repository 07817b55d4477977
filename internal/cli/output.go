package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/cli/pagination"
	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/export"
	"github.com/rshade/dealerdesk/internal/listview"
	"github.com/rshade/dealerdesk/internal/tui"
)

// maxCellWidth bounds table cells; JSON and CSV output is never truncated.
const maxCellWidth = 40

//nolint:gochecknoglobals // Shared table styles.
var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(tui.ColorMuted)
)

// outputFormat returns --output, falling back to output.default_format.
func outputFormat(cmd *cobra.Command) string {
	if format, _ := cmd.Flags().GetString("output"); format != "" {
		return format
	}
	return config.GetDefaultOutputFormat()
}

// listResult is the JSON shape of every list command.
type listResult[T any] struct {
	Items      []T                       `json:"items"`
	Filters    map[string]string         `json:"filters,omitempty"`
	Search     string                    `json:"search,omitempty"`
	Pagination pagination.PaginationMeta `json:"pagination"`
}

// columnSet renders one record type as table or CSV rows.
type columnSet[T any] struct {
	Columns []string
	Row     func(T) []string
}

// renderList writes the current page of lv in format.
func renderList[T any](w io.Writer, format string, lv *listview.ListView[T], cols columnSet[T]) error {
	visible := lv.Visible()
	switch format {
	case config.FormatJSON:
		items := make([]T, len(visible))
		copy(items, visible)
		return export.WriteJSON(w, listResult[T]{
			Items:      items,
			Filters:    lv.Filters(),
			Search:     lv.SearchTerm(),
			Pagination: pagination.NewPaginationMeta(lv),
		}, true)
	case config.FormatCSV:
		return export.WriteCSV(w, export.NewTable(cols.Columns, visible, cols.Row))
	}

	if len(visible) == 0 {
		if _, err := fmt.Fprintln(w, "No records found"); err != nil {
			return err
		}
	} else if err := renderTable(w, export.NewTable(cols.Columns, visible, cols.Row)); err != nil {
		return err
	}
	return renderFooter(w, lv)
}

// renderTable draws t with lipgloss borders, truncating wide cells.
func renderTable(w io.Writer, t export.Table) error {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = tui.Truncate(cell, maxCellWidth)
		}
		rows[i] = cells
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers(t.Columns...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

// renderFooter prints record counts, the pagination control and any notice.
func renderFooter[T any](w io.Writer, lv *listview.ListView[T]) error {
	summary := fmt.Sprintf("Page %d of %d (%d of %d records)",
		lv.Page(), lv.TotalPages(), lv.FilteredCount(), lv.SourceCount())
	if _, err := fmt.Fprintln(w, summary); err != nil {
		return err
	}
	if bar := tui.RenderPagination(lv.Pagination()); bar != "" {
		if _, err := fmt.Fprintln(w, bar); err != nil {
			return err
		}
	}
	if notice := lv.Notice(); notice != "" {
		if _, err := fmt.Fprintln(w, tui.WarningStyle.Render(notice)); err != nil {
			return err
		}
	}
	return nil
}

// printMessage reports the result of a mutation.
func printMessage(cmd *cobra.Command, text string) {
	if text == "" {
		text = "Done"
	}
	cmd.Println(tui.SuccessStyle.Render(text))
}
