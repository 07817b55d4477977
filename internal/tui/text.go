package tui

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/dealerdesk/internal/listview"
	"github.com/rshade/dealerdesk/internal/model"
)

const ellipsis = "…"

// Truncate shortens s to at most width display cells, ending in an ellipsis
// when anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// PadRight pads s with spaces to width display cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// RenderPagination draws the pagination control as
// "‹ 1 … 4 [5] 6 … 12 ›". A nil control renders as "".
func RenderPagination(p *listview.Pagination) string {
	if p == nil {
		return ""
	}

	parts := make([]string, 0, len(p.Items)+2) //nolint:mnd // Both arrows.
	parts = append(parts, arrow("‹", p.PrevDisabled))
	for _, it := range p.Items {
		switch {
		case it.Kind == listview.ItemEllipsis:
			parts = append(parts, SubtleStyle.Render(ellipsis))
		case it.Current:
			parts = append(parts, CurrentPageStyle.Render("["+strconv.Itoa(it.Page)+"]"))
		default:
			parts = append(parts, strconv.Itoa(it.Page))
		}
	}
	parts = append(parts, arrow("›", p.NextDisabled))
	return strings.Join(parts, " ")
}

func arrow(glyph string, disabled bool) string {
	if disabled {
		return DisabledPageStyle.Render(glyph)
	}
	return glyph
}

// FormatAmount renders a numeric string with thousands separators
// ("25000" becomes "25,000"). Empty input renders as N/A and unparsable
// input is returned unchanged.
func FormatAmount(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.NA
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	p := message.NewPrinter(language.English)
	if v == float64(int64(v)) {
		return p.Sprintf("%d", int64(v))
	}
	return p.Sprintf("%.2f", v)
}
