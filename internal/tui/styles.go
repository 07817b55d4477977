package tui

import "github.com/charmbracelet/lipgloss"

// Layout defaults used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
	borderPadding = 4
	sidebarWidth  = 20
	headerHeight  = 3
	footerHeight  = 4
	minHeight     = 3
)

// Colour palette.
//
//nolint:gochecknoglobals // Shared styles.
var (
	ColorAccent  = lipgloss.Color("33")
	ColorMuted   = lipgloss.Color("240")
	ColorError   = lipgloss.Color("196")
	ColorWarning = lipgloss.Color("208")
	ColorSuccess = lipgloss.Color("42")
)

// Text and container styles.
//
//nolint:gochecknoglobals // Shared styles.
var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	LabelStyle   = lipgloss.NewStyle().Bold(true)
	ValueStyle   = lipgloss.NewStyle()
	SubtleStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(ColorAccent)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	SidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(ColorMuted).
			PaddingRight(1)

	SidebarItemStyle     = lipgloss.NewStyle().PaddingLeft(1)
	SidebarSelectedStyle = lipgloss.NewStyle().PaddingLeft(1).Bold(true).
				Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	TabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(ColorMuted)
	ActiveTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(ColorAccent)

	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorMuted).
				BorderBottom(true).
				Bold(true)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Bold(false)

	CurrentPageStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	DisabledPageStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	FocusedFilterStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)
