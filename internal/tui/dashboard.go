package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/dealerdesk/internal/logging"
)

const appTitle = "DealerDesk Admin"

// DashboardModel is the interactive admin dashboard: a sidebar of screens,
// the active screen and a header with the signed-in user.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	ctx     context.Context
	state   ViewState
	screens []Screen
	started []bool
	active  int
	user    string

	width  int
	height int
}

// NewDashboardModel creates a dashboard over screens, showing the first one.
func NewDashboardModel(ctx context.Context, user string, screens ...Screen) DashboardModel {
	m := DashboardModel{
		ctx:     ctx,
		state:   ViewStateList,
		screens: screens,
		started: make([]bool, len(screens)),
		user:    user,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	if len(screens) > 0 {
		m.started[0] = true
	}
	return m
}

// Active returns the screen currently shown.
func (m DashboardModel) Active() Screen {
	if len(m.screens) == 0 {
		return nil
	}
	return m.screens[m.active]
}

// Init mounts the first screen (Bubble Tea interface).
func (m DashboardModel) Init() tea.Cmd {
	if len(m.screens) == 0 {
		return nil
	}
	return m.screens[0].Init()
}

// Update routes keys to the active screen and broadcasts everything else
// (Bubble Tea interface).
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.screenSize()
		for i, s := range m.screens {
			m.screens[i] = s.SetSize(w, h)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	cmds := make([]tea.Cmd, 0, len(m.screens))
	for i, s := range m.screens {
		next, cmd := s.Update(msg)
		m.screens[i] = next
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := m.Active()
	if active == nil {
		if msg.String() == keyQuit || msg.String() == keyCtrlC {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
		return m, nil
	}

	if msg.String() == keyCtrlC || (!active.Capturing() && msg.String() == keyQuit) {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	if !active.Capturing() {
		switch msg.String() {
		case keyTab:
			return m.switchScreen(1)
		case keyShiftTab:
			return m.switchScreen(-1)
		}
	}

	next, cmd := active.Update(msg)
	m.screens[m.active] = next
	return m, cmd
}

// switchScreen activates the neighbouring screen, mounting it on first visit.
func (m DashboardModel) switchScreen(step int) (tea.Model, tea.Cmd) {
	n := len(m.screens)
	m.active = ((m.active+step)%n + n) % n

	logging.FromContext(m.ctx).Debug().Ctx(m.ctx).
		Str("component", "tui").
		Str("screen", m.screens[m.active].Key()).
		Msg("screen activated")

	if m.started[m.active] {
		return m, nil
	}
	m.started[m.active] = true
	return m, m.screens[m.active].Init()
}

func (m DashboardModel) screenSize() (int, int) {
	w := m.width - sidebarWidth - borderPadding
	h := m.height - headerHeight
	return max(w, 0), max(h, minHeight)
}

// View renders header, sidebar and the active screen (Bubble Tea interface).
func (m DashboardModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	header := m.renderHeader()
	body := SubtleStyle.Render("No screens configured")
	if active := m.Active(); active != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), " ", active.View())
	}
	footer := SubtleStyle.Render("tab/shift+tab switch screen  q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m DashboardModel) renderHeader() string {
	title := HeaderStyle.Render(appTitle)
	user := SubtleStyle.Render("not signed in")
	if m.user != "" {
		user = LabelStyle.Render(m.user)
	}
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(user) - borderPadding
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, lipgloss.NewStyle().Width(gap).Render(""), user) + "\n"
}

func (m DashboardModel) renderSidebar() string {
	items := make([]string, len(m.screens))
	for i, s := range m.screens {
		style := SidebarItemStyle
		if i == m.active {
			style = SidebarSelectedStyle
		}
		items[i] = style.Render(Truncate(s.Title(), sidebarWidth-2)) //nolint:mnd // Item padding.
	}
	return SidebarStyle.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}
