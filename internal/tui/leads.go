package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/dealerdesk/internal/export"
	"github.com/rshade/dealerdesk/internal/listschema"
	"github.com/rshade/dealerdesk/internal/logging"
	"github.com/rshade/dealerdesk/internal/model"
)

// exportDoneMsg reports the outcome of a lead export.
type exportDoneMsg struct {
	path  string
	count int
	err   error
}

// LeadsScreen shows one lead kind at a time behind a row of tabs.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type LeadsScreen struct {
	list     ListScreen[model.Lead]
	kinds    []model.LeadKind
	active   int
	src      DataSource
	exporter *export.Exporter
}

// NewLeadsScreen builds the leads screen starting on the first kind.
func NewLeadsScreen(ctx context.Context, src DataSource, opts ScreenOptions) (LeadsScreen, error) {
	kinds := model.LeadKinds()
	columns := listschema.LeadColumns()
	widths := []int{20, 28, 16, 40} //nolint:mnd // Column widths.

	cols := make([]Column[model.Lead], len(columns))
	for i, title := range columns {
		cols[i] = Column[model.Lead]{
			Title: title,
			Width: widths[i],
			Cell:  func(l model.Lead) string { return listschema.LeadRow(l.Kind, l)[i] },
		}
	}

	s := LeadsScreen{kinds: kinds, src: src, exporter: export.NewExporter(opts.ExportDir)}
	list, err := NewListScreen(ctx, ListConfig[model.Lead]{
		Key:     ScreenLeads,
		Title:   "Leads",
		Schema:  listschema.Leads(),
		Options: opts.list(opts.LeadsPageSize),
		Columns: cols,
		Load:    s.loadFor(kinds[0]),
		Detail:  leadDetail,
		Loading: opts.Loading,
	})
	if err != nil {
		return LeadsScreen{}, err
	}
	s.list = list
	return s, nil
}

func (s LeadsScreen) loadFor(kind model.LeadKind) LoadFunc[model.Lead] {
	src := s.src
	return func(ctx context.Context) ([]model.Lead, error) {
		return src.Leads(ctx, kind)
	}
}

func leadDetail(l model.Lead) []Field {
	fields := []Field{
		{Label: "Kind", Value: l.Kind.Title()},
		{Label: "Name", Value: model.Display(l.FullName)},
		{Label: "Email", Value: model.Display(l.Email)},
		{Label: "Mobile", Value: model.Display(l.MobileNumber.String())},
		{Label: "Query", Value: listschema.LeadQuery(l.Kind, l)},
	}
	if l.PreferredDate != "" {
		fields = append(fields, Field{Label: "Preferred Date", Value: l.PreferredDate})
	}
	if l.CreatedAt != nil {
		fields = append(fields, Field{Label: "Received", Value: l.CreatedAt.Format("2006-01-02 15:04")})
	}
	return fields
}

// Kind returns the lead kind of the active tab.
func (s LeadsScreen) Kind() model.LeadKind { return s.kinds[s.active] }

// Key identifies the screen in routed messages.
func (s LeadsScreen) Key() string { return s.list.Key() }

// Title is the sidebar label.
func (s LeadsScreen) Title() string { return s.list.Title() }

// Capturing reports whether the search input has focus.
func (s LeadsScreen) Capturing() bool { return s.list.Capturing() }

// SetSize resizes the screen.
func (s LeadsScreen) SetSize(width, height int) Screen {
	list, _ := s.list.SetSize(width, height-1).(ListScreen[model.Lead])
	s.list = list
	return s
}

// Init starts the fetch for the first tab (Bubble Tea interface).
func (s LeadsScreen) Init() tea.Cmd { return s.list.Init() }

// Update handles tab switching and export before delegating to the list.
func (s LeadsScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		s.handleExportDone(msg)
		return s, nil
	case tea.KeyMsg:
		if !s.list.Capturing() && s.list.State() == ViewStateList {
			switch msg.String() {
			case keyLeadTab:
				return s.switchTab(1)
			case keyExport:
				if s.list.lv.Pending() {
					s.list.lv.SetNotice(fmt.Sprintf("Still loading %s leads; export when they arrive", s.Kind().Title()))
					return s, nil
				}
				return s, s.exportCmd()
			}
		}
	}

	next, cmd := s.list.Update(msg)
	if list, ok := next.(ListScreen[model.Lead]); ok {
		s.list = list
	}
	return s, cmd
}

// switchTab moves to the next lead kind. The previous kind's leads are
// dropped at once so they are never shown or exported under the new tab;
// the fetch for the new kind then fills the collection.
func (s LeadsScreen) switchTab(step int) (Screen, tea.Cmd) {
	n := len(s.kinds)
	s.active = ((s.active+step)%n + n) % n
	s.list.lv.Replace(nil)
	s.list.search.SetValue("")
	s.list.syncTable()

	kind := s.Kind()
	s.list.load = s.loadFor(kind)
	s.list.reload = s.list.load
	return s, tea.Batch(s.list.loadingState.Init(), s.list.fetchUsing(s.list.load, true))
}

func (s LeadsScreen) exportCmd() tea.Cmd {
	records := append([]model.Lead(nil), s.list.lv.Filtered()...)
	kind := s.Kind()
	exporter := s.exporter
	ctx := s.list.ctx
	return func() tea.Msg {
		t := export.NewTable(listschema.LeadColumns(), records, func(l model.Lead) []string {
			return listschema.LeadRow(l.Kind, l)
		})
		name := exporter.Filename(string(kind)+"-leads", export.FormatCSV)
		path, err := exporter.Export(name, export.FormatCSV, t, records)
		if err == nil {
			logging.FromContext(ctx).Info().Ctx(ctx).
				Str("component", "tui").
				Str("kind", string(kind)).
				Str("path", path).
				Int("records", len(records)).
				Msg("leads exported")
		}
		return exportDoneMsg{path: path, count: len(records), err: err}
	}
}

func (s LeadsScreen) handleExportDone(msg exportDoneMsg) {
	if msg.err != nil {
		s.list.lv.SetNotice(fmt.Sprintf("Export failed: %v", msg.err))
		return
	}
	s.list.lv.SetNotice(fmt.Sprintf("Exported %d leads to %s", msg.count, msg.path))
}

// View renders the tabs above the list (Bubble Tea interface).
func (s LeadsScreen) View() string {
	tabs := make([]string, len(s.kinds))
	for i, k := range s.kinds {
		style := TabStyle
		if i == s.active {
			style = ActiveTabStyle
		}
		tabs[i] = style.Render(k.Title())
	}
	header := strings.Join(tabs, "") + SubtleStyle.Render("  t next tab  e export")
	return lipgloss.JoinVertical(lipgloss.Left, header, s.list.View())
}
