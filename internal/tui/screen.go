package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/dealerdesk/internal/listview"
	"github.com/rshade/dealerdesk/internal/logging"
)

// ErrNoLoader is returned by NewListScreen when the config has no Load func.
var ErrNoLoader = errors.New("list screen needs a loader")

// Screen is one sidebar entry of the dashboard.
type Screen interface {
	Key() string
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int) Screen
	// Capturing reports whether the screen consumes every key, e.g. while
	// the search input has focus.
	Capturing() bool
}

// LoadingTracker receives the global loading flag.
type LoadingTracker interface {
	SetIsLoading(v bool)
}

// LoadFunc fetches the full collection of a screen.
type LoadFunc[T any] func(ctx context.Context) ([]T, error)

// Column is one table column of a list screen.
type Column[T any] struct {
	Title string
	Width int
	Cell  func(T) string
}

// Field is one label/value line of a detail view.
type Field struct {
	Label string
	Value string
}

// ListConfig configures a ListScreen.
type ListConfig[T any] struct {
	Key     string
	Title   string
	Schema  listview.Schema[T]
	Options listview.Options
	Columns []Column[T]
	Load    LoadFunc[T]
	// Reload is used by the refresh key. Defaults to Load.
	Reload  LoadFunc[T]
	Detail  func(T) []Field
	Loading LoadingTracker
}

// fetchResultMsg carries the outcome of one fenced fetch.
type fetchResultMsg struct {
	screen  string
	id      string
	records any
	err     error
	replace bool
}

// ListScreen is a Bubble Tea screen over a ListView: search, filter cycling,
// pagination and a detail view of the selected record.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type ListScreen[T any] struct {
	key     string
	title   string
	ctx     context.Context
	lv      *listview.ListView[T]
	columns []Column[T]
	load    LoadFunc[T]
	reload  LoadFunc[T]
	detail  func(T) []Field
	loading LoadingTracker

	state       ViewState
	table       table.Model
	search      textinput.Model
	searching   bool
	filterFocus int
	selected    T

	width        int
	height       int
	loadingState *LoadingState
}

// NewListScreen builds a screen for cfg. The first fetch starts in Init.
func NewListScreen[T any](ctx context.Context, cfg ListConfig[T]) (ListScreen[T], error) {
	if cfg.Load == nil {
		return ListScreen[T]{}, fmt.Errorf("creating %s list: %w", cfg.Key, ErrNoLoader)
	}
	lv, err := listview.New(cfg.Schema, cfg.Options)
	if err != nil {
		return ListScreen[T]{}, fmt.Errorf("creating %s list: %w", cfg.Key, err)
	}
	reload := cfg.Reload
	if reload == nil {
		reload = cfg.Load
	}

	s := ListScreen[T]{
		key:          cfg.Key,
		title:        cfg.Title,
		ctx:          ctx,
		lv:           lv,
		columns:      cfg.Columns,
		load:         cfg.Load,
		reload:       reload,
		detail:       cfg.Detail,
		loading:      cfg.Loading,
		state:        ViewStateLoading,
		search:       newTextInput(),
		width:        defaultWidth,
		height:       defaultHeight,
		loadingState: NewLoadingState(),
	}
	s.table = s.buildTable()
	return s, nil
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = 100 //nolint:mnd // Search length cap.
	ti.Width = 40      //nolint:mnd // Input width.
	return ti
}

// Key identifies the screen in routed messages.
func (s ListScreen[T]) Key() string { return s.key }

// Title is the sidebar label.
func (s ListScreen[T]) Title() string { return s.title }

// ListView exposes the underlying view for callers that export or inspect it.
func (s ListScreen[T]) ListView() *listview.ListView[T] { return s.lv }

// State returns the current view state.
func (s ListScreen[T]) State() ViewState { return s.state }

// Capturing reports whether the search input has focus.
func (s ListScreen[T]) Capturing() bool { return s.searching }

// SetSize resizes the screen.
func (s ListScreen[T]) SetSize(width, height int) Screen {
	s.width = width
	s.height = height
	s.table = s.buildTable()
	return s
}

// Init starts the first fetch (Bubble Tea interface).
func (s ListScreen[T]) Init() tea.Cmd {
	return tea.Batch(s.loadingState.Init(), s.fetchUsing(s.load, false))
}

// fetchUsing issues a fenced fetch. Earlier outstanding fetches become stale.
func (s ListScreen[T]) fetchUsing(load LoadFunc[T], replace bool) tea.Cmd {
	id := s.lv.BeginFetch()
	if s.loading != nil {
		s.loading.SetIsLoading(true)
	}
	logging.FromContext(s.ctx).Debug().Ctx(s.ctx).
		Str("component", "tui").
		Str("screen", s.key).
		Str("fetch_id", id).
		Msg("fetch started")

	ctx, key := s.ctx, s.key
	return func() tea.Msg {
		records, err := load(ctx)
		return fetchResultMsg{screen: key, id: id, records: records, err: err, replace: replace}
	}
}

// Update handles messages and updates the screen (Bubble Tea interface).
func (s ListScreen[T]) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchResultMsg:
		if msg.screen != s.key {
			return s, nil
		}
		return s.handleFetchResult(msg)
	case spinner.TickMsg:
		if !s.lv.Pending() {
			return s, nil
		}
		return s, s.loadingState.Update(msg)
	case tea.KeyMsg:
		if s.searching {
			return s.handleSearchInput(msg)
		}
		switch s.state {
		case ViewStateList:
			return s.handleListKeypress(msg)
		case ViewStateDetail:
			return s.handleDetailKeypress(msg)
		case ViewStateLoading, ViewStateQuitting, ViewStateError:
			return s, nil
		}
	}
	return s, nil
}

func (s ListScreen[T]) handleFetchResult(msg fetchResultMsg) (Screen, tea.Cmd) {
	log := logging.FromContext(s.ctx)
	records, _ := msg.records.([]T)

	resolve := s.lv.Resolve
	if msg.replace {
		resolve = s.lv.ResolveReplace
	}
	if err := resolve(msg.id, records, msg.err); err != nil {
		log.Debug().Ctx(s.ctx).
			Str("component", "tui").
			Str("screen", s.key).
			Str("fetch_id", msg.id).
			Msg("discarding stale fetch result")
		return s, nil
	}

	if s.loading != nil {
		s.loading.SetIsLoading(false)
	}
	if msg.err != nil {
		log.Warn().Ctx(s.ctx).
			Str("component", "tui").
			Str("screen", s.key).
			Err(msg.err).
			Msg("fetch failed")
	} else {
		log.Debug().Ctx(s.ctx).
			Str("component", "tui").
			Str("screen", s.key).
			Int("records", len(records)).
			Msg("fetch resolved")
	}

	if msg.replace {
		s.search.SetValue("")
	}
	if s.state == ViewStateLoading {
		s.state = ViewStateList
	}
	s.syncTable()
	return s, nil
}

func (s ListScreen[T]) handleSearchInput(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		s.searching = false
		s.search.Blur()
		return s, nil
	case keyEsc:
		s.searching = false
		s.search.Blur()
		s.search.SetValue("")
		s.lv.SetSearchTerm("")
		s.syncTable()
		return s, nil
	}

	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.lv.SetSearchTerm(s.search.Value())
	s.syncTable()
	return s, cmd
}

func (s ListScreen[T]) handleListKeypress(msg tea.KeyMsg) (Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case keySlash:
		s.searching = true
		s.search.Focus()
		return s, textinput.Blink
	case keyFilter:
		if n := len(s.lv.Schema().Filters); n > 0 {
			s.filterFocus = (s.filterFocus + 1) % n
		}
		return s, nil
	case keyPrevOpt:
		s.stepFilter(-1)
	case keyNextOpt:
		s.stepFilter(1)
	case keyLeft, keyPgUp:
		s.lv.PrevPage()
	case keyRight, keyPgDown:
		s.lv.NextPage()
	case keyHome:
		s.lv.GoToPage(1)
	case keyEnd:
		s.lv.GoToPage(s.lv.TotalPages())
	case keyUp, keyK:
		s.lv.MoveCursor(-1)
	case keyDown, keyJ:
		s.lv.MoveCursor(1)
	case keyEnter:
		if rec, ok := s.lv.Selected(); ok {
			s.selected = rec
			s.state = ViewStateDetail
		}
		return s, nil
	case keyEsc, keyReset:
		s.search.SetValue("")
		s.lv.Reset()
	case keyRefresh:
		return s, tea.Batch(s.loadingState.Init(), s.fetchUsing(s.reload, false))
	default:
		if n, err := strconv.Atoi(key); err == nil && len(key) == 1 {
			s.lv.GoToPage(n)
		}
	}
	s.syncTable()
	return s, nil
}

// stepFilter moves the focused filter to its previous or next option.
func (s *ListScreen[T]) stepFilter(step int) {
	filters := s.lv.Schema().Filters
	if len(filters) == 0 {
		return
	}
	name := filters[s.filterFocus%len(filters)].Name
	value, err := s.lv.NextFilterValue(name, step)
	if err != nil {
		return
	}
	if err = s.lv.SetFilter(name, value); err != nil {
		logging.FromContext(s.ctx).Warn().Ctx(s.ctx).
			Str("component", "tui").
			Str("filter", name).
			Err(err).
			Msg("filter rejected")
	}
}

func (s ListScreen[T]) handleDetailKeypress(msg tea.KeyMsg) (Screen, tea.Cmd) {
	if msg.String() == keyEsc {
		s.state = ViewStateList
		s.table.Focus()
	}
	return s, nil
}

// syncTable copies the visible page and cursor into the table widget.
func (s *ListScreen[T]) syncTable() {
	s.table.SetRows(s.buildRows())
	s.table.SetCursor(s.lv.Cursor())
}

func (s *ListScreen[T]) buildRows() []table.Row {
	visible := s.lv.Visible()
	rows := make([]table.Row, len(visible))
	for i, rec := range visible {
		row := make(table.Row, len(s.columns))
		for j, col := range s.columns {
			row[j] = Truncate(col.Cell(rec), col.Width)
		}
		rows[i] = row
	}
	return rows
}

func (s *ListScreen[T]) buildTable() table.Model {
	columns := make([]table.Column, len(s.columns))
	for i, col := range s.columns {
		columns[i] = table.Column{Title: col.Title, Width: col.Width}
	}

	height := s.lv.PageSize() + 1
	if avail := s.height - headerHeight - footerHeight; avail >= minHeight && avail < height {
		height = avail
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(s.buildRows()),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	st := table.DefaultStyles()
	st.Header = TableHeaderStyle
	st.Selected = TableSelectedStyle
	t.SetStyles(st)
	t.SetCursor(s.lv.Cursor())
	return t
}

// View renders the screen (Bubble Tea interface).
func (s ListScreen[T]) View() string {
	switch s.state {
	case ViewStateLoading:
		return lipgloss.JoinVertical(lipgloss.Left,
			HeaderStyle.Render(s.title), "", s.loadingState.View())
	case ViewStateDetail:
		return s.renderDetailView()
	case ViewStateList:
		return s.renderListView()
	case ViewStateQuitting, ViewStateError:
		return ""
	}
	return ""
}

func (s ListScreen[T]) renderListView() string {
	v := s.lv.View()
	sections := []string{s.renderTitle(v)}

	if bar := s.renderFilterBar(v); bar != "" {
		sections = append(sections, bar)
	}
	if s.searching || v.SearchTerm != "" {
		sections = append(sections, LabelStyle.Render("Search: ")+s.search.View())
	}
	if v.Notice != "" {
		sections = append(sections, WarningStyle.Render(v.Notice))
	}

	if len(v.Rows) == 0 {
		sections = append(sections, "", SubtleStyle.Render("No records found"))
	} else {
		sections = append(sections, s.table.View())
	}

	if p := RenderPagination(v.Pagination); p != "" {
		sections = append(sections, p)
	}
	sections = append(sections, s.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s ListScreen[T]) renderTitle(v listview.View[T]) string {
	title := HeaderStyle.Render(s.title)
	count := SubtleStyle.Render(fmt.Sprintf("  %d of %d", v.FilteredCount, v.SourceCount))
	if v.Loading {
		count += "  " + s.loadingState.View()
	}
	return title + count
}

func (s ListScreen[T]) renderFilterBar(v listview.View[T]) string {
	if len(v.Filters) == 0 {
		return ""
	}
	parts := make([]string, len(v.Filters))
	for i, fc := range v.Filters {
		label := fc.Label + ": " + selectedLabel(fc)
		if i == s.filterFocus%len(v.Filters) {
			label = FocusedFilterStyle.Render(label)
		}
		parts[i] = label
	}
	return strings.Join(parts, SubtleStyle.Render(" | "))
}

func selectedLabel(fc listview.FilterControl) string {
	for _, o := range fc.Options {
		if o.Value == fc.Selected {
			return o.Label
		}
	}
	return fc.Selected
}

func (s ListScreen[T]) renderStatusBar() string {
	help := "/ search  ←/→ page  1-9 jump  enter detail  r refresh  x reset"
	if len(s.lv.Schema().Filters) > 0 {
		help = "/ search  f filter  [ ] change  ←/→ page  1-9 jump  enter detail  r refresh  x reset"
	}
	return SubtleStyle.Render(help)
}

func (s ListScreen[T]) renderDetailView() string {
	var content strings.Builder
	content.WriteString(HeaderStyle.Render(strings.ToUpper(s.title) + " DETAIL"))
	content.WriteString("\n\n")

	var fields []Field
	if s.detail != nil {
		fields = s.detail(s.selected)
	}
	if len(fields) == 0 {
		content.WriteString(msgSelectedOutOfBounds)
		content.WriteString("\n")
	}

	width := 0
	for _, f := range fields {
		width = max(width, len(f.Label)+1)
	}
	for _, f := range fields {
		content.WriteString(LabelStyle.Render(PadRight(f.Label+":", width)))
		content.WriteString(" ")
		content.WriteString(ValueStyle.Render(f.Value))
		content.WriteString("\n")
	}

	content.WriteString(SubtleStyle.Render("\nPress ESC to return"))
	return BoxStyle.Width(s.width - borderPadding).Render(content.String())
}
