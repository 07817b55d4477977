package listview

// FilterControl is the render description of one filter.
type FilterControl struct {
	Name     string
	Label    string
	Selected string
	Options  []Option
}

// View is everything a renderer needs to draw the list.
type View[T any] struct {
	Rows          []T
	Filters       []FilterControl
	SearchTerm    string
	FilteredCount int
	SourceCount   int
	Page          int
	TotalPages    int
	PageSize      int
	Cursor        int
	// Pagination is nil when TotalPages <= 1.
	Pagination *Pagination
	Notice     string
	Loading    bool
}

// View returns the render description of the current state.
func (lv *ListView[T]) View() View[T] {
	controls := make([]FilterControl, 0, len(lv.schema.Filters))
	for _, f := range lv.schema.Filters {
		opts, _ := lv.FilterOptions(f.Name)
		controls = append(controls, FilterControl{
			Name:     f.Name,
			Label:    f.Label,
			Selected: lv.filters[f.Name],
			Options:  opts,
		})
	}

	return View[T]{
		Rows:          lv.Visible(),
		Filters:       controls,
		SearchTerm:    lv.search,
		FilteredCount: len(lv.filtered),
		SourceCount:   len(lv.source),
		Page:          lv.page,
		TotalPages:    lv.TotalPages(),
		PageSize:      lv.pageSize,
		Cursor:        lv.cursor,
		Pagination:    lv.Pagination(),
		Notice:        lv.notice,
		Loading:       lv.pending,
	}
}
