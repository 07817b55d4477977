package listview

import (
	"fmt"
	"strings"

	"github.com/rshade/dealerdesk/internal/logging"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultPageSize = 6
	DefaultWindow   = 5
)

// Options configures a ListView.
type Options struct {
	PageSize int
	// Window is the maximum number of page buttons, first and last included.
	Window int
	// NewID generates fetch request ids. Defaults to monotonic ULIDs.
	NewID func() string
}

// ListView is a filtered, searched, paginated view over a collection.
type ListView[T any] struct {
	schema   Schema[T]
	pageSize int
	window   int
	newID    func() string

	source   []T
	filters  map[string]string
	search   string
	tokens   []string
	filtered []T
	page     int
	cursor   int

	notice      string
	latestFetch string
	pending     bool
}

// New creates an empty ListView for schema.
func New[T any](schema Schema[T], opts Options) (*ListView[T], error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if opts.PageSize == 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.PageSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, opts.PageSize)
	}
	if opts.Window == 0 {
		opts.Window = DefaultWindow
	}
	if opts.Window < DefaultWindow {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, opts.Window)
	}
	if opts.NewID == nil {
		opts.NewID = logging.NewID
	}

	lv := &ListView[T]{
		schema:   schema,
		pageSize: opts.PageSize,
		window:   opts.Window,
		newID:    opts.NewID,
		filters:  make(map[string]string, len(schema.Filters)),
		page:     1,
	}
	lv.recompute()
	return lv, nil
}

// Schema returns the schema the view was built with.
func (lv *ListView[T]) Schema() Schema[T] { return lv.schema }

// PageSize returns the fixed page size.
func (lv *ListView[T]) PageSize() int { return lv.pageSize }

// SetFilter selects value for the named filter; "" clears the constraint.
// Selecting the value that is already active changes nothing.
func (lv *ListView[T]) SetFilter(name, value string) error {
	if _, ok := lv.schema.Filter(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	if lv.filters[name] == value {
		return nil
	}
	if value == "" {
		delete(lv.filters, name)
	} else {
		lv.filters[name] = value
	}
	lv.recompute()
	lv.setPage(1)
	return nil
}

// FilterValue returns the active value of the named filter, "" when unset.
func (lv *ListView[T]) FilterValue(name string) string {
	return lv.filters[name]
}

// Filters returns a copy of the active filter values.
func (lv *ListView[T]) Filters() map[string]string {
	out := make(map[string]string, len(lv.filters))
	for k, v := range lv.filters {
		out[k] = v
	}
	return out
}

// SetSearchTerm replaces the search term. An unchanged term changes nothing.
func (lv *ListView[T]) SetSearchTerm(term string) {
	if term == lv.search {
		return
	}
	lv.search = term
	lv.tokens = strings.Fields(strings.ToLower(term))
	lv.recompute()
	lv.setPage(1)
}

// SearchTerm returns the raw search term.
func (lv *ListView[T]) SearchTerm() string { return lv.search }

// GoToPage moves to page n. Pages outside [1, TotalPages] are ignored.
// It reports whether the page changed.
func (lv *ListView[T]) GoToPage(n int) bool {
	if n < 1 || n > lv.TotalPages() || n == lv.page {
		return false
	}
	lv.setPage(n)
	return true
}

// NextPage advances one page when possible.
func (lv *ListView[T]) NextPage() bool { return lv.GoToPage(lv.page + 1) }

// PrevPage goes back one page when possible.
func (lv *ListView[T]) PrevPage() bool { return lv.GoToPage(lv.page - 1) }

// Refresh replaces the source collection, keeping filters and search. The
// current page is clamped to the new page count.
func (lv *ListView[T]) Refresh(collection []T) {
	lv.source = collection
	lv.recompute()
	if total := lv.TotalPages(); lv.page > total {
		lv.setPage(total)
	}
	lv.clampCursor()
}

// Reset clears every filter and the search term and returns to page 1.
func (lv *ListView[T]) Reset() {
	lv.filters = make(map[string]string, len(lv.schema.Filters))
	lv.search = ""
	lv.tokens = nil
	lv.recompute()
	lv.setPage(1)
}

// Replace resets the UI state and then refreshes with collection.
// Used after a mutation replaced the source wholesale.
func (lv *ListView[T]) Replace(collection []T) {
	lv.Reset()
	lv.Refresh(collection)
}

// Page returns the 1-based current page.
func (lv *ListView[T]) Page() int { return lv.page }

// TotalPages returns max(1, ceil(filtered/pageSize)).
func (lv *ListView[T]) TotalPages() int {
	return totalPages(len(lv.filtered), lv.pageSize)
}

// Source returns the source collection.
func (lv *ListView[T]) Source() []T { return lv.source }

// SourceCount returns the number of records in the source collection.
func (lv *ListView[T]) SourceCount() int { return len(lv.source) }

// Filtered returns every record that passes the filters and search, in
// source order. The returned slice must not be modified.
func (lv *ListView[T]) Filtered() []T { return lv.filtered }

// FilteredCount returns len(Filtered()).
func (lv *ListView[T]) FilteredCount() int { return len(lv.filtered) }

// Visible returns the records on the current page.
func (lv *ListView[T]) Visible() []T {
	start := (lv.page - 1) * lv.pageSize
	if start >= len(lv.filtered) {
		return lv.filtered[:0:0]
	}
	end := min(start+lv.pageSize, len(lv.filtered))
	return lv.filtered[start:end]
}

// Notice returns the user-visible notice, if any.
func (lv *ListView[T]) Notice() string { return lv.notice }

// SetNotice sets or clears ("") the user-visible notice.
func (lv *ListView[T]) SetNotice(msg string) { lv.notice = msg }

// Cursor returns the selected index within Visible().
func (lv *ListView[T]) Cursor() int { return lv.cursor }

// MoveCursor moves the selection by delta, clamped to the visible rows.
func (lv *ListView[T]) MoveCursor(delta int) {
	lv.cursor += delta
	lv.clampCursor()
}

// Selected returns the record under the cursor.
func (lv *ListView[T]) Selected() (T, bool) {
	visible := lv.Visible()
	if len(visible) == 0 {
		var zero T
		return zero, false
	}
	return visible[lv.cursor], true
}

func (lv *ListView[T]) setPage(n int) {
	lv.page = n
	lv.cursor = 0
}

func (lv *ListView[T]) clampCursor() {
	n := len(lv.Visible())
	switch {
	case n == 0, lv.cursor < 0:
		lv.cursor = 0
	case lv.cursor >= n:
		lv.cursor = n - 1
	}
}

func (lv *ListView[T]) recompute() {
	lv.filtered = applyFilters(lv.source, lv.schema, lv.filters, lv.tokens)
}

func totalPages(count, pageSize int) int {
	if count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}
