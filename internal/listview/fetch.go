package listview

import "fmt"

// FetchFailedNotice prefixes the notice set when a fetch fails.
const FetchFailedNotice = "Failed to load records"

// BeginFetch starts a new fetch and returns its request id. Any earlier
// outstanding fetch becomes stale.
func (lv *ListView[T]) BeginFetch() string {
	lv.latestFetch = lv.newID()
	lv.pending = true
	return lv.latestFetch
}

// Pending reports whether the latest fetch has not resolved yet.
func (lv *ListView[T]) Pending() bool { return lv.pending }

// Resolve applies the result of fetch id. A nil fetchErr refreshes the view
// with records and clears the notice. A non-nil fetchErr applies an empty
// collection and sets a notice. Results for anything but the latest id are
// discarded and ErrStaleFetch is returned.
func (lv *ListView[T]) Resolve(id string, records []T, fetchErr error) error {
	if id == "" || id != lv.latestFetch || !lv.pending {
		return fmt.Errorf("%w: %s", ErrStaleFetch, id)
	}
	lv.pending = false

	if fetchErr != nil {
		lv.Refresh(nil)
		lv.notice = fmt.Sprintf("%s: %v", FetchFailedNotice, fetchErr)
		return nil
	}

	lv.notice = ""
	lv.Refresh(records)
	return nil
}

// ResolveReplace is Resolve followed by a UI reset, for fetches issued after a
// create, update or delete.
func (lv *ListView[T]) ResolveReplace(id string, records []T, fetchErr error) error {
	if id == "" || id != lv.latestFetch || !lv.pending {
		return fmt.Errorf("%w: %s", ErrStaleFetch, id)
	}
	lv.Reset()
	return lv.Resolve(id, records, fetchErr)
}
