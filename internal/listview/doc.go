// Package listview derives a filtered, searched and paginated view over an
// in-memory collection of records.
//
// A ListView owns the source collection, the selected filter values, the
// search term and a 1-based page cursor. Every state change recomputes the
// filtered slice synchronously; the result is always a pure function of
// (collection, filters, search term) and keeps the collection's original order.
//
// Asynchronous fetches are fenced: BeginFetch issues a request id and Resolve
// applies a result only when its id is the most recently issued one.
//
// A ListView is not safe for concurrent use. Interactive callers mutate it from
// their event loop only.
package listview
