// Package pagination provides the page flags shared by every list command and
// the pagination metadata attached to JSON output.
//
// This package contains:
//   - PaginationParams: --page and --page-size parsing and validation
//   - PaginationMeta: response metadata built from a list view
//
// Paging itself is done by the list view; this package only translates CLI
// flags into a page request and the resulting state back into metadata.
package pagination
