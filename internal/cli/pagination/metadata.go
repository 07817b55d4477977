package pagination

import (
	"github.com/rshade/dealerdesk/internal/listview"
)

// PaginationMeta contains metadata about paginated results.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	SourceItems int  `json:"source_items" yaml:"source_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
	// Pages are the page buttons the dashboard would show, ellipses omitted.
	Pages []int `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// NewPaginationMeta describes the current page of lv. TotalItems counts the
// records left after filters and search; SourceItems counts all of them.
func NewPaginationMeta[T any](lv *listview.ListView[T]) PaginationMeta {
	current := lv.Page()
	total := lv.TotalPages()
	return PaginationMeta{
		CurrentPage: current,
		PageSize:    lv.PageSize(),
		TotalPages:  total,
		TotalItems:  lv.FilteredCount(),
		SourceItems: lv.SourceCount(),
		HasPrevious: current > 1,
		HasNext:     current < total,
		Pages:       lv.Pagination().Pages(),
	}
}
