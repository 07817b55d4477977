package listview

// ItemKind distinguishes page buttons from ellipsis markers.
type ItemKind int

const (
	ItemPage ItemKind = iota
	ItemEllipsis
)

// PageItem is one element of the pagination control between the arrows.
type PageItem struct {
	Kind    ItemKind
	Page    int
	Current bool
}

// Pagination is the rendered pagination control.
type Pagination struct {
	PrevDisabled bool
	NextDisabled bool
	Items        []PageItem
}

// Pages returns only the page numbers in the control, in order.
func (p *Pagination) Pages() []int {
	if p == nil {
		return nil
	}
	var pages []int
	for _, it := range p.Items {
		if it.Kind == ItemPage {
			pages = append(pages, it.Page)
		}
	}
	return pages
}

// Pagination builds the pagination control for the current state.
// It returns nil when there is only one page.
func (lv *ListView[T]) Pagination() *Pagination {
	return buildPagination(lv.page, lv.TotalPages(), lv.window)
}

// buildPagination lays out: page 1, a window of middle pages around current,
// ellipses where the window does not reach page 2 or total-1, and the last page.
func buildPagination(current, total, maxVisible int) *Pagination {
	if total <= 1 {
		return nil
	}

	p := &Pagination{
		PrevDisabled: current == 1,
		NextDisabled: current == total,
	}
	p.Items = append(p.Items, PageItem{Kind: ItemPage, Page: 1, Current: current == 1})

	start, end := pageWindow(current, total, maxVisible)

	if start > 2 {
		p.Items = append(p.Items, PageItem{Kind: ItemEllipsis})
	}
	for i := start; i <= end; i++ {
		p.Items = append(p.Items, PageItem{Kind: ItemPage, Page: i, Current: current == i})
	}
	if end < total-1 {
		p.Items = append(p.Items, PageItem{Kind: ItemEllipsis})
	}

	p.Items = append(p.Items, PageItem{Kind: ItemPage, Page: total, Current: current == total})
	return p
}

// pageWindow returns the inclusive range of middle pages. The range is empty
// (start > end) when total is 2.
func pageWindow(current, total, maxVisible int) (int, int) {
	start := max(2, current-2)
	end := min(total-1, current+2)

	// Widen toward whichever side has room so at least maxVisible-2 middle
	// slots are used.
	if end-start < maxVisible-3 {
		if start > 2 {
			start = max(2, start-(maxVisible-3-(end-start)))
		}
		if end < total-1 {
			end = min(total-1, end+(maxVisible-3-(end-start)))
		}
	}
	return start, end
}
