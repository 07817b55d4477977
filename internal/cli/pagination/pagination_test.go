package pagination

import (
	"strconv"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dealerdesk/internal/listview"
)

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  PaginationParams
		wantErr error
	}{
		{name: "valid default", params: *NewPaginationParams()},
		{name: "explicit page size", params: PaginationParams{Page: 3, PageSize: 20}},
		{name: "max page size", params: PaginationParams{Page: 1, PageSize: MaxPageSize}},
		{name: "zero page", params: PaginationParams{Page: 0}, wantErr: ErrInvalidPage},
		{name: "negative page", params: PaginationParams{Page: -2}, wantErr: ErrInvalidPage},
		{name: "negative page size", params: PaginationParams{Page: 1, PageSize: -1}, wantErr: ErrInvalidPageSize},
		{name: "page size too large", params: PaginationParams{Page: 1, PageSize: MaxPageSize + 1}, wantErr: ErrInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPaginationParams_EffectivePageSize(t *testing.T) {
	assert.Equal(t, 6, PaginationParams{Page: 1}.EffectivePageSize(6))
	assert.Equal(t, 25, PaginationParams{Page: 1, PageSize: 25}.EffectivePageSize(6))
}

func TestPaginationParams_AddFlags(t *testing.T) {
	p := NewPaginationParams()
	cmd := &cobra.Command{Use: "list", RunE: func(*cobra.Command, []string) error { return nil }}
	p.AddFlags(cmd)

	require.NoError(t, cmd.ParseFlags([]string{"--page", "4", "--page-size", "12"}))
	assert.Equal(t, 4, p.Page)
	assert.Equal(t, 12, p.PageSize)
	assert.Contains(t, cmd.Flags().Lookup("page").Usage, "past the last one is an error")
}

type item struct{ id string }

func newView(t *testing.T, n, pageSize int) *listview.ListView[item] {
	t.Helper()
	lv, err := listview.New(listview.Schema[item]{
		ID:     func(i item) string { return i.id },
		Search: []listview.Accessor[item]{func(i item) (string, bool) { return i.id, true }},
	}, listview.Options{PageSize: pageSize})
	require.NoError(t, err)

	items := make([]item, n)
	for i := range items {
		items[i] = item{id: "item-" + strconv.Itoa(i+1)}
	}
	lv.Refresh(items)
	return lv
}

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name     string
		items    int
		pageSize int
		page     int
		want     PaginationMeta
	}{
		{
			name:  "empty collection is one page",
			items: 0, pageSize: 6, page: 1,
			want: PaginationMeta{CurrentPage: 1, PageSize: 6, TotalPages: 1},
		},
		{
			name:  "first of three pages",
			items: 14, pageSize: 6, page: 1,
			want: PaginationMeta{
				CurrentPage: 1, PageSize: 6, TotalPages: 3, TotalItems: 14, SourceItems: 14,
				HasNext: true, Pages: []int{1, 2, 3},
			},
		},
		{
			name:  "last page",
			items: 14, pageSize: 6, page: 3,
			want: PaginationMeta{
				CurrentPage: 3, PageSize: 6, TotalPages: 3, TotalItems: 14, SourceItems: 14,
				HasPrevious: true, Pages: []int{1, 2, 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lv := newView(t, tt.items, tt.pageSize)
			lv.GoToPage(tt.page)
			assert.Equal(t, tt.want, NewPaginationMeta(lv))
		})
	}
}

func TestNewPaginationMeta_CountsFilteredItems(t *testing.T) {
	lv := newView(t, 12, 5)
	lv.SetSearchTerm("item-1")

	meta := NewPaginationMeta(lv)
	// item-1, item-10, item-11, item-12
	assert.Equal(t, 4, meta.TotalItems)
	assert.Equal(t, 12, meta.SourceItems)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
}
