package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dealerdesk/internal/cli"
	"github.com/rshade/dealerdesk/internal/cli/pagination"
	"github.com/rshade/dealerdesk/internal/listview"
)

type listOutput struct {
	Items []struct {
		ID string `json:"_id"`
	} `json:"items"`
	Filters    map[string]string         `json:"filters"`
	Search     string                    `json:"search"`
	Pagination pagination.PaginationMeta `json:"pagination"`
}

func (o listOutput) ids() []string {
	ids := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

func runList(t *testing.T, args ...string) listOutput {
	t.Helper()
	out, err := runCLI(t, "", append(args, "-o", "json")...)
	require.NoError(t, err, out)
	var lo listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &lo), out)
	return lo
}

func TestCarsList_FiltersSearchAndPages(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, true)

	tests := []struct {
		name      string
		args      []string
		wantIDs   []string
		wantTotal int
		wantPages int
	}{
		{name: "everything", args: nil, wantIDs: []string{"c1", "c2", "c3"}, wantTotal: 3, wantPages: 1},
		{
			name:    "manufacturer filter",
			args:    []string{"--filter", "manufacturer=Toyota"},
			wantIDs: []string{"c1", "c2"}, wantTotal: 2, wantPages: 1,
		},
		{
			name:    "two filters",
			args:    []string{"--filter", "manufacturer=Toyota", "--filter", "bodyType=suv"},
			wantIDs: []string{"c1"}, wantTotal: 1, wantPages: 1,
		},
		{
			name:    "empty value clears",
			args:    []string{"--filter", "manufacturer="},
			wantIDs: []string{"c1", "c2", "c3"}, wantTotal: 3, wantPages: 1,
		},
		{name: "search", args: []string{"--search", "land cruiser"}, wantIDs: []string{"c1"}, wantTotal: 1, wantPages: 1},
		{name: "search every word", args: []string{"--search", "toyota patrol"}, wantIDs: []string{}, wantTotal: 0, wantPages: 1},
		{name: "second page", args: []string{"--page-size", "2", "--page", "2"}, wantIDs: []string{"c3"}, wantTotal: 3, wantPages: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo := runList(t, append([]string{"cars", "list"}, tt.args...)...)
			assert.Equal(t, tt.wantIDs, lo.ids())
			assert.Equal(t, tt.wantTotal, lo.Pagination.TotalItems)
			assert.Equal(t, 3, lo.Pagination.SourceItems)
			assert.Equal(t, tt.wantPages, lo.Pagination.TotalPages)
		})
	}
}

func TestCarsList_Errors(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, true)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "unknown filter", args: []string{"--filter", "color=red"}, want: listview.ErrUnknownFilter},
		{name: "malformed filter", args: []string{"--filter", "manufacturer"}, want: cli.ErrInvalidFilter},
		{name: "page past the end", args: []string{"--page", "5"}, want: cli.ErrPageOutOfRange},
		{name: "page zero", args: []string{"--page", "0"}, want: pagination.ErrInvalidPage},
		{name: "page size too large", args: []string{"--page-size", "5000"}, want: pagination.ErrInvalidPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", append([]string{"cars", "list"}, tt.args...)...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCarsList_Table(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, true)

	out, err := runCLI(t, "", "cars", "list", "--page-size", "2", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Land Cruiser")
	assert.Contains(t, out, "Page 1 of 2 (3 of 3 records)")
	assert.NotContains(t, out, "Patrol", "second page must not be rendered")

	out, err = runCLI(t, "", "cars", "list", "--search", "nothing-matches", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "No records found")
}

func TestCarsList_CSV(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, true)

	out, err := runCLI(t, "", "cars", "list", "--filter", "vehicleType=Camry", "-o", "csv")
	require.NoError(t, err)
	assert.Equal(t, "ID,Title,Brand,Model,Trim,Year,Price,Fuel,Status\n"+
		"c2,2021 Camry SE,Toyota,Camry,N/A,2021,\"91,000\",hybrid,sold\n", out)
}

func TestInvalidOutputFormat(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, true)

	_, err := runCLI(t, "", "cars", "list", "-o", "xml")
	require.ErrorIs(t, err, cli.ErrInvalidOutput)
}

func TestCatalogLists(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, true)

	lo := runList(t, "vehicle-types", "list", "--filter", "manufacturer=Toyota")
	assert.Equal(t, []string{"v1", "v2"}, lo.ids())
	assert.Equal(t, map[string]string{"manufacturer": "Toyota"}, lo.Filters)

	lo = runList(t, "trims", "list", "--search", "camry")
	assert.Equal(t, []string{"t2"}, lo.ids())

	lo = runList(t, "manufacturers", "list", "--page-size", "2")
	assert.Equal(t, []string{"m1", "m2"}, lo.ids())
	assert.True(t, lo.Pagination.HasNext)

	lo = runList(t, "blogs", "list", "--search", "sam")
	assert.Equal(t, []string{"b1"}, lo.ids())
}

func TestLeadsList(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, true)

	lo := runList(t, "leads", "list", "finance", "--filter", "manufacturer=Toyota")
	assert.Equal(t, []string{"l1", "l3"}, lo.ids())

	lo = runList(t, "leads", "list", "finance", "--search", "501234567")
	assert.Equal(t, []string{"l1"}, lo.ids())

	lo = runList(t, "leads", "list", "contact")
	assert.Equal(t, []string{"k1"}, lo.ids())

	out, err := runCLI(t, "", "leads", "list", "finance", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Finance query for Toyota Camry")
	assert.Contains(t, out, "N/A", "missing e-mail renders as N/A")

	_, err = runCLI(t, "", "leads", "list", "carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown lead kind")
}
