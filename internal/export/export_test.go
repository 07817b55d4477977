package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lead struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func sample() ([]lead, Table) {
	leads := []lead{{"Sam", "sam@x.ae"}, {"Lee, Jr.", "lee@x.ae"}}
	return leads, NewTable([]string{"Name", "Email"}, leads, func(l lead) []string {
		return []string{l.Name, l.Email}
	})
}

func TestWriteCSV_QuotesFields(t *testing.T) {
	_, table := sample()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))
	assert.Equal(t, "Name,Email\nSam,sam@x.ae\n\"Lee, Jr.\",lee@x.ae\n", buf.String())
}

func TestExporter_CSVAndJSON(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir)
	e.now = func() time.Time { return time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC) }
	leads, table := sample()

	name := e.Filename("Finance Leads", FormatCSV)
	assert.Equal(t, "finance-leads-20261014-093000.csv", name)

	path, err := e.Export(name, FormatCSV, table, leads)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, name), path)
	assert.Equal(t, path, e.LastPath())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name", "Email"}, {"Sam", "sam@x.ae"}, {"Lee, Jr.", "lee@x.ae"}}, rows)

	jsonPath, err := e.Export(filepath.Join(dir, "out.json"), FormatJSON, table, leads)
	require.NoError(t, err)
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var back []lead
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, leads, back)

	info, err := os.Stat(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestExporter_Errors(t *testing.T) {
	e := NewExporter(t.TempDir())

	_, err := e.Export("x.csv", FormatCSV, Table{Columns: []string{"Name"}}, nil)
	require.ErrorIs(t, err, ErrNothingToExport)

	_, table := sample()
	_, err = e.Export("x.xml", "xml", table, nil)
	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.Empty(t, e.LastPath())
}
