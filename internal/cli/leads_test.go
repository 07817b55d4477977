package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/export"
)

func TestLeadsExport_CSVAcrossPages(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, true)
	path := filepath.Join(t.TempDir(), "finance.csv")

	out, err := runCLI(t, "", "leads", "export", "finance", "--file", path, "--filter", "manufacturer=Toyota")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 finance leads")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Email Address,Mobile Number,Query", lines[0])
	assert.Equal(t, "Dana Reyes,dana@example.com,501234567,Finance query for Toyota Camry", lines[1])
	assert.Equal(t, "Ari Cohen,N/A,N/A,Finance query for Toyota Land Cruiser", lines[2])
}

func TestLeadsExport_JSON(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, true)
	path := filepath.Join(t.TempDir(), "finance.JSON")

	_, err := runCLI(t, "", "leads", "export", "finance", "-f", path, "--search", "lee")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var leads []struct {
		ID   string `json:"_id"`
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(data, &leads))
	require.Len(t, leads, 1)
	assert.Equal(t, "l2", leads[0].ID)
	assert.Equal(t, "finance", leads[0].Kind)
}

func TestLeadsExport_DefaultFileInExportDir(t *testing.T) {
	fb := newFakeBackend(t)
	home := setupCLI(t, fb.URL, true)
	exportDir := t.TempDir()

	cfg := config.Defaults()
	cfg.List.ExportDir = exportDir
	require.NoError(t, cfg.Save())
	require.Equal(t, filepath.Join(home, "config.yaml"), cfg.ConfigPath())

	_, err := runCLI(t, "", "leads", "export", "contact")
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(exportDir, "contact-leads-*.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestLeadsExport_Errors(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, true)
	dir := t.TempDir()

	_, err := runCLI(t, "", "leads", "export", "finance", "--file", filepath.Join(dir, "finance.xlsx"))
	require.ErrorIs(t, err, export.ErrUnknownFormat)

	_, err = runCLI(t, "", "leads", "export", "finance", "--file", filepath.Join(dir, "none.csv"), "--search", "zzz")
	require.ErrorIs(t, err, export.ErrNothingToExport)
	_, statErr := os.Stat(filepath.Join(dir, "none.csv"))
	assert.True(t, os.IsNotExist(statErr), "no file is written for an empty export")
}
