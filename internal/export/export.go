// Package export writes list views to CSV or JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Supported formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Export errors.
var (
	ErrNothingToExport = errors.New("no records to export")
	ErrUnknownFormat   = errors.New("unknown export format")
)

// Table is a rendered record list: headers plus one cell slice per record.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable renders records with row.
func NewTable[T any](columns []string, records []T, row func(T) []string) Table {
	t := Table{Columns: columns, Rows: make([][]string, 0, len(records))}
	for _, r := range records {
		t.Rows = append(t.Rows, row(r))
	}
	return t
}

// WriteCSV writes t with a header line.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes v as JSON, indented when pretty is set.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// Exporter writes export files and remembers the last one written.
type Exporter struct {
	dir      string
	lastPath string
	now      func() time.Time
}

// NewExporter writes relative file names under dir; "" means the working
// directory.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

// LastPath returns the most recently written file.
func (e *Exporter) LastPath() string { return e.lastPath }

// Filename builds "<name>-<timestamp>.<format>".
func (e *Exporter) Filename(name, format string) string {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
	return fmt.Sprintf("%s-%s.%s", name, e.now().Format("20060102-150405"), format)
}

// Export writes records to path in format. CSV uses t; JSON writes the
// records themselves so nested fields survive.
func (e *Exporter) Export(path, format string, t Table, records any) (string, error) {
	if len(t.Rows) == 0 {
		return "", ErrNothingToExport
	}
	if format != FormatCSV && format != FormatJSON {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if !filepath.IsAbs(path) && e.dir != "" {
		path = filepath.Join(e.dir, path)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if format == FormatCSV {
		err = WriteCSV(f, t)
	} else {
		err = WriteJSON(f, records, true)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", err
	}

	e.lastPath = path
	return path, nil
}
