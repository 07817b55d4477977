package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// FormFile is a file part of a multipart form. When Reader is nil the file is
// read from Path.
type FormFile struct {
	Field    string
	Path     string
	Filename string
	Reader   io.Reader
}

// Form is an ordered multipart form. Fields and files keep insertion order.
type Form struct {
	fields [][2]string
	files  []FormFile
}

// Add appends a text field.
func (f *Form) Add(name, value string) *Form {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

// AddJSON appends a field holding the JSON encoding of v.
func (f *Form) AddJSON(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding form field %s: %w", name, err)
	}
	f.Add(name, string(data))
	return nil
}

// AddFile appends a file read from path.
func (f *Form) AddFile(field, path string) *Form {
	f.files = append(f.files, FormFile{Field: field, Path: path, Filename: filepath.Base(path)})
	return f
}

// AddReader appends a file read from r.
func (f *Form) AddReader(field, filename string, r io.Reader) *Form {
	f.files = append(f.files, FormFile{Field: field, Filename: filename, Reader: r})
	return f
}

// Values returns every value added for the text field name.
func (f *Form) Values(name string) []string {
	var out []string
	for _, kv := range f.fields {
		if kv[0] == name {
			out = append(out, kv[1])
		}
	}
	return out
}

// Files returns the file parts in order.
func (f *Form) Files() []FormFile { return f.files }

// encode writes the form and returns the body and content type.
func (f *Form) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", kv[0], err)
		}
	}
	for _, file := range f.files {
		if err := writeFile(w, file); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, file FormFile) error {
	r := file.Reader
	if r == nil {
		fh, err := os.Open(file.Path)
		if err != nil {
			return fmt.Errorf("opening upload %s: %w", file.Path, err)
		}
		defer fh.Close()
		r = fh
	}
	part, err := w.CreateFormFile(file.Field, file.Filename)
	if err != nil {
		return fmt.Errorf("creating form file %s: %w", file.Filename, err)
	}
	if _, err = io.Copy(part, r); err != nil {
		return fmt.Errorf("copying upload %s: %w", file.Filename, err)
	}
	return nil
}

// doMultipart sends form as multipart/form-data and decodes the JSON response.
func (c *Client) doMultipart(ctx context.Context, method, path string, form *Form, result any) error {
	if form == nil {
		form = &Form{}
	}
	body, contentType, err := form.encode()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(ctx, req, result)
}
