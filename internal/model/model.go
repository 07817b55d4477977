// Package model defines the records exchanged with the vehicle-listing backend.
//
// Field names mirror the backend JSON. Optional nested references are pointers;
// use the accessor helpers to read them with a placeholder fallback.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NA is the placeholder rendered for missing values.
const NA = "N/A"

// Display returns s, or NA when s is blank.
func Display(s string) string {
	if strings.TrimSpace(s) == "" {
		return NA
	}
	return s
}

// FlexString decodes from a JSON string, number or boolean. Numbers keep their
// literal text. null decodes to "".
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding flex string: %w", err)
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}
	return fmt.Errorf("decoding flex string: unsupported value %s", data)
}

// String returns the raw text.
func (f FlexString) String() string { return string(f) }

// Image is a stored image reference.
type Image struct {
	Path     string `json:"path,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// Ref is a populated reference to another document. The backend fills in any
// subset of the name fields depending on the collection.
type Ref struct {
	ID        string `json:"_id,omitempty"`
	BrandName string `json:"brandName,omitempty"`
	ModelName string `json:"modelName,omitempty"`
	TrimName  string `json:"trimName,omitempty"`
}

// UnmarshalJSON accepts either a populated object or a bare id string.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Ref(p)
	return nil
}

// RefID returns r.ID, or "" for a nil reference.
func RefID(r *Ref) string {
	if r == nil {
		return ""
	}
	return r.ID
}

// Brand returns the populated brand name; ok is false for a nil reference or
// an unpopulated field.
func (r *Ref) Brand() (string, bool) { return refField(r, func(r *Ref) string { return r.BrandName }) }

// Model returns the populated model name.
func (r *Ref) Model() (string, bool) { return refField(r, func(r *Ref) string { return r.ModelName }) }

// Trim returns the populated trim name.
func (r *Ref) Trim() (string, bool) { return refField(r, func(r *Ref) string { return r.TrimName }) }

// BrandNameOr returns the brand name or fallback.
func (r *Ref) BrandNameOr(fallback string) string {
	if v, ok := r.Brand(); ok {
		return v
	}
	return fallback
}

// ModelNameOr returns the model name or fallback.
func (r *Ref) ModelNameOr(fallback string) string {
	if v, ok := r.Model(); ok {
		return v
	}
	return fallback
}

// TrimNameOr returns the trim name or fallback.
func (r *Ref) TrimNameOr(fallback string) string {
	if v, ok := r.Trim(); ok {
		return v
	}
	return fallback
}

func refField(r *Ref, get func(*Ref) string) (string, bool) {
	if r == nil {
		return "", false
	}
	v := get(r)
	return v, v != ""
}

// Manufacturer is a car brand with its logo.
type Manufacturer struct {
	ID        string `json:"_id"`
	BrandName string `json:"brandName"`
	Logo      *Image `json:"logo,omitempty"`
	Order     int    `json:"order,omitempty"`
}

// VehicleType is a model within a manufacturer.
type VehicleType struct {
	ID           string `json:"_id"`
	ModelName    string `json:"modelName"`
	Manufacturer *Ref   `json:"manufacturer,omitempty"`
}

// Trim is a trim level of a vehicle type with its specification list.
type Trim struct {
	ID             string   `json:"_id"`
	TrimName       string   `json:"trimName"`
	VehicleType    *Ref     `json:"vehicleType,omitempty"`
	Specifications []string `json:"specifications,omitempty"`
}

// Author identifies who posted a blog.
type Author struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Blog is a published article.
type Blog struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Image       *Image     `json:"image,omitempty"`
	PostedBy    *Author    `json:"postedBy,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// AuthorName returns the author's name or NA.
func (b Blog) AuthorName() string {
	if b.PostedBy == nil {
		return NA
	}
	return Display(b.PostedBy.Name)
}
