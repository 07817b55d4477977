package listview

import (
	"errors"
	"fmt"
)

// Sentinel errors for schema and filter validation.
var (
	ErrInvalidPageSize = errors.New("page size must be at least 1")
	ErrInvalidWindow   = errors.New("pagination window must be at least 5")
	ErrNilAccessor     = errors.New("schema accessor must not be nil")
	ErrDuplicateFilter = errors.New("duplicate filter name")
	ErrUnknownFilter   = errors.New("unknown filter")
	ErrStaleFetch      = errors.New("fetch result is stale")
)

// Accessor reads a single field from a record. ok is false when the field is
// absent; absent fields never match a filter value or a search token.
type Accessor[T any] func(rec T) (value string, ok bool)

// FilterDef describes one exact-match filter control.
type FilterDef[T any] struct {
	// Name is the key used with SetFilter, e.g. "manufacturer".
	Name string
	// Label is the human-readable control label, e.g. "Manufacturer".
	Label string
	// AllLabel is the label of the "no constraint" option. Defaults to "All <Label>".
	AllLabel string
	// Unknown labels the option that stands for records missing the field.
	Unknown string
	Field   Accessor[T]
}

// Schema binds a record type to its identity, filters and searchable fields.
type Schema[T any] struct {
	ID      func(rec T) string
	Filters []FilterDef[T]
	Search  []Accessor[T]
}

// Validate reports missing accessors and duplicate filter names.
func (s Schema[T]) Validate() error {
	if s.ID == nil {
		return fmt.Errorf("%w: ID", ErrNilAccessor)
	}
	seen := make(map[string]bool, len(s.Filters))
	for _, f := range s.Filters {
		if f.Field == nil {
			return fmt.Errorf("%w: filter %q", ErrNilAccessor, f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateFilter, f.Name)
		}
		seen[f.Name] = true
	}
	for i, acc := range s.Search {
		if acc == nil {
			return fmt.Errorf("%w: search field %d", ErrNilAccessor, i)
		}
	}
	return nil
}

// FilterNames returns the filter names in declaration order.
func (s Schema[T]) FilterNames() []string {
	names := make([]string, 0, len(s.Filters))
	for _, f := range s.Filters {
		names = append(names, f.Name)
	}
	return names
}

// Filter returns the named filter definition.
func (s Schema[T]) Filter(name string) (FilterDef[T], bool) {
	for _, f := range s.Filters {
		if f.Name == name {
			return f, true
		}
	}
	return FilterDef[T]{}, false
}

func (f FilterDef[T]) allLabel() string {
	if f.AllLabel != "" {
		return f.AllLabel
	}
	return "All " + f.Label
}

func (f FilterDef[T]) unknownLabel() string {
	if f.Unknown != "" {
		return f.Unknown
	}
	return "Unknown"
}
