package listview

import "strings"

// Option is one entry of a filter control.
type Option struct {
	Value string
	Label string
	// Absent marks the option standing in for records that lack the field.
	// It never matches any record.
	Absent bool
}

// applyFilters keeps records that equal every active filter value and contain
// every search token. Order is preserved.
func applyFilters[T any](source []T, schema Schema[T], filters map[string]string, tokens []string) []T {
	out := make([]T, 0, len(source))
	for _, rec := range source {
		if matchesFilters(rec, schema, filters) && matchesSearch(rec, schema.Search, tokens) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesFilters[T any](rec T, schema Schema[T], filters map[string]string) bool {
	for _, f := range schema.Filters {
		want, active := filters[f.Name]
		if !active || want == "" {
			continue
		}
		got, ok := f.Field(rec)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// matchesSearch reports whether every token is a case-insensitive substring of
// at least one present searchable field. tokens must already be lower-cased.
func matchesSearch[T any](rec T, fields []Accessor[T], tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	values := make([]string, 0, len(fields))
	for _, acc := range fields {
		if v, ok := acc(rec); ok {
			values = append(values, strings.ToLower(v))
		}
	}
	for _, tok := range tokens {
		found := false
		for _, v := range values {
			if strings.Contains(v, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FilterOptions lists the choices for the named filter: the "All" option
// (value "") followed by the distinct values of the source collection in
// first-seen order. Records missing the field contribute one Absent option
// labelled with the filter's Unknown placeholder.
func (lv *ListView[T]) FilterOptions(name string) ([]Option, error) {
	f, ok := lv.schema.Filter(name)
	if !ok {
		return nil, ErrUnknownFilter
	}

	opts := []Option{{Value: "", Label: f.allLabel()}}
	seen := make(map[string]bool)
	unknown := f.unknownLabel()
	for _, rec := range lv.source {
		v, present := f.Field(rec)
		if !present || v == "" {
			if !seen[unknown] {
				opts = append(opts, Option{Value: unknown, Label: unknown, Absent: true})
				seen[unknown] = true
			}
			continue
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		opts = append(opts, Option{Value: v, Label: v})
	}
	return opts, nil
}

// NextFilterValue returns the option value step positions away from the
// active one, wrapping around. Used to cycle a filter from the keyboard.
func (lv *ListView[T]) NextFilterValue(name string, step int) (string, error) {
	opts, err := lv.FilterOptions(name)
	if err != nil {
		return "", err
	}
	current := lv.filters[name]
	idx := 0
	for i, o := range opts {
		if o.Value == current {
			idx = i
			break
		}
	}
	n := len(opts)
	next := ((idx+step)%n + n) % n
	return opts[next].Value, nil
}
