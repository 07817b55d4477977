package cli

import (
	"fmt"
	"strings"

	"github.com/rshade/dealerdesk/internal/catalog"
	"github.com/rshade/dealerdesk/internal/model"
)

// findByIDOrName returns the item whose ID equals key, or else the first one
// whose name matches key case-insensitively.
func findByIDOrName[T any](items []T, key string, id, name func(T) string) (T, bool) {
	for _, it := range items {
		if id(it) == key {
			return it, true
		}
	}
	for _, it := range items {
		if strings.EqualFold(strings.TrimSpace(name(it)), strings.TrimSpace(key)) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func resolveManufacturer(cat *catalog.Catalog, key string) (model.Manufacturer, error) {
	m, ok := findByIDOrName(cat.Manufacturers, key,
		func(m model.Manufacturer) string { return m.ID },
		func(m model.Manufacturer) string { return m.BrandName })
	if !ok {
		return model.Manufacturer{}, fmt.Errorf("manufacturer %q: %w", key, ErrNotFound)
	}
	return m, nil
}

// resolveVehicleType looks key up among the vehicle types of manufacturerID,
// or among all of them when manufacturerID is empty.
func resolveVehicleType(cat *catalog.Catalog, manufacturerID, key string) (model.VehicleType, error) {
	candidates := cat.VehicleTypes
	if manufacturerID != "" {
		candidates = cat.VehicleTypesFor(manufacturerID)
	}
	v, ok := findByIDOrName(candidates, key,
		func(v model.VehicleType) string { return v.ID },
		func(v model.VehicleType) string { return v.ModelName })
	if !ok {
		if manufacturerID != "" {
			return model.VehicleType{}, fmt.Errorf("vehicle type %q for manufacturer %s: %w", key, manufacturerID, ErrNotFound)
		}
		return model.VehicleType{}, fmt.Errorf("vehicle type %q: %w", key, ErrNotFound)
	}
	return v, nil
}

// resolveTrim looks key up among the trims of vehicleTypeID, or among all of
// them when vehicleTypeID is empty.
func resolveTrim(cat *catalog.Catalog, vehicleTypeID, key string) (model.Trim, error) {
	candidates := cat.Trims
	if vehicleTypeID != "" {
		candidates = cat.TrimsFor(vehicleTypeID)
	}
	t, ok := findByIDOrName(candidates, key,
		func(t model.Trim) string { return t.ID },
		func(t model.Trim) string { return t.TrimName })
	if !ok {
		return model.Trim{}, fmt.Errorf("trim %q: %w", key, ErrNotFound)
	}
	return t, nil
}

// findRecord returns the record with id from records.
func findRecord[T any](records []T, id string, idOf func(T) string, kind string) (T, error) {
	for _, r := range records {
		if idOf(r) == id {
			return r, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
