// Package listschema declares the ListView schemas for every dealerdesk list:
// which fields can be filtered, which are searched, and how lead tables render.
package listschema

import (
	"github.com/rshade/dealerdesk/internal/listview"
	"github.com/rshade/dealerdesk/internal/model"
)

// Filter names shared by the schemas.
const (
	FilterManufacturer = "manufacturer"
	FilterVehicleType  = "vehicleType"
	FilterFuelType     = "fuelType"
	FilterBodyType     = "bodyType"
	FilterTransmission = "transmission"

	UnknownBrand = "Unknown Brand"
	UnknownModel = "Unknown Model"
)

func nonEmpty(s string) (string, bool) { return s, s != "" }

// Cars filters on manufacturer, vehicle type, fuel, body and transmission and
// searches brand, model, trim and title.
func Cars() listview.Schema[model.Car] {
	field := func(name string) listview.Accessor[model.Car] {
		return func(c model.Car) (string, bool) { return c.Field(name) }
	}
	return listview.Schema[model.Car]{
		ID: func(c model.Car) string { return c.ID },
		Filters: []listview.FilterDef[model.Car]{
			{
				Name: FilterManufacturer, Label: "Manufacturer", AllLabel: "All Manufacturers",
				Unknown: UnknownBrand, Field: field("manufacturer"),
			},
			{
				Name: FilterVehicleType, Label: "Vehicle Type", AllLabel: "All Vehicle Types",
				Unknown: UnknownModel, Field: field("vehicleType"),
			},
			{Name: FilterFuelType, Label: "Fuel Type", AllLabel: "All Fuel Types", Field: field("fuelType")},
			{Name: FilterBodyType, Label: "Body Type", AllLabel: "All Body Types", Field: field("bodyType")},
			{
				Name: FilterTransmission, Label: "Transmission", AllLabel: "All Transmissions",
				Field: field("transmission"),
			},
		},
		Search: []listview.Accessor[model.Car]{
			field("brandName"),
			field("modelName"),
			field("trimName"),
			field("title"),
		},
	}
}

// Leads filters on the requested manufacturer and vehicle type and searches
// the contact fields.
func Leads() listview.Schema[model.Lead] {
	return listview.Schema[model.Lead]{
		ID: func(l model.Lead) string { return l.ID },
		Filters: []listview.FilterDef[model.Lead]{
			{
				Name: FilterManufacturer, Label: "Manufacturer", AllLabel: "All Manufacturers",
				Unknown: UnknownBrand, Field: func(l model.Lead) (string, bool) { return nonEmpty(l.Manufacturer) },
			},
			{
				Name: FilterVehicleType, Label: "Vehicle Type", AllLabel: "All Vehicle Types",
				Unknown: UnknownModel, Field: func(l model.Lead) (string, bool) { return nonEmpty(l.VehicleType) },
			},
		},
		Search: []listview.Accessor[model.Lead]{
			func(l model.Lead) (string, bool) { return nonEmpty(l.FullName) },
			func(l model.Lead) (string, bool) { return nonEmpty(l.Email) },
			func(l model.Lead) (string, bool) { return nonEmpty(l.MobileNumber.String()) },
		},
	}
}

// Blogs has no filters and searches title, description and author.
func Blogs() listview.Schema[model.Blog] {
	return listview.Schema[model.Blog]{
		ID: func(b model.Blog) string { return b.ID },
		Search: []listview.Accessor[model.Blog]{
			func(b model.Blog) (string, bool) { return nonEmpty(b.Title) },
			func(b model.Blog) (string, bool) { return nonEmpty(b.Description) },
			func(b model.Blog) (string, bool) {
				if b.PostedBy == nil {
					return "", false
				}
				return nonEmpty(b.PostedBy.Name)
			},
		},
	}
}

// Manufacturers searches brand names.
func Manufacturers() listview.Schema[model.Manufacturer] {
	return listview.Schema[model.Manufacturer]{
		ID: func(m model.Manufacturer) string { return m.ID },
		Search: []listview.Accessor[model.Manufacturer]{
			func(m model.Manufacturer) (string, bool) { return nonEmpty(m.BrandName) },
		},
	}
}

// VehicleTypes filters by manufacturer and searches model and brand names.
func VehicleTypes() listview.Schema[model.VehicleType] {
	brand := func(v model.VehicleType) (string, bool) { return v.Manufacturer.Brand() }
	return listview.Schema[model.VehicleType]{
		ID: func(v model.VehicleType) string { return v.ID },
		Filters: []listview.FilterDef[model.VehicleType]{
			{
				Name: FilterManufacturer, Label: "Manufacturer", AllLabel: "All Manufacturers",
				Unknown: UnknownBrand, Field: brand,
			},
		},
		Search: []listview.Accessor[model.VehicleType]{
			func(v model.VehicleType) (string, bool) { return nonEmpty(v.ModelName) },
			brand,
		},
	}
}

// Trims filters by vehicle type and searches trim and model names.
func Trims() listview.Schema[model.Trim] {
	vt := func(t model.Trim) (string, bool) { return t.VehicleType.Model() }
	return listview.Schema[model.Trim]{
		ID: func(t model.Trim) string { return t.ID },
		Filters: []listview.FilterDef[model.Trim]{
			{
				Name: FilterVehicleType, Label: "Vehicle Type", AllLabel: "All Vehicle Types",
				Unknown: UnknownModel, Field: vt,
			},
		},
		Search: []listview.Accessor[model.Trim]{
			func(t model.Trim) (string, bool) { return nonEmpty(t.TrimName) },
			vt,
		},
	}
}
