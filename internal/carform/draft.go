// Package carform holds the editable state of a car listing: field values,
// the manufacturer -> vehicle type -> trim cascade, the image gallery and the
// multipart form sent on create and update.
package carform

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/rshade/dealerdesk/internal/model"
)

// Field names, matching the backend form keys.
const (
	FieldManufacturer    = "manufacturerId"
	FieldVehicleType     = "vehicleTypeId"
	FieldTrim            = "trimId"
	FieldTitle           = "title"
	FieldOriginalPrice   = "originalPrice"
	FieldFuelType        = "fuelType"
	FieldMileage         = "mileage"
	FieldYear            = "year"
	FieldExteriorColor   = "exteriorColor"
	FieldWarranty        = "warranty"
	FieldDoor            = "door"
	FieldOrigin          = "origin"
	FieldTransmission    = "transmission"
	FieldBodyType        = "bodyType"
	FieldEngine          = "engine"
	FieldTestDrive       = "testDrive"
	FieldFeatured        = "featured"
	FieldSaleStatus      = "saleStatus"
	FieldDiscountedPrice = "discountedPrice"
	FieldServicePackage  = "servicePackage"
	FieldDescription     = "description"
)

// Draft errors.
var (
	ErrUnknownField = errors.New("unknown car field")
	ErrTrimField    = errors.New("trim must be selected with SetTrim")
)

// Fields lists every scalar field in form order.
//
//nolint:gochecknoglobals // Static field order.
var Fields = []string{
	FieldManufacturer, FieldVehicleType, FieldTrim, FieldTitle, FieldOriginalPrice,
	FieldFuelType, FieldMileage, FieldYear, FieldExteriorColor, FieldWarranty,
	FieldDoor, FieldOrigin, FieldTransmission, FieldBodyType, FieldEngine,
	FieldTestDrive, FieldFeatured, FieldSaleStatus, FieldDiscountedPrice,
	FieldServicePackage, FieldDescription,
}

// defaults are applied to new drafts and to empty values of edited cars.
//
//nolint:gochecknoglobals // Static defaults.
var defaults = map[string]string{
	FieldFuelType:       "gasoline",
	FieldWarranty:       "Available",
	FieldOrigin:         "gcc",
	FieldTransmission:   "manual",
	FieldBodyType:       "sedan",
	FieldTestDrive:      "yes",
	FieldFeatured:       "no",
	FieldSaleStatus:     "for-sale",
	FieldServicePackage: "Available",
}

// Default returns the default value of field, or "".
func Default(field string) string { return defaults[field] }

// Draft is a car being created or edited.
type Draft struct {
	// ID is empty for a new car.
	ID string

	values         map[string]string
	specifications map[string]bool
	// carSpecs are the specifications saved on the car being edited. They win
	// over trim defaults when a trim is selected.
	carSpecs map[string]bool

	Gallery Gallery
}

// New returns an empty draft with defaults applied.
func New() *Draft {
	return &Draft{
		values:         maps.Clone(defaults),
		specifications: map[string]bool{},
	}
}

// FromCar pre-fills a draft for editing car.
func FromCar(car model.Car) *Draft {
	d := New()
	d.ID = car.ID
	for _, f := range Fields {
		var v string
		switch f {
		case FieldManufacturer:
			v = model.RefID(car.Manufacturer)
		case FieldVehicleType:
			v = model.RefID(car.VehicleType)
		case FieldTrim:
			v = model.RefID(car.Trim)
		default:
			v, _ = car.Field(f)
		}
		if v != "" {
			d.values[f] = v
		}
	}
	d.specifications = maps.Clone(car.Specifications)
	if d.specifications == nil {
		d.specifications = map[string]bool{}
	}
	d.carSpecs = maps.Clone(d.specifications)
	d.Gallery = NewGallery(car.Images)
	return d
}

// IsNew reports whether the draft creates a car rather than updating one.
func (d *Draft) IsNew() bool { return d.ID == "" }

// Get returns the value of field.
func (d *Draft) Get(field string) string { return d.values[field] }

// Set assigns a scalar field. The cascade fields go through their dedicated
// setters so dependent selections are cleared.
func (d *Draft) Set(field, value string) error {
	switch field {
	case FieldManufacturer:
		d.SetManufacturer(value)
	case FieldVehicleType:
		d.SetVehicleType(value)
	case FieldTrim:
		return ErrTrimField
	default:
		if !slices.Contains(Fields, field) {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		d.values[field] = value
	}
	return nil
}

// SetManufacturer selects a manufacturer and clears the vehicle type, trim and
// specifications when it changes.
func (d *Draft) SetManufacturer(id string) {
	if d.values[FieldManufacturer] == id {
		return
	}
	d.values[FieldManufacturer] = id
	d.values[FieldVehicleType] = ""
	d.values[FieldTrim] = ""
	d.specifications = map[string]bool{}
}

// SetVehicleType selects a vehicle type and clears the trim and
// specifications when it changes.
func (d *Draft) SetVehicleType(id string) {
	if d.values[FieldVehicleType] == id {
		return
	}
	d.values[FieldVehicleType] = id
	d.values[FieldTrim] = ""
	d.specifications = map[string]bool{}
}

// SetTrim selects trim and enables every one of its specifications. For an
// edited car the saved specifications override those defaults. A nil trim
// clears the selection.
func (d *Draft) SetTrim(trim *model.Trim) {
	if trim == nil {
		d.values[FieldTrim] = ""
		d.specifications = map[string]bool{}
		return
	}
	d.values[FieldTrim] = trim.ID
	specs := make(map[string]bool, len(trim.Specifications))
	for _, s := range trim.Specifications {
		specs[s] = true
	}
	maps.Copy(specs, d.carSpecs)
	d.specifications = specs
}

// Specifications returns a copy of the specification flags.
func (d *Draft) Specifications() map[string]bool { return maps.Clone(d.specifications) }

// SetSpecification turns one specification on or off.
func (d *Draft) SetSpecification(name string, on bool) { d.specifications[name] = on }

// ToggleSpecification flips one specification.
func (d *Draft) ToggleSpecification(name string) {
	d.specifications[name] = !d.specifications[name]
}
