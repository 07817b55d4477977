package carform

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rshade/dealerdesk/internal/model"
)

// ErrInvalidDraft is wrapped by every FieldError.
var ErrInvalidDraft = errors.New("invalid car")

// FieldError describes one invalid field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

// Unwrap lets errors.Is match ErrInvalidDraft.
func (e *FieldError) Unwrap() error { return ErrInvalidDraft }

//nolint:gochecknoglobals // Static choice bindings.
var choices = map[string][]string{
	FieldFuelType:       model.FuelTypes,
	FieldWarranty:       model.Availability,
	FieldOrigin:         model.Origins,
	FieldTransmission:   model.Transmissions,
	FieldBodyType:       model.BodyTypes,
	FieldTestDrive:      model.YesNo,
	FieldFeatured:       model.YesNo,
	FieldSaleStatus:     model.SaleStatuses,
	FieldServicePackage: model.Availability,
}

// Choices returns the allowed values of field, or nil for free-text fields.
func Choices(field string) []string { return choices[field] }

// Validate checks required fields, numeric fields and choice lists. All
// problems are returned joined.
func (d *Draft) Validate() error {
	var errs []error
	for _, f := range []string{FieldTitle, FieldManufacturer, FieldVehicleType} {
		if strings.TrimSpace(d.values[f]) == "" {
			errs = append(errs, &FieldError{Field: f, Message: "is required"})
		}
	}
	for _, f := range []string{FieldYear, FieldOriginalPrice, FieldDiscountedPrice, FieldMileage, FieldDoor} {
		v := strings.TrimSpace(d.values[f])
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			errs = append(errs, &FieldError{Field: f, Message: fmt.Sprintf("%q is not a number", v)})
		}
	}
	for _, f := range Fields {
		allowed := choices[f]
		if allowed == nil {
			continue
		}
		if v := d.values[f]; v != "" && !slices.Contains(allowed, v) {
			errs = append(errs, &FieldError{
				Field:   f,
				Message: fmt.Sprintf("%q is not one of %s", v, strings.Join(allowed, ", ")),
			})
		}
	}
	return errors.Join(errs...)
}
