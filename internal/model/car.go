package model

// Car is a vehicle listing. Manufacturer, vehicle type and trim arrive as
// populated references.
type Car struct {
	ID              string          `json:"_id"`
	Manufacturer    *Ref            `json:"manufacturerId,omitempty"`
	VehicleType     *Ref            `json:"vehicleTypeId,omitempty"`
	Trim            *Ref            `json:"trimId,omitempty"`
	Title           string          `json:"title"`
	OriginalPrice   FlexString      `json:"originalPrice,omitempty"`
	DiscountedPrice FlexString      `json:"discountedPrice,omitempty"`
	FuelType        string          `json:"fuelType,omitempty"`
	Mileage         FlexString      `json:"mileage,omitempty"`
	Year            FlexString      `json:"year,omitempty"`
	ExteriorColor   string          `json:"exteriorColor,omitempty"`
	Warranty        string          `json:"warranty,omitempty"`
	Door            FlexString      `json:"door,omitempty"`
	Origin          string          `json:"origin,omitempty"`
	Transmission    string          `json:"transmission,omitempty"`
	BodyType        string          `json:"bodyType,omitempty"`
	Engine          string          `json:"engine,omitempty"`
	TestDrive       string          `json:"testDrive,omitempty"`
	Featured        string          `json:"featured,omitempty"`
	SaleStatus      string          `json:"saleStatus,omitempty"`
	ServicePackage  string          `json:"servicePackage,omitempty"`
	Specifications  map[string]bool `json:"specifications,omitempty"`
	Description     string          `json:"description,omitempty"`
	Images          []Image         `json:"images,omitempty"`
}

// Choice lists offered by the car form.
//
//nolint:gochecknoglobals // Static choice lists.
var (
	FuelTypes = []string{
		"gasoline", "diesel", "electric", "hybrid", "plug-in-hybrid", "cng", "lpg", "ethanol", "hydrogen",
	}
	Origins       = []string{"gcc", "us", "eu", "cad", "korean", "others"}
	Transmissions = []string{"manual", "automatic", "cvt", "dual-clutch"}
	BodyTypes     = []string{"sedan", "hatchback", "suv", "coupe", "convertible", "sport", "crossover suv"}
	Availability  = []string{"Available", "Not available"}
	YesNo         = []string{"yes", "no"}
	SaleStatuses  = []string{"for-sale", "sold"}
)

// Field returns a car field by its JSON name. ok is false for unknown names
// and for empty values.
//
//nolint:gocyclo // Flat field lookup.
func (c Car) Field(name string) (string, bool) {
	var v string
	switch name {
	case "_id", "id":
		v = c.ID
	case "manufacturer", "brandName":
		return c.Manufacturer.Brand()
	case "vehicleType", "modelName":
		return c.VehicleType.Model()
	case "trim", "trimName":
		return c.Trim.Trim()
	case "title":
		v = c.Title
	case "originalPrice":
		v = c.OriginalPrice.String()
	case "discountedPrice":
		v = c.DiscountedPrice.String()
	case "fuelType":
		v = c.FuelType
	case "mileage":
		v = c.Mileage.String()
	case "year":
		v = c.Year.String()
	case "exteriorColor":
		v = c.ExteriorColor
	case "warranty":
		v = c.Warranty
	case "door":
		v = c.Door.String()
	case "origin":
		v = c.Origin
	case "transmission":
		v = c.Transmission
	case "bodyType":
		v = c.BodyType
	case "engine":
		v = c.Engine
	case "testDrive":
		v = c.TestDrive
	case "featured":
		v = c.Featured
	case "saleStatus":
		v = c.SaleStatus
	case "servicePackage":
		v = c.ServicePackage
	case "description":
		v = c.Description
	default:
		return "", false
	}
	return v, v != ""
}
