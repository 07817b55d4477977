package cli

import (
	"strconv"
	"strings"

	"github.com/rshade/dealerdesk/internal/listschema"
	"github.com/rshade/dealerdesk/internal/model"
	"github.com/rshade/dealerdesk/internal/tui"
)

func carColumns() columnSet[model.Car] {
	return columnSet[model.Car]{
		Columns: []string{"ID", "Title", "Brand", "Model", "Trim", "Year", "Price", "Fuel", "Status"},
		Row: func(c model.Car) []string {
			price := c.DiscountedPrice.String()
			if strings.TrimSpace(price) == "" {
				price = c.OriginalPrice.String()
			}
			return []string{
				c.ID,
				model.Display(c.Title),
				c.Manufacturer.BrandNameOr(listschema.UnknownBrand),
				c.VehicleType.ModelNameOr(listschema.UnknownModel),
				c.Trim.TrimNameOr(model.NA),
				model.Display(c.Year.String()),
				tui.FormatAmount(price),
				model.Display(c.FuelType),
				model.Display(c.SaleStatus),
			}
		},
	}
}

func manufacturerColumns() columnSet[model.Manufacturer] {
	return columnSet[model.Manufacturer]{
		Columns: []string{"ID", "Order", "Brand", "Logo"},
		Row: func(m model.Manufacturer) []string {
			logo := model.NA
			if m.Logo != nil {
				logo = model.Display(m.Logo.Filename)
			}
			return []string{m.ID, strconv.Itoa(m.Order), model.Display(m.BrandName), logo}
		},
	}
}

func vehicleTypeColumns() columnSet[model.VehicleType] {
	return columnSet[model.VehicleType]{
		Columns: []string{"ID", "Model", "Manufacturer"},
		Row: func(v model.VehicleType) []string {
			return []string{v.ID, model.Display(v.ModelName), v.Manufacturer.BrandNameOr(listschema.UnknownBrand)}
		},
	}
}

func trimColumns() columnSet[model.Trim] {
	return columnSet[model.Trim]{
		Columns: []string{"ID", "Trim", "Vehicle Type", "Specifications"},
		Row: func(t model.Trim) []string {
			return []string{
				t.ID,
				model.Display(t.TrimName),
				t.VehicleType.ModelNameOr(listschema.UnknownModel),
				model.Display(strings.Join(t.Specifications, ", ")),
			}
		},
	}
}

func blogColumns() columnSet[model.Blog] {
	return columnSet[model.Blog]{
		Columns: []string{"ID", "Title", "Author", "Posted"},
		Row: func(b model.Blog) []string {
			posted := model.NA
			if b.CreatedAt != nil {
				posted = b.CreatedAt.Format("2006-01-02")
			}
			return []string{b.ID, model.Display(b.Title), b.AuthorName(), posted}
		},
	}
}

// leadColumns uses the export columns so list and export output agree.
func leadColumns() columnSet[model.Lead] {
	return columnSet[model.Lead]{
		Columns: listschema.LeadColumns(),
		Row:     func(l model.Lead) []string { return listschema.LeadRow(l.Kind, l) },
	}
}
