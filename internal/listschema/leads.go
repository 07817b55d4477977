package listschema

import (
	"fmt"

	"github.com/rshade/dealerdesk/internal/model"
)

// LeadColumns are the lead table headers, identical for every kind.
func LeadColumns() []string {
	return []string{"Name", "Email Address", "Mobile Number", "Query"}
}

// LeadRow renders l as cells matching LeadColumns. Missing values render as N/A.
func LeadRow(kind model.LeadKind, l model.Lead) []string {
	return []string{
		model.Display(l.FullName),
		model.Display(l.Email),
		model.Display(l.MobileNumber.String()),
		LeadQuery(kind, l),
	}
}

// LeadQuery is the per-kind summary of what the customer asked for.
func LeadQuery(kind model.LeadKind, l model.Lead) string {
	brand := model.Display(l.Manufacturer)
	vt := model.Display(l.VehicleType)
	switch kind {
	case model.LeadFinance:
		return fmt.Sprintf("Finance query for %s %s", brand, vt)
	case model.LeadSellCar:
		return fmt.Sprintf("Sell car query for %s %s", brand, vt)
	case model.LeadTestDrive:
		return fmt.Sprintf("Test drive request for %s", model.Display(l.CarTitle))
	case model.LeadContact:
		return fmt.Sprintf("Contact: %s", model.Display(l.Message))
	case model.LeadBuyNow:
		return fmt.Sprintf("Buy now request for %s", model.Display(l.CarTitle))
	}
	return model.NA
}
