package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// LeadKind identifies which inbound form a lead came from.
type LeadKind string

// Known lead kinds.
const (
	LeadFinance   LeadKind = "finance"
	LeadSellCar   LeadKind = "sell-car"
	LeadTestDrive LeadKind = "test-drive"
	LeadContact   LeadKind = "contact"
	LeadBuyNow    LeadKind = "buy-now"
)

// ErrUnknownLeadKind is returned by ParseLeadKind.
var ErrUnknownLeadKind = errors.New("unknown lead kind")

// LeadKinds returns every kind in tab order.
func LeadKinds() []LeadKind {
	return []LeadKind{LeadFinance, LeadSellCar, LeadTestDrive, LeadContact, LeadBuyNow}
}

// ParseLeadKind parses a kind name. Matching is case-insensitive and accepts
// underscores in place of dashes.
func ParseLeadKind(s string) (LeadKind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, k := range LeadKinds() {
		if string(k) == norm {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: finance, sell-car, test-drive, contact, buy-now)", ErrUnknownLeadKind, s)
}

// Endpoint returns the backend collection path for k.
func (k LeadKind) Endpoint() string {
	switch k {
	case LeadFinance:
		return "/api/v1/finance-eligibility"
	case LeadSellCar:
		return "/api/v1/sell-car"
	case LeadTestDrive:
		return "/api/v1/test-drive"
	case LeadContact:
		return "/api/v1/contact"
	case LeadBuyNow:
		return "/api/v1/buy-now"
	}
	return ""
}

// Title is the tab label for k.
func (k LeadKind) Title() string {
	switch k {
	case LeadFinance:
		return "Finance"
	case LeadSellCar:
		return "Sell Car"
	case LeadTestDrive:
		return "Test Drive"
	case LeadContact:
		return "Contact"
	case LeadBuyNow:
		return "Buy Now"
	}
	return string(k)
}

// Lead is an inbound customer request. Every field is optional; Kind is set
// by the client from the endpoint the lead was fetched from.
type Lead struct {
	ID            string     `json:"_id"`
	Kind          LeadKind   `json:"kind,omitempty"`
	FullName      string     `json:"fullName,omitempty"`
	Email         string     `json:"email,omitempty"`
	MobileNumber  FlexString `json:"mobileNumber,omitempty"`
	Manufacturer  string     `json:"manufacturer,omitempty"`
	VehicleType   string     `json:"vehicleType,omitempty"`
	Message       string     `json:"message,omitempty"`
	CarTitle      string     `json:"carTitle,omitempty"`
	PreferredDate string     `json:"preferredDate,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}
