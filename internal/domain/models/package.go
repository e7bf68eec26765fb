package models

import "tourbook/internal/domain"

// Package is a pre-defined bookable trip with fixed dates, per-person price
// and capacity. An optional Offer only influences the displayed price.
type Package struct {
	ID         domain.ID  `json:"id"`
	Name       string     `json:"name"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	Price      float64    `json:"price"`
	MaxTourist int        `json:"max_tourist"`
	Currency   string     `json:"currency"`
	Images     []string   `json:"images"`
	OfferID    *domain.ID `json:"offer_id,omitempty"`
}

// Offer is a display-only promotion window. Its percentage never enters
// booking pricing.
type Offer struct {
	ID              domain.ID `json:"id"`
	Title           string    `json:"title"`
	DiscountPercent float64   `json:"discount_percent"`
	ValidFrom       string    `json:"valid_from"`
	ValidTo         string    `json:"valid_to"`
}

// PackageDetail is the admin/detail view of a package, with the discounted
// display price filled in when a currently-valid offer is attached.
type PackageDetail struct {
	Package
	Offer           *Offer   `json:"offer,omitempty"`
	DiscountedPrice *float64 `json:"discounted_price,omitempty"`
}
