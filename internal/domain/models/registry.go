package models

import "tourbook/internal/domain"

// Driver is an independently registered driver.
type Driver struct {
	ID        domain.ID `json:"id"`
	Name      string    `json:"name"`
	NIC       string    `json:"nic"`
	LicenseNo string    `json:"license_no"`
	Phone     string    `json:"phone"`
}

// Vehicle is a registered fleet vehicle, referenced by ID from assignments.
type Vehicle struct {
	ID       domain.ID `json:"id"`
	PlateNo  string    `json:"plate_no"`
	Type     string    `json:"type"`
	Capacity int       `json:"capacity"`
	Model    string    `json:"model"`
}

// GuideApplication is a registered guide, referenced by ID from assignments.
type GuideApplication struct {
	ID              domain.ID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Languages       []string  `json:"languages"`
	ExperienceYears int       `json:"experience_years"`
}
