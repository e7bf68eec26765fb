package models

import (
	"time"

	"tourbook/internal/domain"
)

// CustomPackage statuses. DeriveStatus can additionally write the literal
// "new" when an assignment is cleared; that value is outside the declared
// enum but matches observed production data, so it is kept.
const (
	CustomPackageStatusPending   = "pending"
	CustomPackageStatusApproved  = "approved"
	CustomPackageStatusAssigned  = "assigned"
	CustomPackageStatusConfirmed = "confirmed"
	CustomPackageStatusCompleted = "completed"
	CustomPackageStatusCancelled = "cancelled"
)

// CustomPackage is a free-form trip request not tied to a pre-defined
// Package. Its assignment workflow mirrors Booking's.
type CustomPackage struct {
	ID             domain.ID  `json:"id"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Country        string     `json:"country"`
	Travellers     int        `json:"travellers"`
	PreferredStart string     `json:"preferred_start"`
	PreferredEnd   string     `json:"preferred_end"`
	Destinations   string     `json:"destinations"`
	DurationDays   int        `json:"duration_days"`
	Status         string     `json:"status"`
	Assignment     Assignment `json:"assignment"`
	CreatedAt      time.Time  `json:"created_at"`
}

// DeriveStatus applies the save-time status rule: a record becomes
// "assigned" when either assignment field turns non-empty, and a
// previously-assigned record reverts to "new" when assignment is cleared.
func (cp *CustomPackage) DeriveStatus() {
	if cp.Assignment.HasAny() {
		cp.Status = CustomPackageStatusAssigned
		return
	}
	if cp.Status == CustomPackageStatusAssigned {
		cp.Status = "new"
	}
}
