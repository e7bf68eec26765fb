package models

import (
	"time"

	"tourbook/internal/domain"
)

// Booking statuses. Nothing in this service advances a booking past
// "created"; confirmation is an external concern.
const (
	BookingStatusCreated   = "created"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Payment stub statuses. Set once to "pending" at creation and never
// advanced here (no gateway integration).
const (
	PaymentStatusPending        = "pending"
	PaymentStatusAuthorized     = "authorized"
	PaymentStatusCaptured       = "captured"
	PaymentStatusRequiresAction = "requires_action"
	PaymentStatusFailed         = "failed"
	PaymentStatusFree           = "free"
)

// Customer is the embedded contact block on a booking.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Country   string `json:"country"`
	PhoneCode string `json:"phone_code"`
	Phone     string `json:"phone"`
	Paperless bool   `json:"paperless"`
	WorkTrip  bool   `json:"work_trip"`
	Requests  string `json:"requests"`
}

// PricingBreakdown is the persisted pricing snapshot. It is recomputed
// wholesale on every qty change, never partially patched.
type PricingBreakdown struct {
	Price    float64 `json:"price"`
	Qty      int     `json:"qty"`
	Subtotal float64 `json:"subtotal"`
	Service  float64 `json:"service"`
	CityTax  float64 `json:"city_tax"`
	Taxes    float64 `json:"taxes"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// PaymentStub stores the opaque card stub. Never a full card number.
type PaymentStub struct {
	Brand      string `json:"brand"`
	Last4      string `json:"last4"`
	ExpMonth   int    `json:"exp_month"`
	ExpYear    int    `json:"exp_year"`
	SaveCard   bool   `json:"save_card"`
	PromoOptIn bool   `json:"promo_opt_in"`
	Status     string `json:"status"`
}

// PackageSnapshot is the denormalized copy of package fields captured at
// creation time. Never refreshed when the source package changes.
type PackageSnapshot struct {
	Name       string   `json:"name"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	Price      float64  `json:"price"`
	MaxTourist int      `json:"max_tourist"`
	Images     []string `json:"images"`
}

// Assignment is the guide/vehicle sub-state shared by Booking and
// CustomPackage. AssignedAt is stamped on first touch and never cleared.
type Assignment struct {
	GuideID    *domain.ID  `json:"assigned_guide_id"`
	VehicleIDs []domain.ID `json:"assigned_vehicle_ids"`
	Notes      string      `json:"assignment_notes"`
	AssignedAt *time.Time  `json:"assigned_at"`
}

func (a Assignment) HasAny() bool {
	return a.GuideID != nil || len(a.VehicleIDs) > 0
}

// Booking is the persisted reservation against a Package.
type Booking struct {
	ID         domain.ID        `json:"id"`
	UserID     domain.ID        `json:"user_id"`
	PackageID  domain.ID        `json:"package_id"`
	Qty        int              `json:"qty"`
	Status     string           `json:"status"`
	Snapshot   PackageSnapshot  `json:"package_snapshot"`
	Customer   Customer         `json:"customer"`
	Pricing    PricingBreakdown `json:"pricing"`
	Payment    PaymentStub      `json:"payment"`
	Assignment Assignment       `json:"assignment"`
	CreatedAt  time.Time        `json:"created_at"`
}

// BookingPatch supports PATCH-style updates via key presence.
type BookingPatch struct {
	Qty      *int    `json:"qty"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Requests *string `json:"requests"`
}

// AssignmentPatch carries an assignment update; nil means "key absent".
type AssignmentPatch struct {
	GuideID    *domain.ID   `json:"assigned_guide_id"`
	GuideSet   bool         `json:"-"`
	VehicleIDs *[]domain.ID `json:"assigned_vehicle_ids"`
	Notes      *string      `json:"assignment_notes"`
}
