package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
	"tourbook/internal/events"
	"tourbook/internal/pricing"
	"tourbook/internal/repositories"
	"tourbook/internal/utils"
)

// Notifier publishes the finance notification. Satisfied by events.Bus.
type Notifier interface {
	PublishFinanceUpdate(source string)
}

type BookingService struct {
	BookingRepo repositories.BookingRepository
	PackageRepo repositories.PackageRepository
	RequestID   string
	Events      Notifier
}

func (s BookingService) notify(source string) {
	if s.Events != nil {
		s.Events.PublishFinanceUpdate(source)
		return
	}
	events.PublishFinanceUpdate(source)
}

// CreateBookingInput is the payload of POST /bookings.
type CreateBookingInput struct {
	PackageID domain.ID          `json:"package_id"`
	Qty       int                `json:"qty"`
	Customer  models.Customer    `json:"customer"`
	Payment   models.PaymentStub `json:"payment"`
}

// Create validates the request, snapshots the package, computes pricing and
// persists the booking. The capacity check is advisory only: concurrent
// creations can collectively exceed a package's capacity.
func (s BookingService) Create(rc domain.RequestContext, in CreateBookingInput) (domain.ID, error) {
	if in.PackageID <= 0 {
		return 0, domain.ValidationError{Field: "package_id", Msg: "package id is required"}
	}
	pkg, err := s.PackageRepo.GetByID(in.PackageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "package", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}

	errs := ValidateQty(in.Qty, pkg.MaxTourist)
	for f, msg := range ValidateCustomer(in.Customer) {
		errs.Add(f, msg)
	}
	for f, msg := range ValidatePayment(in.Payment) {
		errs.Add(f, msg)
	}
	if errs.HasErrors() {
		return 0, errs
	}

	quote, err := pricing.Quote(pkg.Price, in.Qty)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}

	customer := in.Customer
	customer.Email = utils.NormalizeEmail(customer.Email)

	payment := in.Payment
	payment.Last4 = utils.OnlyDigits(payment.Last4)
	payment.Status = models.PaymentStatusPending

	booking := models.Booking{
		UserID:    rc.UserID,
		PackageID: pkg.ID,
		Qty:       in.Qty,
		Status:    models.BookingStatusCreated,
		Snapshot: models.PackageSnapshot{
			Name:       pkg.Name,
			StartDate:  pkg.StartDate,
			EndDate:    pkg.EndDate,
			Price:      pkg.Price,
			MaxTourist: pkg.MaxTourist,
			Images:     pkg.Images,
		},
		Customer: customer,
		Pricing: models.PricingBreakdown{
			Price:    pkg.Price,
			Qty:      in.Qty,
			Subtotal: quote.Subtotal,
			Service:  quote.Service,
			CityTax:  quote.CityTax,
			Taxes:    quote.Taxes,
			Total:    quote.Total,
			Currency: pkg.Currency,
		},
		Payment: payment,
	}

	id, err := s.BookingRepo.Insert(booking)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "bookings", "create", fmt.Sprintf("booking_id=%d package_id=%d qty=%d", id, pkg.ID, in.Qty))
	s.notify("bookings")
	return id, nil
}

// Get returns one booking, gated to owner or admin.
func (s BookingService) Get(rc domain.RequestContext, id domain.ID) (models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !rc.CanAccess(booking.UserID) {
		return models.Booking{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	return booking, nil
}

func (s BookingService) ListMine(rc domain.RequestContext) ([]models.Booking, error) {
	out, err := s.BookingRepo.ListByUser(rc.UserID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s BookingService) ListAll(rc domain.RequestContext) ([]models.Booking, error) {
	if !rc.IsAdmin() {
		return nil, domain.ForbiddenError{Msg: "admin only"}
	}
	out, err := s.BookingRepo.ListAll()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// Update applies a partial patch. A qty change recomputes the whole pricing
// block from the unit price already on the booking; the capacity limit is
// re-read from the current package, falling back to the snapshot when the
// package reference has gone stale. All validation runs before any write.
func (s BookingService) Update(rc domain.RequestContext, id domain.ID, patch models.BookingPatch) error {
	booking, err := s.BookingRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if !rc.CanAccess(booking.UserID) {
		return domain.ForbiddenError{Msg: "not your booking"}
	}

	errs := domain.FieldErrors{}
	var newPricing *models.PricingBreakdown

	if patch.Qty != nil {
		maxTourist := booking.Snapshot.MaxTourist
		if pkg, err := s.PackageRepo.GetByID(booking.PackageID); err == nil {
			maxTourist = pkg.MaxTourist
		}
		for f, msg := range ValidateQty(*patch.Qty, maxTourist) {
			errs.Add(f, msg)
		}
		if !errs.HasErrors() {
			quote, qErr := pricing.Quote(booking.Pricing.Price, *patch.Qty)
			if qErr != nil {
				return domain.InternalError{Err: qErr}
			}
			newPricing = &models.PricingBreakdown{
				Price:    booking.Pricing.Price,
				Qty:      *patch.Qty,
				Subtotal: quote.Subtotal,
				Service:  quote.Service,
				CityTax:  quote.CityTax,
				Taxes:    quote.Taxes,
				Total:    quote.Total,
				Currency: booking.Pricing.Currency,
			}
		}
	}

	var email *string
	if patch.Email != nil {
		normalized := utils.NormalizeEmail(*patch.Email)
		if !validEmail(normalized) {
			errs.Add("customer.email", "valid email is required")
		}
		email = &normalized
	}

	var phone *string
	if patch.Phone != nil {
		digits := utils.OnlyDigits(booking.Customer.PhoneCode) + utils.OnlyDigits(*patch.Phone)
		if len(digits) < 6 || len(digits) > 15 {
			errs.Add("customer.phone", "phone must contain 6 to 15 digits including dial code")
		}
		trimmed := utils.TrimOrEmpty(*patch.Phone)
		phone = &trimmed
	}

	var requests *string
	if patch.Requests != nil {
		trimmed := utils.TrimOrEmpty(*patch.Requests)
		requests = &trimmed
	}

	if errs.HasErrors() {
		return errs
	}

	if err := s.BookingRepo.UpdatePatch(id, patch.Qty, newPricing, email, phone, requests); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "bookings", "update", fmt.Sprintf("booking_id=%d repriced=%t", id, newPricing != nil))
	s.notify("bookings")
	return nil
}

func (s BookingService) Delete(rc domain.RequestContext, id domain.ID) error {
	booking, err := s.BookingRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if !rc.CanAccess(booking.UserID) {
		return domain.ForbiddenError{Msg: "not your booking"}
	}
	if err := s.BookingRepo.Delete(id); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "bookings", "delete", fmt.Sprintf("booking_id=%d", id))
	s.notify("bookings")
	return nil
}

// InvoiceData bundles what the PDF renderer needs for one booking.
type InvoiceData struct {
	Booking   models.Booking
	IssuedAt  time.Time
	InvoiceNo string
}

// Invoice loads a booking for invoice rendering, owner/admin gated.
func (s BookingService) Invoice(rc domain.RequestContext, id domain.ID) (InvoiceData, error) {
	booking, err := s.Get(rc, id)
	if err != nil {
		return InvoiceData{}, err
	}
	return InvoiceData{
		Booking:   booking,
		IssuedAt:  time.Now(),
		InvoiceNo: fmt.Sprintf("INV-%06d", booking.ID),
	}, nil
}
