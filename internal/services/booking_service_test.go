package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
	"tourbook/internal/pricing"
	"tourbook/internal/repositories"
)

// recordingNotifier captures finance publications without touching the bus.
type recordingNotifier struct {
	sources []string
}

func (n *recordingNotifier) PublishFinanceUpdate(source string) {
	n.sources = append(n.sources, source)
}

func newMockDB(t *testing.T) (sqlmock.Sqlmock, func() repositories.BookingRepository, func() repositories.PackageRepository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)
	return mock,
		func() repositories.BookingRepository { return repositories.BookingRepository{DB: db} },
		func() repositories.PackageRepository { return repositories.PackageRepository{DB: db} }
}

func packageRows(price float64, maxTourist int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "start_date", "end_date", "price", "max_tourist", "currency", "images", "offer_id",
	}).AddRow(1, "Hill Country", "2026-10-01", "2026-10-05", price, maxTourist, "USD", `["a.jpg"]`, nil)
}

var bookingTestColumns = []string{
	"id", "user_id", "package_id", "qty", "status",
	"snapshot_name", "snapshot_start_date", "snapshot_end_date",
	"snapshot_price", "snapshot_max_tourist", "snapshot_images",
	"customer_first_name", "customer_last_name", "customer_email", "customer_country",
	"customer_phone_code", "customer_phone", "customer_paperless", "customer_work_trip", "customer_requests",
	"pricing_price", "pricing_qty", "pricing_subtotal", "pricing_service", "pricing_city_tax",
	"pricing_taxes", "pricing_total", "pricing_currency",
	"payment_brand", "payment_last4", "payment_exp_month", "payment_exp_year",
	"payment_save_card", "payment_promo_optin", "payment_status",
	"assigned_guide_id", "assigned_vehicle_ids", "assignment_notes", "assigned_at",
	"created_at",
}

func bookingRow(rows *sqlmock.Rows, id, userID int64, qty int, price float64) *sqlmock.Rows {
	return rows.AddRow(
		id, userID, 1, qty, models.BookingStatusCreated,
		"Hill Country", "2026-10-01", "2026-10-05",
		price, 10, `[]`,
		"Jo", "Doe", "jo@example.com", "LK",
		"+94", "0771234567", false, false, "",
		price, qty, price*float64(qty), price*float64(qty)*0.10, price*float64(qty)*0.01,
		price*float64(qty)*0.11, price*float64(qty)*1.11, "USD",
		"visa", "4242", 12, 2030,
		false, false, models.PaymentStatusPending,
		nil, `[]`, "", nil,
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	)
}

func validCreateInput() CreateBookingInput {
	return CreateBookingInput{
		PackageID: 1,
		Qty:       3,
		Customer: models.Customer{
			FirstName: "Jo", LastName: "Doe", Email: "Jo@Example.com", Country: "LK",
			PhoneCode: "+94", Phone: "0771234567",
		},
		Payment: models.PaymentStub{Brand: "visa", Last4: "4242", ExpMonth: 12, ExpYear: 2030},
	}
}

func TestCreateBookingPersistsAndNotifies(t *testing.T) {
	mock, bookings, packages := newMockDB(t)
	notifier := &recordingNotifier{}

	mock.ExpectQuery("FROM packages").WillReturnRows(packageRows(100, 10))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(42, 1))

	svc := BookingService{BookingRepo: bookings(), PackageRepo: packages(), Events: notifier}
	id, err := svc.Create(domain.RequestContext{UserID: 9, Role: "customer"}, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, domain.ID(42), id)
	assert.Equal(t, []string{"bookings"}, notifier.sources)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUnknownPackageIs404(t *testing.T) {
	mock, bookings, packages := newMockDB(t)

	mock.ExpectQuery("FROM packages").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := BookingService{BookingRepo: bookings(), PackageRepo: packages(), Events: &recordingNotifier{}}
	in := validCreateInput()
	in.PackageID = 99
	_, err := svc.Create(domain.RequestContext{UserID: 9}, in)
	assert.True(t, domain.IsNotFound(err))
}

func TestCreateBookingAccumulatesValidationErrors(t *testing.T) {
	mock, bookings, packages := newMockDB(t)
	notifier := &recordingNotifier{}

	mock.ExpectQuery("FROM packages").WillReturnRows(packageRows(100, 10))

	in := validCreateInput()
	in.Qty = 0
	in.Customer.Email = "broken"
	in.Payment.Brand = ""

	svc := BookingService{BookingRepo: bookings(), PackageRepo: packages(), Events: notifier}
	_, err := svc.Create(domain.RequestContext{UserID: 9}, in)

	fields, ok := domain.AsFieldErrors(err)
	require.True(t, ok, "expected accumulated field errors, got %v", err)
	assert.Contains(t, fields, "qty")
	assert.Contains(t, fields, "customer.email")
	assert.Contains(t, fields, "payment.brand")
	assert.Empty(t, notifier.sources)
}

func TestCreateBookingRejectsQtyOverCapacity(t *testing.T) {
	mock, bookings, packages := newMockDB(t)
	mock.ExpectQuery("FROM packages").WillReturnRows(packageRows(100, 4))

	in := validCreateInput()
	in.Qty = 5
	svc := BookingService{BookingRepo: bookings(), PackageRepo: packages(), Events: &recordingNotifier{}}
	_, err := svc.Create(domain.RequestContext{UserID: 9}, in)

	fields, ok := domain.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "qty")
}

func TestUpdateBookingQtyRepricesWholesale(t *testing.T) {
	mock, bookings, packages := newMockDB(t)
	notifier := &recordingNotifier{}

	mock.ExpectQuery("FROM bookings").
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingTestColumns), 5, 9, 2, 100))
	mock.ExpectQuery("FROM packages").WillReturnRows(packageRows(100, 10))
	// Derived tax floats carry accumulation noise; match them loosely.
	mock.ExpectExec("UPDATE bookings SET").
		WithArgs(3, 100.0, 3, 300.0, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "USD", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	qty := 3
	svc := BookingService{BookingRepo: bookings(), PackageRepo: packages(), Events: notifier}
	err := svc.Update(domain.RequestContext{UserID: 9, Role: "customer"}, 5, models.BookingPatch{Qty: &qty})
	require.NoError(t, err)
	assert.Equal(t, []string{"bookings"}, notifier.sources)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Patching qty to its current value recomputes the identical breakdown:
// the persisted total does not drift.
func TestUpdateBookingSameQtyKeepsTotal(t *testing.T) {
	mock, bookings, packages := newMockDB(t)

	q, err := pricing.Quote(100, 2)
	require.NoError(t, err)

	rows := sqlmock.NewRows(bookingTestColumns).AddRow(
		5, 9, 1, 2, models.BookingStatusCreated,
		"Hill Country", "2026-10-01", "2026-10-05",
		100.0, 10, `[]`,
		"Jo", "Doe", "jo@example.com", "LK",
		"+94", "0771234567", false, false, "",
		100.0, 2, q.Subtotal, q.Service, q.CityTax,
		q.Taxes, q.Total, "USD",
		"visa", "4242", 12, 2030,
		false, false, models.PaymentStatusPending,
		nil, `[]`, "", nil,
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	)
	mock.ExpectQuery("FROM bookings").WillReturnRows(rows)
	mock.ExpectQuery("FROM packages").WillReturnRows(packageRows(100, 10))
	mock.ExpectExec("UPDATE bookings SET").
		WithArgs(2, 100.0, 2, q.Subtotal, q.Service, q.CityTax, q.Taxes, q.Total, "USD", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	qty := 2
	svc := BookingService{BookingRepo: bookings(), PackageRepo: packages(), Events: &recordingNotifier{}}
	err = svc.Update(domain.RequestContext{UserID: 9, Role: "customer"}, 5, models.BookingPatch{Qty: &qty})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Repricing uses the unit price captured at creation, not the package's
// current price.
func TestUpdateBookingIgnoresLaterPackagePriceChange(t *testing.T) {
	mock, bookings, packages := newMockDB(t)

	mock.ExpectQuery("FROM bookings").
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingTestColumns), 5, 9, 2, 100))
	// Package price has since been raised to 250; only its capacity matters.
	mock.ExpectQuery("FROM packages").WillReturnRows(packageRows(250, 10))
	mock.ExpectExec("UPDATE bookings SET").
		WithArgs(3, 100.0, 3, 300.0, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "USD", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	qty := 3
	svc := BookingService{BookingRepo: bookings(), PackageRepo: packages(), Events: &recordingNotifier{}}
	err := svc.Update(domain.RequestContext{UserID: 9, Role: "customer"}, 5, models.BookingPatch{Qty: &qty})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingForbiddenForOtherUser(t *testing.T) {
	mock, bookings, packages := newMockDB(t)
	mock.ExpectQuery("FROM bookings").
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingTestColumns), 5, 9, 2, 100))

	qty := 3
	svc := BookingService{BookingRepo: bookings(), PackageRepo: packages(), Events: &recordingNotifier{}}
	err := svc.Update(domain.RequestContext{UserID: 777, Role: "customer"}, 5, models.BookingPatch{Qty: &qty})
	assert.True(t, domain.IsForbidden(err))
}

func TestGetBookingAdminBypassesOwnership(t *testing.T) {
	mock, bookings, packages := newMockDB(t)
	mock.ExpectQuery("FROM bookings").
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingTestColumns), 5, 9, 2, 100))

	svc := BookingService{BookingRepo: bookings(), PackageRepo: packages()}
	booking, err := svc.Get(domain.RequestContext{UserID: 1, Role: "admin"}, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.ID(9), booking.UserID)
}
