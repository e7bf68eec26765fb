package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
	"tourbook/internal/repositories"
)

func newAssignmentService(t *testing.T) (sqlmock.Sqlmock, *recordingNotifier, AssignmentService) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)

	notifier := &recordingNotifier{}
	svc := AssignmentService{
		BookingRepo:       repositories.BookingRepository{DB: db},
		CustomPackageRepo: repositories.CustomPackageRepository{DB: db},
		GuideRepo:         repositories.GuideRepository{DB: db},
		VehicleRepo:       repositories.VehicleRepository{DB: db},
		Events:            notifier,
	}
	return mock, notifier, svc
}

var admin = domain.RequestContext{UserID: 1, Role: "admin"}

// assignedBookingRow is a booking that already carries a guide and stamp.
func assignedBookingRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows(bookingTestColumns).AddRow(
		id, 9, 1, 2, models.BookingStatusCreated,
		"Hill Country", "2026-10-01", "2026-10-05",
		100.0, 10, `[]`,
		"Jo", "Doe", "jo@example.com", "LK",
		"+94", "0771234567", false, false, "",
		100.0, 2, 200.0, 20.0, 2.0,
		22.0, 222.0, "USD",
		"visa", "4242", 12, 2030,
		false, false, models.PaymentStatusPending,
		3, `[2]`, "", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	)
}

func TestAssignBookingUnknownGuideIs404(t *testing.T) {
	mock, notifier, svc := newAssignmentService(t)

	mock.ExpectQuery("FROM bookings").
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingTestColumns), 5, 9, 2, 100))
	mock.ExpectQuery("FROM guide_applications").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	guide := domain.ID(99)
	err := svc.UpdateBooking(admin, 5, models.AssignmentPatch{GuideID: &guide, GuideSet: true})
	assert.True(t, domain.IsNotFound(err))
	assert.Empty(t, notifier.sources)
}

func TestAssignBookingFiltersUnknownVehiclesAndStamps(t *testing.T) {
	mock, notifier, svc := newAssignmentService(t)

	mock.ExpectQuery("FROM bookings").
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingTestColumns), 5, 9, 2, 100))
	mock.ExpectQuery("SELECT id FROM vehicles").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectExec(`UPDATE bookings SET assigned_vehicle_ids=\?, assigned_at=COALESCE\(assigned_at, NOW\(\)\)`).
		WithArgs("[1,2]", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	vehicles := []domain.ID{1, 2, 99}
	err := svc.UpdateBooking(admin, 5, models.AssignmentPatch{VehicleIDs: &vehicles})
	require.NoError(t, err)
	assert.Equal(t, []string{"bookings"}, notifier.sources)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearGuideKeepsExistingStamp(t *testing.T) {
	mock, _, svc := newAssignmentService(t)

	mock.ExpectQuery("FROM bookings").WillReturnRows(assignedBookingRow(5))
	// no COALESCE clause: the stamp survives the clear untouched
	mock.ExpectExec(`UPDATE bookings SET assigned_guide_id=NULL WHERE id=\?`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.UpdateBooking(admin, 5, models.AssignmentPatch{GuideID: nil, GuideSet: true})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignBookingRequiresAdmin(t *testing.T) {
	_, _, svc := newAssignmentService(t)
	guide := domain.ID(3)
	err := svc.UpdateBooking(domain.RequestContext{UserID: 9, Role: "customer"}, 5,
		models.AssignmentPatch{GuideID: &guide, GuideSet: true})
	assert.True(t, domain.IsForbidden(err))
}

func customPackageRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "full_name", "email", "phone", "country", "travellers",
		"preferred_start", "preferred_end", "destinations", "duration_days", "status",
		"assigned_guide_id", "assigned_vehicle_ids", "assignment_notes", "assigned_at",
		"created_at",
	}).AddRow(
		7, "Jo Doe", "jo@example.com", "0771234567", "LK", 2,
		"2026-11-01", "2026-11-05", "Kandy, Ella", 5, status,
		nil, `[]`, "", nil,
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	)
}

func TestAssignCustomPackageDerivesAssignedStatus(t *testing.T) {
	mock, notifier, svc := newAssignmentService(t)

	mock.ExpectQuery("FROM custom_packages").WillReturnRows(customPackageRow("pending"))
	mock.ExpectQuery("FROM guide_applications").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "languages", "experience_years"}).
			AddRow(3, "Guide", "g@example.com", "0771234567", "en", 4))
	mock.ExpectExec("UPDATE custom_packages SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	guide := domain.ID(3)
	err := svc.UpdateCustomPackage(admin, 7, models.AssignmentPatch{GuideID: &guide, GuideSet: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"custom_packages"}, notifier.sources)
}

func TestAvailableExcludesHeldGuidesAndVehicles(t *testing.T) {
	mock, _, svc := newAssignmentService(t)

	assignmentCols := []string{"assigned_guide_id", "assigned_vehicle_ids", "start_date", "end_date"}
	mock.ExpectQuery("FROM bookings").
		WillReturnRows(sqlmock.NewRows(assignmentCols).AddRow(1, `[2]`, "2026-10-01", "2026-10-05"))
	mock.ExpectQuery("FROM custom_packages").
		WillReturnRows(sqlmock.NewRows(assignmentCols))
	mock.ExpectQuery("FROM guide_applications").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "languages", "experience_years"}).
			AddRow(1, "Held", "h@example.com", "0771234567", "en", 3).
			AddRow(2, "Free", "f@example.com", "0771234568", "en,de", 5))
	mock.ExpectQuery("FROM vehicles").
		WillReturnRows(sqlmock.NewRows([]string{"id", "plate_no", "vehicle_type", "capacity", "model"}).
			AddRow(2, "AB-1234", "van", 12, "Hiace").
			AddRow(3, "AB-5678", "bus", 30, "Rosa"))

	out, err := svc.Available(admin, "2026-10-02", "2026-10-04")
	require.NoError(t, err)
	require.Len(t, out.Guides, 1)
	assert.Equal(t, domain.ID(2), out.Guides[0].ID)
	require.Len(t, out.Vehicles, 1)
	assert.Equal(t, domain.ID(3), out.Vehicles[0].ID)
}
