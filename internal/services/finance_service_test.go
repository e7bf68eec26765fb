package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/internal/repositories"
)

func newFinanceService(t *testing.T) (sqlmock.Sqlmock, FinanceService) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)

	return mock, FinanceService{
		BookingRepo:       repositories.BookingRepository{DB: db},
		SalaryRepo:        repositories.SalaryRepository{DB: db},
		VehicleSalaryRepo: repositories.VehicleSalaryRepository{DB: db},
		EmployeeRepo:      repositories.EmployeeRepository{DB: db},
		VehicleRepo:       repositories.VehicleRepository{DB: db},
	}
}

var salaryCols = []string{"id", "employee_id", "currency", "base", "effective_from", "effective_to", "notes"}
var componentCols = []string{"id", "comp_type", "name", "amount", "percent_of_base"}

func TestFinanceSummaryAggregatesWindow(t *testing.T) {
	mock, svc := newFinanceService(t)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// Default window filters to confirmed bookings only.
	mock.ExpectQuery("SELECT created_at, pricing_total FROM bookings").
		WithArgs(from, to, "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "pricing_total"}).
			AddRow(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), 333.0))

	mock.ExpectQuery("FROM salaries").
		WillReturnRows(sqlmock.NewRows(salaryCols).
			AddRow(1, 4, "USD", 1000.0, "2026-01-01", nil, ""))
	mock.ExpectQuery("FROM salary_components").
		WillReturnRows(sqlmock.NewRows(componentCols).
			AddRow(1, "earning", "allowance", 200.0, 0.0).
			AddRow(2, "deduction", "tax", 0.0, 10.0))
	mock.ExpectQuery("FROM vehicle_salaries").
		WillReturnRows(sqlmock.NewRows(salaryCols))

	out, err := svc.Summary(&from, &to)
	require.NoError(t, err)

	assert.InDelta(t, 333.0, out.Summary.TotalIncome, 1e-9)
	assert.InDelta(t, 1100.0, out.Summary.TotalExpenses, 1e-9)
	assert.InDelta(t, -767.0, out.Summary.TotalBalance, 1e-9)

	// Two calendar days, zero-filled income, evenly spread expenses.
	require.Len(t, out.Charts.IncomeSeries, 2)
	assert.Equal(t, "2026-03-01", out.Charts.IncomeSeries[0].Date)
	assert.InDelta(t, 333.0, out.Charts.IncomeSeries[0].Amount, 1e-9)
	assert.Equal(t, "2026-03-02", out.Charts.IncomeSeries[1].Date)
	assert.Equal(t, 0.0, out.Charts.IncomeSeries[1].Amount)

	require.Len(t, out.Charts.ExpenseSeries, 2)
	assert.InDelta(t, 550.0, out.Charts.ExpenseSeries[0].Amount, 1e-9)
	assert.InDelta(t, 550.0, out.Charts.ExpenseSeries[1].Amount, 1e-9)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinanceSummaryAllTimeCountsEveryStatus(t *testing.T) {
	mock, svc := newFinanceService(t)

	from := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// No status argument: created and cancelled bookings count too.
	mock.ExpectQuery("SELECT created_at, pricing_total FROM bookings").
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "pricing_total"}).
			AddRow(time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC), 100.0).
			AddRow(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 200.0))
	mock.ExpectQuery("FROM salaries").WillReturnRows(sqlmock.NewRows(salaryCols))
	mock.ExpectQuery("FROM vehicle_salaries").WillReturnRows(sqlmock.NewRows(salaryCols))

	out, err := svc.Summary(&from, &to)
	require.NoError(t, err)
	assert.InDelta(t, 300.0, out.Summary.TotalIncome, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinanceSummaryRejectsInvertedWindow(t *testing.T) {
	_, svc := newFinanceService(t)

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Summary(&from, &to)
	assert.Error(t, err)
}

func TestFinanceExpensesListsSalaryLines(t *testing.T) {
	mock, svc := newFinanceService(t)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM salaries").
		WillReturnRows(sqlmock.NewRows(salaryCols).
			AddRow(1, 4, "USD", 1000.0, "2026-01-01", nil, ""))
	mock.ExpectQuery("FROM salary_components").
		WillReturnRows(sqlmock.NewRows(componentCols))
	mock.ExpectQuery("FROM vehicle_salaries").
		WillReturnRows(sqlmock.NewRows(salaryCols).
			AddRow(2, 8, "USD", 400.0, "2026-01-01", nil, ""))
	mock.ExpectQuery("FROM vehicle_salary_components").
		WillReturnRows(sqlmock.NewRows(componentCols))
	mock.ExpectQuery("FROM employees").
		WillReturnRows(sqlmock.NewRows([]string{"id", "emp_type", "name", "phone", "code", "source_type", "source_id"}).
			AddRow(4, "driver", "Nimal", "0771234567", "B1234567", "driver", 4))
	mock.ExpectQuery("FROM vehicles").
		WillReturnRows(sqlmock.NewRows([]string{"id", "plate_no", "vehicle_type", "capacity", "model"}).
			AddRow(8, "AB-1234", "van", 12, "Hiace"))

	out, err := svc.Expenses(&from, &to)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "salary", out[0].Kind)
	assert.Equal(t, "Nimal", out[0].Name)
	assert.InDelta(t, 1000.0, out[0].MonthlyAmount, 1e-9)
	assert.Equal(t, "vehicle_salary", out[1].Kind)
	assert.Equal(t, "AB-1234", out[1].Name)
	assert.InDelta(t, 400.0, out[1].MonthlyAmount, 1e-9)
}
