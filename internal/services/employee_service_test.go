package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
	"tourbook/internal/repositories"
)

func newEmployeeService(t *testing.T) (sqlmock.Sqlmock, EmployeeService) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)

	return mock, EmployeeService{
		EmployeeRepo: repositories.EmployeeRepository{DB: db},
		DriverRepo:   repositories.DriverRepository{DB: db},
		GuideRepo:    repositories.GuideRepository{DB: db},
	}
}

var employeeCols = []string{"id", "emp_type", "name", "phone", "code", "source_type", "source_id"}

func TestResolveReturnsExistingEmployee(t *testing.T) {
	mock, svc := newEmployeeService(t)

	mock.ExpectQuery("FROM employees").
		WillReturnRows(sqlmock.NewRows(employeeCols).
			AddRow(4, "driver", "Nimal", "0771234567", "B1234567", "driver", 2))

	emp, err := svc.Resolve(4, models.EmployeeTypeDriver)
	require.NoError(t, err)
	assert.Equal(t, domain.ID(4), emp.ID)
	assert.Equal(t, "Nimal", emp.Name)
}

func TestResolveMaterializesDriver(t *testing.T) {
	mock, svc := newEmployeeService(t)

	mock.ExpectQuery("FROM employees").
		WillReturnRows(sqlmock.NewRows(employeeCols))
	mock.ExpectQuery("FROM drivers").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "nic", "license_no", "phone"}).
			AddRow(2, "Nimal", "923456789V", "B1234567", "0771234567"))
	mock.ExpectExec("INSERT INTO employees").
		WithArgs("driver", "Nimal", "0771234567", "B1234567", "driver", 2).
		WillReturnResult(sqlmock.NewResult(11, 1))

	emp, err := svc.Resolve(2, models.EmployeeTypeDriver)
	require.NoError(t, err)
	assert.Equal(t, domain.ID(11), emp.ID)
	assert.Equal(t, "B1234567", emp.Code)
	assert.Equal(t, domain.ID(2), emp.SourceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveMaterializesGuideWithGeneratedCode(t *testing.T) {
	mock, svc := newEmployeeService(t)

	mock.ExpectQuery("FROM employees").
		WillReturnRows(sqlmock.NewRows(employeeCols))
	mock.ExpectQuery("FROM guide_applications").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "languages", "experience_years"}).
			AddRow(7, "Saman", "s@example.com", "0771234568", "en,de", 6))
	mock.ExpectExec("INSERT INTO employees").
		WithArgs("guide", "Saman", "0771234568", "G-0007", "guide", 7).
		WillReturnResult(sqlmock.NewResult(12, 1))

	emp, err := svc.Resolve(7, models.EmployeeTypeGuide)
	require.NoError(t, err)
	assert.Equal(t, "G-0007", emp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Repeated resolution of the same raw ID creates a second employee row;
// source references do not deduplicate.
func TestResolveTwiceCreatesDuplicateEmployees(t *testing.T) {
	mock, svc := newEmployeeService(t)

	for i := 0; i < 2; i++ {
		mock.ExpectQuery("FROM employees").
			WillReturnRows(sqlmock.NewRows(employeeCols))
		mock.ExpectQuery("FROM drivers").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "nic", "license_no", "phone"}).
				AddRow(2, "Nimal", "923456789V", "B1234567", "0771234567"))
		mock.ExpectExec("INSERT INTO employees").
			WillReturnResult(sqlmock.NewResult(int64(11+i), 1))
	}

	first, err := svc.Resolve(2, models.EmployeeTypeDriver)
	require.NoError(t, err)
	second, err := svc.Resolve(2, models.EmployeeTypeDriver)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.SourceID, second.SourceID)
}

func TestResolveUnknownSourceIs404(t *testing.T) {
	mock, svc := newEmployeeService(t)

	mock.ExpectQuery("FROM employees").
		WillReturnRows(sqlmock.NewRows(employeeCols))
	mock.ExpectQuery("FROM drivers").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Resolve(99, models.EmployeeTypeDriver)
	assert.True(t, domain.IsNotFound(err))
}
