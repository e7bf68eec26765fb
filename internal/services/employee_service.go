package services

import (
	"database/sql"
	"errors"
	"fmt"

	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
	"tourbook/internal/repositories"
	"tourbook/internal/utils"
)

// EmployeeService materializes payroll Employee records from the Driver and
// GuideApplication registries on first use.
type EmployeeService struct {
	EmployeeRepo repositories.EmployeeRepository
	DriverRepo   repositories.DriverRepository
	GuideRepo    repositories.GuideRepository
	RequestID    string
}

// Resolve tries the ID as an Employee first, then falls back to treating it
// as a raw Driver or GuideApplication ID (disambiguated by sourceType) and
// creates a new Employee projected from the source record. There is no
// dedup on the stored source reference: resolving the same raw ID twice
// creates two Employee rows.
func (s EmployeeService) Resolve(id domain.ID, sourceType string) (models.Employee, error) {
	if id <= 0 {
		return models.Employee{}, domain.ValidationError{Field: "id", Msg: "id is required"}
	}

	emp, err := s.EmployeeRepo.GetByID(id)
	if err == nil {
		return emp, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Employee{}, domain.InternalError{Err: err}
	}

	switch sourceType {
	case models.EmployeeTypeDriver:
		driver, err := s.DriverRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.Employee{}, domain.NotFoundError{Resource: "employee", Err: err}
			}
			return models.Employee{}, domain.InternalError{Err: err}
		}
		emp = models.Employee{
			Type:       models.EmployeeTypeDriver,
			Name:       driver.Name,
			Phone:      driver.Phone,
			Code:       driver.LicenseNo,
			SourceType: models.EmployeeTypeDriver,
			SourceID:   driver.ID,
		}
	case models.EmployeeTypeGuide:
		guide, err := s.GuideRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.Employee{}, domain.NotFoundError{Resource: "employee", Err: err}
			}
			return models.Employee{}, domain.InternalError{Err: err}
		}
		emp = models.Employee{
			Type:       models.EmployeeTypeGuide,
			Name:       guide.Name,
			Phone:      guide.Phone,
			Code:       fmt.Sprintf("G-%04d", guide.ID),
			SourceType: models.EmployeeTypeGuide,
			SourceID:   guide.ID,
		}
	default:
		return models.Employee{}, domain.NotFoundError{Resource: "employee"}
	}

	newID, err := s.EmployeeRepo.Insert(emp)
	if err != nil {
		return models.Employee{}, domain.InternalError{Err: err}
	}
	emp.ID = newID

	utils.LogEvent(s.RequestID, "payroll", "materialize_employee",
		fmt.Sprintf("employee_id=%d source_type=%s source_id=%d", newID, emp.SourceType, emp.SourceID))
	return emp, nil
}
