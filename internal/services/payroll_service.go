package services

import (
	"database/sql"
	"errors"
	"fmt"

	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
	"tourbook/internal/events"
	"tourbook/internal/repositories"
	"tourbook/internal/utils"
)

type PayrollService struct {
	SalaryRepo        repositories.SalaryRepository
	VehicleSalaryRepo repositories.VehicleSalaryRepository
	EmployeeRepo      repositories.EmployeeRepository
	VehicleRepo       repositories.VehicleRepository
	RequestID         string
	Events            Notifier
}

func (s PayrollService) notify(source string) {
	if s.Events != nil {
		s.Events.PublishFinanceUpdate(source)
		return
	}
	events.PublishFinanceUpdate(source)
}

func (s PayrollService) ListSalaries() ([]models.Salary, error) {
	out, err := s.SalaryRepo.List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s PayrollService) CreateSalary(sal models.Salary) (domain.ID, error) {
	if errs := ValidateSalary(sal); errs.HasErrors() {
		return 0, errs
	}
	if _, err := s.EmployeeRepo.GetByID(sal.EmployeeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "employee", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}
	id, err := s.SalaryRepo.Insert(sal)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "payroll", "create_salary", fmt.Sprintf("salary_id=%d employee_id=%d", id, sal.EmployeeID))
	s.notify("salaries")
	return id, nil
}

func (s PayrollService) UpdateSalary(sal models.Salary) error {
	if errs := ValidateSalary(sal); errs.HasErrors() {
		return errs
	}
	if err := s.SalaryRepo.Update(sal); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "salary", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "payroll", "update_salary", fmt.Sprintf("salary_id=%d", sal.ID))
	s.notify("salaries")
	return nil
}

func (s PayrollService) DeleteSalary(id domain.ID) error {
	if err := s.SalaryRepo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "salary", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "payroll", "delete_salary", fmt.Sprintf("salary_id=%d", id))
	s.notify("salaries")
	return nil
}

func (s PayrollService) ListVehicleSalaries() ([]models.VehicleSalary, error) {
	out, err := s.VehicleSalaryRepo.List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s PayrollService) CreateVehicleSalary(vs models.VehicleSalary) (domain.ID, error) {
	if errs := ValidateVehicleSalary(vs); errs.HasErrors() {
		return 0, errs
	}
	if _, err := s.VehicleRepo.GetByID(vs.VehicleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "vehicle", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}
	id, err := s.VehicleSalaryRepo.Insert(vs)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "payroll", "create_vehicle_salary", fmt.Sprintf("vehicle_salary_id=%d vehicle_id=%d", id, vs.VehicleID))
	s.notify("vehicle_salaries")
	return id, nil
}

func (s PayrollService) UpdateVehicleSalary(vs models.VehicleSalary) error {
	if errs := ValidateVehicleSalary(vs); errs.HasErrors() {
		return errs
	}
	if err := s.VehicleSalaryRepo.Update(vs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "vehicle salary", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "payroll", "update_vehicle_salary", fmt.Sprintf("vehicle_salary_id=%d", vs.ID))
	s.notify("vehicle_salaries")
	return nil
}

func (s PayrollService) DeleteVehicleSalary(id domain.ID) error {
	if err := s.VehicleSalaryRepo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "vehicle salary", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "payroll", "delete_vehicle_salary", fmt.Sprintf("vehicle_salary_id=%d", id))
	s.notify("vehicle_salaries")
	return nil
}
