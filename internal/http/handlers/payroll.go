package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
	"tourbook/internal/http/middleware"
	"tourbook/internal/repositories"
	"tourbook/internal/services"
)

func payrollService(c *gin.Context) services.PayrollService {
	return services.PayrollService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/payroll/salaries (admin)
func GetSalaries(c *gin.Context) {
	out, err := payrollService(c).ListSalaries()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"salaries": out})
}

// POST /api/payroll/salaries (admin)
func CreateSalary(c *gin.Context) {
	var sal models.Salary
	if !BindJSONOrError(c, &sal) {
		return
	}
	id, err := payrollService(c).CreateSalary(sal)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/payroll/salaries/:id (admin)
func UpdateSalary(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var sal models.Salary
	if !BindJSONOrError(c, &sal) {
		return
	}
	sal.ID = id
	if err := payrollService(c).UpdateSalary(sal); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/payroll/salaries/:id (admin)
func DeleteSalary(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := payrollService(c).DeleteSalary(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/payroll/vehicle-salaries (admin)
func GetVehicleSalaries(c *gin.Context) {
	out, err := payrollService(c).ListVehicleSalaries()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle_salaries": out})
}

// POST /api/payroll/vehicle-salaries (admin)
func CreateVehicleSalary(c *gin.Context) {
	var vs models.VehicleSalary
	if !BindJSONOrError(c, &vs) {
		return
	}
	id, err := payrollService(c).CreateVehicleSalary(vs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/payroll/vehicle-salaries/:id (admin)
func UpdateVehicleSalary(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var vs models.VehicleSalary
	if !BindJSONOrError(c, &vs) {
		return
	}
	vs.ID = id
	if err := payrollService(c).UpdateVehicleSalary(vs); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/payroll/vehicle-salaries/:id (admin)
func DeleteVehicleSalary(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := payrollService(c).DeleteVehicleSalary(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/payroll/employees (admin)
func GetEmployees(c *gin.Context) {
	out, err := repositories.EmployeeRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": out})
}

type resolveEmployeeRequest struct {
	ID         domain.ID `json:"id"`
	SourceType string    `json:"source_type"`
}

// POST /api/payroll/employees/resolve (admin)
func ResolveEmployee(c *gin.Context) {
	var req resolveEmployeeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.EmployeeService{RequestID: middleware.GetRequestID(c)}
	emp, err := svc.Resolve(req.ID, req.SourceType)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": emp})
}
