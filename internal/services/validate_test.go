package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tourbook/internal/domain/models"
)

func TestValidateCustomerAccumulatesAllFailures(t *testing.T) {
	errs := ValidateCustomer(models.Customer{
		FirstName: "",
		LastName:  "",
		Email:     "not-an-email",
		Country:   "",
		PhoneCode: "+1",
		Phone:     "12",
	})
	assert.Len(t, errs, 5)
	assert.Contains(t, errs, "customer.first_name")
	assert.Contains(t, errs, "customer.last_name")
	assert.Contains(t, errs, "customer.email")
	assert.Contains(t, errs, "customer.country")
	assert.Contains(t, errs, "customer.phone")
}

func TestValidateCustomerPhoneCountsDialCodeDigits(t *testing.T) {
	errs := ValidateCustomer(models.Customer{
		FirstName: "A", LastName: "B", Email: "a@b.com", Country: "LK",
		PhoneCode: "+94", Phone: "771", // 5 digits total
	})
	assert.Contains(t, errs, "customer.phone")

	errs = ValidateCustomer(models.Customer{
		FirstName: "A", LastName: "B", Email: "a@b.com", Country: "LK",
		PhoneCode: "+94", Phone: "7712", // 6 digits total
	})
	assert.NotContains(t, errs, "customer.phone")
}

func TestValidateQtyDefaultsCapacityToTen(t *testing.T) {
	assert.Empty(t, ValidateQty(10, 0))
	assert.Contains(t, ValidateQty(11, 0), "qty")
	assert.Contains(t, ValidateQty(0, 0), "qty")
	assert.Empty(t, ValidateQty(15, 20))
}

func TestValidatePaymentRejectsExpiredCard(t *testing.T) {
	errs := ValidatePayment(models.PaymentStub{
		Brand: "visa", Last4: "4242", ExpMonth: 6, ExpYear: 2001,
	})
	assert.Contains(t, errs, "payment.exp_year")
	assert.NotContains(t, errs, "payment.last4")
}

func TestValidateDriverFormats(t *testing.T) {
	errs := ValidateDriver(models.Driver{
		Name: "Nimal", NIC: "923456789V", LicenseNo: "B1234567", Phone: "0771234567",
	})
	assert.Empty(t, errs)

	errs = ValidateDriver(models.Driver{
		Name: "Nimal", NIC: "12345", LicenseNo: "x", Phone: "077",
	})
	assert.Contains(t, errs, "nic")
	assert.Contains(t, errs, "license_no")
	assert.Contains(t, errs, "phone")
}

func TestValidateVehiclePlate(t *testing.T) {
	assert.Empty(t, ValidateVehicle(models.Vehicle{PlateNo: "AB-1234", Type: "van", Capacity: 12}))
	assert.Contains(t, ValidateVehicle(models.Vehicle{PlateNo: "1234", Type: "van", Capacity: 12}), "plate_no")
	assert.Contains(t, ValidateVehicle(models.Vehicle{PlateNo: "AB-1234", Type: "hovercraft", Capacity: 12}), "type")
}

func TestValidateCustomPackageDateOrdering(t *testing.T) {
	errs := ValidateCustomPackage(models.CustomPackage{
		FullName: "Jo Doe", Email: "jo@example.com", Phone: "0771234567", Country: "LK",
		Travellers: 2, DurationDays: 3,
		PreferredStart: "2030-05-10", PreferredEnd: "2030-05-01",
	})
	assert.Contains(t, errs, "preferred_end")
	assert.NotContains(t, errs, "preferred_start")
}

func TestValidateSalaryComponentTypes(t *testing.T) {
	errs := ValidateSalary(models.Salary{
		EmployeeID: 1, Base: 1000, EffectiveFrom: "2026-01-01",
		Components: []models.SalaryComponent{{Type: "bonus"}},
	})
	assert.Contains(t, errs, "components")

	errs = ValidateSalary(models.Salary{
		EmployeeID: 1, Base: 1000, EffectiveFrom: "2026-01-01",
		Components: []models.SalaryComponent{{Type: models.ComponentEarning}},
	})
	assert.Empty(t, errs)
}
