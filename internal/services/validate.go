package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"tourbook/internal/domain"
	"tourbook/internal/domain/models"
	"tourbook/internal/utils"
)

// One validator instance per process; only stateless tag checks are used.
var validate = validator.New()

var (
	nicRe     = regexp.MustCompile(`^(\d{9}[VXvx]|\d{12})$`)
	plateRe   = regexp.MustCompile(`^[A-Z]{2,3}-\d{4}$`)
	licenseRe = regexp.MustCompile(`^[A-Za-z0-9]{5,20}$`)
	phone10Re = regexp.MustCompile(`^\d{10}$`)
)

var vehicleTypes = map[string]bool{
	"car": true, "van": true, "bus": true, "suv": true, "jeep": true,
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// ValidateCustomer checks the embedded contact block of a booking. All bad
// fields are reported together, keyed in the "customer.*" namespace.
func ValidateCustomer(c models.Customer) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if strings.TrimSpace(c.FirstName) == "" {
		errs.Add("customer.first_name", "first name is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		errs.Add("customer.last_name", "last name is required")
	}
	if !validEmail(c.Email) {
		errs.Add("customer.email", "valid email is required")
	}
	if strings.TrimSpace(c.Country) == "" {
		errs.Add("customer.country", "country is required")
	}
	digits := utils.OnlyDigits(c.PhoneCode) + utils.OnlyDigits(c.Phone)
	if len(digits) < 6 || len(digits) > 15 {
		errs.Add("customer.phone", "phone must contain 6 to 15 digits including dial code")
	}
	return errs
}

// ValidatePayment checks the opaque card stub. The stub is stored as-is;
// nothing here talks to a gateway.
func ValidatePayment(p models.PaymentStub) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if strings.TrimSpace(p.Brand) == "" {
		errs.Add("payment.brand", "card brand is required")
	}
	if len(utils.OnlyDigits(p.Last4)) != 4 {
		errs.Add("payment.last4", "last 4 digits are required")
	}
	if p.ExpMonth < 1 || p.ExpMonth > 12 {
		errs.Add("payment.exp_month", "expiry month must be 1-12")
	}
	if p.ExpYear < time.Now().Year() {
		errs.Add("payment.exp_year", "card is expired")
	}
	return errs
}

func ValidateQty(qty, maxTourist int) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if maxTourist <= 0 {
		maxTourist = 10
	}
	if qty < 1 {
		errs.Add("qty", "qty must be at least 1")
	} else if qty > maxTourist {
		errs.Add("qty", "qty exceeds package capacity")
	}
	return errs
}

func ValidatePackage(p models.Package) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if strings.TrimSpace(p.Name) == "" {
		errs.Add("name", "name is required")
	}
	if p.Price < 0 {
		errs.Add("price", "price must not be negative")
	}
	if p.MaxTourist < 1 || p.MaxTourist > 500 {
		errs.Add("max_tourist", "capacity must be 1-500")
	}
	start, errStart := utils.ParseDate(p.StartDate)
	end, errEnd := utils.ParseDate(p.EndDate)
	if errStart != nil {
		errs.Add("start_date", "start date must be YYYY-MM-DD")
	}
	if errEnd != nil {
		errs.Add("end_date", "end date must be YYYY-MM-DD")
	}
	if errStart == nil && errEnd == nil && end.Before(start) {
		errs.Add("end_date", "end date must not be before start date")
	}
	return errs
}

func ValidateOffer(o models.Offer) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if strings.TrimSpace(o.Title) == "" {
		errs.Add("title", "title is required")
	}
	if o.DiscountPercent < 1 || o.DiscountPercent > 90 {
		errs.Add("discount_percent", "discount must be 1-90 percent")
	}
	from, errFrom := utils.ParseDate(o.ValidFrom)
	to, errTo := utils.ParseDate(o.ValidTo)
	if errFrom != nil {
		errs.Add("valid_from", "valid from must be YYYY-MM-DD")
	}
	if errTo != nil {
		errs.Add("valid_to", "valid to must be YYYY-MM-DD")
	}
	if errFrom == nil && errTo == nil && to.Before(from) {
		errs.Add("valid_to", "validity window must not end before it starts")
	}
	return errs
}

// ValidateDriver is shared by the create and update paths so the rules
// cannot drift apart.
func ValidateDriver(d models.Driver) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if strings.TrimSpace(d.Name) == "" {
		errs.Add("name", "name is required")
	}
	if !nicRe.MatchString(strings.TrimSpace(d.NIC)) {
		errs.Add("nic", "NIC must be 9 digits followed by V/X, or 12 digits")
	}
	if !licenseRe.MatchString(strings.TrimSpace(d.LicenseNo)) {
		errs.Add("license_no", "license must be 5-20 alphanumeric characters")
	}
	if !phone10Re.MatchString(utils.OnlyDigits(d.Phone)) {
		errs.Add("phone", "phone must contain exactly 10 digits")
	}
	return errs
}

func ValidateVehicle(v models.Vehicle) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if !plateRe.MatchString(strings.ToUpper(strings.TrimSpace(v.PlateNo))) {
		errs.Add("plate_no", "plate must look like AB-1234 or ABC-1234")
	}
	if !vehicleTypes[strings.ToLower(strings.TrimSpace(v.Type))] {
		errs.Add("type", "unknown vehicle type")
	}
	if v.Capacity < 1 || v.Capacity > 100 {
		errs.Add("capacity", "capacity must be 1-100")
	}
	return errs
}

func ValidateGuide(g models.GuideApplication) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if strings.TrimSpace(g.Name) == "" {
		errs.Add("name", "name is required")
	}
	if !validEmail(g.Email) {
		errs.Add("email", "valid email is required")
	}
	if !phone10Re.MatchString(utils.OnlyDigits(g.Phone)) {
		errs.Add("phone", "phone must contain exactly 10 digits")
	}
	if len(g.Languages) == 0 {
		errs.Add("languages", "at least one language is required")
	}
	if g.ExperienceYears < 0 || g.ExperienceYears > 60 {
		errs.Add("experience_years", "experience must be 0-60 years")
	}
	return errs
}

// ValidateCustomPackage checks a free-form trip request. Preferred dates
// must both be today or later and ordered.
func ValidateCustomPackage(cp models.CustomPackage) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if strings.TrimSpace(cp.FullName) == "" {
		errs.Add("full_name", "full name is required")
	}
	if !validEmail(cp.Email) {
		errs.Add("email", "valid email is required")
	}
	digits := utils.OnlyDigits(cp.Phone)
	if len(digits) < 6 || len(digits) > 15 {
		errs.Add("phone", "phone must contain 6 to 15 digits")
	}
	if strings.TrimSpace(cp.Country) == "" {
		errs.Add("country", "country is required")
	}
	if cp.Travellers < 1 {
		errs.Add("travellers", "at least one traveller is required")
	}
	if len(cp.Destinations) > 500 {
		errs.Add("destinations", "destinations must be 500 characters or fewer")
	}
	if cp.DurationDays < 1 {
		errs.Add("duration_days", "duration must be at least one day")
	}

	today := utils.StartOfDay(time.Now())
	start, errStart := utils.ParseDate(cp.PreferredStart)
	end, errEnd := utils.ParseDate(cp.PreferredEnd)
	if errStart != nil {
		errs.Add("preferred_start", "start date must be YYYY-MM-DD")
	} else if start.Before(today) {
		errs.Add("preferred_start", "start date must not be in the past")
	}
	if errEnd != nil {
		errs.Add("preferred_end", "end date must be YYYY-MM-DD")
	} else if end.Before(today) {
		errs.Add("preferred_end", "end date must not be in the past")
	}
	if errStart == nil && errEnd == nil && end.Before(start) {
		errs.Add("preferred_end", "end date must not be before start date")
	}
	return errs
}

func validateSalaryCore(base float64, effectiveFrom string, effectiveTo *string, components []models.SalaryComponent) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if base < 0 {
		errs.Add("base", "base must not be negative")
	}
	from, errFrom := utils.ParseDate(effectiveFrom)
	if errFrom != nil {
		errs.Add("effective_from", "effective from must be YYYY-MM-DD")
	}
	if effectiveTo != nil {
		to, errTo := utils.ParseDate(*effectiveTo)
		if errTo != nil {
			errs.Add("effective_to", "effective to must be YYYY-MM-DD")
		} else if errFrom == nil && to.Before(from) {
			errs.Add("effective_to", "effective to must not be before effective from")
		}
	}
	for _, c := range components {
		if c.Type != models.ComponentEarning && c.Type != models.ComponentDeduction {
			errs.Add("components", "component type must be earning or deduction")
			break
		}
	}
	return errs
}

func ValidateSalary(s models.Salary) domain.FieldErrors {
	errs := validateSalaryCore(s.Base, s.EffectiveFrom, s.EffectiveTo, s.Components)
	if s.EmployeeID <= 0 {
		errs.Add("employee_id", "employee is required")
	}
	return errs
}

func ValidateVehicleSalary(s models.VehicleSalary) domain.FieldErrors {
	errs := validateSalaryCore(s.Base, s.EffectiveFrom, s.EffectiveTo, s.Components)
	if s.VehicleID <= 0 {
		errs.Add("vehicle_id", "vehicle is required")
	}
	return errs
}
