package models

import "tourbook/internal/domain"

const (
	ComponentEarning   = "earning"
	ComponentDeduction = "deduction"
)

// SalaryComponent is one earning or deduction line. Amount is a fixed
// contribution; PercentOfBase adds base*pct/100 on top of it.
type SalaryComponent struct {
	ID            domain.ID `json:"id"`
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	Amount        float64   `json:"amount"`
	PercentOfBase float64   `json:"percent_of_base"`
}

func (c SalaryComponent) contribution(base float64) float64 {
	v := c.Amount + base*c.PercentOfBase/100
	if c.Type == ComponentDeduction {
		return -v
	}
	return v
}

// Salary is a recurring compensation record for an employee. The interval
// is open-ended when EffectiveTo is nil.
type Salary struct {
	ID            domain.ID         `json:"id"`
	EmployeeID    domain.ID         `json:"employee_id"`
	Currency      string            `json:"currency"`
	Base          float64           `json:"base"`
	EffectiveFrom string            `json:"effective_from"`
	EffectiveTo   *string           `json:"effective_to"`
	Notes         string            `json:"notes"`
	Components    []SalaryComponent `json:"components"`
}

// MonthlyAmount derives the point-in-time monthly figure: base plus all
// component contributions, clamped at zero. No accrual or prorating.
func (s Salary) MonthlyAmount() float64 {
	return monthlyAmount(s.Base, s.Components)
}

// VehicleSalary is the vehicle counterpart of Salary (lease/retainer style
// compensation keyed by vehicle instead of employee).
type VehicleSalary struct {
	ID            domain.ID         `json:"id"`
	VehicleID     domain.ID         `json:"vehicle_id"`
	Currency      string            `json:"currency"`
	Base          float64           `json:"base"`
	EffectiveFrom string            `json:"effective_from"`
	EffectiveTo   *string           `json:"effective_to"`
	Notes         string            `json:"notes"`
	Components    []SalaryComponent `json:"components"`
}

func (s VehicleSalary) MonthlyAmount() float64 {
	return monthlyAmount(s.Base, s.Components)
}

func monthlyAmount(base float64, components []SalaryComponent) float64 {
	total := base
	for _, c := range components {
		total += c.contribution(base)
	}
	if total < 0 {
		return 0
	}
	return total
}
