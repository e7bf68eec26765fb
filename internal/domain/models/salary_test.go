package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthlyAmountCombinesComponents(t *testing.T) {
	s := Salary{
		Base: 1000,
		Components: []SalaryComponent{
			{Type: ComponentEarning, Name: "allowance", Amount: 200},
			{Type: ComponentDeduction, Name: "tax", PercentOfBase: 10},
		},
	}
	// 1000 + 200 - 100
	assert.InDelta(t, 1100, s.MonthlyAmount(), 1e-9)
}

func TestMonthlyAmountPercentAndFixedStack(t *testing.T) {
	s := VehicleSalary{
		Base: 500,
		Components: []SalaryComponent{
			{Type: ComponentEarning, Amount: 50, PercentOfBase: 20},
		},
	}
	// 500 + (50 + 100)
	assert.InDelta(t, 650, s.MonthlyAmount(), 1e-9)
}

func TestMonthlyAmountClampsAtZero(t *testing.T) {
	s := Salary{
		Base: 100,
		Components: []SalaryComponent{
			{Type: ComponentDeduction, Amount: 500},
		},
	}
	assert.Equal(t, 0.0, s.MonthlyAmount())
}

func TestMonthlyAmountBaseOnly(t *testing.T) {
	s := Salary{Base: 1234.5}
	assert.InDelta(t, 1234.5, s.MonthlyAmount(), 1e-9)
}
