package services

import (
	"fmt"
	"time"

	"tourbook/internal/domain"
	"tourbook/internal/repositories"
	"tourbook/internal/utils"
)

// FinanceService recomputes the income/expense report from persisted
// bookings and salaries on every call. No caching.
type FinanceService struct {
	BookingRepo       repositories.BookingRepository
	SalaryRepo        repositories.SalaryRepository
	VehicleSalaryRepo repositories.VehicleSalaryRepository
	EmployeeRepo      repositories.EmployeeRepository
	VehicleRepo       repositories.VehicleRepository
	RequestID         string
}

type SeriesPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type FinanceTotals struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	TotalBalance  float64 `json:"totalBalance"`
}

type FinanceCharts struct {
	IncomeSeries  []SeriesPoint `json:"incomeSeries"`
	ExpenseSeries []SeriesPoint `json:"expenseSeries"`
}

type FinanceSummary struct {
	Summary FinanceTotals `json:"summary"`
	Charts  FinanceCharts `json:"charts"`
}

// resolveWindow fills defaults: first day of the current month through now.
func resolveWindow(from, to *time.Time) (time.Time, time.Time) {
	now := time.Now()
	start := utils.FirstOfMonth(now)
	end := now
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	return start, end
}

// Summary builds the aggregated report for [from, to]. A from year at or
// before 1970 switches to all-time mode, which counts bookings of every
// status; otherwise only confirmed bookings contribute to income.
func (s FinanceService) Summary(from, to *time.Time) (FinanceSummary, error) {
	start, end := resolveWindow(from, to)
	if end.Before(start) {
		return FinanceSummary{}, domain.ValidationError{Field: "to", Msg: "window must not end before it starts"}
	}
	allTime := start.Year() <= 1970

	incomeRows, err := s.BookingRepo.ListIncomeBetween(start, end, !allTime)
	if err != nil {
		return FinanceSummary{}, domain.InternalError{Err: err}
	}

	days := enumerateDays(start, end)
	incomeByDay := make(map[string]float64, len(days))
	totalIncome := 0.0
	for _, row := range incomeRows {
		day := utils.FormatDate(row.CreatedAt)
		incomeByDay[day] += row.Total
		totalIncome += row.Total
	}

	totalExpenses, err := s.totalExpenses(start, end)
	if err != nil {
		return FinanceSummary{}, err
	}

	// The expense total is spread evenly per day purely for charting; it
	// is not a real daily expense ledger.
	perDay := 0.0
	if len(days) > 0 {
		perDay = totalExpenses / float64(len(days))
	}

	charts := FinanceCharts{
		IncomeSeries:  make([]SeriesPoint, 0, len(days)),
		ExpenseSeries: make([]SeriesPoint, 0, len(days)),
	}
	for _, day := range days {
		charts.IncomeSeries = append(charts.IncomeSeries, SeriesPoint{Date: day, Amount: incomeByDay[day]})
		charts.ExpenseSeries = append(charts.ExpenseSeries, SeriesPoint{Date: day, Amount: perDay})
	}

	utils.LogEvent(s.RequestID, "finance", "summary",
		fmt.Sprintf("from=%s to=%s all_time=%t income=%s expenses=%s",
			utils.FormatDate(start), utils.FormatDate(end), allTime,
			utils.FormatMoney(totalIncome), utils.FormatMoney(totalExpenses)))

	return FinanceSummary{
		Summary: FinanceTotals{
			TotalIncome:   totalIncome,
			TotalExpenses: totalExpenses,
			TotalBalance:  totalIncome - totalExpenses,
		},
		Charts: charts,
	}, nil
}

func (s FinanceService) totalExpenses(start, end time.Time) (float64, error) {
	salaries, err := s.SalaryRepo.ListOverlapping(start, end)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	vehicleSalaries, err := s.VehicleSalaryRepo.ListOverlapping(start, end)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}

	total := 0.0
	for _, sal := range salaries {
		total += sal.MonthlyAmount()
	}
	for _, vs := range vehicleSalaries {
		total += vs.MonthlyAmount()
	}
	return total, nil
}

// enumerateDays lists every calendar day in [start, end] inclusive as
// YYYY-MM-DD.
func enumerateDays(start, end time.Time) []string {
	out := []string{}
	day := utils.StartOfDay(start)
	last := utils.StartOfDay(end)
	for !day.After(last) {
		out = append(out, utils.FormatDate(day))
		day = day.AddDate(0, 0, 1)
	}
	return out
}

// ExpenseLine is one salary's contribution for the expense listing.
type ExpenseLine struct {
	Kind          string  `json:"kind"`
	Name          string  `json:"name"`
	Currency      string  `json:"currency"`
	Base          float64 `json:"base"`
	MonthlyAmount float64 `json:"monthly_amount"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to"`
}

// Expenses lists per-employee (and per-vehicle) salary line items for the
// window, independent of the chart endpoint.
func (s FinanceService) Expenses(from, to *time.Time) ([]ExpenseLine, error) {
	start, end := resolveWindow(from, to)
	if end.Before(start) {
		return nil, domain.ValidationError{Field: "to", Msg: "window must not end before it starts"}
	}

	salaries, err := s.SalaryRepo.ListOverlapping(start, end)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	vehicleSalaries, err := s.VehicleSalaryRepo.ListOverlapping(start, end)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	out := []ExpenseLine{}
	for _, sal := range salaries {
		name := fmt.Sprintf("employee #%d", sal.EmployeeID)
		if emp, err := s.EmployeeRepo.GetByID(sal.EmployeeID); err == nil {
			name = emp.Name
		}
		out = append(out, ExpenseLine{
			Kind:          "salary",
			Name:          name,
			Currency:      sal.Currency,
			Base:          sal.Base,
			MonthlyAmount: sal.MonthlyAmount(),
			EffectiveFrom: sal.EffectiveFrom,
			EffectiveTo:   sal.EffectiveTo,
		})
	}
	for _, vs := range vehicleSalaries {
		name := fmt.Sprintf("vehicle #%d", vs.VehicleID)
		if v, err := s.VehicleRepo.GetByID(vs.VehicleID); err == nil {
			name = v.PlateNo
		}
		out = append(out, ExpenseLine{
			Kind:          "vehicle_salary",
			Name:          name,
			Currency:      vs.Currency,
			Base:          vs.Base,
			MonthlyAmount: vs.MonthlyAmount(),
			EffectiveFrom: vs.EffectiveFrom,
			EffectiveTo:   vs.EffectiveTo,
		})
	}
	return out, nil
}
