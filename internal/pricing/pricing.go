package pricing

import "fmt"

// Fixed rates applied on top of the subtotal. Not configurable.
const (
	ServiceRate = 0.10
	CityTaxRate = 0.01
)

// Breakdown is the deterministic result of Quote. No rounding is applied
// at this layer; floating-point accumulation passes through as-is.
type Breakdown struct {
	Subtotal float64
	Service  float64
	CityTax  float64
	Taxes    float64
	Total    float64
}

// Quote derives the full price breakdown for qty seats at unitPrice each.
// Pure function; called at booking creation and on every qty change.
func Quote(unitPrice float64, qty int) (Breakdown, error) {
	if unitPrice < 0 {
		return Breakdown{}, fmt.Errorf("unit price must not be negative")
	}
	if qty < 1 {
		return Breakdown{}, fmt.Errorf("qty must be at least 1")
	}

	subtotal := unitPrice * float64(qty)
	svc := subtotal * ServiceRate
	city := subtotal * CityTaxRate
	taxes := svc + city

	return Breakdown{
		Subtotal: subtotal,
		Service:  svc,
		CityTax:  city,
		Taxes:    taxes,
		Total:    subtotal + taxes,
	}, nil
}
