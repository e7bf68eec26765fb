package utils

import "fmt"

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatAmount renders an amount with its currency label for documents.
// Currency is a label only; no conversion happens anywhere.
func FormatAmount(amount float64, currency string) string {
	if currency == "" {
		return FormatMoney(amount)
	}
	return fmt.Sprintf("%s %s", currency, FormatMoney(amount))
}
