package services

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"tourbook/internal/utils"
)

// BuildInvoicePDF renders the booking pricing breakdown as a PDF document.
func BuildInvoicePDF(data InvoiceData) ([]byte, string, error) {
	b := data.Booking
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Booking Invoice")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice no: %s", data.InvoiceNo))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Issued: %s", utils.FormatDateTime(data.IssuedAt)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Booking: #%d  (%s)", b.ID, b.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Customer")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("%s %s", b.Customer.FirstName, b.Customer.LastName))
	pdf.Ln(6)
	pdf.Cell(0, 6, b.Customer.Email)
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("%s %s", b.Customer.PhoneCode, b.Customer.Phone))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Trip")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, b.Snapshot.Name)
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("%s - %s", b.Snapshot.StartDate, b.Snapshot.EndDate))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Pricing")
	pdf.Ln(8)

	line := func(label string, amount float64) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(120, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, utils.FormatAmount(amount, b.Pricing.Currency), "", 1, "R", false, 0, "")
	}
	line(fmt.Sprintf("Price per person x %d", b.Pricing.Qty), b.Pricing.Price)
	line("Subtotal", b.Pricing.Subtotal)
	line("Service charge (10%)", b.Pricing.Service)
	line("City tax (1%)", b.Pricing.CityTax)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 9, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(50, 9, utils.FormatAmount(b.Pricing.Total, b.Pricing.Currency), "T", 1, "R", false, 0, "")

	if b.Payment.Last4 != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Paid with %s ending %s (%s)", b.Payment.Brand, b.Payment.Last4, b.Payment.Status))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("invoice-%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}
