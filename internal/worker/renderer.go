package worker

import (
	"bytes"
	"fmt"
	"time"

	"staybook/internal/repository"

	"github.com/go-pdf/fpdf"
)

// RenderConfirmationPDF produces the booking confirmation document that is
// attached to the email.
func RenderConfirmationPDF(c *repository.BookingConfirmation) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Booking Confirmation")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 12)
	rows := [][2]string{
		{"Booking #", fmt.Sprintf("%d", c.BookingID)},
		{"Guest", c.GuestName},
		{"Property", c.PropertyTitle},
		{"City", c.City},
		{"Check-in", c.CheckIn.Format("2006-01-02")},
		{"Check-out", c.CheckOut.Format("2006-01-02")},
		{"Guests", fmt.Sprintf("%d", c.Guests)},
		{"Total", fmt.Sprintf("%.2f", c.TotalPrice)},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(40, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, "We look forward to your stay.")
	pdf.Ln(6)
	pdf.Cell(0, 6, "Generated "+time.Now().UTC().Format("2006-01-02 15:04 MST"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render confirmation pdf: %w", err)
	}
	return buf.Bytes(), nil
}
