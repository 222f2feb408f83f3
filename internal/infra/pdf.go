package infra

// pdf.go: porter payslip drawn with go-pdf/fpdf on A5 portrait.
// Layout:
//   - Title and month
//   - Porter identity
//   - Trip table (date, carrier, route, cost)
//   - Bold total
//   - Payment status line

import (
	"bytes"
	"fmt"
	"time"

	"github.com/abhishek972986/porter-managment/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GeneratePayslipPDF draws the payslip for one porter-month and returns the
// document bytes.
func GeneratePayslipPDF(view *dto.PorterPayrollResponse, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(8, 8, 8)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 16
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "PORTER PAYSLIP", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Month: "+view.Month, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Porter ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("%s (%s)", view.Porter.Name, view.Porter.UID)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	if view.Porter.Designation != "" {
		pdf.CellFormat(contentW, 4, tr(view.Porter.Designation), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(8, pdf.GetY(), pageW-8, pdf.GetY())
	pdf.Ln(2)

	// ── Trips ────────────────────────────────────────────────────────────────
	colDate := contentW * 0.18
	colCarrier := contentW * 0.20
	colRoute := contentW * 0.44
	colCost := contentW * 0.18

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colDate, 5, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colCarrier, 5, "Carrier", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colRoute, 5, "Route", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colCost, 5, "Cost", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, t := range view.Trips {
		route := t.LocationFrom.Code + " -> " + t.LocationTo.Code
		pdf.CellFormat(colDate, 5, t.Date, "", 0, "L", false, 0, "")
		pdf.CellFormat(colCarrier, 5, tr(t.Carrier.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(colRoute, 5, tr(route), "", 0, "L", false, 0, "")
		pdf.CellFormat(colCost, 5, t.ComputedCost.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(8, pdf.GetY(), pageW-8, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW-colCost, 5, "Trips:", "", 0, "L", false, 0, "")
	pdf.CellFormat(colCost, 5, fmt.Sprintf("%d", view.TotalTrips), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW-colCost, 6, "TOTAL SALARY:", "", 0, "L", false, 0, "")
	pdf.CellFormat(colCost, 6, view.TotalSalary.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Payment ──────────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 8)
	status := "UNPAID"
	if view.Payment.IsPaid {
		status = "PAID " + view.Payment.Amount.StringFixed(2)
		if view.Payment.PaidAt != nil {
			status += " on " + view.Payment.PaidAt.Format("02/01/2006")
		}
	}
	pdf.CellFormat(contentW, 5, "Payment: "+status, "", 1, "L", false, 0, "")
	if view.Payment.Notes != "" {
		pdf.MultiCell(contentW, 4, tr("Notes: "+view.Payment.Notes), "", "L", false)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Generated "+generatedAt.Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: write payslip: %w", err)
	}
	return buf.Bytes(), nil
}
