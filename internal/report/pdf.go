// Package report renders a downloadable PDF of one recommendation run.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Row is one ranked plan as it appears in the PDF table. Values arrive
// already rounded by the presentation layer.
type Row struct {
	Rank              int
	Provider          string
	PlanName          string
	Days              string
	Hours             string
	DiscountPct       float64
	MonthlySavingsKWh float64
	MonthlySavingsNIS float64
	BillSavingsPct    float64
	CoveragePct       float64
}

// Params describes the analysis the PDF summarizes.
type Params struct {
	CustomerName string
	MeterNumber  string
	Filename     string
	GeneratedAt  time.Time
	ActiveMonths int
	Rows         []Row
}

// Build renders the recommendation report.
func Build(p Params) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Electricity Plan Recommendations")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	if p.CustomerName != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Customer: %s", p.CustomerName))
		pdf.Ln(5)
	}
	if p.MeterNumber != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Meter: %s", p.MeterNumber))
		pdf.Ln(5)
	}
	if p.Filename != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Source file: %s", p.Filename))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", p.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Active months analyzed: %d", p.ActiveMonths))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{12, 35, 50, 35, 25, 20, 28, 28, 22, 22}
	headers := []string{"Rank", "Provider", "Plan", "Days", "Hours", "Disc %",
		"kWh/month", "NIS/month", "Bill %", "Coverage %"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range p.Rows {
		cells := []string{
			fmt.Sprintf("%d", row.Rank),
			row.Provider,
			row.PlanName,
			row.Days,
			row.Hours,
			fmt.Sprintf("%.0f%%", row.DiscountPct),
			fmt.Sprintf("%.2f", row.MonthlySavingsKWh),
			fmt.Sprintf("%.2f", row.MonthlySavingsNIS),
			fmt.Sprintf("%.1f%%", row.BillSavingsPct),
			fmt.Sprintf("%.1f%%", row.CoveragePct),
		}
		for i, c := range cells {
			align := "R"
			if i <= 4 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 5, "Monthly savings assume the discounted plan applied to the analyzed consumption; multiply kWh by your tariff for other rates.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}
