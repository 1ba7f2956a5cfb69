package recommend

import (
	"power-switch/internal/model"
)

// Tariff converts kWh-equivalent savings into NIS at the reporting
// step. The cost model inside Evaluate treats 1 kWh as 1 unit of cost;
// the conversion (rate per kWh times the VAT inclusion factor) is
// applied exactly once at the presentation boundary, never inside the
// eligibility loop.
type Tariff struct {
	RatePerKWh float64
	VATFactor  float64
}

// NISFor converts a kWh-equivalent amount to tax-inclusive NIS.
func (t Tariff) NISFor(kwh float64) float64 {
	return kwh * t.RatePerKWh * t.VATFactor
}

// Evaluate computes the savings report for one plan.
//
// The series is restricted to readings in active months; a reading is
// eligible iff it falls inside the discount window. Discounted units
// cost (1 - discountPct/100) of a unit, so the total saving in
// kWh-equivalent is discountedKWh * discountPct/100, normalized by the
// number of active months for the monthly figures.
//
// An empty active set yields an all-zero report rather than an error:
// "no active months" is rejected upstream, and a plan whose window the
// customer never uses is a legitimate all-zero result. All
// division-by-zero cases are guarded to 0 for the same reason.
func Evaluate(series model.ReadingSeries, active model.MonthSet, window DiscountWindow, discountPct float64) model.SavingsReport {
	report := model.SavingsReport{NumActiveMonths: active.Len()}
	if report.NumActiveMonths == 0 {
		return report
	}

	for _, r := range series {
		if !active.Contains(model.MonthKeyFor(r.Timestamp)) {
			continue
		}
		report.TotalKWh += r.KWh
		if window.Contains(r.Timestamp) {
			report.DiscountedKWh += r.KWh
		}
	}

	months := float64(report.NumActiveMonths)
	totalSavings := report.DiscountedKWh * discountPct / 100
	report.MonthlySavingsKWh = totalSavings / months
	report.MonthlyConsumptionKWh = report.TotalKWh / months

	if report.MonthlyConsumptionKWh > 0 {
		report.BillSavingsPct = report.MonthlySavingsKWh / report.MonthlyConsumptionKWh * 100
	}
	if report.TotalKWh > 0 {
		report.ApplicablePct = report.DiscountedKWh / report.TotalKWh * 100
	}
	return report
}
