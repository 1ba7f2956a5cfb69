package model

// SavingsReport is the evaluation result for one plan against the
// active-month consumption. All figures are kWh-denominated; currency
// conversion and display rounding happen at the presentation boundary,
// never here, so repeated evaluations stay bit-identical.
type SavingsReport struct {
	TotalKWh              float64
	DiscountedKWh         float64
	MonthlySavingsKWh     float64
	MonthlyConsumptionKWh float64
	BillSavingsPct        float64
	ApplicablePct         float64
	NumActiveMonths       int
}

// ProfileAverageKey is the synthetic hourly-profile entry holding the
// per-hour mean across the selected months (months weighted equally).
const ProfileAverageKey = "average"

// HourlyProfile maps a month label ("2025-03") or ProfileAverageKey to
// 24 per-hour mean consumption values. Every present entry has exactly
// 24 values with absent hours filled as 0, so charts never receive a
// sparse series. An empty profile means no selected month had readings.
type HourlyProfile map[string][]float64
