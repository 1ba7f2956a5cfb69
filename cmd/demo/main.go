package main

import (
	"flag"
	"fmt"
	"math"
	"time"

	"power-switch/internal/model"
	"power-switch/internal/recommend"
)

// Demo:
// - Generate a synthetic household consumption history
// - Build a small plan catalog inline
// - Run the recommendation flow to show how the pieces fit together
func main() {
	months := flag.Int("months", 8, "Number of months of synthetic history")
	flag.Parse()

	series := syntheticSeries(*months)
	fmt.Printf("Generated %d readings over %d months (%.1f kWh total)\n\n",
		len(series), *months, series.TotalKWh())

	plans := []model.PlanDefinition{
		{Provider: "electra", PlanName: "Night Saver", WeekDaysApplicable: "Sunday-Saturday",
			HoursApplicable: "23:00-07:00", PricePercentageOff: 20},
		{Provider: "pazgas", PlanName: "Work From Home", WeekDaysApplicable: "Sunday-Thursday",
			HoursApplicable: "07:00-17:00", PricePercentageOff: 15},
		{Provider: "cellcom", PlanName: "Flat Discount", WeekDaysApplicable: "Sunday-Saturday",
			HoursApplicable: "00:00-23:59", PricePercentageOff: 6},
	}

	analysis, err := recommend.Recommend(series, plans, recommend.Options{})
	if err != nil {
		panic(err)
	}

	tariff := recommend.Tariff{RatePerKWh: 0.5425, VATFactor: 1.18}

	fmt.Printf("Active months: %v\n\n", analysis.ActiveMonths)
	fmt.Printf("%-4s %-10s %-16s %10s %10s %8s\n", "#", "Provider", "Plan", "kWh/mo", "NIS/mo", "Bill%")
	for i, rp := range analysis.Ranked {
		fmt.Printf("%-4d %-10s %-16s %10.2f %10.2f %7.1f%%\n",
			i+1, rp.Plan.Provider, rp.Plan.PlanName,
			rp.Report.MonthlySavingsKWh,
			tariff.NISFor(rp.Report.MonthlySavingsKWh),
			rp.Report.BillSavingsPct)
	}

	if avg, ok := analysis.Profile[model.ProfileAverageKey]; ok {
		fmt.Println("\nAverage hourly profile (kWh per 15-minute interval):")
		for hour, v := range avg {
			fmt.Printf("  %02d:00  %s %.3f\n", hour, bar(v), v)
		}
	}
}

// syntheticSeries fabricates 15-minute readings ending this month, with
// an evening peak and a night trough plus mild seasonal drift.
func syntheticSeries(months int) model.ReadingSeries {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	var readings []model.Reading
	for t := start; t.Before(end); t = t.Add(15 * time.Minute) {
		h := float64(t.Hour()) + float64(t.Minute())/60
		// Baseline with an evening bump around 19:00 and a dip at 04:00.
		kwh := 0.12 + 0.10*math.Exp(-math.Pow(h-19, 2)/8) - 0.05*math.Exp(-math.Pow(h-4, 2)/6)
		// Summer months run the AC harder.
		if m := t.Month(); m >= time.June && m <= time.September {
			kwh *= 1.3
		}
		readings = append(readings, model.Reading{Timestamp: t, KWh: kwh})
	}
	return model.NewSeries(readings)
}

func bar(v float64) string {
	n := int(v * 100)
	if n > 40 {
		n = 40
	}
	s := ""
	for i := 0; i < n; i++ {
		s += "#"
	}
	return s
}
