package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"power-switch/internal/api/models"
	"power-switch/internal/catalog"
	"power-switch/internal/config"
	"power-switch/internal/ingest"
	"power-switch/internal/recommend"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "recommend":
		cmdRecommend(os.Args[2:])
	case "profile":
		cmdProfile(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli recommend --file export.csv --plans electrical_plans.yaml --out results/ranked.csv")
	fmt.Println("  cli profile --file export.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - recommend ranks every catalog plan by monthly kWh savings")
	fmt.Println("  - profile prints the average hourly consumption of recent active months")
}

func cmdRecommend(args []string) {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	filePath := fs.String("file", "", "Path to the meter export (.csv or .xlsx)")
	plansPath := fs.String("plans", "electrical_plans.yaml", "Path to the plan catalog (.yaml or .csv)")
	cfgPath := fs.String("config", "", "Optional YAML config")
	outPath := fs.String("out", "", "Optional: also write the ranking as CSV")
	top := fs.Int("top", 0, "Optional: show only the first N plans (0=all)")
	_ = fs.Parse(args)

	if *filePath == "" {
		fmt.Println("--file is required")
		os.Exit(2)
	}

	cfg := loadConfig(*cfgPath)
	res := parseExport(*filePath)

	plans, err := catalog.Load(*plansPath)
	if err != nil {
		panic(err)
	}

	analysis, err := recommend.Recommend(res.Series, plans, recommend.Options{
		ActivityThreshold: cfg.Analysis.ActivityThreshold,
		ProfileMonths:     cfg.Analysis.ProfileMonths,
	})
	if err != nil {
		fmt.Printf("analysis failed: %v\n", err)
		os.Exit(1)
	}

	tariff := recommend.Tariff{RatePerKWh: cfg.Tariff.RatePerKWh, VATFactor: cfg.Tariff.VATFactor}

	if res.Meta.CustomerName != "" {
		fmt.Printf("Customer: %s\n", res.Meta.CustomerName)
	}
	fmt.Printf("Readings: %d  Active months: %d\n\n", len(res.Series), len(analysis.ActiveMonths))

	ranked := analysis.Ranked
	if *top > 0 && *top < len(ranked) {
		ranked = ranked[:*top]
	}

	printRankingTable(ranked, tariff)

	for _, s := range analysis.Skipped {
		fmt.Printf("skipped %s / %s: %s\n", s.Plan.Provider, s.Plan.PlanName, s.Reason)
	}

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			panic(err)
		}
		if err := writeRankingCSV(*outPath, ranked, tariff); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote %d rows to %s\n", len(ranked), *outPath)
	}
}

func cmdProfile(args []string) {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	filePath := fs.String("file", "", "Path to the meter export (.csv or .xlsx)")
	cfgPath := fs.String("config", "", "Optional YAML config")
	_ = fs.Parse(args)

	if *filePath == "" {
		fmt.Println("--file is required")
		os.Exit(2)
	}

	cfg := loadConfig(*cfgPath)
	res := parseExport(*filePath)

	analysis, err := recommend.Recommend(res.Series, nil, recommend.Options{
		ActivityThreshold: cfg.Analysis.ActivityThreshold,
		ProfileMonths:     cfg.Analysis.ProfileMonths,
	})
	if err != nil {
		fmt.Printf("analysis failed: %v\n", err)
		os.Exit(1)
	}

	printProfileTable(analysis.Profile)
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func parseExport(path string) *ingest.Result {
	f, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	res, err := ingest.ParseFile(path, f)
	if err != nil {
		fmt.Printf("could not parse %s: %v\n", path, err)
		os.Exit(1)
	}
	return res
}

func printRankingTable(ranked []recommend.RankedPlan, tariff recommend.Tariff) {
	fmt.Printf("%-4s %-14s %-28s %-22s %-14s %10s %10s %8s\n",
		"#", "Provider", "Plan", "Days", "Hours", "kWh/mo", "NIS/mo", "Bill%")
	fmt.Println(strings.Repeat("-", 116))
	for i, rp := range ranked {
		fmt.Printf("%-4d %-14s %-28s %-22s %-14s %10.2f %10.2f %7.1f%%\n",
			i+1,
			rp.Plan.Provider,
			rp.Plan.PlanName,
			rp.Plan.WeekDaysApplicable,
			models.DisplayHours(rp.Plan.HoursApplicable),
			rp.Report.MonthlySavingsKWh,
			tariff.NISFor(rp.Report.MonthlySavingsKWh),
			rp.Report.BillSavingsPct,
		)
	}
}

func writeRankingCSV(path string, ranked []recommend.RankedPlan, tariff recommend.Tariff) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"rank", "provider", "plan", "week_days", "hours", "discount_pct",
		"monthly_savings_kwh", "monthly_savings_nis", "bill_savings_pct"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, rp := range ranked {
		row := []string{
			strconv.Itoa(i + 1),
			rp.Plan.Provider,
			rp.Plan.PlanName,
			rp.Plan.WeekDaysApplicable,
			rp.Plan.HoursApplicable,
			strconv.FormatFloat(rp.Plan.PricePercentageOff, 'f', 1, 64),
			strconv.FormatFloat(rp.Report.MonthlySavingsKWh, 'f', 2, 64),
			strconv.FormatFloat(tariff.NISFor(rp.Report.MonthlySavingsKWh), 'f', 2, 64),
			strconv.FormatFloat(rp.Report.BillSavingsPct, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func printProfileTable(profile map[string][]float64) {
	months := make([]string, 0, len(profile))
	for k := range profile {
		if k != "average" {
			months = append(months, k)
		}
	}
	sort.Strings(months)
	cols := append(months, "average")

	fmt.Printf("%-6s", "Hour")
	for _, c := range cols {
		fmt.Printf(" %10s", c)
	}
	fmt.Println()
	for hour := 0; hour < 24; hour++ {
		fmt.Printf("%02d:00 ", hour)
		for _, c := range cols {
			vals, ok := profile[c]
			if !ok || len(vals) != 24 {
				fmt.Printf(" %10s", "-")
				continue
			}
			fmt.Printf(" %10.3f", vals[hour])
		}
		fmt.Println()
	}
}
