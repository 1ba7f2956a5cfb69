package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"power-switch/internal/store"
)

// Admin tool for the analysis audit log. Reads DATABASE_URL unless
// --db is given.

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "init":
		cmdInit(os.Args[2:])
	case "list":
		cmdList(os.Args[2:])
	case "stats":
		cmdStats(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  manage init  [--db postgres://...]")
	fmt.Println("  manage list  [--db postgres://...] [--limit 50]")
	fmt.Println("  manage stats [--db postgres://...]")
}

func open(fs *flag.FlagSet, args []string) *store.Postgres {
	dsn := fs.String("db", "", "Postgres connection string (defaults to DATABASE_URL)")
	_ = fs.Parse(args)

	url := *dsn
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		fmt.Println("no database configured: pass --db or set DATABASE_URL")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	st, err := store.OpenPostgres(ctx, url)
	if err != nil {
		fmt.Printf("connect failed: %v\n", err)
		os.Exit(1)
	}
	return st
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	// OpenPostgres creates the schema on connect.
	st := open(fs, args)
	defer st.Close()
	fmt.Println("Schema ready")
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("limit", 50, "Max analyses to show")
	st := open(fs, args)
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	recs, err := st.Recent(ctx, *limit)
	if err != nil {
		fmt.Printf("list failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-20s %-20s %-14s %-24s %10s %8s\n",
		"Timestamp", "Customer", "Provider", "Plan", "NIS/mo", "Months")
	for _, r := range recs {
		fmt.Printf("%-20s %-20s %-14s %-24s %10.2f %8d\n",
			r.AnalyzedAt.Format("2006-01-02 15:04:05"),
			r.CustomerName,
			r.SelectedProvider,
			r.SelectedPlan,
			r.MonthlySavingsNIS,
			r.ActiveMonthsAnalyzed,
		)
	}
	fmt.Printf("\n%d analyses\n", len(recs))
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	st := open(fs, args)
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stats, err := st.Stats(ctx)
	if err != nil {
		fmt.Printf("stats failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Analyses:            %d\n", stats.Analyses)
	fmt.Printf("Avg savings (NIS/mo): %.2f\n", stats.AvgMonthlySavingsNIS)

	providers := make([]string, 0, len(stats.ByProvider))
	for p := range stats.ByProvider {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	if len(providers) > 0 {
		fmt.Println("\nTop recommended providers:")
		for _, p := range providers {
			fmt.Printf("  %-14s %d\n", p, stats.ByProvider[p])
		}
	}
}
