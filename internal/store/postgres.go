package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const schema = `
CREATE TABLE IF NOT EXISTS customer_analysis (
	id TEXT PRIMARY KEY,
	customer_name TEXT,
	meter_number TEXT,
	analysis_timestamp TIMESTAMPTZ NOT NULL,
	selected_provider TEXT NOT NULL,
	selected_plan TEXT NOT NULL,
	monthly_savings_nis DOUBLE PRECISION NOT NULL,
	monthly_savings_kwh DOUBLE PRECISION,
	bill_savings_percentage DOUBLE PRECISION,
	active_months_analyzed INTEGER,
	filename TEXT,
	ip_address TEXT,
	user_agent TEXT
);
CREATE INDEX IF NOT EXISTS customer_analysis_ts_idx
	ON customer_analysis (analysis_timestamp DESC);
`

// Postgres is the production audit log.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects, pings, and ensures the schema exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if dsn == "" {
		return nil, errors.New("empty database url")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(8)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Log(ctx context.Context, rec AnalysisRecord) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO customer_analysis (
			id, customer_name, meter_number, analysis_timestamp,
			selected_provider, selected_plan,
			monthly_savings_nis, monthly_savings_kwh, bill_savings_percentage,
			active_months_analyzed, filename, ip_address, user_agent
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		rec.ID, rec.CustomerName, rec.MeterNumber, rec.AnalyzedAt,
		rec.SelectedProvider, rec.SelectedPlan,
		rec.MonthlySavingsNIS, rec.MonthlySavingsKWh, rec.BillSavingsPct,
		rec.ActiveMonthsAnalyzed, rec.Filename, rec.IPAddress, rec.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("log analysis: %w", err)
	}
	return nil
}

func (p *Postgres) Recent(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, customer_name, meter_number, analysis_timestamp,
			selected_provider, selected_plan,
			monthly_savings_nis, monthly_savings_kwh, bill_savings_percentage,
			active_months_analyzed, filename, ip_address, user_agent
		FROM customer_analysis
		ORDER BY analysis_timestamp DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		if err := rows.Scan(
			&rec.ID, &rec.CustomerName, &rec.MeterNumber, &rec.AnalyzedAt,
			&rec.SelectedProvider, &rec.SelectedPlan,
			&rec.MonthlySavingsNIS, &rec.MonthlySavingsKWh, &rec.BillSavingsPct,
			&rec.ActiveMonthsAnalyzed, &rec.Filename, &rec.IPAddress, &rec.UserAgent,
		); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (p *Postgres) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByProvider: map[string]int64{}}
	err := p.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(monthly_savings_nis), 0)
		FROM customer_analysis`).Scan(&stats.Analyses, &stats.AvgMonthlySavingsNIS)
	if err != nil {
		return stats, fmt.Errorf("aggregate analyses: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT selected_provider, COUNT(*)
		FROM customer_analysis
		GROUP BY selected_provider`)
	if err != nil {
		return stats, fmt.Errorf("aggregate providers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var provider string
		var n int64
		if err := rows.Scan(&provider, &n); err != nil {
			return stats, err
		}
		stats.ByProvider[provider] = n
	}
	return stats, rows.Err()
}

func (p *Postgres) Close() error { return p.db.Close() }
