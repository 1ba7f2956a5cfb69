// Package store persists the analysis audit log: one row per
// recommendation run, recording who analyzed what and which plan won.
// Persistence is strictly best-effort; a store failure never fails the
// recommendation response.
package store

import (
	"context"
	"time"
)

// AnalysisRecord is one logged recommendation run. CustomerName and
// MeterNumber come from best-effort metadata extraction and may be
// empty.
type AnalysisRecord struct {
	ID                   string    `json:"id"`
	CustomerName         string    `json:"customer_name,omitempty"`
	MeterNumber          string    `json:"meter_number,omitempty"`
	AnalyzedAt           time.Time `json:"analysis_timestamp"`
	SelectedProvider     string    `json:"selected_provider"`
	SelectedPlan         string    `json:"selected_plan"`
	MonthlySavingsNIS    float64   `json:"monthly_savings_nis"`
	MonthlySavingsKWh    float64   `json:"monthly_savings_kwh"`
	BillSavingsPct       float64   `json:"bill_savings_percentage"`
	ActiveMonthsAnalyzed int       `json:"active_months_analyzed"`
	Filename             string    `json:"filename,omitempty"`
	IPAddress            string    `json:"ip_address,omitempty"`
	UserAgent            string    `json:"user_agent,omitempty"`
}

// Stats summarizes the audit log for the admin surface.
type Stats struct {
	Analyses             int64            `json:"analyses"`
	AvgMonthlySavingsNIS float64          `json:"avg_monthly_savings_nis"`
	ByProvider           map[string]int64 `json:"by_provider"`
}

// Store is the audit log. Implementations must be safe for concurrent
// use; independent recommendation requests log without coordination.
type Store interface {
	Log(ctx context.Context, rec AnalysisRecord) error
	Recent(ctx context.Context, limit int) ([]AnalysisRecord, error)
	Stats(ctx context.Context) (Stats, error)
	Close() error
}
