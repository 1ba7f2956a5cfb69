package models

import "time"

// RecommendResponse is the full payload for one analysis run.
type RecommendResponse struct {
	ID              string               `json:"id"`
	Filename        string               `json:"filename,omitempty"`
	CustomerName    string               `json:"customer_name,omitempty"`
	MeterNumber     string               `json:"meter_number,omitempty"`
	GeneratedAt     time.Time            `json:"generated_at"`
	ActiveMonths    int                  `json:"active_months_analyzed"`
	Recommendations []RecommendationRow  `json:"recommendations"`
	Skipped         []SkippedPlan        `json:"skipped_plans,omitempty"`
	HourlyProfile   map[string][]float64 `json:"hourly_profile"`
}

// RecommendationRow merges plan catalog fields with the rounded savings
// figures, ready for direct rendering. All rounding happens here at the
// presentation boundary, never inside the savings computation.
type RecommendationRow struct {
	Rank                 int     `json:"rank"`
	Provider             string  `json:"provider"`
	PlanName             string  `json:"plan_name"`
	ApplicableDays       string  `json:"applicable_days"`
	ApplicableHours      string  `json:"applicable_hours"`
	DiscountPct          float64 `json:"discount_percentage"`
	MonthlySavingsKWh    float64 `json:"monthly_savings_kwh"`
	MonthlySavingsNIS    float64 `json:"monthly_savings_nis"`
	BillSavingsPct       float64 `json:"bill_savings_percentage"`
	ApplicablePct        float64 `json:"applicable_consumption_pct"`
	TotalDiscountedKWh   float64 `json:"total_discounted_kwh"`
	ActiveMonthsAnalyzed int     `json:"active_months_analyzed"`
	LogoFilename         string  `json:"logo_filename,omitempty"`
	ProviderURL          string  `json:"provider_url,omitempty"`
}

// SkippedPlan reports a catalog entry excluded from ranking.
type SkippedPlan struct {
	Provider string `json:"provider"`
	PlanName string `json:"plan_name"`
	Reason   string `json:"reason"`
}

// PlansResponse lists the loaded catalog.
type PlansResponse struct {
	Plans interface{} `json:"plans"`
	Count int         `json:"count"`
}

// HistoryResponse is the admin view over the analysis audit log.
type HistoryResponse struct {
	Analyses interface{} `json:"analyses"`
	Stats    interface{} `json:"stats"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
