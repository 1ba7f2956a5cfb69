package models

// HistoryRequest filters the audit-log listing.
type HistoryRequest struct {
	Limit int `form:"limit,omitempty"` // default: 50
}
