package recommend

import (
	"power-switch/internal/model"
)

// DefaultActivityThreshold is the fraction of the maximum monthly
// consumption a month must reach to count as active.
const DefaultActivityThreshold = 0.20

// SelectActiveMonths reduces the series to the calendar months whose
// total consumption is representative. A month qualifies iff its total
// is >= threshold * the maximum monthly total; the cutoff is relative
// to the maximum rather than the mean so that a single partial-metering
// month cannot drag the qualifying bar below a meaningful floor.
//
// Ties exactly at the threshold are included. If every month has zero
// total consumption the threshold degenerates to 0 and all months
// qualify; that is a documented edge case, not an error.
func SelectActiveMonths(series model.ReadingSeries, threshold float64) (model.MonthSet, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	totals := make(map[model.MonthKey]float64)
	for _, r := range series {
		totals[model.MonthKeyFor(r.Timestamp)] += r.KWh
	}

	maxTotal := 0.0
	for _, total := range totals {
		if total > maxTotal {
			maxTotal = total
		}
	}

	active := make(model.MonthSet, len(totals))
	cutoff := threshold * maxTotal
	for key, total := range totals {
		if total >= cutoff {
			active[key] = true
		}
	}
	return active, nil
}
