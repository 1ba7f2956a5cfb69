package model

import (
	"sort"
	"time"
)

// Reading is one interval-metered consumption sample.
// Units:
// - Timestamp: minute precision, local (meter) time
// - KWh: non-negative consumption during the interval
type Reading struct {
	Timestamp time.Time
	KWh       float64
}

// ReadingSeries is a chronologically ordered consumption history.
// Construct it with NewSeries; the engine assumes the order invariant
// holds and never re-sorts mid-computation. Duplicate timestamps are
// allowed and additive for aggregation.
type ReadingSeries []Reading

// NewSeries sorts readings into chronological order (stable, so
// duplicate-timestamp rows keep their file order) and returns the series.
func NewSeries(readings []Reading) ReadingSeries {
	s := ReadingSeries(readings)
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Timestamp.Before(s[j].Timestamp)
	})
	return s
}

// TotalKWh sums consumption over the whole series.
func (s ReadingSeries) TotalKWh() float64 {
	total := 0.0
	for _, r := range s {
		total += r.KWh
	}
	return total
}

// MonthKey identifies a calendar month. It is always derived from a
// reading's timestamp, never stored independently.
type MonthKey struct {
	Year  int
	Month time.Month
}

func MonthKeyFor(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// String renders the catalog/display label, e.g. "2025-03".
func (k MonthKey) String() string {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Before reports whether k is an earlier calendar month than other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// MonthSet is an immutable-by-convention set of calendar months. It is
// built once by active-month selection and threaded through evaluation
// calls; per-plan evaluations only read it, so they may run concurrently.
type MonthSet map[MonthKey]bool

func (m MonthSet) Contains(k MonthKey) bool { return m[k] }

func (m MonthSet) Len() int { return len(m) }

// Sorted returns the months in ascending calendar order.
func (m MonthSet) Sorted() []MonthKey {
	out := make([]MonthKey, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Newest returns up to n months, most recent first. If fewer than n
// months exist, all of them are returned.
func (m MonthSet) Newest(n int) []MonthKey {
	out := m.Sorted()
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
