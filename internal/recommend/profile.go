package recommend

import (
	"math"

	"power-switch/internal/model"
)

// DefaultProfileMonths is how many recent active months the hourly
// profile covers.
const DefaultProfileMonths = 6

// HourlyProfile derives a per-hour average consumption profile over the
// windowCount most recent active months, for display only; it has no
// effect on ranking.
//
// Each selected month that has readings contributes a 24-value series
// of mean kWh per hour-of-day, with absent hours filled as 0. The
// "average" entry holds, per hour, the arithmetic mean across the
// selected months' values at that hour: months are weighted equally, so
// a month with fewer samples at some hour still contributes exactly one
// value there. If no selected month has readings the profile is empty.
func HourlyProfile(series model.ReadingSeries, active model.MonthSet, windowCount int) model.HourlyProfile {
	if windowCount <= 0 {
		windowCount = DefaultProfileMonths
	}
	recent := active.Newest(windowCount)

	type hourAgg struct {
		sum   [24]float64
		count [24]int
	}
	byMonth := make(map[model.MonthKey]*hourAgg, len(recent))
	for _, key := range recent {
		byMonth[key] = &hourAgg{}
	}
	for _, r := range series {
		agg, ok := byMonth[model.MonthKeyFor(r.Timestamp)]
		if !ok {
			continue
		}
		h := r.Timestamp.Hour()
		agg.sum[h] += r.KWh
		agg.count[h]++
	}

	profile := make(model.HourlyProfile)
	for _, key := range recent {
		agg := byMonth[key]
		sampled := false
		for _, c := range agg.count {
			if c > 0 {
				sampled = true
				break
			}
		}
		if !sampled {
			// A selected month without readings gets no entry at all,
			// not a zero-filled one.
			continue
		}
		values := make([]float64, 24)
		for h := 0; h < 24; h++ {
			if agg.count[h] > 0 {
				values[h] = round3(agg.sum[h] / float64(agg.count[h]))
			}
		}
		profile[key.String()] = values
	}

	if len(profile) == 0 {
		return profile
	}

	average := make([]float64, 24)
	for h := 0; h < 24; h++ {
		sum := 0.0
		for _, values := range profile {
			sum += values[h]
		}
		average[h] = round3(sum / float64(len(profile)))
	}
	profile[model.ProfileAverageKey] = average
	return profile
}

// round3 matches the chart payload precision of the profile values.
func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
