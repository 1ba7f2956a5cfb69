package recommend

import (
	"log"

	"power-switch/internal/model"
)

// Options tunes a recommendation run. Zero values fall back to the
// documented defaults.
type Options struct {
	// ActivityThreshold is the fraction of the max monthly consumption a
	// month needs to count as active (default 0.20).
	ActivityThreshold float64
	// ProfileMonths is how many recent active months feed the hourly
	// profile (default 6).
	ProfileMonths int
}

// SkippedPlan records a catalog entry excluded from ranking because its
// schedule could not be parsed.
type SkippedPlan struct {
	Plan   model.PlanDefinition
	Reason string
}

// Analysis is one full recommendation run over a consumption history.
// Everything here is a value recomputed per request; nothing is shared
// or mutated across runs.
type Analysis struct {
	ActiveMonths []model.MonthKey
	Ranked       []RankedPlan
	Skipped      []SkippedPlan
	Profile      model.HourlyProfile
}

// Recommend runs the whole flow: active-month selection, per-plan
// evaluation, ranking, and the hourly display profile.
//
// A plan with a malformed schedule is skipped with a warning rather
// than failing the batch, so one bad catalog entry cannot block all
// recommendations. Empty series and all-months-inactive are fatal.
func Recommend(series model.ReadingSeries, plans []model.PlanDefinition, opts Options) (*Analysis, error) {
	threshold := opts.ActivityThreshold
	if threshold == 0 {
		threshold = DefaultActivityThreshold
	}

	active, err := SelectActiveMonths(series, threshold)
	if err != nil {
		return nil, err
	}
	if active.Len() == 0 {
		return nil, ErrNoActiveMonths
	}

	evaluated := make([]RankedPlan, 0, len(plans))
	var skipped []SkippedPlan
	for _, plan := range plans {
		window, err := ParseWindow(plan.WeekDaysApplicable, plan.HoursApplicable)
		if err != nil {
			log.Printf("skipping plan %s/%s: %v", plan.Provider, plan.PlanName, err)
			skipped = append(skipped, SkippedPlan{Plan: plan, Reason: err.Error()})
			continue
		}
		evaluated = append(evaluated, RankedPlan{
			Plan:   plan,
			Report: Evaluate(series, active, window, plan.PricePercentageOff),
		})
	}

	return &Analysis{
		ActiveMonths: active.Sorted(),
		Ranked:       Rank(evaluated),
		Skipped:      skipped,
		Profile:      HourlyProfile(series, active, opts.ProfileMonths),
	}, nil
}
