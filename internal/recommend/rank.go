package recommend

import (
	"sort"

	"power-switch/internal/model"
)

// RankedPlan pairs a catalog plan with its evaluation result.
type RankedPlan struct {
	Plan   model.PlanDefinition
	Report model.SavingsReport
}

// Rank orders evaluated plans by expected monthly savings, descending.
// The sort is stable: plans with identical savings keep their catalog
// order, so callers can rely on the relative order of ties.
func Rank(plans []RankedPlan) []RankedPlan {
	out := make([]RankedPlan, len(plans))
	copy(out, plans)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Report.MonthlySavingsKWh > out[j].Report.MonthlySavingsKWh
	})
	return out
}
