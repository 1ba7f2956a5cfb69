package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"power-switch/internal/model"
)

func plan(provider, name string) model.PlanDefinition {
	return model.PlanDefinition{Provider: provider, PlanName: name}
}

func TestRankDescendingBySavings(t *testing.T) {
	ranked := Rank([]RankedPlan{
		{Plan: plan("a", "low"), Report: model.SavingsReport{MonthlySavingsKWh: 5}},
		{Plan: plan("b", "high"), Report: model.SavingsReport{MonthlySavingsKWh: 40}},
		{Plan: plan("c", "mid"), Report: model.SavingsReport{MonthlySavingsKWh: 12}},
	})

	assert.Equal(t, "high", ranked[0].Plan.PlanName)
	assert.Equal(t, "mid", ranked[1].Plan.PlanName)
	assert.Equal(t, "low", ranked[2].Plan.PlanName)
}

func TestRankIsStableForTies(t *testing.T) {
	ranked := Rank([]RankedPlan{
		{Plan: plan("a", "first"), Report: model.SavingsReport{MonthlySavingsKWh: 10}},
		{Plan: plan("b", "second"), Report: model.SavingsReport{MonthlySavingsKWh: 10}},
		{Plan: plan("c", "third"), Report: model.SavingsReport{MonthlySavingsKWh: 10}},
	})

	assert.Equal(t, []string{"first", "second", "third"},
		[]string{ranked[0].Plan.PlanName, ranked[1].Plan.PlanName, ranked[2].Plan.PlanName},
		"equal savings keep catalog order")
}

func TestRankDoesNotMutateInput(t *testing.T) {
	in := []RankedPlan{
		{Plan: plan("a", "low"), Report: model.SavingsReport{MonthlySavingsKWh: 1}},
		{Plan: plan("b", "high"), Report: model.SavingsReport{MonthlySavingsKWh: 2}},
	}
	_ = Rank(in)

	assert.Equal(t, "low", in[0].Plan.PlanName)
	assert.Equal(t, "high", in[1].Plan.PlanName)
}
