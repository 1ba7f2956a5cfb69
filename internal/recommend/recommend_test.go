package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"power-switch/internal/model"
)

func testCatalog() []model.PlanDefinition {
	return []model.PlanDefinition{
		{
			Provider:           "pazgas",
			PlanName:           "night owl",
			WeekDaysApplicable: "Sunday-Thursday",
			HoursApplicable:    "23:00-07:00",
			PricePercentageOff: 20,
		},
		{
			Provider:           "electra",
			PlanName:           "always on",
			WeekDaysApplicable: "Monday-Sunday",
			HoursApplicable:    "00:00-23:59",
			PricePercentageOff: 6,
		},
		{
			Provider:           "broken",
			PlanName:           "bad schedule",
			WeekDaysApplicable: "Sunday-Thursday",
			HoursApplicable:    "whenever",
			PricePercentageOff: 50,
		},
	}
}

func TestRecommendEndToEnd(t *testing.T) {
	analysis, err := Recommend(nightAndDaySeries(), testCatalog(), Options{})
	require.NoError(t, err)

	require.Len(t, analysis.Ranked, 2, "malformed plan excluded")
	require.Len(t, analysis.Skipped, 1)
	assert.Equal(t, "broken", analysis.Skipped[0].Plan.Provider)
	assert.Contains(t, analysis.Skipped[0].Reason, "whenever")

	assert.Equal(t, []model.MonthKey{{Year: 2025, Month: time.January}}, analysis.ActiveMonths)
	assert.Contains(t, analysis.Profile, "2025-01")

	// The flat 6% plan covers all 93 kWh (5.58 kWh/month saved); the
	// night plan covers only weeknight readings, so it ranks lower.
	assert.Equal(t, "electra", analysis.Ranked[0].Plan.Provider)
	for i := 1; i < len(analysis.Ranked); i++ {
		assert.GreaterOrEqual(t,
			analysis.Ranked[i-1].Report.MonthlySavingsKWh,
			analysis.Ranked[i].Report.MonthlySavingsKWh)
	}
}

func TestRecommendEmptySeries(t *testing.T) {
	_, err := Recommend(model.ReadingSeries{}, testCatalog(), Options{})
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestRecommendDefaultsThreshold(t *testing.T) {
	// Months at 100 and 15: with the default 0.20 threshold only the
	// first survives.
	series := monthTotals(100, 15)
	analysis, err := Recommend(series, testCatalog(), Options{})
	require.NoError(t, err)
	assert.Len(t, analysis.ActiveMonths, 1)
}
