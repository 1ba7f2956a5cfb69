package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"power-switch/internal/model"
)

func TestHourlyProfileShape(t *testing.T) {
	readings := []model.Reading{
		{Timestamp: time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC), KWh: 2},
		{Timestamp: time.Date(2025, time.January, 2, 8, 0, 0, 0, time.UTC), KWh: 4},
		{Timestamp: time.Date(2025, time.January, 1, 20, 0, 0, 0, time.UTC), KWh: 1},
	}
	series := model.NewSeries(readings)
	active := model.MonthSet{{Year: 2025, Month: time.January}: true}

	profile := HourlyProfile(series, active, 6)

	require.Contains(t, profile, "2025-01")
	require.Contains(t, profile, model.ProfileAverageKey)
	require.Len(t, profile["2025-01"], 24)

	jan := profile["2025-01"]
	assert.InDelta(t, 3.0, jan[8], 1e-9, "mean of 2 and 4")
	assert.InDelta(t, 1.0, jan[20], 1e-9)
	assert.Zero(t, jan[0], "absent hours are zero-filled, not omitted")
	assert.Zero(t, jan[23])
}

func TestHourlyProfileAverageWeightsMonthsEqually(t *testing.T) {
	// January has ten readings at 08:00 averaging 1; February one
	// reading of 7. The average entry must weight each month once.
	var readings []model.Reading
	for day := 1; day <= 10; day++ {
		readings = append(readings, model.Reading{
			Timestamp: time.Date(2025, time.January, day, 8, 0, 0, 0, time.UTC), KWh: 1,
		})
	}
	readings = append(readings, model.Reading{
		Timestamp: time.Date(2025, time.February, 1, 8, 0, 0, 0, time.UTC), KWh: 7,
	})
	series := model.NewSeries(readings)
	active := model.MonthSet{
		{Year: 2025, Month: time.January}:  true,
		{Year: 2025, Month: time.February}: true,
	}

	profile := HourlyProfile(series, active, 6)

	require.Contains(t, profile, model.ProfileAverageKey)
	assert.InDelta(t, 4.0, profile[model.ProfileAverageKey][8], 1e-9,
		"(1 + 7) / 2, not a reading-weighted mean")
}

func TestHourlyProfileUsesMostRecentMonths(t *testing.T) {
	var readings []model.Reading
	active := make(model.MonthSet)
	for m := time.January; m <= time.August; m++ {
		readings = append(readings, model.Reading{
			Timestamp: time.Date(2025, m, 1, 8, 0, 0, 0, time.UTC), KWh: 1,
		})
		active[model.MonthKey{Year: 2025, Month: m}] = true
	}
	series := model.NewSeries(readings)

	profile := HourlyProfile(series, active, 6)

	// 6 most recent months plus the average entry.
	assert.Len(t, profile, 7)
	assert.NotContains(t, profile, "2025-01")
	assert.NotContains(t, profile, "2025-02")
	assert.Contains(t, profile, "2025-03")
	assert.Contains(t, profile, "2025-08")
}

func TestHourlyProfileFewerMonthsThanWindow(t *testing.T) {
	readings := []model.Reading{
		{Timestamp: time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC), KWh: 1},
	}
	active := model.MonthSet{{Year: 2025, Month: time.March}: true}

	profile := HourlyProfile(model.NewSeries(readings), active, 6)

	assert.Len(t, profile, 2, "one month plus average")
}

func TestHourlyProfileEmptyActiveSet(t *testing.T) {
	series := model.NewSeries([]model.Reading{
		{Timestamp: time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC), KWh: 1},
	})

	profile := HourlyProfile(series, model.MonthSet{}, 6)

	assert.Empty(t, profile, "no zero-filled placeholder keys")
	assert.NotContains(t, profile, model.ProfileAverageKey)
}

func TestHourlyProfileActiveMonthWithoutReadings(t *testing.T) {
	series := model.NewSeries([]model.Reading{
		{Timestamp: time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC), KWh: 2},
	})
	active := model.MonthSet{
		{Year: 2025, Month: time.January}:  true,
		{Year: 2025, Month: time.February}: true,
	}

	profile := HourlyProfile(series, active, 6)

	assert.NotContains(t, profile, "2025-02", "months without readings get no entry")
	assert.Contains(t, profile, "2025-01")
}
