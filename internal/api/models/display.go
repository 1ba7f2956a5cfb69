package models

import (
	"math"
	"strings"
)

// Display formatting for the results page. These run only at the
// presentation boundary; the engine's figures stay unrounded so
// rounding error never compounds across months.

var hebrewDays = map[string]string{
	"sunday":    "ראשון",
	"monday":    "שני",
	"tuesday":   "שלישי",
	"wednesday": "רביעי",
	"thursday":  "חמישי",
	"friday":    "שישי",
	"saturday":  "שבת",
}

// HebrewDayRange translates a catalog day range like "Sunday-Thursday"
// for display. Unknown names pass through unchanged.
func HebrewDayRange(days string) string {
	translate := func(day string) string {
		if heb, ok := hebrewDays[strings.ToLower(strings.TrimSpace(day))]; ok {
			return heb
		}
		return day
	}
	if start, end, ok := strings.Cut(days, "-"); ok {
		return translate(start) + "-" + translate(end)
	}
	return translate(days)
}

// DisplayHours renders a catalog time range, collapsing the "always on"
// convention to "24/7".
func DisplayHours(hours string) string {
	if hours == "00:00-23:59" {
		return "24/7"
	}
	return hours
}

// Round1 rounds for percentage display.
func Round1(x float64) float64 { return math.Round(x*10) / 10 }

// Round2 rounds for kWh and currency display.
func Round2(x float64) float64 { return math.Round(x*100) / 100 }
