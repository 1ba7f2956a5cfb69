package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHebrewDayRange(t *testing.T) {
	assert.Equal(t, "ראשון-חמישי", HebrewDayRange("Sunday-Thursday"))
	assert.Equal(t, "שישי-שבת", HebrewDayRange("friday-saturday"))
	assert.Equal(t, "שבת", HebrewDayRange("Saturday"))
	assert.Equal(t, "Funday", HebrewDayRange("Funday"), "unknown names pass through")
}

func TestDisplayHours(t *testing.T) {
	assert.Equal(t, "24/7", DisplayHours("00:00-23:59"))
	assert.Equal(t, "23:00-07:00", DisplayHours("23:00-07:00"))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 12.35, Round2(12.3456))
	assert.Equal(t, 12.3, Round1(12.34))
	assert.Equal(t, -0.5, Round1(-0.45))
}
