package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ramanasai/fitlog/internal/config"
)

func reminder() config.ReminderConfig {
	return config.ReminderConfig{
		Enabled:  true,
		Time:     "18:30",
		Workdays: []string{"Mon", "Wed", "Fri"},
		Timezone: "UTC",
	}
}

func TestNextAt_LaterToday(t *testing.T) {
	// Wednesday morning
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 12, 18, 30, 0, 0, time.UTC), NextAt(now, reminder()))
}

func TestNextAt_SkipsNonWorkdays(t *testing.T) {
	// Wednesday evening, after the reminder; Thursday is not a workday
	now := time.Date(2025, 3, 12, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC), NextAt(now, reminder()))
}

func TestNextAt_SkipsHolidays(t *testing.T) {
	r := reminder()
	r.Holidays = []string{"2025-03-14"}
	now := time.Date(2025, 3, 12, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 17, 18, 30, 0, 0, time.UTC), NextAt(now, r))
}

func TestNextAt_BadTimeFallsBack(t *testing.T) {
	r := reminder()
	r.Time = "soon"
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC), NextAt(now, r))
}

func TestNextAt_NoWorkdays(t *testing.T) {
	r := reminder()
	r.Workdays = nil
	assert.True(t, NextAt(time.Now(), r).IsZero())
}
