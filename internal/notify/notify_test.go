package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ramanasai/fitlog/internal/activity"
)

func TestFormatReminder(t *testing.T) {
	title, msg := FormatReminder(activity.Totals{})
	assert.Equal(t, "Workout reminder", title)
	assert.Contains(t, msg, "Nothing logged")

	_, msg = FormatReminder(activity.Totals{Minutes: 90, Calories: 609, Steps: 9900})
	assert.Equal(t, "90 min logged so far (609 kcal, 9900 steps). Anything to add?", msg)
}
