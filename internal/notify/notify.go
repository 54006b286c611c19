package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/ramanasai/fitlog/internal/activity"
)

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

// FormatReminder builds the reminder notification from the session totals.
func FormatReminder(t activity.Totals) (string, string) {
	title := "Workout reminder"
	if t.Minutes == 0 {
		return title, "Nothing logged yet. Time to move?"
	}
	msg := fmt.Sprintf("%d min logged so far (%d kcal, %d steps). Anything to add?", t.Minutes, t.Calories, t.Steps)
	return title, msg
}
