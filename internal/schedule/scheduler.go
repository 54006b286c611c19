package schedule

import (
	"context"
	"time"

	"github.com/ramanasai/fitlog/internal/config"
)

// NextAt computes the next reminder time that falls on a configured workday
// and is not a holiday. It returns the zero time when no workdays are set.
func NextAt(now time.Time, r config.ReminderConfig) time.Time {
	loc := r.Location()
	now = now.In(loc)

	// parse "HH:MM"
	hour, min := 18, 0
	if t, err := time.ParseInLocation("15:04", r.Time, loc); err == nil {
		hour = t.Hour()
		min = t.Minute()
	}
	workdays := map[string]bool{}
	for _, d := range r.Workdays {
		workdays[d] = true
	}
	if len(workdays) == 0 {
		return time.Time{}
	}
	holidays := map[string]bool{}
	for _, h := range r.Holidays {
		holidays[h] = true
	}

	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	// a year of holidays is the most that can be skipped
	for i := 0; i < 366; i++ {
		if workdays[cand.Weekday().String()[:3]] && !holidays[cand.Format("2006-01-02")] {
			return cand
		}
		cand = cand.AddDate(0, 0, 1)
	}
	return time.Time{}
}

// RunConfigured calls f at every scheduled reminder until ctx is canceled.
func RunConfigured(ctx context.Context, r config.ReminderConfig, f func()) {
	next := NextAt(time.Now(), r)
	if next.IsZero() {
		return
	}
	t := time.NewTimer(time.Until(next))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			f()
			next = NextAt(time.Now(), r)
			if next.IsZero() {
				return
			}
			t.Reset(time.Until(next))
		}
	}
}
