package projection

import "time"

// UpcomingDates lists the next n calendar days matching the community's
// allowed meeting weekdays, starting the day after now. Used by the
// calendar view to suggest dates for a scheduled meeting.
func UpcomingDates(now time.Time, allowed []time.Weekday, n int) []time.Time {
	if n <= 0 || len(allowed) == 0 {
		return nil
	}

	allowedSet := make(map[time.Weekday]bool, len(allowed))
	for _, d := range allowed {
		allowedSet[d] = true
	}

	var dates []time.Time
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for len(dates) < n {
		day = day.AddDate(0, 0, 1)
		if allowedSet[day.Weekday()] {
			dates = append(dates, day)
		}
	}
	return dates
}
