package domain

import (
	"fmt"
	"time"
)

// WinningTopic returns the topic with the highest vote count, ties
// resolving to the first-seen topic. The second return is false for an
// empty candidate list.
func WinningTopic(topics []Topic) (Topic, bool) {
	if len(topics) == 0 {
		return Topic{}, false
	}
	winner := topics[0]
	for _, t := range topics[1:] {
		if t.Votes > winner.Votes {
			winner = t
		}
	}
	return winner, true
}

// TimeLeft reports how long remains until a voting deadline, clamped at
// zero. The core never schedules wake-ups; callers re-invoke this with
// their own "now" to observe expiry.
func TimeLeft(deadline, now time.Time) time.Duration {
	left := deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// FormatTimeLeft renders a countdown in whole hours, the way the sidebar
// shows it.
func FormatTimeLeft(deadline, now time.Time) string {
	hours := int(TimeLeft(deadline, now).Hours())
	if hours > 0 {
		return fmt.Sprintf("%dh left", hours)
	}
	return "Voting ended"
}
