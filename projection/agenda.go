// Package projection builds read-side views from planner snapshots.
// Projections never mutate state and never talk to storage or UI directly.
package projection

import (
	"time"

	"meetup-lab/domain"
)

// SlotRow is one candidate time with its tally.
type SlotRow struct {
	Label    string
	Votes    int
	Selected bool
	Leading  bool
}

// TopicRow is one leaderboard entry.
type TopicRow struct {
	Title        string
	Category     domain.Category
	Votes        int
	Participants int
	Questions    int
	Resources    int
}

// Agenda is the sidebar view of one meeting cycle: where the cycle stands,
// what has been picked, and how the votes look right now.
type Agenda struct {
	ServerName     string
	Phase          domain.Phase
	SelectedTopic  string
	SelectedSlot   string
	TopicCountdown string
	SlotCountdown  string
	Slots          []SlotRow
	Leaderboard    []TopicRow
}

// BuildAgenda assembles the agenda for one meeting from the current
// registry snapshot. The leaderboard shows up to five topics honoring the
// meeting's category restriction.
func BuildAgenda(serverName string, meeting domain.Meeting, registry domain.Registry, now time.Time) Agenda {
	agenda := Agenda{
		ServerName:     serverName,
		Phase:          meeting.Phase,
		TopicCountdown: domain.FormatTimeLeft(meeting.TopicVotingEndsAt, now),
		SlotCountdown:  domain.FormatTimeLeft(meeting.TimeVotingEndsAt, now),
	}
	if meeting.SelectedTopic != nil {
		agenda.SelectedTopic = meeting.SelectedTopic.Title
	}
	if meeting.SelectedSlot != nil {
		agenda.SelectedSlot = meeting.SelectedSlot.Label
	}

	leading, hasLeading := meeting.WinningSlot()
	for _, slot := range meeting.Slots {
		agenda.Slots = append(agenda.Slots, SlotRow{
			Label:    slot.Label,
			Votes:    slot.Votes,
			Selected: meeting.SelectedSlot != nil && meeting.SelectedSlot.ID == slot.ID,
			Leading:  hasLeading && leading.ID == slot.ID && slot.Votes > 0,
		})
	}

	for _, topic := range registry.TopTopics(5, meeting.Category) {
		agenda.Leaderboard = append(agenda.Leaderboard, TopicRow{
			Title:        topic.Title,
			Category:     topic.Category,
			Votes:        topic.Votes,
			Participants: len(topic.Participants),
			Questions:    len(topic.Questions),
			Resources:    len(topic.Resources),
		})
	}
	return agenda
}
