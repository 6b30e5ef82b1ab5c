package domain

import (
	"time"

	"github.com/google/uuid"

	"meetup-lab/errors"
)

// TimeSlot is a candidate meeting time, votable, scoped to one meeting.
// Slots are fixed at meeting creation.
type TimeSlot struct {
	ID    uuid.UUID
	Label string
	Votes int
}

// Meeting is one planning cycle. Like Registry it is a value: transitions
// return the next snapshot and leave the receiver unchanged on error.
//
// SelectedTopic is only non-nil in time-voting, preparation and scheduled;
// SelectedSlot only in preparation and scheduled. Both selections happen
// explicitly; there is no auto-selection of the top-voted topic.
type Meeting struct {
	ID                uuid.UUID
	Phase             Phase
	Category          *Category
	Slots             []TimeSlot
	SelectedTopic     *Topic
	SelectedSlot      *TimeSlot
	TopicVotingEndsAt time.Time
	TimeVotingEndsAt  time.Time

	// AllowLateVotes also accepts slot votes in the scheduled phase,
	// treated as re-votes for the next cycle.
	AllowLateVotes bool

	CreatedAt time.Time
}

// NewMeeting seeds a meeting in topic-selection with one slot per label.
func NewMeeting(slotLabels []string, topicVotingEndsAt, timeVotingEndsAt time.Time, allowLateVotes bool, now time.Time) Meeting {
	slots := make([]TimeSlot, 0, len(slotLabels))
	for _, label := range slotLabels {
		slots = append(slots, TimeSlot{ID: uuid.New(), Label: label})
	}
	return Meeting{
		ID:                uuid.New(),
		Phase:             PhaseTopicSelection,
		Slots:             slots,
		TopicVotingEndsAt: topicVotingEndsAt,
		TimeVotingEndsAt:  timeVotingEndsAt,
		AllowLateVotes:    allowLateVotes,
		CreatedAt:         now,
	}
}

// Slot resolves a slot by id within this meeting.
func (m Meeting) Slot(id uuid.UUID) (TimeSlot, error) {
	for _, s := range m.Slots {
		if s.ID == id {
			return s, nil
		}
	}
	return TimeSlot{}, errors.NewNotFound("time slot", id.String())
}

// SetCategory restricts which topics may be proposed for this cycle.
func (m Meeting) SetCategory(c Category) Meeting {
	m.Category = &c
	return m
}

// Accepts reports whether a topic of the given category may be proposed
// while this meeting's cycle is running.
func (m Meeting) Accepts(c Category) bool {
	return m.Category == nil || *m.Category == c
}

// SelectTopic designates the topic for this cycle and advances
// topic-selection → time-voting. The meeting keeps a copy of the topic as
// it was at selection time, never the registry's own element.
func (m Meeting) SelectTopic(topic Topic) (Meeting, error) {
	if m.Phase != PhaseTopicSelection {
		return m, errors.NewInvalidTransition(string(m.Phase), string(PhaseTimeVoting), "topic already selected")
	}
	snapshot := topic
	m.SelectedTopic = &snapshot
	m.Phase = PhaseTimeVoting
	return m, nil
}

// VoteTimeSlot increments a slot's count by 1. Votes are accepted in
// time-voting, and additionally in scheduled when AllowLateVotes is set.
func (m Meeting) VoteTimeSlot(slotID uuid.UUID) (Meeting, TimeSlot, error) {
	open := m.Phase == PhaseTimeVoting || (m.AllowLateVotes && m.Phase == PhaseScheduled)
	if !open {
		return m, TimeSlot{}, errors.NewInvalidTransition(string(m.Phase), string(m.Phase), "time voting is not open")
	}
	for i, s := range m.Slots {
		if s.ID != slotID {
			continue
		}
		slots := cloneSlice(m.Slots)
		slots[i].Votes++
		m.Slots = slots
		return m, slots[i], nil
	}
	return m, TimeSlot{}, errors.NewNotFound("time slot", slotID.String())
}

// SelectTimeSlot fixes the meeting time and advances
// time-voting → preparation.
func (m Meeting) SelectTimeSlot(slotID uuid.UUID) (Meeting, error) {
	if m.Phase != PhaseTimeVoting {
		return m, errors.NewInvalidTransition(string(m.Phase), string(PhasePreparation), "time voting is not running")
	}
	slot, err := m.Slot(slotID)
	if err != nil {
		return m, err
	}
	m.SelectedSlot = &slot
	m.Phase = PhasePreparation
	return m, nil
}

// Advance finalizes preparation → scheduled. The two earlier transitions
// only happen through SelectTopic and SelectTimeSlot, so advancing from
// any other phase fails with a typed error naming the missing step.
func (m Meeting) Advance() (Meeting, error) {
	switch m.Phase {
	case PhaseTopicSelection:
		return m, errors.NewInvalidTransition(string(m.Phase), string(PhaseTimeVoting), "select a topic first")
	case PhaseTimeVoting:
		return m, errors.NewInvalidTransition(string(m.Phase), string(PhasePreparation), "select a time slot first")
	case PhasePreparation:
		m.Phase = PhaseScheduled
		return m, nil
	default:
		return m, errors.NewInvalidTransition(string(m.Phase), string(PhaseScheduled), "meeting is already scheduled")
	}
}

// Reset re-enters topic-selection from the terminal scheduled phase for a
// new cycle: selections are cleared, slot tallies start from zero and new
// voting deadlines apply.
func (m Meeting) Reset(topicVotingEndsAt, timeVotingEndsAt time.Time) (Meeting, error) {
	if m.Phase != PhaseScheduled {
		return m, errors.NewInvalidTransition(string(m.Phase), string(PhaseTopicSelection), "only a scheduled meeting can be reset")
	}
	slots := cloneSlice(m.Slots)
	for i := range slots {
		slots[i].Votes = 0
	}
	m.Slots = slots
	m.SelectedTopic = nil
	m.SelectedSlot = nil
	m.Phase = PhaseTopicSelection
	m.TopicVotingEndsAt = topicVotingEndsAt
	m.TimeVotingEndsAt = timeVotingEndsAt
	return m, nil
}

// WinningSlot returns the slot with the highest count. Ties resolve to the
// first-seen slot so identical vote sequences always produce the same
// winner. The second return is false for a meeting without slots.
func (m Meeting) WinningSlot() (TimeSlot, bool) {
	if len(m.Slots) == 0 {
		return TimeSlot{}, false
	}
	winner := m.Slots[0]
	for _, s := range m.Slots[1:] {
		if s.Votes > winner.Votes {
			winner = s
		}
	}
	return winner, true
}
