package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"meetup-lab/errors"
)

var slotLabels = []string{"20:00", "21:00", "22:00", "23:00"}

func seedMeeting(allowLate bool) Meeting {
	now := time.Now().UTC()
	return NewMeeting(slotLabels, now.Add(48*time.Hour), now.Add(72*time.Hour), allowLate, now)
}

func Test_NewMeeting_SeedsSlots(t *testing.T) {
	req := require.New(t)
	meeting := seedMeeting(false)

	req.Equal(PhaseTopicSelection, meeting.Phase)
	req.Len(meeting.Slots, 4)
	req.Equal("20:00", meeting.Slots[0].Label)
	req.Nil(meeting.SelectedTopic)
	req.Nil(meeting.SelectedSlot)
}

func Test_Lifecycle_HappyPath(t *testing.T) {
	req := require.New(t)
	meeting := seedMeeting(false)

	topicA := Topic{ID: uuid.New(), Title: "A", Votes: 15}

	// Selecting the topic starts time voting.
	meeting, err := meeting.SelectTopic(topicA)
	req.NoError(err)
	req.Equal(PhaseTimeVoting, meeting.Phase)
	req.Equal("A", meeting.SelectedTopic.Title)

	// Fixing the slot starts preparation.
	slotX := meeting.Slots[1]
	meeting, err = meeting.SelectTimeSlot(slotX.ID)
	req.NoError(err)
	req.Equal(PhasePreparation, meeting.Phase)
	req.Equal(slotX.ID, meeting.SelectedSlot.ID)

	// Advancing finalizes the cycle.
	meeting, err = meeting.Advance()
	req.NoError(err)
	req.Equal(PhaseScheduled, meeting.Phase)
}

func Test_Phases_AreMonotonic(t *testing.T) {
	req := require.New(t)
	meeting := seedMeeting(false)

	// No command reaches preparation without passing through time-voting:
	// advancing and selecting a slot both refuse in topic-selection.
	_, err := meeting.Advance()
	req.ErrorIs(err, errors.ErrInvalidTransition)
	req.Equal(PhaseTopicSelection, meeting.Phase)

	_, err = meeting.SelectTimeSlot(meeting.Slots[0].ID)
	req.ErrorIs(err, errors.ErrInvalidTransition)
	req.Equal(PhaseTopicSelection, meeting.Phase)
	req.Nil(meeting.SelectedSlot)
}

func Test_SelectTopic_OnlyFromTopicSelection(t *testing.T) {
	req := require.New(t)
	meeting := seedMeeting(false)
	meeting, err := meeting.SelectTopic(Topic{ID: uuid.New(), Title: "A"})
	req.NoError(err)

	_, err = meeting.SelectTopic(Topic{ID: uuid.New(), Title: "B"})
	req.ErrorIs(err, errors.ErrInvalidTransition)
	req.Equal("A", meeting.SelectedTopic.Title)
}

func Test_SelectTimeSlot_UnknownSlot(t *testing.T) {
	req := require.New(t)
	meeting := seedMeeting(false)
	meeting, err := meeting.SelectTopic(Topic{ID: uuid.New(), Title: "A"})
	req.NoError(err)

	_, err = meeting.SelectTimeSlot(uuid.New())
	req.ErrorIs(err, errors.ErrNotFound)
	req.Equal(PhaseTimeVoting, meeting.Phase)
}

func Test_VoteTimeSlot_GatedByPhase(t *testing.T) {
	req := require.New(t)
	meeting := seedMeeting(false)

	// Closed during topic selection.
	_, _, err := meeting.VoteTimeSlot(meeting.Slots[0].ID)
	req.ErrorIs(err, errors.ErrInvalidTransition)

	meeting, err = meeting.SelectTopic(Topic{ID: uuid.New(), Title: "A"})
	req.NoError(err)

	meeting, slot, err := meeting.VoteTimeSlot(meeting.Slots[0].ID)
	req.NoError(err)
	req.Equal(1, slot.Votes)

	_, err = meeting.Slot(uuid.New())
	req.ErrorIs(err, errors.ErrNotFound)
}

func Test_VoteTimeSlot_LateVotesBehindFlag(t *testing.T) {
	req := require.New(t)

	schedule := func(m Meeting) Meeting {
		m, err := m.SelectTopic(Topic{ID: uuid.New(), Title: "A"})
		require.NoError(t, err)
		m, err = m.SelectTimeSlot(m.Slots[0].ID)
		require.NoError(t, err)
		m, err = m.Advance()
		require.NoError(t, err)
		return m
	}

	strict := schedule(seedMeeting(false))
	_, _, err := strict.VoteTimeSlot(strict.Slots[0].ID)
	req.ErrorIs(err, errors.ErrInvalidTransition)

	// With the flag, votes in scheduled count as re-votes.
	loose := schedule(seedMeeting(true))
	loose, slot, err := loose.VoteTimeSlot(loose.Slots[0].ID)
	req.NoError(err)
	req.Equal(PhaseScheduled, loose.Phase)
	req.Equal(1, slot.Votes)
}

func Test_WinningSlot_Deterministic(t *testing.T) {
	req := require.New(t)
	meeting := seedMeeting(false)
	meeting, err := meeting.SelectTopic(Topic{ID: uuid.New(), Title: "A"})
	req.NoError(err)

	// 20:00 gets 5, 21:00 gets 5 then 3 more, 22:00 gets 3, 23:00 gets 2.
	cast := func(i, times int) {
		for v := 0; v < times; v++ {
			var voteErr error
			meeting, _, voteErr = meeting.VoteTimeSlot(meeting.Slots[i].ID)
			require.NoError(t, voteErr)
		}
	}
	cast(0, 5)
	cast(1, 5)
	cast(2, 3)
	cast(3, 2)

	winner, ok := meeting.WinningSlot()
	req.True(ok)
	req.Equal("20:00", winner.Label) // tie 5-5 resolves to the first-seen slot

	cast(1, 3)
	winner, ok = meeting.WinningSlot()
	req.True(ok)
	req.Equal("21:00", winner.Label)
	req.Equal(8, winner.Votes)
}

func Test_Reset_StartsCleanCycle(t *testing.T) {
	req := require.New(t)
	meeting := seedMeeting(false)

	// Reset is only legal from scheduled.
	_, err := meeting.Reset(time.Now(), time.Now())
	req.ErrorIs(err, errors.ErrInvalidTransition)

	meeting, err = meeting.SelectTopic(Topic{ID: uuid.New(), Title: "A"})
	req.NoError(err)
	meeting, _, err = meeting.VoteTimeSlot(meeting.Slots[2].ID)
	req.NoError(err)
	meeting, err = meeting.SelectTimeSlot(meeting.Slots[2].ID)
	req.NoError(err)
	meeting, err = meeting.Advance()
	req.NoError(err)

	newTopicDeadline := time.Now().UTC().Add(24 * time.Hour)
	newTimeDeadline := time.Now().UTC().Add(48 * time.Hour)
	meeting, err = meeting.Reset(newTopicDeadline, newTimeDeadline)
	req.NoError(err)

	req.Equal(PhaseTopicSelection, meeting.Phase)
	req.Nil(meeting.SelectedTopic)
	req.Nil(meeting.SelectedSlot)
	req.Equal(newTopicDeadline, meeting.TopicVotingEndsAt)
	req.Equal(newTimeDeadline, meeting.TimeVotingEndsAt)
	for _, slot := range meeting.Slots {
		req.Zero(slot.Votes)
	}
}

func Test_CanTransition_Edges(t *testing.T) {
	req := require.New(t)
	req.True(CanTransition(PhaseTopicSelection, PhaseTimeVoting))
	req.True(CanTransition(PhaseTimeVoting, PhasePreparation))
	req.True(CanTransition(PhasePreparation, PhaseScheduled))
	req.True(CanTransition(PhaseScheduled, PhaseTopicSelection))

	req.False(CanTransition(PhaseTopicSelection, PhasePreparation))
	req.False(CanTransition(PhaseScheduled, PhaseTimeVoting))
	req.False(CanTransition(PhasePreparation, PhaseTopicSelection))
}

func Test_Category_Gate(t *testing.T) {
	req := require.New(t)
	meeting := seedMeeting(false)
	req.True(meeting.Accepts(CategoryBlogging))

	meeting = meeting.SetCategory(CategoryMarketing)
	req.True(meeting.Accepts(CategoryMarketing))
	req.False(meeting.Accepts(CategoryBlogging))
}
