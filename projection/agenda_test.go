package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"meetup-lab/domain"
)

func Test_BuildAgenda_FreshCycle(t *testing.T) {
	req := require.New(t)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	meeting := domain.NewMeeting([]string{"20:00", "21:00"}, now.Add(5*time.Hour), now.Add(30*time.Hour), false, now)

	agenda := BuildAgenda("Digital Marketing Hub", meeting, domain.NewRegistry(), now)

	req.Equal("Digital Marketing Hub", agenda.ServerName)
	req.Equal(domain.PhaseTopicSelection, agenda.Phase)
	req.Empty(agenda.SelectedTopic)
	req.Empty(agenda.SelectedSlot)
	req.Equal("5h left", agenda.TopicCountdown)
	req.Equal("30h left", agenda.SlotCountdown)
	req.Len(agenda.Slots, 2)
	req.Empty(agenda.Leaderboard)
	// No votes cast, so nothing is leading yet.
	for _, slot := range agenda.Slots {
		req.False(slot.Leading)
		req.False(slot.Selected)
	}
}

func Test_BuildAgenda_MarksLeadingAndSelectedSlots(t *testing.T) {
	req := require.New(t)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	registry, topic, err := domain.NewRegistry().AddTopic("Email funnels", domain.CategoryMarketing, "welcome sequences", nil, now)
	req.NoError(err)

	meeting := domain.NewMeeting([]string{"20:00", "21:00", "22:00"}, now.Add(-time.Hour), now.Add(time.Hour), false, now)
	meeting, err = meeting.SelectTopic(topic)
	req.NoError(err)
	meeting, _, err = meeting.VoteTimeSlot(meeting.Slots[1].ID)
	req.NoError(err)

	agenda := BuildAgenda("Hub", meeting, registry, now)

	req.Equal("Email funnels", agenda.SelectedTopic)
	req.Equal("Voting ended", agenda.TopicCountdown)
	req.True(agenda.Slots[1].Leading)
	req.False(agenda.Slots[0].Leading)

	meeting, err = meeting.SelectTimeSlot(meeting.Slots[1].ID)
	req.NoError(err)
	agenda = BuildAgenda("Hub", meeting, registry, now)
	req.Equal("21:00", agenda.SelectedSlot)
	req.True(agenda.Slots[1].Selected)
}

func Test_BuildAgenda_LeaderboardHonorsMeetingCategory(t *testing.T) {
	req := require.New(t)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	registry, pins, err := domain.NewRegistry().AddTopic("Rich pins", domain.CategoryPinterest, "structured pin data", nil, now)
	req.NoError(err)
	registry, _, err = registry.AddTopic("Brand voice", domain.CategoryBranding, "tone across channels", nil, now)
	req.NoError(err)
	registry, _, err = registry.VoteTopic(pins.ID, 1)
	req.NoError(err)

	meeting := domain.NewMeeting([]string{"20:00"}, now.Add(time.Hour), now.Add(2*time.Hour), false, now)
	meeting = meeting.SetCategory(domain.CategoryPinterest)

	agenda := BuildAgenda("Hub", meeting, registry, now)
	req.Len(agenda.Leaderboard, 1)
	req.Equal("Rich pins", agenda.Leaderboard[0].Title)
	req.Equal(1, agenda.Leaderboard[0].Votes)
}

func Test_UpcomingDates(t *testing.T) {
	req := require.New(t)
	// Monday noon: the next allowed days are Thu 13, Fri 14, Sat 15, Sun 16, Thu 20.
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	allowed := []time.Weekday{time.Thursday, time.Friday, time.Saturday, time.Sunday}

	dates := UpcomingDates(now, allowed, 5)
	req.Len(dates, 5)
	req.Equal(13, dates[0].Day())
	req.Equal(14, dates[1].Day())
	req.Equal(15, dates[2].Day())
	req.Equal(16, dates[3].Day())
	req.Equal(20, dates[4].Day())
	for _, d := range dates {
		req.Contains(allowed, d.Weekday())
		req.Zero(d.Hour())
	}
}

func Test_UpcomingDates_StartsTomorrow(t *testing.T) {
	req := require.New(t)
	// A Thursday: the same weekday must resolve to next week, not today.
	now := time.Date(2025, time.March, 13, 9, 0, 0, 0, time.UTC)

	dates := UpcomingDates(now, []time.Weekday{time.Thursday}, 1)
	req.Len(dates, 1)
	req.Equal(20, dates[0].Day())
}

func Test_UpcomingDates_EmptyInputs(t *testing.T) {
	req := require.New(t)
	now := time.Now()

	req.Nil(UpcomingDates(now, nil, 3))
	req.Nil(UpcomingDates(now, []time.Weekday{time.Monday}, 0))
}
