package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"meetup-lab/domain"
)

func openBadger(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_SaveAndLoad_Topics_KeepInsertionOrder(t *testing.T) {
	req := require.New(t)
	repository := NewPlanRepository(openBadger(t), slog.Default())

	registry := domain.NewRegistry()
	base := time.Now().UTC()
	titles := []string{"First", "Second", "Third"}
	for i, title := range titles {
		var topic domain.Topic
		var err error
		registry, topic, err = registry.AddTopic(title, domain.CategoryMarketing, "about "+title, nil, base.Add(time.Duration(i)*time.Second))
		req.NoError(err)
		req.NoError(repository.SaveTopic(topic))
	}

	loaded, err := repository.LoadTopics()
	req.NoError(err)
	req.Len(loaded, 3)
	for i, title := range titles {
		req.Equal(title, loaded[i].Title)
	}
}

func Test_SaveTopic_OverwritesInPlace(t *testing.T) {
	req := require.New(t)
	repository := NewPlanRepository(openBadger(t), slog.Default())

	registry, topic, err := domain.NewRegistry().AddTopic("Pin SEO", domain.CategoryPinterest, "ranking pins", nil, time.Now().UTC())
	req.NoError(err)
	req.NoError(repository.SaveTopic(topic))

	_, voted, err := registry.VoteTopic(topic.ID, 1)
	req.NoError(err)
	req.NoError(repository.SaveTopic(voted))

	loaded, err := repository.LoadTopics()
	req.NoError(err)
	req.Len(loaded, 1)
	req.Equal(1, loaded[0].Votes)
}

func Test_SaveAndLoad_Meeting_RoundTrip(t *testing.T) {
	req := require.New(t)
	repository := NewPlanRepository(openBadger(t), slog.Default())

	now := time.Now().UTC().Truncate(time.Second)
	meeting := domain.NewMeeting([]string{"20:00", "21:00"}, now.Add(48*time.Hour), now.Add(72*time.Hour), true, now)
	meeting, err := meeting.SelectTopic(domain.Topic{Title: "Brand voice", Category: domain.CategoryBranding, CreatedAt: now})
	req.NoError(err)
	req.NoError(repository.SaveMeeting(meeting))

	loaded, err := repository.LoadMeetings()
	req.NoError(err)
	req.Len(loaded, 1)
	req.Equal(meeting.ID, loaded[0].ID)
	req.Equal(domain.PhaseTimeVoting, loaded[0].Phase)
	req.Equal("Brand voice", loaded[0].SelectedTopic.Title)
	req.Len(loaded[0].Slots, 2)
	req.True(loaded[0].AllowLateVotes)
}

func Test_Load_EmptyDatabase(t *testing.T) {
	req := require.New(t)
	repository := NewPlanRepository(openBadger(t), slog.Default())

	topics, err := repository.LoadTopics()
	req.NoError(err)
	req.Empty(topics)

	meetings, err := repository.LoadMeetings()
	req.NoError(err)
	req.Empty(meetings)
}
