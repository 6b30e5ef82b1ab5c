package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"meetup-lab/domain"
	"meetup-lab/domain/search"
	"meetup-lab/errors"
	"meetup-lab/repositories"
)

type IPlannerService interface {
	AddTopic(req AddTopicRequest) (domain.Topic, error)
	VoteTopic(topicID uuid.UUID, delta int) (domain.Topic, error)
	SelectTopic(meetingID, topicID uuid.UUID) (domain.Meeting, error)
	SetMeetingCategory(meetingID uuid.UUID, category string) (domain.Meeting, error)
	AddResource(req AddResourceRequest) (domain.Resource, error)
	AddQuestion(req AddQuestionRequest) (domain.Question, error)
	VoteQuestion(topicID, questionID uuid.UUID) (domain.Question, error)
	AnswerQuestion(req AnswerQuestionRequest) (domain.Question, error)
	JoinTopic(topicID uuid.UUID, name string) (domain.Participant, error)
	VoteTimeSlot(meetingID, slotID uuid.UUID) (domain.TimeSlot, error)
	SelectTimeSlot(meetingID, slotID uuid.UUID) (domain.Meeting, error)
	AdvancePhase(meetingID uuid.UUID) (domain.Meeting, error)
	ResetMeeting(meetingID uuid.UUID) (domain.Meeting, error)

	Topics(category *domain.Category) []domain.Topic
	TopTopics(n int, category *domain.Category) []domain.Topic
	Meeting(id uuid.UUID) (domain.Meeting, error)
	CurrentMeeting() domain.Meeting
	FindTopics(ctx context.Context, query *search.Query) ([]domain.Topic, error)
}

// PlannerConfig carries the persisted server settings the core consumes
// but never mutates: they are injected once at construction.
type PlannerConfig struct {
	ServerName        string
	ServerID          string
	MeetingDays       []time.Weekday
	DefaultTimes      []string
	TopicVotingWindow time.Duration
	TimeVotingWindow  time.Duration
	AllowLateVotes    bool
}

// PlannerService owns the session state: one topic registry plus one or
// more meetings, each an independent aggregate. Commands are applied
// under a single-writer discipline: the host (one prompt loop, one event
// handler) serializes them; the lock only protects read-side observers
// like the debug server's stats provider.
//
// Persistence and the search index are best-effort observers: a storage
// error is logged and the command still succeeds, because the in-memory
// snapshot is authoritative for the session.
type PlannerService struct {
	mu  sync.RWMutex
	log *slog.Logger

	config PlannerConfig
	clock  func() time.Time

	store repositories.IPlanRepository // may be nil
	index repositories.ITopicIndex     // may be nil

	registry         domain.Registry
	meetings         map[uuid.UUID]domain.Meeting
	meetingOrder     []uuid.UUID
	currentMeetingID uuid.UUID
}

func NewPlannerService(
	log *slog.Logger,
	config PlannerConfig,
	store repositories.IPlanRepository,
	index repositories.ITopicIndex,
	clock func() time.Time,
) *PlannerService {
	if clock == nil {
		clock = time.Now
	}
	s := &PlannerService{
		log:      log,
		config:   config,
		clock:    clock,
		store:    store,
		index:    index,
		registry: domain.NewRegistry(),
		meetings: make(map[uuid.UUID]domain.Meeting),
	}
	s.restore()
	if len(s.meetingOrder) == 0 {
		s.seedMeeting()
	}
	s.currentMeetingID = s.meetingOrder[0]
	return s
}

// restore reloads persisted topics and meetings, if a store is attached.
// Failure to restore only logs: the session starts empty instead.
func (s *PlannerService) restore() {
	if s.store == nil {
		return
	}
	topics, err := s.store.LoadTopics()
	if err != nil {
		s.log.Warn("Could not restore topics", "error", err)
	} else if len(topics) > 0 {
		s.registry = domain.RestoreRegistry(topics)
		s.log.Info("Restored topics", "count", len(topics))
	}
	meetings, err := s.store.LoadMeetings()
	if err != nil {
		s.log.Warn("Could not restore meetings", "error", err)
		return
	}
	for _, m := range meetings {
		s.meetings[m.ID] = m
		s.meetingOrder = append(s.meetingOrder, m.ID)
	}
}

func (s *PlannerService) seedMeeting() {
	now := s.clock()
	meeting := domain.NewMeeting(
		s.config.DefaultTimes,
		now.Add(s.config.TopicVotingWindow),
		now.Add(s.config.TimeVotingWindow),
		s.config.AllowLateVotes,
		now,
	)
	s.meetings[meeting.ID] = meeting
	s.meetingOrder = append(s.meetingOrder, meeting.ID)
	s.persistMeeting(meeting)
	s.log.Info("Seeded meeting", "id", meeting.ID, "slots", len(meeting.Slots))
}

// AddTopic proposes a topic. When the current meeting carries a category
// restriction, topics of any other category are rejected.
func (s *PlannerService) AddTopic(req AddTopicRequest) (domain.Topic, error) {
	if err := checkRequest(req); err != nil {
		return domain.Topic{}, err
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return domain.Topic{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.meetings[s.currentMeetingID]; ok && !current.Accepts(category) {
		return domain.Topic{}, errors.NewValidation("category", "meeting is restricted to "+string(*current.Category))
	}

	registry, topic, err := s.registry.AddTopic(req.Title, category, req.Description, req.ScheduledFor, s.clock())
	if err != nil {
		return domain.Topic{}, err
	}
	s.registry = registry
	s.persistTopic(topic)
	s.indexTopic(topic)
	s.log.Info("Topic added", "id", topic.ID, "title", topic.Title, "category", topic.Category)
	return topic, nil
}

func (s *PlannerService) VoteTopic(topicID uuid.UUID, delta int) (domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	registry, topic, err := s.registry.VoteTopic(topicID, delta)
	if err != nil {
		return domain.Topic{}, err
	}
	s.registry = registry
	s.persistTopic(topic)
	return topic, nil
}

// SelectTopic designates the meeting's topic and advances it into
// time-voting. This is the only path out of topic-selection: the top-voted
// topic is never promoted implicitly.
func (s *PlannerService) SelectTopic(meetingID, topicID uuid.UUID) (domain.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meeting, err := s.meeting(meetingID)
	if err != nil {
		return domain.Meeting{}, err
	}
	topic, err := s.registry.Topic(topicID)
	if err != nil {
		return domain.Meeting{}, err
	}
	updated, err := meeting.SelectTopic(topic)
	if err != nil {
		return domain.Meeting{}, err
	}
	s.meetings[meetingID] = updated
	s.persistMeeting(updated)
	s.log.Info("Topic selected", "meeting", meetingID, "topic", topic.Title, "phase", updated.Phase)
	return updated, nil
}

func (s *PlannerService) SetMeetingCategory(meetingID uuid.UUID, category string) (domain.Meeting, error) {
	parsed, err := domain.ParseCategory(category)
	if err != nil {
		return domain.Meeting{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meeting, err := s.meeting(meetingID)
	if err != nil {
		return domain.Meeting{}, err
	}
	updated := meeting.SetCategory(parsed)
	s.meetings[meetingID] = updated
	s.persistMeeting(updated)
	return updated, nil
}

func (s *PlannerService) AddResource(req AddResourceRequest) (domain.Resource, error) {
	if err := checkRequest(req); err != nil {
		return domain.Resource{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	registry, resource, err := s.registry.AddResource(req.TopicID, req.Title, domain.ResourceKind(req.Kind), req.URL, req.AddedBy, s.clock())
	if err != nil {
		return domain.Resource{}, err
	}
	s.registry = registry
	s.persistTopicByID(req.TopicID)
	return resource, nil
}

func (s *PlannerService) AddQuestion(req AddQuestionRequest) (domain.Question, error) {
	if err := checkRequest(req); err != nil {
		return domain.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	registry, question, err := s.registry.AddQuestion(req.TopicID, req.Content, req.AskedBy, s.clock())
	if err != nil {
		return domain.Question{}, err
	}
	s.registry = registry
	s.persistTopicByID(req.TopicID)
	return question, nil
}

func (s *PlannerService) VoteQuestion(topicID, questionID uuid.UUID) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	registry, question, err := s.registry.VoteQuestion(topicID, questionID)
	if err != nil {
		return domain.Question{}, err
	}
	s.registry = registry
	s.persistTopicByID(topicID)
	return question, nil
}

func (s *PlannerService) AnswerQuestion(req AnswerQuestionRequest) (domain.Question, error) {
	if err := checkRequest(req); err != nil {
		return domain.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	registry, question, err := s.registry.AnswerQuestion(req.TopicID, req.QuestionID, req.Answer)
	if err != nil {
		return domain.Question{}, err
	}
	s.registry = registry
	s.persistTopicByID(req.TopicID)
	return question, nil
}

func (s *PlannerService) JoinTopic(topicID uuid.UUID, name string) (domain.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	registry, participant, err := s.registry.JoinTopic(topicID, name, s.clock())
	if err != nil {
		return domain.Participant{}, err
	}
	s.registry = registry
	s.persistTopicByID(topicID)
	return participant, nil
}

func (s *PlannerService) VoteTimeSlot(meetingID, slotID uuid.UUID) (domain.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meeting, err := s.meeting(meetingID)
	if err != nil {
		return domain.TimeSlot{}, err
	}
	updated, slot, err := meeting.VoteTimeSlot(slotID)
	if err != nil {
		return domain.TimeSlot{}, err
	}
	s.meetings[meetingID] = updated
	s.persistMeeting(updated)
	return slot, nil
}

func (s *PlannerService) SelectTimeSlot(meetingID, slotID uuid.UUID) (domain.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meeting, err := s.meeting(meetingID)
	if err != nil {
		return domain.Meeting{}, err
	}
	updated, err := meeting.SelectTimeSlot(slotID)
	if err != nil {
		return domain.Meeting{}, err
	}
	s.meetings[meetingID] = updated
	s.persistMeeting(updated)
	s.log.Info("Time slot selected", "meeting", meetingID, "phase", updated.Phase)
	return updated, nil
}

func (s *PlannerService) AdvancePhase(meetingID uuid.UUID) (domain.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meeting, err := s.meeting(meetingID)
	if err != nil {
		return domain.Meeting{}, err
	}
	updated, err := meeting.Advance()
	if err != nil {
		return domain.Meeting{}, err
	}
	s.meetings[meetingID] = updated
	s.persistMeeting(updated)
	s.log.Info("Phase advanced", "meeting", meetingID, "phase", updated.Phase)
	return updated, nil
}

// ResetMeeting starts a new cycle on a scheduled meeting: selections are
// cleared, slot tallies reset and fresh voting deadlines are computed from
// the configured windows.
func (s *PlannerService) ResetMeeting(meetingID uuid.UUID) (domain.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meeting, err := s.meeting(meetingID)
	if err != nil {
		return domain.Meeting{}, err
	}
	now := s.clock()
	updated, err := meeting.Reset(now.Add(s.config.TopicVotingWindow), now.Add(s.config.TimeVotingWindow))
	if err != nil {
		return domain.Meeting{}, err
	}
	s.meetings[meetingID] = updated
	s.persistMeeting(updated)
	s.log.Info("Meeting reset", "meeting", meetingID)
	return updated, nil
}

func (s *PlannerService) Topics(category *domain.Category) []domain.Topic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topics := s.registry.Topics()
	if category == nil {
		return topics
	}
	return lo.Filter(topics, func(t domain.Topic, _ int) bool {
		return t.Category == *category
	})
}

func (s *PlannerService) TopTopics(n int, category *domain.Category) []domain.Topic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry.TopTopics(n, category)
}

func (s *PlannerService) Meeting(id uuid.UUID) (domain.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meeting(id)
}

// CurrentMeeting returns the explicitly tracked current meeting. The
// planner never falls back to "first element of the list".
func (s *PlannerService) CurrentMeeting() domain.Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meetings[s.currentMeetingID]
}

// FindTopics resolves a parsed search query against the Bluge index, then
// maps the matching ids back to registry snapshots. Without an index it
// degrades to a case-insensitive substring scan.
func (s *PlannerService) FindTopics(ctx context.Context, query *search.Query) ([]domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index == nil {
		return s.scanTopics(query), nil
	}

	ids, err := s.index.Search(ctx, query.Terms, query.Category, query.Limit)
	if err != nil {
		return nil, err
	}
	var topics []domain.Topic
	for _, id := range ids {
		topic, err := s.registry.Topic(id)
		if err != nil {
			// The index may be ahead of or behind the registry; a stale
			// hit is dropped, not surfaced.
			continue
		}
		topics = append(topics, topic)
	}
	return topics, nil
}

func (s *PlannerService) scanTopics(query *search.Query) []domain.Topic {
	terms := strings.ToLower(query.Terms)
	var topics []domain.Topic
	for _, t := range s.registry.Topics() {
		if query.Category != nil && t.Category != *query.Category {
			continue
		}
		haystack := strings.ToLower(t.Title + " " + t.Description)
		if terms == "" || strings.Contains(haystack, terms) {
			topics = append(topics, t)
		}
		if len(topics) == query.Limit {
			break
		}
	}
	return topics
}

// Stats feeds the debug server's dashboard.
func (s *PlannerService) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topics := s.registry.Topics()
	votes := 0
	for _, t := range topics {
		votes += t.Votes
	}
	current := s.meetings[s.currentMeetingID]
	return map[string]any{
		"Server":   s.config.ServerName,
		"Topics":   len(topics),
		"NetVotes": votes,
		"Meetings": len(s.meetingOrder),
		"Phase":    string(current.Phase),
	}
}

func (s *PlannerService) meeting(id uuid.UUID) (domain.Meeting, error) {
	meeting, ok := s.meetings[id]
	if !ok {
		return domain.Meeting{}, errors.NewNotFound("meeting", id.String())
	}
	return meeting, nil
}

func (s *PlannerService) persistTopic(topic domain.Topic) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveTopic(topic); err != nil {
		s.log.Warn("Could not persist topic", "id", topic.ID, "error", err)
	}
}

// persistTopicByID re-saves a topic after a nested mutation (resource,
// question, participant) changed it.
func (s *PlannerService) persistTopicByID(id uuid.UUID) {
	topic, err := s.registry.Topic(id)
	if err != nil {
		return
	}
	s.persistTopic(topic)
}

func (s *PlannerService) persistMeeting(meeting domain.Meeting) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveMeeting(meeting); err != nil {
		s.log.Warn("Could not persist meeting", "id", meeting.ID, "error", err)
	}
}

func (s *PlannerService) indexTopic(topic domain.Topic) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(topic); err != nil {
		s.log.Warn("Could not index topic", "id", topic.ID, "error", err)
	}
}
