package domain

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"meetup-lab/errors"
)

// Registry is the authoritative collection of topics. It is a value:
// commands return the next snapshot and the entity they touched, and on
// error the receiver is returned unchanged. Topics keep their insertion
// order, which doubles as the deterministic tie-break everywhere votes
// are compared.
type Registry struct {
	topics []Topic
}

func NewRegistry() Registry {
	return Registry{}
}

// RestoreRegistry rebuilds a registry from persisted topics. The slice
// order must be the original insertion order.
func RestoreRegistry(topics []Topic) Registry {
	return Registry{topics: cloneSlice(topics)}
}

// Topics returns every topic in insertion order.
func (r Registry) Topics() []Topic {
	return cloneSlice(r.topics)
}

// Topic resolves a topic by id.
func (r Registry) Topic(id uuid.UUID) (Topic, error) {
	for _, t := range r.topics {
		if t.ID == id {
			return t, nil
		}
	}
	return Topic{}, errors.NewNotFound("topic", id.String())
}

// AddTopic proposes a new topic with zero votes and a fresh id.
func (r Registry) AddTopic(title string, category Category, description string, scheduledFor *time.Time, now time.Time) (Registry, Topic, error) {
	if strings.TrimSpace(title) == "" {
		return r, Topic{}, errors.NewValidation("title", "cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return r, Topic{}, errors.NewValidation("description", "cannot be empty")
	}
	if _, err := ParseCategory(string(category)); err != nil {
		return r, Topic{}, err
	}

	topic := Topic{
		ID:           uuid.New(),
		Title:        title,
		Category:     category,
		Description:  description,
		CreatedAt:    now,
		ScheduledFor: scheduledFor,
	}
	r.topics = append(cloneSlice(r.topics), topic)
	return r, topic, nil
}

// VoteTopic applies a +1 or -1 delta. The count has no floor and no
// ceiling, and nothing stops a caller from voting repeatedly.
func (r Registry) VoteTopic(id uuid.UUID, delta int) (Registry, Topic, error) {
	if delta != 1 && delta != -1 {
		return r, Topic{}, errors.NewValidation("delta", "must be +1 or -1")
	}
	return r.updateTopic(id, func(t Topic) (Topic, error) {
		return t.withVote(delta), nil
	})
}

// AddResource appends preparation material to a topic. The URL must be a
// syntactically valid absolute URL.
func (r Registry) AddResource(topicID uuid.UUID, title string, kind ResourceKind, rawURL, addedBy string, now time.Time) (Registry, Resource, error) {
	if strings.TrimSpace(title) == "" {
		return r, Resource{}, errors.NewValidation("title", "cannot be empty")
	}
	if _, ok := ParseResourceKind(string(kind)); !ok {
		return r, Resource{}, errors.NewValidation("kind", "must be one of video, article, link")
	}
	if u, err := url.Parse(rawURL); err != nil || !u.IsAbs() || u.Host == "" {
		return r, Resource{}, errors.NewValidation("url", "must be an absolute URL")
	}

	resource := Resource{
		ID:      uuid.New(),
		Title:   title,
		Kind:    kind,
		URL:     rawURL,
		AddedBy: addedBy,
		AddedAt: now,
	}
	next, _, err := r.updateTopic(topicID, func(t Topic) (Topic, error) {
		return t.withResource(resource), nil
	})
	if err != nil {
		return r, Resource{}, err
	}
	return next, resource, nil
}

// AddQuestion appends a question with zero votes.
func (r Registry) AddQuestion(topicID uuid.UUID, content, askedBy string, now time.Time) (Registry, Question, error) {
	if strings.TrimSpace(content) == "" {
		return r, Question{}, errors.NewValidation("content", "cannot be empty")
	}
	question := Question{
		ID:      uuid.New(),
		Content: content,
		AskedBy: askedBy,
		AskedAt: now,
	}
	next, _, err := r.updateTopic(topicID, func(t Topic) (Topic, error) {
		return t.withQuestion(question), nil
	})
	if err != nil {
		return r, Question{}, err
	}
	return next, question, nil
}

// VoteQuestion increments a question's count by exactly 1. Unlike topic
// votes there is no decrement operation.
func (r Registry) VoteQuestion(topicID, questionID uuid.UUID) (Registry, Question, error) {
	return r.updateQuestion(topicID, questionID, func(q Question) Question {
		q.Votes++
		return q
	})
}

// AnswerQuestion sets or overwrites the answer text. There is no way to
// clear an answer once recorded.
func (r Registry) AnswerQuestion(topicID, questionID uuid.UUID, answer string) (Registry, Question, error) {
	return r.updateQuestion(topicID, questionID, func(q Question) Question {
		q.Answer = answer
		return q
	})
}

// JoinTopic registers a participant under a topic. Joining twice with the
// same display name returns the existing participant unchanged.
func (r Registry) JoinTopic(topicID uuid.UUID, name string, now time.Time) (Registry, Participant, error) {
	if strings.TrimSpace(name) == "" {
		return r, Participant{}, errors.NewValidation("name", "cannot be empty")
	}

	topic, err := r.Topic(topicID)
	if err != nil {
		return r, Participant{}, err
	}
	for _, p := range topic.Participants {
		if p.Name == name {
			return r, p, nil
		}
	}

	participant := Participant{ID: uuid.New(), Name: name, JoinedAt: now}
	next, _, err := r.updateTopic(topicID, func(t Topic) (Topic, error) {
		return t.withParticipant(participant), nil
	})
	if err != nil {
		return r, Participant{}, err
	}
	return next, participant, nil
}

// TopTopics returns up to n topics sorted by votes descending. The sort is
// stable, so equally voted topics keep their insertion order and calling it
// twice without an intervening mutation yields identical output.
func (r Registry) TopTopics(n int, category *Category) []Topic {
	candidates := r.topics
	if category != nil {
		candidates = lo.Filter(r.topics, func(t Topic, _ int) bool {
			return t.Category == *category
		})
	}

	ranked := cloneSlice(candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Votes > ranked[j].Votes
	})
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// updateTopic applies fn to the topic with the given id, cloning the
// backing slice so previous snapshots stay intact.
func (r Registry) updateTopic(id uuid.UUID, fn func(Topic) (Topic, error)) (Registry, Topic, error) {
	for i, t := range r.topics {
		if t.ID != id {
			continue
		}
		updated, err := fn(t)
		if err != nil {
			return r, Topic{}, err
		}
		topics := cloneSlice(r.topics)
		topics[i] = updated
		return Registry{topics: topics}, updated, nil
	}
	return r, Topic{}, errors.NewNotFound("topic", id.String())
}

func (r Registry) updateQuestion(topicID, questionID uuid.UUID, fn func(Question) Question) (Registry, Question, error) {
	var updated Question
	next, _, err := r.updateTopic(topicID, func(t Topic) (Topic, error) {
		for i, q := range t.Questions {
			if q.ID == questionID {
				updated = fn(q)
				return t.withQuestionAt(i, updated), nil
			}
		}
		return t, errors.NewNotFound("question", questionID.String())
	})
	if err != nil {
		return r, Question{}, err
	}
	return next, updated, nil
}
