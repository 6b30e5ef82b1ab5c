package domain

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a proposed discussion subject. It owns its resources, questions
// and participants; a Meeting only ever holds a copy of a Topic, never the
// registry's own element.
type Topic struct {
	ID           uuid.UUID
	Title        string
	Category     Category
	Description  string
	Votes        int
	CreatedAt    time.Time
	ScheduledFor *time.Time
	Resources    []Resource
	Questions    []Question
	Participants []Participant
}

// withVote returns a copy with the delta applied. There is no floor: the
// count may go negative.
func (t Topic) withVote(delta int) Topic {
	t.Votes += delta
	return t
}

func (t Topic) withResource(r Resource) Topic {
	t.Resources = append(cloneSlice(t.Resources), r)
	return t
}

func (t Topic) withQuestion(q Question) Topic {
	t.Questions = append(cloneSlice(t.Questions), q)
	return t
}

func (t Topic) withQuestionAt(i int, q Question) Topic {
	qs := cloneSlice(t.Questions)
	qs[i] = q
	t.Questions = qs
	return t
}

func (t Topic) withParticipant(p Participant) Topic {
	t.Participants = append(cloneSlice(t.Participants), p)
	return t
}

// cloneSlice copies before append so older snapshots never observe a
// mutation through a shared backing array.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
