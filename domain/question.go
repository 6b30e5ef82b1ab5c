package domain

import (
	"time"

	"github.com/google/uuid"
)

// Question is raised under a topic before the meeting. Votes only ever go
// up, and an answer can be overwritten but never cleared.
type Question struct {
	ID      uuid.UUID
	Content string
	AskedBy string
	AskedAt time.Time
	Votes   int
	Answer  string
}

// Answered reports whether an answer has been recorded.
func (q Question) Answered() bool {
	return q.Answer != ""
}
