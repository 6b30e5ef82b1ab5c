package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a user who joined a topic's discussion. Identity is a
// free-form display name; joining the same topic twice with the same name
// is idempotent.
type Participant struct {
	ID       uuid.UUID
	Name     string
	JoinedAt time.Time
}
