//go:generate go run go.uber.org/mock/mockgen -source=plan.go -destination=../mocks/mock_plan_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"meetup-lab/domain"
)

type IPlanRepository interface {
	SaveTopic(topic domain.Topic) error
	SaveMeeting(meeting domain.Meeting) error
	LoadTopics() ([]domain.Topic, error)
	LoadMeetings() ([]domain.Meeting, error)
}

// PlanRepository persists planner snapshots in BadgerDB, best effort: the
// in-memory state is authoritative and a failed write never fails the
// command that produced it.
type PlanRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewPlanRepository(db *badger.DB, log *slog.Logger) PlanRepository {
	return PlanRepository{db: db, log: log}
}

// Keys are formatted as "{kind}:{createdAt_padded}:{uuid}" to:
//  1. Preserve insertion order on prefix scans using 19-digit zero padding
//     (lexicographical order).
//  2. Keep one stable key per entity, so re-saving after every command
//     overwrites in place.
func topicKey(t domain.Topic) []byte {
	return []byte(fmt.Sprintf("topic:%019d:%s", t.CreatedAt.UnixNano(), t.ID))
}

func meetingKey(m domain.Meeting) []byte {
	return []byte(fmt.Sprintf("meeting:%019d:%s", m.CreatedAt.UnixNano(), m.ID))
}

func (r PlanRepository) SaveTopic(topic domain.Topic) error {
	bytes, err := json.Marshal(topic)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(topicKey(topic), bytes)
	})
}

func (r PlanRepository) SaveMeeting(meeting domain.Meeting) error {
	bytes, err := json.Marshal(meeting)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(meetingKey(meeting), bytes)
	})
}

// LoadTopics restores every stored topic. Thanks to the padded timestamp
// in the key they come back in insertion order, which the registry relies
// on for its tie-breaks.
func (r PlanRepository) LoadTopics() ([]domain.Topic, error) {
	var topics []domain.Topic
	err := r.scanPrefix("topic:", func(val []byte) error {
		var t domain.Topic
		if err := json.Unmarshal(val, &t); err != nil {
			return err
		}
		topics = append(topics, t)
		return nil
	})
	return topics, err
}

func (r PlanRepository) LoadMeetings() ([]domain.Meeting, error) {
	var meetings []domain.Meeting
	err := r.scanPrefix("meeting:", func(val []byte) error {
		var m domain.Meeting
		if err := json.Unmarshal(val, &m); err != nil {
			return err
		}
		meetings = append(meetings, m)
		return nil
	})
	return meetings, err
}

func (r PlanRepository) scanPrefix(prefix string, fn func(val []byte) error) error {
	return r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				return fn(val)
			})
			if err != nil {
				r.log.Warn("Skipping unreadable entry", "key", string(it.Item().Key()), "error", err)
			}
		}
		return nil
	})
}
