//go:generate go run go.uber.org/mock/mockgen -source=search.go -destination=../mocks/mock_topic_index.go -package=mocks
package repositories

import (
	"context"
	"log/slog"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"

	"meetup-lab/domain"
)

type ITopicIndex interface {
	Index(topic domain.Topic) error
	Search(ctx context.Context, terms string, category *domain.Category, limit int) ([]uuid.UUID, error)
}

// TopicIndex keeps a Bluge full-text index over topic titles and
// descriptions. Indexing uses Update keyed by topic id, so re-indexing an
// edited topic replaces the previous document.
type TopicIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewTopicIndex(writer *bluge.Writer, log *slog.Logger) TopicIndex {
	return TopicIndex{writer: writer, log: log}
}

func (i TopicIndex) Index(topic domain.Topic) error {
	doc := bluge.NewDocument(topic.ID.String()).
		AddField(bluge.NewTextField("title", topic.Title)).
		AddField(bluge.NewTextField("description", topic.Description)).
		AddField(bluge.NewKeywordField("category", string(topic.Category)))
	return i.writer.Update(doc.ID(), doc)
}

// Search returns the ids of the best-matching topics. An optional category
// narrows the candidate set before text scoring.
func (i TopicIndex) Search(ctx context.Context, terms string, category *domain.Category, limit int) ([]uuid.UUID, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	text := bluge.NewBooleanQuery().AddShould(
		bluge.NewMatchQuery(terms).SetField("title"),
		bluge.NewMatchQuery(terms).SetField("description"),
	)
	query := bluge.NewBooleanQuery().AddMust(text)
	if category != nil {
		query.AddMust(bluge.NewTermQuery(string(*category)).SetField("category"))
	}

	request := bluge.NewTopNSearch(limit, query)
	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	match, err := iterator.Next()
	for err == nil && match != nil {
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				if id, parseErr := uuid.Parse(string(value)); parseErr == nil {
					ids = append(ids, id)
				} else {
					i.log.Warn("Ignoring non-uuid document id", "id", string(value))
				}
			}
			return true
		})
		if visitErr != nil {
			return nil, visitErr
		}
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}
