package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResourceKind tells viewers how to present a shared link.
type ResourceKind string

const (
	ResourceVideo   ResourceKind = "video"
	ResourceArticle ResourceKind = "article"
	ResourceLink    ResourceKind = "link"
)

// ParseResourceKind validates a raw string against the known kinds.
func ParseResourceKind(raw string) (ResourceKind, bool) {
	switch ResourceKind(raw) {
	case ResourceVideo, ResourceArticle, ResourceLink:
		return ResourceKind(raw), true
	}
	return "", false
}

// Resource is preparation material shared under a topic.
type Resource struct {
	ID      uuid.UUID
	Title   string
	Kind    ResourceKind
	URL     string
	AddedBy string
	AddedAt time.Time
}
