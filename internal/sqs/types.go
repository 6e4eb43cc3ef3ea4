package sqs

import (
	"strings"
	"time"
)

// QueueSummary aggregates the per-queue backlog counters shown in the queue
// list. Values are immutable once constructed; a refresh replaces the whole
// slice rather than patching entries in place.
type QueueSummary struct {
	URL       string
	Name      string
	Visible   int64
	InFlight  int64
	Delayed   int64
	UpdatedAt time.Time
}

// IsDLQ reports whether the queue name follows the dead-letter suffix
// convention. Presentation hint only.
func (q QueueSummary) IsDLQ() bool {
	return strings.HasSuffix(q.Name, "-dlq") || strings.HasSuffix(q.Name, "_dlq")
}

// QueueDetail holds the full attribute set for one queue. Every field is a
// pointer because the service may omit any attribute; absence is not an
// error.
type QueueDetail struct {
	ARN                *string
	CreatedAt          *time.Time
	LastModifiedAt     *time.Time
	RetentionSeconds   *int64
	VisibilityTimeout  *int64
	MaximumMessageSize *int64
	DelaySeconds       *int64
}
