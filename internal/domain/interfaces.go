package domain

import (
	"context"

	"omservice/internal/mailer"
	"omservice/internal/stats"
)

// StatsCache holds the latest whole-collection aggregation snapshot.
// Implementations may lose entries at any time; callers recompute on a
// miss.
type StatsCache interface {
	Get(ctx context.Context) (*stats.Summary, bool, error)
	Set(ctx context.Context, summary *stats.Summary) error
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// EmailQueue accepts messages for background delivery. Enqueue must
// never block on SMTP.
type EmailQueue interface {
	Enqueue(ctx context.Context, msg mailer.Message) error
}
