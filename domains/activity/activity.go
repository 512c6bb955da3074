package activity

import (
	"context"
	"time"
)

// Activity is one audit entry. Kinds mirror the operations that produce
// them: content_plan_updated, topic_post_generated, reel_created, error, …
type Activity struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Kind        string    `json:"kind" gorm:"index"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ILog records activities fire-and-forget: Record never returns an error to
// the caller, failures are only logged.
type ILog interface {
	Record(kind, description string)
	List(ctx context.Context) ([]Activity, error)
	ListByKind(ctx context.Context, kind string) ([]Activity, error)
}
