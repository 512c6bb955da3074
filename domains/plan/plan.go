package plan

import (
	"context"
	"time"
)

type PostKind string

const (
	KindArticle PostKind = "article"
	KindTopic   PostKind = "topic"
)

type PostStatus string

const (
	StatusScheduled PostStatus = "scheduled"
	StatusRendering PostStatus = "rendering"
	StatusPublished PostStatus = "published"
	StatusFailed    PostStatus = "failed"
)

// Engagement are the per-post interaction flags.
type Engagement struct {
	AutoLike    bool `json:"auto_like"`
	AutoComment bool `json:"auto_comment"`
}

// Post is a single content-plan entry. Once persisted it is owned by the
// plan store and mutated only through store operations.
type Post struct {
	ID             string     `json:"id"`
	Kind           PostKind   `json:"kind"`
	Title          string     `json:"title"`
	SourceURL      string     `json:"source_url,omitempty"` // unique among article posts
	ImageURL       string     `json:"image_url,omitempty"`
	LocalImagePath string     `json:"local_image_path,omitempty"`
	Caption        string     `json:"caption"`
	Hashtags       []string   `json:"hashtags"`
	FullCaption    string     `json:"full_caption"`
	ScheduledAt    time.Time  `json:"scheduled_at"`
	Status         PostStatus `json:"status"`
	Engagement     Engagement `json:"engagement"`
}

// ContentPlan is the ordered collection of posts, ascending by ScheduledAt.
type ContentPlan []Post

// IStore owns the persisted plan. Every write re-sorts by ScheduledAt and is
// atomic; mutations are serialized by the store so overlapping
// load-modify-save cycles cannot lose updates.
type IStore interface {
	Load() (ContentPlan, error)
	Save(plan ContentPlan) error
	// Update runs fn on the freshly loaded plan and saves the result, all
	// under the store's mutation lock.
	Update(fn func(ContentPlan) (ContentPlan, error)) (ContentPlan, error)
	// UpsertByPostID applies mutate to the post with the given id and
	// re-saves the plan. Returns NotFoundError if the id is unknown.
	UpsertByPostID(postID string, mutate func(*Post)) (Post, error)
}

type IPlanUsecase interface {
	List(ctx context.Context) (ContentPlan, error)
	CreateTopicPost(ctx context.Context, request CreateTopicPostRequest) (Post, error)
	RefreshFromArticles(ctx context.Context) (added int, err error)
	UpdatePostSchedule(ctx context.Context, request UpdateScheduleRequest) (Post, error)
	UpdatePostEngagement(ctx context.Context, request UpdateEngagementRequest) (Post, error)
}

type CreateTopicPostRequest struct {
	Topic         string      `json:"topic"`
	ScheduledDate *time.Time  `json:"scheduled_date,omitempty"`
	Engagement    *Engagement `json:"engagement,omitempty"`
}

type UpdateScheduleRequest struct {
	PostID        string    `json:"-"`
	ScheduledDate time.Time `json:"scheduled_date"`
}

type UpdateEngagementRequest struct {
	PostID      string `json:"-"`
	AutoLike    *bool  `json:"auto_like"`
	AutoComment *bool  `json:"auto_comment"`
}
