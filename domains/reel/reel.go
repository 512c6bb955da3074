package reel

import "context"

// PublishResult is the authoritative outcome of a successful publish; the
// remote service's response is the only source of truth for PostID.
type PublishResult struct {
	PostID    string `json:"post_id"`
	Permalink string `json:"permalink"`
}

// IRenderService submits renders to the remote rendering service and polls
// them to completion within a bounded budget.
type IRenderService interface {
	Submit(ctx context.Context, templateID string, modifications map[string]any, duration int) (renderID string, err error)
	AwaitCompletion(ctx context.Context, renderID string) (assetURL string, err error)
}

// IPublishService drives the remote publish lifecycle.
type IPublishService interface {
	InitializeUpload(ctx context.Context, assetURL string) (creationID string, err error)
	Publish(ctx context.Context, creationID string) (PublishResult, error)
	CheckStatus(ctx context.Context, creationID string) (string, error)
	Delete(ctx context.Context, postID string) error
}

type IReelUsecase interface {
	CreateFromArticle(ctx context.Context, request FromArticleRequest) (PublishResult, error)
	CreateFromTopic(ctx context.Context, request FromTopicRequest) (PublishResult, error)
	Status(ctx context.Context, creationID string) (string, error)
	Delete(ctx context.Context, postID string) error
}

type FromArticleRequest struct {
	ArticleID string `json:"article_id"`
}

type FromTopicRequest struct {
	Topic    string `json:"topic"`
	ImageURL string `json:"image_url"`
}
