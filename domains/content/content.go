package content

import "context"

// ICaptionGenerator produces caption text and hashtag sets for post seeds.
// Hashtag sets are ordered, unique and capped at 15 entries.
type ICaptionGenerator interface {
	CaptionForArticle(title string) string
	HashtagsForArticle(title string, categories, tags []string) []string
	CaptionForTopic(topic string) string
	HashtagsForTopic(topic string) []string
}

// IImageProvider resolves a local image path for a title. It absorbs all
// errors and falls back to a placeholder asset; it never fails the caller.
type IImageProvider interface {
	ImageFor(ctx context.Context, title string) string
}
