package article

import "context"

// Article is a scraped magazine article. The scraper may leave optional
// fields empty; only Title and URL are guaranteed.
type Article struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Content        string   `json:"content"`
	ImageURL       string   `json:"image_url,omitempty"`
	LocalImagePath string   `json:"local_image_path,omitempty"`
	Categories     []string `json:"categories,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Date           string   `json:"date,omitempty"`
}

// ISource fetches articles from the magazine. A transient failure yields an
// empty slice, not an error: ingestion treats "nothing new" as a no-op.
type ISource interface {
	FetchArticles(ctx context.Context) ([]Article, error)
}

// IStore persists the last scraped article set so reel requests can look an
// article up by id later.
type IStore interface {
	SaveAll(articles []Article) error
	List() ([]Article, error)
	GetByID(id string) (Article, error)
}
