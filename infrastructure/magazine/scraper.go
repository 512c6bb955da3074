package magazine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/studibuch/riona/config"
	domainArticle "github.com/studibuch/riona/domains/article"
	"github.com/sirupsen/logrus"
)

var linkSelectors = []string{
	"article a",
	".post a",
	".entry a",
	".blog-post a",
	".article a",
	".elementor-post__thumbnail__link",
	".elementor-post__title a",
}

var contentSelectors = []string{
	".entry-content",
	".post-content",
	".article-content",
	".content",
	"article .entry",
	".post-body",
	".elementor-widget-theme-post-content .elementor-widget-container",
}

var imageSelectors = []string{
	"meta[property='og:image']",
	".wp-post-image",
	".featured-image img",
	".post-thumbnail img",
	"article img",
	".elementor-widget-image img",
}

var dateSelectors = []string{
	"meta[property='article:published_time']",
	".posted-on time",
	".date",
	".entry-date",
	".published",
}

// Scraper extracts magazine articles from the configured homepage. Any
// failure yields an empty result rather than an error: ingestion treats a
// broken scrape as "nothing new".
type Scraper struct {
	cfg       config.ScraperConfig
	imagesDir string
	client    *http.Client
}

func NewScraper(cfg config.ScraperConfig, imagesDir string) *Scraper {
	return &Scraper{
		cfg:       cfg,
		imagesDir: imagesDir,
		client:    &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

func (s *Scraper) FetchArticles(ctx context.Context) ([]domainArticle.Article, error) {
	logrus.Infof("[SCRAPER] loading magazine homepage %s", s.cfg.MagazineURL)

	doc, err := s.fetchDocument(ctx, s.cfg.MagazineURL)
	if err != nil {
		logrus.WithError(err).Error("[SCRAPER] failed to load magazine homepage")
		return nil, nil
	}

	links := s.collectArticleLinks(doc)
	logrus.Infof("[SCRAPER] found %d unique article links", len(links))

	articles := make([]domainArticle.Article, 0, s.cfg.ArticleLimit)
	for _, link := range links {
		if len(articles) >= s.cfg.ArticleLimit {
			break
		}
		a, err := s.scrapeArticle(ctx, link)
		if err != nil {
			logrus.WithError(err).Warnf("[SCRAPER] skipping article %s", link)
			continue
		}
		articles = append(articles, a)
	}

	logrus.Infof("[SCRAPER] scraped %d articles", len(articles))
	return articles, nil
}

func (s *Scraper) collectArticleLinks(doc *goquery.Document) []string {
	base, _ := url.Parse(s.cfg.MagazineURL)
	seen := make(map[string]struct{})
	var links []string

	for _, selector := range linkSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			if !ok || href == "" {
				return
			}
			if !strings.Contains(href, base.Hostname()) ||
				strings.Contains(href, "/category/") ||
				strings.Contains(href, "/tag/") {
				return
			}
			ref, err := url.Parse(href)
			if err != nil {
				return
			}
			abs := base.ResolveReference(ref).String()
			if _, dup := seen[abs]; dup {
				return
			}
			seen[abs] = struct{}{}
			links = append(links, abs)
		})
	}
	return links
}

func (s *Scraper) scrapeArticle(ctx context.Context, articleURL string) (domainArticle.Article, error) {
	doc, err := s.fetchDocument(ctx, articleURL)
	if err != nil {
		return domainArticle.Article{}, err
	}

	title := firstText(doc, "h1", ".entry-title", ".post-title")
	if title == "" {
		title = strings.TrimSpace(strings.SplitN(doc.Find("title").First().Text(), "|", 2)[0])
	}
	if title == "" {
		return domainArticle.Article{}, fmt.Errorf("no title found")
	}

	content := s.extractContent(doc)

	var imageURL string
	for _, selector := range imageSelectors {
		el := doc.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		imageURL = firstAttr(el, "content", "src", "data-src")
		if imageURL != "" {
			break
		}
	}

	var categories []string
	doc.Find(".cat-links a, .category a, .categories a, a[rel='category tag']").Each(func(_ int, sel *goquery.Selection) {
		if v := strings.TrimSpace(sel.Text()); v != "" {
			categories = append(categories, v)
		}
	})

	var tags []string
	doc.Find(".tags-links a, .tag a, .tags a, a[rel='tag']").Each(func(_ int, sel *goquery.Selection) {
		if v := strings.TrimSpace(sel.Text()); v != "" {
			tags = append(tags, v)
		}
	})

	var date string
	for _, selector := range dateSelectors {
		el := doc.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		date = firstAttr(el, "content", "datetime")
		if date == "" {
			date = strings.TrimSpace(el.Text())
		}
		if date != "" {
			break
		}
	}

	if runes := []rune(content); len(runes) > 5000 {
		content = string(runes[:5000])
	}

	a := domainArticle.Article{
		Title:      title,
		URL:        articleURL,
		Content:    content,
		ImageURL:   imageURL,
		Categories: categories,
		Tags:       tags,
		Date:       date,
	}

	if imageURL != "" && !strings.HasPrefix(imageURL, "data:") {
		if local, err := s.downloadImage(ctx, imageURL); err == nil {
			a.LocalImagePath = local
		} else {
			logrus.WithError(err).Warnf("[SCRAPER] failed to download image %s", imageURL)
		}
	}

	return a, nil
}

func (s *Scraper) extractContent(doc *goquery.Document) string {
	for _, selector := range contentSelectors {
		el := doc.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		el.Find("script, style, .sharedaddy, .jp-relatedposts").Remove()
		if text := squashSpace(el.Text()); text != "" {
			return text
		}
	}
	// Fallback: strip chrome and take the body text.
	doc.Find("script, style, header, footer, nav, aside").Remove()
	return squashSpace(doc.Find("body").Text())
}

func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s: status=%d", pageURL, resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

func (s *Scraper) downloadImage(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("download %s: status=%d", imageURL, resp.StatusCode)
	}

	ext := ".jpg"
	if ct := resp.Header.Get("Content-Type"); strings.HasPrefix(ct, "image/") {
		ext = "." + strings.TrimPrefix(ct, "image/")
	}
	if u, err := url.Parse(imageURL); err == nil {
		switch strings.ToLower(path.Ext(u.Path)) {
		case ".jpg", ".jpeg", ".png", ".gif", ".webp":
			ext = strings.ToLower(path.Ext(u.Path))
		}
	}

	if err := os.MkdirAll(s.imagesDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("article_%d%s", time.Now().UnixNano(), ext)
	dest := filepath.Join(s.imagesDir, name)

	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", err
	}
	return dest, nil
}

func firstText(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if v := strings.TrimSpace(doc.Find(selector).First().Text()); v != "" {
			return v
		}
	}
	return ""
}

func firstAttr(sel *goquery.Selection, attrs ...string) string {
	for _, attr := range attrs {
		if v, ok := sel.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func squashSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
