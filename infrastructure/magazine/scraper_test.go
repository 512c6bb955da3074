package magazine

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/studibuch/riona/config"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func testScraper(t *testing.T, fn roundTripperFunc) *Scraper {
	t.Helper()
	s := NewScraper(config.ScraperConfig{
		MagazineURL:  "https://studibuch.de/magazin/",
		ArticleLimit: 15,
		HTTPTimeout:  time.Second,
	}, t.TempDir())
	s.client = &http.Client{Transport: fn}
	return s
}

func htmlResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

// The content cap counts runes: a page full of umlauts must come back as
// valid UTF-8 with the last character intact.
func TestScrapeArticle_ContentCapKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("ü", 6000)
	page := `<html><head><title>Lernen | Studibuch</title></head><body>` +
		`<h1>Lernen mit System</h1>` +
		`<div class="entry-content">` + long + `</div>` +
		`</body></html>`

	s := testScraper(t, func(*http.Request) (*http.Response, error) {
		return htmlResponse(page), nil
	})

	a, err := s.scrapeArticle(context.Background(), "https://studibuch.de/magazin/lernen/")
	if err != nil {
		t.Fatalf("scrapeArticle() unexpected error: %v", err)
	}
	if !utf8.ValidString(a.Content) {
		t.Fatalf("capped content is invalid UTF-8: %q", a.Content[:20])
	}
	if got := utf8.RuneCountInString(a.Content); got != 5000 {
		t.Fatalf("content rune count = %d, want 5000", got)
	}
	if !strings.HasSuffix(a.Content, "ü") {
		t.Fatalf("content should end on a whole umlaut, got %q", a.Content[len(a.Content)-4:])
	}
}

func TestFetchArticles_HomepageFailureYieldsEmptySet(t *testing.T) {
	s := testScraper(t, func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     make(http.Header),
		}, nil
	})

	articles, err := s.FetchArticles(context.Background())
	if err != nil {
		t.Fatalf("FetchArticles() should absorb transient failures, got %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("FetchArticles() returned %d articles, want none", len(articles))
	}
}
