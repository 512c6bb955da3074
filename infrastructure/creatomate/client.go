package creatomate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/studibuch/riona/config"
	domainArticle "github.com/studibuch/riona/domains/article"
	pkgError "github.com/studibuch/riona/pkg/error"
	"github.com/sirupsen/logrus"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Client drives the Creatomate render API: one POST to submit a render, then
// fixed-interval polling until the job reaches a terminal state or the
// attempt budget runs out.
type Client struct {
	cfg config.CreatomateConfig
}

func NewClient(cfg config.CreatomateConfig) *Client {
	return &Client{cfg: cfg}
}

type renderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	URL    string `json:"url"`
	Error  string `json:"error"`
}

// Submit starts a render and returns the remote render id.
func (c *Client) Submit(ctx context.Context, templateID string, modifications map[string]any, duration int) (string, error) {
	if templateID == "" {
		templateID = c.cfg.TemplateID
	}
	if duration <= 0 {
		duration = c.cfg.VideoDuration
	}

	body := map[string]any{
		"template_id":   templateID,
		"modifications": modifications,
		"duration":      duration,
		"width":         c.cfg.VideoWidth,
		"height":        c.cfg.VideoHeight,
		"fps":           c.cfg.VideoFPS,
	}

	var resp renderResponse
	if err := c.jsonRequest(ctx, http.MethodPost, c.cfg.BaseURL+"/renders", body, &resp); err != nil {
		return "", pkgError.NewRenderError(pkgError.RenderStageSubmission, err.Error())
	}
	if resp.ID == "" {
		return "", pkgError.NewRenderError(pkgError.RenderStageSubmission, "no render id in response")
	}

	logrus.Infof("[RENDER] submitted render %s (template %s)", resp.ID, templateID)
	return resp.ID, nil
}

// AwaitCompletion polls the render at a fixed interval for at most the
// configured number of attempts. A remote "failed" status surfaces
// immediately; an exhausted budget is a timeout. The context cancels the
// wait between attempts; no cancellation is sent to the remote service.
func (c *Client) AwaitCompletion(ctx context.Context, renderID string) (string, error) {
	for attempt := 0; attempt < c.cfg.PollAttempts; attempt++ {
		var resp renderResponse
		if err := c.jsonRequest(ctx, http.MethodGet, fmt.Sprintf("%s/renders/%s", c.cfg.BaseURL, renderID), nil, &resp); err != nil {
			return "", pkgError.NewRenderError(pkgError.RenderStageRemoteFailure, err.Error())
		}

		switch resp.Status {
		case "completed":
			logrus.Infof("[RENDER] render %s completed", renderID)
			return resp.URL, nil
		case "failed":
			return "", pkgError.NewRenderError(pkgError.RenderStageRemoteFailure, resp.Error)
		}

		select {
		case <-ctx.Done():
			return "", pkgError.NewRenderError(pkgError.RenderStageTimeout, ctx.Err().Error())
		case <-time.After(c.cfg.PollInterval):
		}
	}

	return "", pkgError.NewRenderError(pkgError.RenderStageTimeout,
		fmt.Sprintf("render %s not finished after %d attempts", renderID, c.cfg.PollAttempts))
}

// ArticleModifications builds the template inputs for an article reel.
func (c *Client) ArticleModifications(a domainArticle.Article) map[string]any {
	content := a.Content
	if runes := []rune(content); len(runes) > 200 {
		content = string(runes[:200]) + "..."
	}
	return map[string]any{
		"Title":            a.Title,
		"Content":          content,
		"Image":            a.ImageURL,
		"Background Music": c.cfg.DefaultMusic,
		"Transition":       c.cfg.DefaultTransition,
	}
}

// TopicModifications builds the template inputs for a topic reel.
func (c *Client) TopicModifications(topic, imageURL string) map[string]any {
	return map[string]any{
		"Title":            topic,
		"Content":          fmt.Sprintf("Heute sprechen wir über: %s", topic),
		"Image":            imageURL,
		"Background Music": c.cfg.DefaultMusic,
		"Transition":       c.cfg.DefaultTransition,
	}
}

func (c *Client) jsonRequest(ctx context.Context, method, url string, body any, dest any) error {
	var bodyReader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed: status=%d body=%s", resp.StatusCode, string(data))
	}
	if dest != nil {
		return json.Unmarshal(data, dest)
	}
	return nil
}
