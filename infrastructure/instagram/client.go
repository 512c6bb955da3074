package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/studibuch/riona/config"
	domainReel "github.com/studibuch/riona/domains/reel"
	pkgError "github.com/studibuch/riona/pkg/error"
	"github.com/sirupsen/logrus"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Client drives the Instagram Graph API reel lifecycle: create a media
// container for the rendered asset, publish it, query container status and
// delete published posts. The publish response is the only source of truth
// for the externally visible post id.
type Client struct {
	cfg config.InstagramConfig
}

func NewClient(cfg config.InstagramConfig) *Client {
	return &Client{cfg: cfg}
}

// InitializeUpload creates a REELS media container referencing the rendered
// asset and returns the creation id.
func (c *Client) InitializeUpload(ctx context.Context, assetURL string) (string, error) {
	body := map[string]any{
		"media_type":    "REELS",
		"video_url":     assetURL,
		"caption":       "Neuer Reel von Studibuch.de",
		"share_to_feed": true,
	}

	var resp struct {
		ID string `json:"id"`
	}
	endpoint := fmt.Sprintf("%s/%s/media", c.cfg.BaseURL, c.cfg.AccountID)
	if err := c.jsonRequest(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
		return "", pkgError.NewPublishError(pkgError.PublishStageInitialize, err.Error())
	}
	if resp.ID == "" {
		return "", pkgError.NewPublishError(pkgError.PublishStageInitialize, "no creation id in response")
	}

	logrus.Infof("[PUBLISH] created media container %s", resp.ID)
	return resp.ID, nil
}

// Publish turns the container into a live post.
func (c *Client) Publish(ctx context.Context, creationID string) (domainReel.PublishResult, error) {
	body := map[string]any{"creation_id": creationID}

	var resp struct {
		ID string `json:"id"`
	}
	endpoint := fmt.Sprintf("%s/%s/media_publish", c.cfg.BaseURL, c.cfg.AccountID)
	if err := c.jsonRequest(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
		return domainReel.PublishResult{}, pkgError.NewPublishError(pkgError.PublishStagePublish, err.Error())
	}
	if resp.ID == "" {
		return domainReel.PublishResult{}, pkgError.NewPublishError(pkgError.PublishStagePublish, "publish not confirmed")
	}

	logrus.Infof("[PUBLISH] published reel %s", resp.ID)
	return domainReel.PublishResult{
		PostID:    resp.ID,
		Permalink: fmt.Sprintf("https://www.instagram.com/p/%s/", resp.ID),
	}, nil
}

// CheckStatus is read-only; a remote error does not alter any local state.
func (c *Client) CheckStatus(ctx context.Context, creationID string) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	endpoint := fmt.Sprintf("%s/%s", c.cfg.BaseURL, creationID)
	if err := c.jsonRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return "", pkgError.NewPublishError(pkgError.PublishStageStatusCheck, err.Error())
	}
	return resp.Status, nil
}

// Delete removes a published reel. The local content plan is untouched; the
// plan and the remote lifecycle are not transactionally linked.
func (c *Client) Delete(ctx context.Context, postID string) error {
	endpoint := fmt.Sprintf("%s/%s", c.cfg.BaseURL, postID)
	if err := c.jsonRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return pkgError.NewPublishError(pkgError.PublishStageDelete, err.Error())
	}
	logrus.Infof("[PUBLISH] deleted reel %s", postID)
	return nil
}

func (c *Client) jsonRequest(ctx context.Context, method, endpoint string, body any, dest any) error {
	var bodyReader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	q := url.Values{"access_token": {c.cfg.AccessToken}}
	req.URL.RawQuery = q.Encode()

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
