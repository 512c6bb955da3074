package instagram

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/studibuch/riona/config"
	pkgError "github.com/studibuch/riona/pkg/error"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func stubClient(t *testing.T, fn roundTripperFunc) {
	t.Helper()
	orig := httpClient
	t.Cleanup(func() { httpClient = orig })
	httpClient = &http.Client{Transport: fn}
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func testConfig() config.InstagramConfig {
	return config.InstagramConfig{
		AccessToken: "token",
		AccountID:   "17841400000000000",
		BaseURL:     "https://graph.facebook.test/v18.0",
	}
}

func TestInitializeUpload(t *testing.T) {
	stubClient(t, func(req *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(req.URL.Path, "/17841400000000000/media") {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		if req.URL.Query().Get("access_token") != "token" {
			t.Fatalf("missing access_token query param")
		}
		return jsonResponse(http.StatusOK, `{"id":"creation-1"}`), nil
	})

	client := NewClient(testConfig())
	id, err := client.InitializeUpload(context.Background(), "https://cdn.test/video.mp4")
	if err != nil {
		t.Fatalf("InitializeUpload() unexpected error: %v", err)
	}
	if id != "creation-1" {
		t.Fatalf("InitializeUpload() id = %q", id)
	}
}

func TestInitializeUpload_RemoteErrorIsInitializeStage(t *testing.T) {
	stubClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"error":{"message":"bad video"}}`), nil
	})

	client := NewClient(testConfig())
	_, err := client.InitializeUpload(context.Background(), "https://cdn.test/video.mp4")
	pubErr, ok := err.(pkgError.PublishError)
	if !ok {
		t.Fatalf("InitializeUpload() expected PublishError, got %T (%v)", err, err)
	}
	if pubErr.Stage != pkgError.PublishStageInitialize {
		t.Fatalf("InitializeUpload() stage = %q, want initialize", pubErr.Stage)
	}
}

func TestPublish_BuildsPermalink(t *testing.T) {
	stubClient(t, func(req *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(req.URL.Path, "/media_publish") {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"id":"post-9"}`), nil
	})

	client := NewClient(testConfig())
	result, err := client.Publish(context.Background(), "creation-1")
	if err != nil {
		t.Fatalf("Publish() unexpected error: %v", err)
	}
	if result.PostID != "post-9" {
		t.Fatalf("Publish() post id = %q", result.PostID)
	}
	if result.Permalink != "https://www.instagram.com/p/post-9/" {
		t.Fatalf("Publish() permalink = %q", result.Permalink)
	}
}

func TestPublish_UnconfirmedIsPublishStage(t *testing.T) {
	stubClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	client := NewClient(testConfig())
	_, err := client.Publish(context.Background(), "creation-1")
	pubErr, ok := err.(pkgError.PublishError)
	if !ok {
		t.Fatalf("Publish() expected PublishError, got %T (%v)", err, err)
	}
	if pubErr.Stage != pkgError.PublishStagePublish {
		t.Fatalf("Publish() stage = %q, want publish", pubErr.Stage)
	}
}

func TestCheckStatus(t *testing.T) {
	stubClient(t, func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodGet {
			t.Fatalf("CheckStatus must be read-only, got %s", req.Method)
		}
		return jsonResponse(http.StatusOK, `{"status":"FINISHED"}`), nil
	})

	client := NewClient(testConfig())
	status, err := client.CheckStatus(context.Background(), "creation-1")
	if err != nil {
		t.Fatalf("CheckStatus() unexpected error: %v", err)
	}
	if status != "FINISHED" {
		t.Fatalf("CheckStatus() = %q", status)
	}
}

func TestDelete_RemoteErrorIsDeleteStage(t *testing.T) {
	stubClient(t, func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", req.Method)
		}
		return jsonResponse(http.StatusForbidden, `{"error":{"message":"denied"}}`), nil
	})

	client := NewClient(testConfig())
	err := client.Delete(context.Background(), "post-9")
	pubErr, ok := err.(pkgError.PublishError)
	if !ok {
		t.Fatalf("Delete() expected PublishError, got %T (%v)", err, err)
	}
	if pubErr.Stage != pkgError.PublishStageDelete {
		t.Fatalf("Delete() stage = %q, want delete", pubErr.Stage)
	}
}
