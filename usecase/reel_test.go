package usecase

import (
	"context"
	"testing"

	domainArticle "github.com/studibuch/riona/domains/article"
	domainPlan "github.com/studibuch/riona/domains/plan"
	domainReel "github.com/studibuch/riona/domains/reel"
	pkgError "github.com/studibuch/riona/pkg/error"
)

type stubRender struct {
	submitErr error
	awaitErr  error
	assetURL  string

	submitted bool
}

func (s *stubRender) Submit(context.Context, string, map[string]any, int) (string, error) {
	s.submitted = true
	if s.submitErr != nil {
		return "", s.submitErr
	}
	return "render-1", nil
}

func (s *stubRender) AwaitCompletion(context.Context, string) (string, error) {
	if s.awaitErr != nil {
		return "", s.awaitErr
	}
	return s.assetURL, nil
}

type stubPublish struct {
	publishErr error

	initialized bool
	published   bool
	deleted     []string
}

func (s *stubPublish) InitializeUpload(context.Context, string) (string, error) {
	s.initialized = true
	return "creation-1", nil
}

func (s *stubPublish) Publish(context.Context, string) (domainReel.PublishResult, error) {
	s.published = true
	if s.publishErr != nil {
		return domainReel.PublishResult{}, s.publishErr
	}
	return domainReel.PublishResult{PostID: "ig-1", Permalink: "https://www.instagram.com/p/ig-1/"}, nil
}

func (s *stubPublish) CheckStatus(context.Context, string) (string, error) { return "FINISHED", nil }

func (s *stubPublish) Delete(_ context.Context, postID string) error {
	s.deleted = append(s.deleted, postID)
	return nil
}

type stubMods struct{}

func (stubMods) ArticleModifications(a domainArticle.Article) map[string]any {
	return map[string]any{"Title": a.Title}
}

func (stubMods) TopicModifications(topic, imageURL string) map[string]any {
	return map[string]any{"Title": topic, "Image": imageURL}
}

func newReelService(t *testing.T, render *stubRender, publish *stubPublish, plan *fakePlanStore) (domainReel.IReelUsecase, *fakeActivity) {
	t.Helper()
	activity := &fakeActivity{}
	articles := &fakeArticleStore{articles: map[string]domainArticle.Article{
		"a1": {ID: "a1", Title: "Lerntipps", URL: "https://studibuch.de/lerntipps"},
	}}
	service := NewReelService(render, publish, stubMods{}, articles, plan, fakeImages{path: "/tmp/img.jpg"}, activity)
	return service, activity
}

func TestCreateFromArticle_PublishesAndMarksPlanPost(t *testing.T) {
	render := &stubRender{assetURL: "https://cdn.example.com/r.mp4"}
	publish := &stubPublish{}
	plan := &fakePlanStore{plan: domainPlan.ContentPlan{
		{ID: "p1", Kind: domainPlan.KindArticle, SourceURL: "https://studibuch.de/lerntipps", Status: domainPlan.StatusScheduled},
	}}
	service, activity := newReelService(t, render, publish, plan)

	result, err := service.CreateFromArticle(context.Background(), domainReel.FromArticleRequest{ArticleID: "a1"})
	if err != nil {
		t.Fatalf("CreateFromArticle() error: %v", err)
	}
	if result.PostID != "ig-1" {
		t.Fatalf("PostID = %q, want the remote id", result.PostID)
	}
	if result.Permalink != "https://www.instagram.com/p/ig-1/" {
		t.Fatalf("Permalink = %q", result.Permalink)
	}
	if plan.plan[0].Status != domainPlan.StatusPublished {
		t.Fatalf("plan post status = %s, want published", plan.plan[0].Status)
	}
	if !activity.recorded("reel_created") {
		t.Fatalf("no reel_created activity, got %v", activity.kinds)
	}
}

func TestCreateFromArticle_RenderFailureAbortsBeforePublish(t *testing.T) {
	render := &stubRender{awaitErr: pkgError.NewRenderError(pkgError.RenderStageRemoteFailure, "template broken")}
	publish := &stubPublish{}
	service, activity := newReelService(t, render, publish, &fakePlanStore{})

	_, err := service.CreateFromArticle(context.Background(), domainReel.FromArticleRequest{ArticleID: "a1"})
	if err == nil {
		t.Fatal("CreateFromArticle() should fail when the render fails")
	}
	if _, ok := err.(pkgError.RenderError); !ok {
		t.Fatalf("error type = %T, want RenderError propagated unchanged", err)
	}
	if publish.initialized || publish.published {
		t.Fatal("publish stages must not run after a render failure")
	}
	if !activity.recorded("error") {
		t.Fatalf("no error activity, got %v", activity.kinds)
	}
}

func TestCreateFromArticle_PublishFailureMarksPostFailed(t *testing.T) {
	render := &stubRender{assetURL: "https://cdn.example.com/r.mp4"}
	publish := &stubPublish{publishErr: pkgError.NewPublishError(pkgError.PublishStagePublish, "media not ready")}
	plan := &fakePlanStore{plan: domainPlan.ContentPlan{
		{ID: "p1", Kind: domainPlan.KindArticle, SourceURL: "https://studibuch.de/lerntipps", Status: domainPlan.StatusScheduled},
	}}
	service, _ := newReelService(t, render, publish, plan)

	_, err := service.CreateFromArticle(context.Background(), domainReel.FromArticleRequest{ArticleID: "a1"})
	if _, ok := err.(pkgError.PublishError); !ok {
		t.Fatalf("error type = %T, want PublishError propagated unchanged", err)
	}
	if plan.plan[0].Status != domainPlan.StatusFailed {
		t.Fatalf("plan post status = %s, want failed", plan.plan[0].Status)
	}
}

func TestCreateFromArticle_UnknownArticle(t *testing.T) {
	render := &stubRender{}
	service, _ := newReelService(t, render, &stubPublish{}, &fakePlanStore{})

	_, err := service.CreateFromArticle(context.Background(), domainReel.FromArticleRequest{ArticleID: "nope"})
	if _, ok := err.(pkgError.NotFoundError); !ok {
		t.Fatalf("error type = %T, want NotFoundError", err)
	}
	if render.submitted {
		t.Fatal("render must not be submitted for an unknown article")
	}
}

func TestCreateFromTopic_UsesImageProviderWhenURLEmpty(t *testing.T) {
	render := &stubRender{assetURL: "https://cdn.example.com/r.mp4"}
	publish := &stubPublish{}
	service, _ := newReelService(t, render, publish, &fakePlanStore{})

	result, err := service.CreateFromTopic(context.Background(), domainReel.FromTopicRequest{Topic: "Semesterstart"})
	if err != nil {
		t.Fatalf("CreateFromTopic() error: %v", err)
	}
	if result.PostID == "" {
		t.Fatal("expected a publish result")
	}
}

func TestDelete_LeavesPlanUntouched(t *testing.T) {
	publish := &stubPublish{}
	plan := &fakePlanStore{plan: domainPlan.ContentPlan{
		{ID: "p1", Status: domainPlan.StatusPublished},
	}}
	service, activity := newReelService(t, &stubRender{}, publish, plan)

	if err := service.Delete(context.Background(), "ig-1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if len(publish.deleted) != 1 || publish.deleted[0] != "ig-1" {
		t.Fatalf("deleted = %v, want [ig-1]", publish.deleted)
	}
	if plan.plan[0].Status != domainPlan.StatusPublished {
		t.Fatal("plan entry must not change when the remote media is deleted")
	}
	if !activity.recorded("reel_deleted") {
		t.Fatalf("no reel_deleted activity, got %v", activity.kinds)
	}
}
