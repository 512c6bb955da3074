package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	domainActivity "github.com/studibuch/riona/domains/activity"
	domainArticle "github.com/studibuch/riona/domains/article"
	domainContent "github.com/studibuch/riona/domains/content"
	domainPlan "github.com/studibuch/riona/domains/plan"
	domainReel "github.com/studibuch/riona/domains/reel"
	"github.com/studibuch/riona/validations"
)

// ModificationBuilder turns post seeds into render template inputs.
type ModificationBuilder interface {
	ArticleModifications(a domainArticle.Article) map[string]any
	TopicModifications(topic, imageURL string) map[string]any
}

type serviceReel struct {
	render   domainReel.IRenderService
	publish  domainReel.IPublishService
	mods     ModificationBuilder
	articles domainArticle.IStore
	plan     domainPlan.IStore
	images   domainContent.IImageProvider
	activity domainActivity.ILog
}

func NewReelService(
	render domainReel.IRenderService,
	publish domainReel.IPublishService,
	mods ModificationBuilder,
	articles domainArticle.IStore,
	plan domainPlan.IStore,
	images domainContent.IImageProvider,
	activity domainActivity.ILog,
) domainReel.IReelUsecase {
	return &serviceReel{
		render:   render,
		publish:  publish,
		mods:     mods,
		articles: articles,
		plan:     plan,
		images:   images,
		activity: activity,
	}
}

// CreateFromArticle runs the full pipeline for one article: render, await,
// initialize upload, publish. The first failing stage aborts the run and its
// error is returned unchanged.
func (service *serviceReel) CreateFromArticle(ctx context.Context, request domainReel.FromArticleRequest) (domainReel.PublishResult, error) {
	if err := validations.ValidateReelFromArticle(ctx, request); err != nil {
		return domainReel.PublishResult{}, err
	}

	article, err := service.articles.GetByID(request.ArticleID)
	if err != nil {
		return domainReel.PublishResult{}, err
	}

	result, err := service.runPipeline(ctx, service.mods.ArticleModifications(article))
	if err != nil {
		service.activity.Record("error", fmt.Sprintf("Reel pipeline failed for article %q: %v", article.Title, err))
		service.markArticlePost(article.URL, domainPlan.StatusFailed)
		return domainReel.PublishResult{}, err
	}

	service.markArticlePost(article.URL, domainPlan.StatusPublished)
	service.activity.Record("reel_created", fmt.Sprintf("Reel published for article %q: %s", article.Title, result.Permalink))
	return result, nil
}

func (service *serviceReel) CreateFromTopic(ctx context.Context, request domainReel.FromTopicRequest) (domainReel.PublishResult, error) {
	if err := validations.ValidateReelFromTopic(ctx, request); err != nil {
		return domainReel.PublishResult{}, err
	}

	imageURL := request.ImageURL
	if imageURL == "" {
		imageURL = service.images.ImageFor(ctx, request.Topic)
	}

	result, err := service.runPipeline(ctx, service.mods.TopicModifications(request.Topic, imageURL))
	if err != nil {
		service.activity.Record("error", fmt.Sprintf("Reel pipeline failed for topic %q: %v", request.Topic, err))
		return domainReel.PublishResult{}, err
	}

	service.activity.Record("reel_created", fmt.Sprintf("Reel published for topic %q: %s", request.Topic, result.Permalink))
	return result, nil
}

func (service *serviceReel) Status(ctx context.Context, creationID string) (string, error) {
	return service.publish.CheckStatus(ctx, creationID)
}

// Delete removes the remote media only; the content plan keeps its entry.
func (service *serviceReel) Delete(ctx context.Context, postID string) error {
	if err := service.publish.Delete(ctx, postID); err != nil {
		return err
	}
	service.activity.Record("reel_deleted", fmt.Sprintf("Remote media %s deleted", postID))
	return nil
}

func (service *serviceReel) runPipeline(ctx context.Context, modifications map[string]any) (domainReel.PublishResult, error) {
	renderID, err := service.render.Submit(ctx, "", modifications, 0)
	if err != nil {
		return domainReel.PublishResult{}, err
	}

	assetURL, err := service.render.AwaitCompletion(ctx, renderID)
	if err != nil {
		return domainReel.PublishResult{}, err
	}

	creationID, err := service.publish.InitializeUpload(ctx, assetURL)
	if err != nil {
		return domainReel.PublishResult{}, err
	}

	result, err := service.publish.Publish(ctx, creationID)
	if err != nil {
		return domainReel.PublishResult{}, err
	}

	logrus.Infof("[REEL] published %s (%s)", result.PostID, result.Permalink)
	return result, nil
}

// markArticlePost flips the status of the plan entry that points at the
// article. A missing entry is fine, reels can be created for articles that
// were never planned.
func (service *serviceReel) markArticlePost(sourceURL string, status domainPlan.PostStatus) {
	_, err := service.plan.Update(func(plan domainPlan.ContentPlan) (domainPlan.ContentPlan, error) {
		for i := range plan {
			if plan[i].Kind == domainPlan.KindArticle && plan[i].SourceURL == sourceURL {
				plan[i].Status = status
			}
		}
		return plan, nil
	})
	if err != nil {
		logrus.WithError(err).Errorf("[REEL] failed to mark plan post for %s", sourceURL)
	}
}
