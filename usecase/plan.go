package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	domainActivity "github.com/studibuch/riona/domains/activity"
	domainArticle "github.com/studibuch/riona/domains/article"
	domainContent "github.com/studibuch/riona/domains/content"
	domainPlan "github.com/studibuch/riona/domains/plan"
	"github.com/studibuch/riona/validations"
)

type servicePlan struct {
	store     domainPlan.IStore
	source    domainArticle.ISource
	articles  domainArticle.IStore
	captions  domainContent.ICaptionGenerator
	images    domainContent.IImageProvider
	scheduler *Scheduler
	activity  domainActivity.ILog
}

func NewPlanService(
	store domainPlan.IStore,
	source domainArticle.ISource,
	articles domainArticle.IStore,
	captions domainContent.ICaptionGenerator,
	images domainContent.IImageProvider,
	scheduler *Scheduler,
	activity domainActivity.ILog,
) domainPlan.IPlanUsecase {
	return &servicePlan{
		store:     store,
		source:    source,
		articles:  articles,
		captions:  captions,
		images:    images,
		scheduler: scheduler,
		activity:  activity,
	}
}

func (service *servicePlan) List(_ context.Context) (domainPlan.ContentPlan, error) {
	plan, err := service.store.Load()
	if err != nil {
		return nil, err
	}
	if plan == nil {
		plan = domainPlan.ContentPlan{}
	}
	return plan, nil
}

func (service *servicePlan) CreateTopicPost(ctx context.Context, request domainPlan.CreateTopicPostRequest) (domainPlan.Post, error) {
	if err := validations.ValidateCreateTopicPost(ctx, request); err != nil {
		return domainPlan.Post{}, err
	}

	post := service.buildPostFromTopic(ctx, request)
	_, err := service.store.Update(func(plan domainPlan.ContentPlan) (domainPlan.ContentPlan, error) {
		return append(plan, post), nil
	})
	if err != nil {
		return domainPlan.Post{}, err
	}

	service.activity.Record("topic_post_generated", fmt.Sprintf("Topic post created: %s", request.Topic))
	logrus.Infof("[PLAN] topic post %s scheduled for %s", post.ID, post.ScheduledAt.Format(time.RFC3339))
	return post, nil
}

// RefreshFromArticles fetches the magazine feed and appends posts for
// articles the plan does not know yet. An empty fetch is a no-op, existing
// posts are never touched.
func (service *servicePlan) RefreshFromArticles(ctx context.Context) (int, error) {
	articles, err := service.source.FetchArticles(ctx)
	if err != nil {
		return 0, err
	}
	if len(articles) == 0 {
		logrus.Info("[PLAN] no articles fetched, plan unchanged")
		return 0, nil
	}

	if err := service.articles.SaveAll(articles); err != nil {
		return 0, err
	}

	candidates := make([]domainPlan.Post, 0, len(articles))
	for _, a := range articles {
		candidates = append(candidates, service.buildPostFromArticle(a))
	}

	added := 0
	_, err = service.store.Update(func(plan domainPlan.ContentPlan) (domainPlan.ContentPlan, error) {
		toAdd := MergeNewArticlePosts(plan, candidates)
		added = len(toAdd)
		return append(plan, toAdd...), nil
	})
	if err != nil {
		return 0, err
	}

	if added > 0 {
		service.activity.Record("content_plan_updated", fmt.Sprintf("%d new article posts added to the plan", added))
	}
	logrus.Infof("[PLAN] refresh done: %d fetched, %d added", len(articles), added)
	return added, nil
}

func (service *servicePlan) UpdatePostSchedule(ctx context.Context, request domainPlan.UpdateScheduleRequest) (domainPlan.Post, error) {
	if err := validations.ValidateUpdateSchedule(ctx, request); err != nil {
		return domainPlan.Post{}, err
	}

	post, err := service.store.UpsertByPostID(request.PostID, func(p *domainPlan.Post) {
		p.ScheduledAt = request.ScheduledDate
	})
	if err != nil {
		return domainPlan.Post{}, err
	}

	service.activity.Record("post_rescheduled", fmt.Sprintf("Post %s moved to %s", post.ID, post.ScheduledAt.Format(time.RFC3339)))
	return post, nil
}

func (service *servicePlan) UpdatePostEngagement(ctx context.Context, request domainPlan.UpdateEngagementRequest) (domainPlan.Post, error) {
	if err := validations.ValidateUpdateEngagement(ctx, request); err != nil {
		return domainPlan.Post{}, err
	}

	post, err := service.store.UpsertByPostID(request.PostID, func(p *domainPlan.Post) {
		if request.AutoLike != nil {
			p.Engagement.AutoLike = *request.AutoLike
		}
		if request.AutoComment != nil {
			p.Engagement.AutoComment = *request.AutoComment
		}
	})
	if err != nil {
		return domainPlan.Post{}, err
	}

	service.activity.Record("post_engagement_updated", fmt.Sprintf("Engagement flags changed for post %s", post.ID))
	return post, nil
}

func (service *servicePlan) buildPostFromArticle(a domainArticle.Article) domainPlan.Post {
	caption := service.captions.CaptionForArticle(a.Title)
	hashtags := service.captions.HashtagsForArticle(a.Title, a.Categories, a.Tags)

	return domainPlan.Post{
		ID:             uuid.NewString(),
		Kind:           domainPlan.KindArticle,
		Title:          a.Title,
		SourceURL:      a.URL,
		ImageURL:       a.ImageURL,
		LocalImagePath: a.LocalImagePath,
		Caption:        caption,
		Hashtags:       hashtags,
		FullCaption:    FullCaption(caption, hashtags),
		ScheduledAt:    service.scheduler.ComputeScheduledTime(nil),
		Status:         domainPlan.StatusScheduled,
	}
}

func (service *servicePlan) buildPostFromTopic(ctx context.Context, request domainPlan.CreateTopicPostRequest) domainPlan.Post {
	caption := service.captions.CaptionForTopic(request.Topic)
	hashtags := service.captions.HashtagsForTopic(request.Topic)

	post := domainPlan.Post{
		ID:             uuid.NewString(),
		Kind:           domainPlan.KindTopic,
		Title:          request.Topic,
		LocalImagePath: service.images.ImageFor(ctx, request.Topic),
		Caption:        caption,
		Hashtags:       hashtags,
		FullCaption:    FullCaption(caption, hashtags),
		ScheduledAt:    service.scheduler.ComputeScheduledTime(request.ScheduledDate),
		Status:         domainPlan.StatusScheduled,
	}
	if request.Engagement != nil {
		post.Engagement = *request.Engagement
	}
	return post
}
