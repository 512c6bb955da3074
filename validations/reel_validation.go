package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	domainReel "github.com/studibuch/riona/domains/reel"
	pkgError "github.com/studibuch/riona/pkg/error"
)

func ValidateReelFromArticle(ctx context.Context, request domainReel.FromArticleRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.ArticleID, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateReelFromTopic(ctx context.Context, request domainReel.FromTopicRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Topic, validation.Required, validation.Length(1, 200)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
