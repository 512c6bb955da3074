package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	domainPlan "github.com/studibuch/riona/domains/plan"
	pkgError "github.com/studibuch/riona/pkg/error"
)

func ValidateCreateTopicPost(ctx context.Context, request domainPlan.CreateTopicPostRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Topic, validation.Required, validation.Length(1, 200)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateUpdateSchedule(ctx context.Context, request domainPlan.UpdateScheduleRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.PostID, validation.Required),
		validation.Field(&request.ScheduledDate, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateUpdateEngagement(ctx context.Context, request domainPlan.UpdateEngagementRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.PostID, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
