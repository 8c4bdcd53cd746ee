package domain

import (
	"context"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/enum"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/google/uuid"
)

type FeedbackDomain interface {
	Submit(context.Context, *model.SubmitFeedbackRequest) (*model.SubmitFeedbackResponse, error)
}

type feedbackDomain struct {
	feedbackRepo repository.FeedbackRepository
}

func NewFeedbackDomain(feedbackRepo repository.FeedbackRepository) *feedbackDomain {
	return &feedbackDomain{feedbackRepo: feedbackRepo}
}

func (d *feedbackDomain) Submit(
	ctx context.Context, req *model.SubmitFeedbackRequest,
) (*model.SubmitFeedbackResponse, error) {
	category, err := enum.ToEnum[entity.FeedbackCategory](req.Category)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid feedback category: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
	}

	feedback := &entity.Feedback{
		Base:     entity.Base{ID: uuid.NewString()},
		UserID:   xcontext.RequestUserID(ctx),
		Category: category,
		Message:  req.Message,
	}
	if err := d.feedbackRepo.Create(ctx, feedback); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create feedback: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SubmitFeedbackResponse{ID: feedback.ID}, nil
}
