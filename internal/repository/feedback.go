package repository

import (
	"context"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/xcontext"
)

type FeedbackRepository interface {
	Create(ctx context.Context, data *entity.Feedback) error
}

type feedbackRepository struct{}

func NewFeedbackRepository() *feedbackRepository {
	return &feedbackRepository{}
}

func (r *feedbackRepository) Create(ctx context.Context, data *entity.Feedback) error {
	return xcontext.DB(ctx).Create(data).Error
}
