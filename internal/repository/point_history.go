package repository

import (
	"context"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/xcontext"
)

type StatisticPointFilter struct {
	UniversityID string
	Start        time.Time
	End          time.Time
}

type PointHistoryRepository interface {
	Create(ctx context.Context, data *entity.PointHistory) error
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.PointHistory, error)
	GetRecentByAction(ctx context.Context, userID string, action entity.PointAction, limit int) ([]entity.PointHistory, error)
	Statistic(ctx context.Context, filter StatisticPointFilter) ([]entity.UserPoints, error)
}

type pointHistoryRepository struct{}

func NewPointHistoryRepository() *pointHistoryRepository {
	return &pointHistoryRepository{}
}

func (r *pointHistoryRepository) Create(ctx context.Context, data *entity.PointHistory) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *pointHistoryRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.PointHistory, error) {
	var result []entity.PointHistory
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetRecentByAction returns the latest limit rows of action for user.
func (r *pointHistoryRepository) GetRecentByAction(
	ctx context.Context, userID string, action entity.PointAction, limit int,
) ([]entity.PointHistory, error) {
	var result []entity.PointHistory
	err := xcontext.DB(ctx).
		Where("user_id=? AND action=?", userID, action).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pointHistoryRepository) Statistic(
	ctx context.Context, filter StatisticPointFilter,
) ([]entity.UserPoints, error) {
	var result []entity.UserPoints
	err := xcontext.DB(ctx).Model(&entity.PointHistory{}).
		Select("user_id, SUM(points) AS points").
		Where("university_id=? AND created_at>=? AND created_at<?", filter.UniversityID, filter.Start, filter.End).
		Group("user_id").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
