package repository

import (
	"context"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type CircleMemberRepository interface {
	Create(ctx context.Context, data *entity.CircleMember) (bool, error)
	Get(ctx context.Context, circleID, userID string) (*entity.CircleMember, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.CircleMember, error)
	Delete(ctx context.Context, circleID, userID string) (bool, error)
}

type circleMemberRepository struct{}

func NewCircleMemberRepository() *circleMemberRepository {
	return &circleMemberRepository{}
}

// Create inserts the membership and reports whether it did not exist yet.
func (r *circleMemberRepository) Create(ctx context.Context, data *entity.CircleMember) (bool, error) {
	tx := xcontext.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(data)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *circleMemberRepository) Get(ctx context.Context, circleID, userID string) (*entity.CircleMember, error) {
	var result entity.CircleMember
	err := xcontext.DB(ctx).Take(&result, "circle_id=? AND user_id=?", circleID, userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *circleMemberRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.CircleMember, error) {
	var result []entity.CircleMember
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes the membership and reports whether it existed.
func (r *circleMemberRepository) Delete(ctx context.Context, circleID, userID string) (bool, error) {
	tx := xcontext.DB(ctx).Delete(&entity.CircleMember{}, "circle_id=? AND user_id=?", circleID, userID)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

