package repository

import (
	"context"
	"database/sql"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListCircleFilter struct {
	UniversityID string
	Category     string
	Offset       int
	Limit        int
}

type CircleRepository interface {
	Create(ctx context.Context, data *entity.Circle) error
	GetByID(ctx context.Context, id string) (*entity.Circle, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Circle, error)
	GetList(ctx context.Context, filter GetListCircleFilter) ([]entity.Circle, error)
	SearchByPrefix(ctx context.Context, universityID, prefix string, limit int) ([]entity.Circle, error)
	GetPageAfter(ctx context.Context, afterID string, limit int) ([]entity.Circle, error)
	IncreaseMemberCount(ctx context.Context, id string, delta int64) error
	SetQuestionBoard(ctx context.Context, id, boardID string) (bool, error)
	UpdateImage(ctx context.Context, id, url string) error
}

type circleRepository struct{}

func NewCircleRepository() *circleRepository {
	return &circleRepository{}
}

func (r *circleRepository) Create(ctx context.Context, data *entity.Circle) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *circleRepository) GetByID(ctx context.Context, id string) (*entity.Circle, error) {
	var result entity.Circle
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *circleRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Circle, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var result []entity.Circle
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *circleRepository) GetList(ctx context.Context, filter GetListCircleFilter) ([]entity.Circle, error) {
	tx := xcontext.DB(ctx).Model(&entity.Circle{}).Where("university_id=?", filter.UniversityID)
	if filter.Category != "" {
		tx = tx.Where("category=?", filter.Category)
	}

	var result []entity.Circle
	err := tx.Order("member_count DESC").Offset(filter.Offset).Limit(filter.Limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *circleRepository) SearchByPrefix(
	ctx context.Context, universityID, prefix string, limit int,
) ([]entity.Circle, error) {
	var result []entity.Circle
	err := xcontext.DB(ctx).
		Where("university_id=? AND name>=? AND name<?", universityID, prefix, prefix+PrefixSentinel).
		Order("name").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *circleRepository) IncreaseMemberCount(ctx context.Context, id string, delta int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Circle{}).
		Where("id=?", id).
		Update("member_count", gorm.Expr("member_count+?", delta))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// SetQuestionBoard links boardID to the circle unless a board is already
// linked. It reports whether the circle was changed.
func (r *circleRepository) SetQuestionBoard(ctx context.Context, id, boardID string) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Circle{}).
		Where("id=? AND question_board_id IS NULL", id).
		Update("question_board_id", sql.NullString{Valid: true, String: boardID})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *circleRepository) UpdateImage(ctx context.Context, id, url string) error {
	return xcontext.DB(ctx).Model(&entity.Circle{}).Where("id=?", id).Update("image_url", url).Error
}

// GetPageAfter walks the whole table in id order, starting after afterID.
func (r *circleRepository) GetPageAfter(ctx context.Context, afterID string, limit int) ([]entity.Circle, error) {
	var result []entity.Circle
	err := xcontext.DB(ctx).
		Where("id>?", afterID).
		Order("id").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
