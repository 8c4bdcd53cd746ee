package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// PrefixSentinel closes a prefix range scan: every string starting with kw
// sorts within [kw, kw+PrefixSentinel).
const PrefixSentinel = "\uf8ff"

type GetListBoardFilter struct {
	UniversityID string
	Department   string
	Year         int
	Offset       int
	Limit        int
}

type BoardRepository interface {
	Create(ctx context.Context, data *entity.Board) error
	GetByID(ctx context.Context, id string) (*entity.Board, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Board, error)
	GetList(ctx context.Context, filter GetListBoardFilter) ([]entity.Board, error)
	SearchByPrefix(ctx context.Context, universityID, prefix string, limit int) ([]entity.Board, error)
	GetPageAfter(ctx context.Context, afterID string, limit int) ([]entity.Board, error)
	IncreasePostCount(ctx context.Context, id string, postAt time.Time) error
	SetBestAnswer(ctx context.Context, id, postID string) (bool, error)
	UpdateImage(ctx context.Context, id, url string) error
}

type boardRepository struct{}

func NewBoardRepository() *boardRepository {
	return &boardRepository{}
}

func (r *boardRepository) Create(ctx context.Context, data *entity.Board) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *boardRepository) GetByID(ctx context.Context, id string) (*entity.Board, error) {
	var result entity.Board
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *boardRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Board, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var result []entity.Board
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *boardRepository) GetList(ctx context.Context, filter GetListBoardFilter) ([]entity.Board, error) {
	tx := xcontext.DB(ctx).Model(&entity.Board{}).
		Where("university_id=?", filter.UniversityID)

	if filter.Department != "" {
		tx = tx.Where("department=?", filter.Department)
	}

	if filter.Year != 0 {
		tx = tx.Where("year=?", filter.Year)
	}

	var result []entity.Board
	err := tx.Order("created_at DESC").Offset(filter.Offset).Limit(filter.Limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *boardRepository) SearchByPrefix(
	ctx context.Context, universityID, prefix string, limit int,
) ([]entity.Board, error) {
	var result []entity.Board
	err := xcontext.DB(ctx).
		Where("university_id=? AND title>=? AND title<?", universityID, prefix, prefix+PrefixSentinel).
		Order("title").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *boardRepository) IncreasePostCount(ctx context.Context, id string, postAt time.Time) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Board{}).
		Where("id=?", id).
		Updates(map[string]any{
			"post_count":     gorm.Expr("post_count+1"),
			"latest_post_at": sql.NullTime{Valid: true, Time: postAt},
			"updated_at":     postAt,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// SetBestAnswer records postID as the best answer unless one was already
// chosen. It reports whether the board was changed.
func (r *boardRepository) SetBestAnswer(ctx context.Context, id, postID string) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Board{}).
		Where("id=? AND best_answer_post_id IS NULL", id).
		Update("best_answer_post_id", sql.NullString{Valid: true, String: postID})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *boardRepository) UpdateImage(ctx context.Context, id, url string) error {
	return xcontext.DB(ctx).Model(&entity.Board{}).Where("id=?", id).Update("image_url", url).Error
}

// GetPageAfter walks the whole table in id order, starting after afterID.
func (r *boardRepository) GetPageAfter(ctx context.Context, afterID string, limit int) ([]entity.Board, error) {
	var result []entity.Board
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
