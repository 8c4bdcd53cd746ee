package repository

import (
	"context"
	"errors"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, data *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error)
	GetListByBoardID(ctx context.Context, boardID string, offset, limit int) ([]entity.Post, error)
	SearchByPrefix(ctx context.Context, universityID, prefix string, limit int) ([]entity.Post, error)
	GetPageAfter(ctx context.Context, afterID string, limit int) ([]entity.Post, error)
	IncreaseThanks(ctx context.Context, id string) error
	UpdateImage(ctx context.Context, id, url string) error
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var result entity.Post
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var result []entity.Post
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetListByBoardID(
	ctx context.Context, boardID string, offset, limit int,
) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Where("board_id=?", boardID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) SearchByPrefix(
	ctx context.Context, universityID, prefix string, limit int,
) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Where("university_id=? AND text>=? AND text<?", universityID, prefix, prefix+PrefixSentinel).
		Order("text").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) IncreaseThanks(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Update("thanks_count", gorm.Expr("thanks_count+1"))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *postRepository) UpdateImage(ctx context.Context, id, url string) error {
	return xcontext.DB(ctx).Model(&entity.Post{}).Where("id=?", id).Update("image_url", url).Error
}

// GetPageAfter walks the whole table in id order, starting after afterID.
func (r *postRepository) GetPageAfter(ctx context.Context, afterID string, limit int) ([]entity.Post, error) {
	var result []entity.Post
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
