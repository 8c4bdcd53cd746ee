package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UpdateProfileData struct {
	Name       string
	Department string
	Year       int
	Bio        *string
	AvatarURL  string
}

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	UpdateProfile(ctx context.Context, id string, data UpdateProfileData) error
	IncreasePoints(ctx context.Context, id string, points int64) error
	UpdateRelations(ctx context.Context, user *entity.User) error
	UpdateBadges(ctx context.Context, user *entity.User) error
	GetRelatedUsers(ctx context.Context, id string) ([]entity.User, error)
	LiftExpiredSuspensions(ctx context.Context, now time.Time) (int64, error)
	DeleteByID(ctx context.Context, id string) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.User
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, data UpdateProfileData) error {
	updateMap := map[string]any{}
	if data.Name != "" {
		updateMap["name"] = data.Name
	}

	if data.Department != "" {
		updateMap["department"] = data.Department
	}

	if data.Year != 0 {
		updateMap["year"] = data.Year
	}

	if data.Bio != nil {
		updateMap["bio"] = *data.Bio
	}

	if data.AvatarURL != "" {
		updateMap["avatar_url"] = data.AvatarURL
	}

	if len(updateMap) == 0 {
		return nil
	}

	tx := xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(updateMap)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) IncreasePoints(ctx context.Context, id string, points int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("points", gorm.Expr("points+?", points))
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

// UpdateRelations writes followers and following of user if its version is
// still the one read. The version of user is bumped on success.
func (r *userRepository) UpdateRelations(ctx context.Context, user *entity.User) error {
	return r.updateVersioned(ctx, user, map[string]any{
		"followers": user.Followers,
		"following": user.Following,
	})
}

// UpdateBadges writes the badges of user under the same version guard as
// UpdateRelations.
func (r *userRepository) UpdateBadges(ctx context.Context, user *entity.User) error {
	return r.updateVersioned(ctx, user, map[string]any{"badges": user.Badges})
}

func (r *userRepository) updateVersioned(ctx context.Context, user *entity.User, updateMap map[string]any) error {
	updateMap["version"] = user.Version + 1
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=? AND version=?", user.ID, user.Version).
		Updates(updateMap)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return xcontext.ErrTxConflict
	}

	user.Version++
	return nil
}

// GetRelatedUsers returns users whose followers or following mention id.
func (r *userRepository) GetRelatedUsers(ctx context.Context, id string) ([]entity.User, error) {
	pattern := "%\"" + id + "\"%"
	var records []entity.User
	err := xcontext.DB(ctx).
		Where("id<>? AND (followers LIKE ? OR following LIKE ?)", id, pattern, pattern).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) LiftExpiredSuspensions(ctx context.Context, now time.Time) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("suspended_until IS NOT NULL AND suspended_until<=?", now).
		Update("suspended_until", sql.NullTime{})
	return tx.RowsAffected, tx.Error
}

func (r *userRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.User{}, "id=?", id).Error
}
