package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, data *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetByVerificationToken(ctx context.Context, tokenHash string) (*entity.Account, error)
	UpdateVerificationToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, id string) error
	DeleteByID(ctx context.Context, id string) error
}

type accountRepository struct{}

func NewAccountRepository() *accountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Create(ctx context.Context, data *entity.Account) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	var result entity.Account
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var result entity.Account
	if err := xcontext.DB(ctx).Take(&result, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *accountRepository) GetByVerificationToken(ctx context.Context, tokenHash string) (*entity.Account, error) {
	var result entity.Account
	err := xcontext.DB(ctx).Take(&result, "verification_token_hash=?", tokenHash).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *accountRepository) UpdateVerificationToken(
	ctx context.Context, id, tokenHash string, expiresAt time.Time,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Account{}).
		Where("id=?", id).
		Updates(map[string]any{
			"verification_token_hash": tokenHash,
			"verification_expires_at": sql.NullTime{Valid: true, Time: expiresAt},
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *accountRepository) MarkVerified(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Model(&entity.Account{}).
		Where("id=?", id).
		Updates(map[string]any{
			"email_verified":          true,
			"verification_token_hash": "",
			"verification_expires_at": sql.NullTime{},
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *accountRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Account{}, "id=?", id).Error
}
