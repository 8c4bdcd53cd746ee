package repository

import (
	"context"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/xcontext"
)

type ChatMemberRepository interface {
	Create(ctx context.Context, data *entity.ChatMember) error
	Get(ctx context.Context, chatID, userID string) (*entity.ChatMember, error)
	GetListByChatID(ctx context.Context, chatID string) ([]entity.ChatMember, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.ChatMember, error)
	UpdateLastRead(ctx context.Context, chatID, userID string, messageID int64) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type chatMemberRepository struct{}

func NewChatMemberRepository() *chatMemberRepository {
	return &chatMemberRepository{}
}

func (r *chatMemberRepository) Create(ctx context.Context, data *entity.ChatMember) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *chatMemberRepository) Get(ctx context.Context, chatID, userID string) (*entity.ChatMember, error) {
	var result entity.ChatMember
	err := xcontext.DB(ctx).Take(&result, "chat_id=? AND user_id=?", chatID, userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *chatMemberRepository) GetListByChatID(ctx context.Context, chatID string) ([]entity.ChatMember, error) {
	var result []entity.ChatMember
	if err := xcontext.DB(ctx).Where("chat_id=?", chatID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *chatMemberRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.ChatMember, error) {
	var result []entity.ChatMember
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateLastRead only moves the read marker forward.
func (r *chatMemberRepository) UpdateLastRead(ctx context.Context, chatID, userID string, messageID int64) error {
	tx := xcontext.DB(ctx).Model(&entity.ChatMember{}).
		Where("chat_id=? AND user_id=?", chatID, userID).
		Where("last_read_message_id<?", messageID).
		Update("last_read_message_id", messageID)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		if _, err := r.Get(ctx, chatID, userID); err != nil {
			return err
		}
	}

	return nil
}

func (r *chatMemberRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Delete(&entity.ChatMember{}, "user_id=?", userID).Error
}

