package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ChatRepository interface {
	Create(ctx context.Context, data *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	GetByParticipantKey(ctx context.Context, key string) (*entity.Chat, error)
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.Chat, error)
	UpdateLastMessage(ctx context.Context, id string, msg *entity.ChatMessage) error
}

type chatRepository struct{}

func NewChatRepository() *chatRepository {
	return &chatRepository{}
}

func (r *chatRepository) Create(ctx context.Context, data *entity.Chat) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *chatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	var result entity.Chat
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *chatRepository) GetByParticipantKey(ctx context.Context, key string) (*entity.Chat, error) {
	var result entity.Chat
	if err := xcontext.DB(ctx).Take(&result, "participant_key=?", key).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *chatRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Chat, error) {
	var result []entity.Chat
	err := xcontext.DB(ctx).Model(&entity.Chat{}).
		Joins("join chat_members on chat_members.chat_id=chats.id").
		Where("chat_members.user_id=?", userID).
		Order("chats.updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *chatRepository) UpdateLastMessage(ctx context.Context, id string, msg *entity.ChatMessage) error {
	tx := xcontext.DB(ctx).Model(&entity.Chat{}).
		Where("id=?", id).
		Updates(map[string]any{
			"last_message_id":   msg.ID,
			"last_message_text": msg.Text,
			"last_sender_id":    msg.UserID,
			"last_message_at":   sql.NullTime{Valid: true, Time: msg.CreatedAt},
			"updated_at":        time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
