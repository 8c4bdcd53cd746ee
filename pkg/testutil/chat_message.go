package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/campusboard/backend/internal/entity"
)

// MockChatMessageRepository stores messages in memory, newest first on read.
type MockChatMessageRepository struct {
	CreateFunc func(ctx context.Context, data *entity.ChatMessage) error

	mutex    sync.Mutex
	messages []entity.ChatMessage
}

func (m *MockChatMessageRepository) Create(ctx context.Context, data *entity.ChatMessage) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, data)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.messages = append(m.messages, *data)
	return nil
}

func (m *MockChatMessageRepository) GetListByChatID(
	ctx context.Context, chatID string, beforeID int64, sinceBucket int64, limit int,
) ([]entity.ChatMessage, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := []entity.ChatMessage{}
	for _, msg := range m.messages {
		if msg.ChatID != chatID || msg.Bucket < sinceBucket {
			continue
		}

		if beforeID != 0 && msg.ID >= beforeID {
			continue
		}

		result = append(result, msg)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}
