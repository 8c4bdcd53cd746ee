package entity

import (
	"database/sql"
	"strings"
	"time"
)

// Chat is a direct conversation between two users.
type Chat struct {
	Base
	ParticipantKey  string `gorm:"unique;size:160"`
	LastMessageID   int64
	LastMessageText string
	LastSenderID    string `gorm:"size:64"`
	LastMessageAt   sql.NullTime
}

// ChatParticipantKey identifies the chat of an unordered pair of users.
func ChatParticipantKey(a, b string) string {
	if a > b {
		a, b = b, a
	}

	return strings.Join([]string{a, b}, ":")
}

// ChatMember tracks how far a participant has read.
type ChatMember struct {
	ChatID            string `gorm:"primaryKey;size:64"`
	UserID            string `gorm:"primaryKey;size:64"`
	LastReadMessageID int64
}

// ChatMessage is stored in ScyllaDB, not MySQL. Rows are partitioned by
// (ChatID, Bucket) and clustered by ID descending, ids are snowflakes so they
// sort by time.
type ChatMessage struct {
	ID        int64
	ChatID    string
	Bucket    int64
	UserID    string
	Text      string
	CreatedAt time.Time
}

func (*ChatMessage) TableName() string {
	return "messages"
}
