package reflectutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToSnakeCase(t *testing.T) {
	for in, want := range map[string]string{
		"ChatID":            "chat_id",
		"CreatedAt":         "created_at",
		"LastReadMessageID": "last_read_message_id",
		"Text":              "text",
	} {
		require.Equal(t, want, ToSnakeCase(in), in)
	}
}

func TestGetColumnNames(t *testing.T) {
	type message struct {
		ID        int64
		ChatID    string
		Bucket    int64
		UserIDs   string
		Body      string `db:"text"`
		Draft     bool   `db:"-"`
		internal  string
		CreatedAt int64
	}

	require.Equal(t,
		[]string{"bucket", "chat_id", "created_at", "id", "text", "user_ids"},
		GetColumnNames(&message{}),
	)
}
