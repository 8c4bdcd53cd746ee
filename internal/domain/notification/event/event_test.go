package event

import (
	"testing"

	"github.com/campusboard/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestEventRoundTrip(t *testing.T) {
	req := New(MessageEvent{
		ActorID:   "user1",
		ActorName: "Alice",
		ChatID:    "chat1",
		MessageID: "1717171717171717171",
		Text:      "hi",
	}, Metadata{To: "user2"})

	b, err := Marshal(req)
	require.NoError(t, err)

	got, err := Unmarshal(b)
	require.NoError(t, err)
	require.Equal(t, "message", got.Op)
	require.Equal(t, "user2", got.Metadata.To)

	ev, err := Decode(got)
	require.NoError(t, err)
	require.Equal(t, &MessageEvent{
		ActorID:   "user1",
		ActorName: "Alice",
		ChatID:    "chat1",
		MessageID: "1717171717171717171",
		Text:      "hi",
	}, ev)

	n := ev.Notification("user2")
	require.Equal(t, entity.NotificationMessage, n.Type)
	require.Equal(t, "chat1", n.RefID)
	require.Equal(t, "Alice: hi", n.Message)
}

func TestDecode_UnknownOp(t *testing.T) {
	_, err := Decode(&EventRequest{Op: "nope"})
	require.Error(t, err)
}

func TestUnmarshal_RejectsIncompleteEnvelope(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{name: "no data", raw: `{"o":"followed","m":{"to":"u2"}}`},
		{name: "null data", raw: `{"o":"followed","d":null,"m":{"to":"u2"}}`},
		{name: "no receiver", raw: `{"o":"followed","d":{"ActorID":"u1"}}`},
		{name: "not json", raw: `followed`},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.raw))
			require.Error(t, err)
		})
	}
}
