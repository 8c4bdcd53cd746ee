package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestArray(t *testing.T) {
	var a Array[string]
	require.NoError(t, a.Scan(`["u1","u2"]`))
	require.Equal(t, Array[string]{"u1", "u2"}, a)

	v, err := Array[string](nil).Value()
	require.NoError(t, err)
	require.Equal(t, "[]", v)

	require.NoError(t, a.Scan(nil))
	require.Nil(t, a)

	require.Error(t, a.Scan(10))
}

func TestChatParticipantKey(t *testing.T) {
	require.Equal(t, ChatParticipantKey("a", "b"), ChatParticipantKey("b", "a"))
	require.Equal(t, "a:b", ChatParticipantKey("b", "a"))
}

func TestLeaderboardPeriod(t *testing.T) {
	now := time.Date(2023, 5, 18, 10, 0, 0, 0, time.UTC)

	week := LeaderboardPeriod{Kind: LeaderboardWeek, At: now}
	require.Equal(t, "2023-W20", week.Key())
	require.Equal(t, time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC), week.Start())
	require.Equal(t, time.Date(2023, 5, 22, 0, 0, 0, 0, time.UTC), week.End())

	month := LeaderboardPeriod{Kind: LeaderboardMonth, At: now}
	require.Equal(t, "2023-05", month.Key())
	require.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), month.Start())
	require.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), month.End())

	// The first days of january may belong to the last ISO week of the year
	// before.
	newYear := LeaderboardPeriod{Kind: LeaderboardWeek, At: time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)}
	require.Equal(t, "2020-W53", newYear.Key())
}
