package repository

import (
	"testing"
	"time"

	"github.com/campusboard/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestBoardRepository_IncreasePostCount(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewBoardRepository()

	postAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.IncreasePostCount(ctx, testutil.Board2.ID, postAt))

	board, err := repo.GetByID(ctx, testutil.Board2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), board.PostCount)
	require.True(t, board.LatestPostAt.Valid)
	require.True(t, postAt.Equal(board.LatestPostAt.Time))

	require.Error(t, repo.IncreasePostCount(ctx, "ghost", postAt))
}

func TestBoardRepository_SearchByPrefix(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewBoardRepository()

	boards, err := repo.SearchByPrefix(ctx, testutil.KAIST.ID, "Mid", 100)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	require.Equal(t, testutil.Board1.ID, boards[0].ID)

	// The range scan is anchored at the start of the title.
	boards, err = repo.SearchByPrefix(ctx, testutil.KAIST.ID, "term", 100)
	require.NoError(t, err)
	require.Empty(t, boards)

	boards, err = repo.SearchByPrefix(ctx, testutil.SNU.ID, "Mid", 100)
	require.NoError(t, err)
	require.Empty(t, boards)
}

func TestBoardRepository_SetBestAnswer(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewBoardRepository()

	ok, err := repo.SetBestAnswer(ctx, testutil.Board1.ID, testutil.Post1.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.SetBestAnswer(ctx, testutil.Board1.ID, "post2")
	require.NoError(t, err)
	require.False(t, ok)

	board, err := repo.GetByID(ctx, testutil.Board1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Post1.ID, board.BestAnswerPostID.String)
}
