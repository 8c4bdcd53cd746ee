package domain

import (
	"testing"

	"github.com/campusboard/backend/internal/domain/search"
	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/testutil"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_boardDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	deps := newTestDeps(ctx, t)
	domain := deps.boardDomain()

	resp, err := domain.Create(ctx, &model.CreateBoardRequest{Title: "Algorithms study notes"})
	require.NoError(t, err)
	require.Equal(t, testutil.KAIST.ID, resp.UniversityID)
	require.Equal(t, testutil.User1.Year, resp.Year)
	require.Equal(t, testutil.User1.ID, resp.CreatedBy.ID)

	ids, err := deps.searchIndex.Search(search.BoardDoc, testutil.KAIST.ID, "algorithms", 10)
	require.NoError(t, err)
	require.Equal(t, []string{resp.ID}, ids)

	got, err := domain.Get(ctx, &model.GetBoardRequest{BoardID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, "Algorithms study notes", got.Title)

	_, err = domain.Get(ctx, &model.GetBoardRequest{BoardID: "ghost"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_boardDomain_Create_Department(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestDeps(ctx, t).boardDomain()

	resp, err := domain.Create(ctx, &model.CreateBoardRequest{Title: "Quantum", Department: "Physics"})
	require.NoError(t, err)
	require.Equal(t, "Physics", resp.Department)

	_, err = domain.Create(ctx, &model.CreateBoardRequest{Title: "Contracts", Department: "Law"})
	require.True(t, errorx.Is(err, errorx.BadRequest))
}

func Test_boardDomain_GetList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestDeps(ctx, t).boardDomain()

	resp, err := domain.GetList(ctx, &model.GetBoardsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Boards, 3)

	// Out of range years are clamped into [1, 4].
	resp, err = domain.GetList(ctx, &model.GetBoardsRequest{Year: "0"})
	require.NoError(t, err)
	require.Len(t, resp.Boards, 1)
	require.Equal(t, testutil.Board3.ID, resp.Boards[0].ID)

	resp, err = domain.GetList(ctx, &model.GetBoardsRequest{Year: "abc"})
	require.NoError(t, err)
	require.Len(t, resp.Boards, 1)

	resp, err = domain.GetList(ctx, &model.GetBoardsRequest{Year: "2", Department: "Computer Science"})
	require.NoError(t, err)
	require.Len(t, resp.Boards, 2)
	require.Equal(t, testutil.Board1.ID, resp.Boards[0].ID)

	resp, err = domain.GetList(ctx, &model.GetBoardsRequest{Year: "99"})
	require.NoError(t, err)
	require.Empty(t, resp.Boards)
}

func Test_boardDomain_SelectBestAnswer(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	deps := newTestDeps(ctx, t)
	domain := deps.boardDomain()

	// Only the creator of board1 may select.
	_, err := domain.SelectBestAnswer(
		xcontext.WithRequestUserID(ctx, testutil.User3.ID),
		&model.SelectBestAnswerRequest{BoardID: testutil.Board1.ID, PostID: testutil.Post1.ID},
	)
	require.True(t, errorx.Is(err, errorx.PermissionDenied))

	_, err = domain.SelectBestAnswer(ctx, &model.SelectBestAnswerRequest{
		BoardID: testutil.Board1.ID,
		PostID:  testutil.Post1.ID,
	})
	require.NoError(t, err)

	board, err := repository.NewBoardRepository().GetByID(ctx, testutil.Board1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Post1.ID, board.BestAnswerPostID.String)
	requirePoints(ctx, t, testutil.User2.ID, 10)
	require.Equal(t, int64(1), countPointHistories(ctx, t, testutil.User2.ID, entity.PointActionBestAnswer))
	require.Len(t, deps.publisher.Packs, 1)

	_, err = domain.SelectBestAnswer(ctx, &model.SelectBestAnswerRequest{
		BoardID: testutil.Board1.ID,
		PostID:  testutil.Post1.ID,
	})
	require.True(t, errorx.Is(err, errorx.AlreadyExists))
	requirePoints(ctx, t, testutil.User2.ID, 10)
}
