package domain

import (
	"sync"
	"testing"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/testutil"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

func Test_postDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestDeps(ctx, t).postDomain()

	resp, err := domain.Create(ctx, &model.CreatePostRequest{BoardID: testutil.Board2.ID, Text: "Sleep well"})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.Author.ID)

	board, err := repository.NewBoardRepository().GetByID(ctx, testutil.Board2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), board.PostCount)

	post, err := repository.NewPostRepository().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.True(t, board.LatestPostAt.Valid)
	require.True(t, board.LatestPostAt.Time.Equal(post.CreatedAt))

	requirePoints(ctx, t, testutil.User1.ID, 5)
	require.Equal(t, int64(1), countPointHistories(ctx, t, testutil.User1.ID, entity.PointActionPostCreated))

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.True(t, slices.Contains(user.Badges, "first-post"))
}

func Test_postDomain_Create_BoardNotFound(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestDeps(ctx, t).postDomain()

	_, err := domain.Create(ctx, &model.CreatePostRequest{BoardID: "ghost", Text: "hello"})
	require.True(t, errorx.Is(err, errorx.NotFound))
	requirePoints(ctx, t, testutil.User1.ID, 0)
}

func Test_postDomain_Create_CounterMatchesPosts(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestDeps(ctx, t).postDomain()

	wg := sync.WaitGroup{}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := domain.Create(ctx, &model.CreatePostRequest{BoardID: testutil.Board3.ID, Text: "note"})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	board, err := repository.NewBoardRepository().GetByID(ctx, testutil.Board3.ID)
	require.NoError(t, err)

	posts, err := repository.NewPostRepository().GetListByBoardID(ctx, testutil.Board3.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, posts, 5)
	require.Equal(t, int64(len(posts)), board.PostCount)

	latest := time.Time{}
	for _, p := range posts {
		if p.CreatedAt.After(latest) {
			latest = p.CreatedAt
		}
	}
	require.True(t, board.LatestPostAt.Time.Equal(latest))
	requirePoints(ctx, t, testutil.User3.ID, 25)
}

func Test_postDomain_Thank(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	deps := newTestDeps(ctx, t)
	domain := deps.postDomain()

	resp, err := domain.Thank(ctx, &model.ThankPostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.ThanksCount)
	requirePoints(ctx, t, testutil.User2.ID, 2)
	require.Len(t, deps.publisher.Packs, 1)
	require.Equal(t, []byte(testutil.User2.ID), deps.publisher.Packs[0].Key)

	// The author cannot thank itself.
	_, err = domain.Thank(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID), &model.ThankPostRequest{PostID: testutil.Post1.ID})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = domain.Thank(ctx, &model.ThankPostRequest{PostID: "ghost"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_postDomain_GetList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestDeps(ctx, t).postDomain()

	resp, err := domain.GetList(ctx, &model.GetPostsRequest{BoardID: testutil.Board1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, testutil.User2.Name, resp.Posts[0].Author.Name)

	_, err = domain.GetList(ctx, &model.GetPostsRequest{BoardID: "ghost"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}
