package domain

import (
	"context"
	"testing"

	"github.com/campusboard/backend/internal/domain/badge"
	"github.com/campusboard/backend/internal/domain/notification"
	"github.com/campusboard/backend/internal/domain/point"
	"github.com/campusboard/backend/internal/domain/search"
	"github.com/campusboard/backend/internal/domain/statistic"
	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/testutil"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

// testDeps bundles the collaborators shared by the board, post and circle
// domains.
type testDeps struct {
	publisher   *testutil.MockPublisher
	emitter     notification.Emitter
	pointEngine point.Engine
	searchIndex search.Index
}

func newTestDeps(ctx context.Context, t *testing.T) testDeps {
	userRepo := repository.NewUserRepository()
	pointHistoryRepo := repository.NewPointHistoryRepository()
	publisher := &testutil.MockPublisher{}
	emitter := notification.NewEmitter(publisher)

	badgeManager := badge.NewManager(
		userRepo,
		badge.NewFirstPostBadgeScanner(),
		badge.NewCircleLeaderBadgeScanner(),
		badge.NewContributorBadgeScanner(),
		badge.NewExpertBadgeScanner(pointHistoryRepo),
		badge.NewHelperBadgeScanner(pointHistoryRepo),
	)

	searchIndex := search.NewBleveIndex(ctx)
	t.Cleanup(searchIndex.Close)

	return testDeps{
		publisher: publisher,
		emitter:   emitter,
		pointEngine: point.NewEngine(
			userRepo,
			pointHistoryRepo,
			badgeManager,
			statistic.New(pointHistoryRepo, &testutil.MockRedisClient{}),
			emitter,
		),
		searchIndex: searchIndex,
	}
}

func (d testDeps) boardDomain() *boardDomain {
	return NewBoardDomain(
		repository.NewBoardRepository(),
		repository.NewPostRepository(),
		repository.NewUserRepository(),
		d.pointEngine,
		d.searchIndex,
		d.emitter,
	)
}

func (d testDeps) postDomain() *postDomain {
	return NewPostDomain(
		repository.NewPostRepository(),
		repository.NewBoardRepository(),
		repository.NewUserRepository(),
		d.pointEngine,
		d.searchIndex,
		d.emitter,
	)
}

func requirePoints(ctx context.Context, t *testing.T, userID string, points int64) {
	user, err := repository.NewUserRepository().GetByID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, points, user.Points)
}

func countPointHistories(ctx context.Context, t *testing.T, userID string, action entity.PointAction) int64 {
	var n int64
	err := xcontext.DB(ctx).Model(&entity.PointHistory{}).
		Where("user_id=? AND action=?", userID, action).
		Count(&n).Error
	require.NoError(t, err)
	return n
}

func (d testDeps) circleDomain() *circleDomain {
	return NewCircleDomain(
		repository.NewCircleRepository(),
		repository.NewCircleMemberRepository(),
		repository.NewBoardRepository(),
		repository.NewUserRepository(),
		d.postDomain(),
		d.pointEngine,
		d.searchIndex,
	)
}

func (d testDeps) searchDomain() *searchDomain {
	return NewSearchDomain(
		repository.NewBoardRepository(),
		repository.NewPostRepository(),
		repository.NewCircleRepository(),
		repository.NewCircleMemberRepository(),
		repository.NewUserRepository(),
		d.searchIndex,
	)
}

// indexFixtures puts the fixture documents into the full-text index.
func (d testDeps) indexFixtures(t *testing.T) {
	for _, b := range testutil.Boards {
		err := d.searchIndex.Index(search.BoardDoc, b.UniversityID, b.ID, search.BoardData{
			Title:       b.Title,
			Description: b.Description,
		})
		require.NoError(t, err)
	}

	for _, p := range testutil.Posts {
		require.NoError(t, d.searchIndex.Index(search.PostDoc, p.UniversityID, p.ID, search.PostData{Text: p.Text}))
	}

	for _, c := range testutil.Circles {
		err := d.searchIndex.Index(search.CircleDoc, c.UniversityID, c.ID, search.CircleData{
			Name:        c.Name,
			Description: c.Description,
			Category:    c.Category,
		})
		require.NoError(t, err)
	}
}
