package domain

import (
	"context"
	"testing"

	"github.com/campusboard/backend/internal/domain/notification"
	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/testutil"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

// conflictUserRepository fails the first conflicts relation writes as if
// another writer had bumped the version.
type conflictUserRepository struct {
	repository.UserRepository
	conflicts int
}

func (r *conflictUserRepository) UpdateRelations(ctx context.Context, user *entity.User) error {
	if r.conflicts > 0 {
		r.conflicts--
		return xcontext.ErrTxConflict
	}

	return r.UserRepository.UpdateRelations(ctx, user)
}

func requireSymmetric(ctx context.Context, t *testing.T, aID, bID string) {
	userRepo := repository.NewUserRepository()
	a, err := userRepo.GetByID(ctx, aID)
	require.NoError(t, err)
	b, err := userRepo.GetByID(ctx, bID)
	require.NoError(t, err)

	require.Equal(t, slices.Contains(a.Following, bID), slices.Contains(b.Followers, aID))
	require.Equal(t, slices.Contains(b.Following, aID), slices.Contains(a.Followers, bID))
}

func Test_followDomain_Follow(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	publisher := &testutil.MockPublisher{}
	domain := NewFollowDomain(repository.NewUserRepository(), notification.NewEmitter(publisher))

	_, err := domain.Follow(ctx, &model.FollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	requireSymmetric(ctx, t, testutil.User1.ID, testutil.User2.ID)
	require.Len(t, publisher.Packs, 1)

	// Following twice changes nothing and notifies nobody.
	_, err = domain.Follow(ctx, &model.FollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Len(t, publisher.Packs, 1)

	user1, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Array[string]{testutil.User2.ID}, user1.Following)

	followers, err := domain.GetFollowers(ctx, &model.GetFollowersRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, []model.ShortUser{{ID: testutil.User1.ID, Name: testutil.User1.Name}}, followers.Users)

	_, err = domain.Unfollow(ctx, &model.UnfollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	requireSymmetric(ctx, t, testutil.User1.ID, testutil.User2.ID)

	following, err := domain.GetFollowing(ctx, &model.GetFollowingRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Empty(t, following.Users)

	// Unfollowing again is a no-op.
	_, err = domain.Unfollow(ctx, &model.UnfollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
}

func Test_followDomain_Follow_Invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := NewFollowDomain(repository.NewUserRepository(), notification.NewEmitter(&testutil.MockPublisher{}))

	_, err := domain.Follow(ctx, &model.FollowRequest{UserID: testutil.User1.ID})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = domain.Follow(ctx, &model.FollowRequest{UserID: "ghost"})
	require.True(t, errorx.Is(err, errorx.NotFound))

	// Nothing was written for the missing target.
	user1, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Empty(t, user1.Following)
	require.Equal(t, int64(0), user1.Version)
}

func Test_followDomain_Follow_RetryOnConflict(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	userRepo := &conflictUserRepository{UserRepository: repository.NewUserRepository(), conflicts: 2}
	domain := NewFollowDomain(userRepo, notification.NewEmitter(&testutil.MockPublisher{}))

	_, err := domain.Follow(ctx, &model.FollowRequest{UserID: testutil.User3.ID})
	require.NoError(t, err)
	requireSymmetric(ctx, t, testutil.User1.ID, testutil.User3.ID)

	user3, err := repository.NewUserRepository().GetByID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Array[string]{testutil.User1.ID}, user3.Followers)
}

func Test_followDomain_Follow_ConflictExhausted(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	userRepo := &conflictUserRepository{UserRepository: repository.NewUserRepository(), conflicts: 100}
	domain := NewFollowDomain(userRepo, notification.NewEmitter(&testutil.MockPublisher{}))

	_, err := domain.Follow(ctx, &model.FollowRequest{UserID: testutil.User3.ID})
	require.True(t, errorx.Is(err, errorx.Conflict))
	requireSymmetric(ctx, t, testutil.User1.ID, testutil.User3.ID)
}
