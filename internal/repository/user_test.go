package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/testutil"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_UpdateRelations(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewUserRepository()

	user, err := repo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	stale := *user

	user.Following = entity.Array[string]{testutil.User2.ID}
	require.NoError(t, repo.UpdateRelations(ctx, user))
	require.Equal(t, int64(1), user.Version)

	// A writer holding the previous version must fail.
	stale.Following = entity.Array[string]{testutil.User3.ID}
	err = repo.UpdateRelations(ctx, &stale)
	require.ErrorIs(t, err, xcontext.ErrTxConflict)

	got, err := repo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Array[string]{testutil.User2.ID}, got.Following)
	require.Equal(t, int64(1), got.Version)
}

func TestUserRepository_IncreasePoints(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewUserRepository()

	require.NoError(t, repo.IncreasePoints(ctx, testutil.User1.ID, 5))
	require.NoError(t, repo.IncreasePoints(ctx, testutil.User1.ID, 10))

	user, err := repo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(15), user.Points)

	err = repo.IncreasePoints(ctx, "ghost", 5)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_GetRelatedUsers(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewUserRepository()

	user2, err := repo.GetByID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	user2.Followers = entity.Array[string]{testutil.User1.ID}
	require.NoError(t, repo.UpdateRelations(ctx, user2))

	related, err := repo.GetRelatedUsers(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, related, 1)
	require.Equal(t, testutil.User2.ID, related[0].ID)
}

func TestUserRepository_LiftExpiredSuspensions(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewUserRepository()

	now := time.Now()
	require.NoError(t, xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", testutil.User1.ID).
		Update("suspended_until", sql.NullTime{Valid: true, Time: now.Add(-time.Hour)}).Error)
	require.NoError(t, xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", testutil.User2.ID).
		Update("suspended_until", sql.NullTime{Valid: true, Time: now.Add(time.Hour)}).Error)

	n, err := repo.LiftExpiredSuspensions(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	user1, err := repo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.False(t, user1.SuspendedUntil.Valid)

	user2, err := repo.GetByID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.True(t, user2.SuspendedUntil.Valid)
}
