package domain

import (
	"testing"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/testutil"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_notificationDomain(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	notificationRepo := repository.NewNotificationRepository()
	domain := NewNotificationDomain(notificationRepo)

	now := time.Now()
	for i, id := range []string{"n1", "n2", "n3"} {
		require.NoError(t, notificationRepo.Create(ctx, &entity.Notification{
			Base:    entity.Base{ID: id, CreatedAt: now.Add(time.Duration(i) * time.Second)},
			UserID:  testutil.User1.ID,
			Type:    entity.NotificationFollowed,
			ActorID: testutil.User2.ID,
			Message: "Bob started following you",
		}))
	}

	resp, err := domain.GetList(ctx, &model.GetNotificationsRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 2)
	require.Equal(t, "n3", resp.Notifications[0].ID)
	require.Equal(t, int64(3), resp.UnreadCount)

	_, err = domain.MarkRead(ctx, &model.MarkNotificationReadRequest{NotificationID: "n3"})
	require.NoError(t, err)

	// Another user cannot touch it.
	_, err = domain.MarkRead(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.MarkNotificationReadRequest{NotificationID: "n1"},
	)
	require.True(t, errorx.Is(err, errorx.NotFound))

	all, err := domain.MarkAllRead(ctx, &model.MarkAllNotificationsReadRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(2), all.Count)

	resp, err = domain.GetList(ctx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 3)
	require.Zero(t, resp.UnreadCount)
}
