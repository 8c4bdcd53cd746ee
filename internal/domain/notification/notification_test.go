package notification

import (
	"sync"
	"testing"
	"time"

	"github.com/campusboard/backend/internal/domain/notification/event"
	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/pubsub"
	"github.com/campusboard/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestEmitterAndConsumer(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	publisher := &testutil.MockPublisher{}
	NewEmitter(publisher).Emit(ctx, testutil.User2.ID, event.FollowedEvent{
		ActorID:   testutil.User1.ID,
		ActorName: testutil.User1.Name,
	})
	require.Len(t, publisher.Packs, 1)
	require.Equal(t, []byte(testutil.User2.ID), publisher.Packs[0].Key)

	hub := NewHub()
	session := hub.Join(testutil.User2.ID)
	defer hub.Leave(session)

	notificationRepo := repository.NewNotificationRepository()
	consumer := NewConsumer(ctx, notificationRepo, hub)
	consumer.Subscribe(ctx, publisher.Packs[0], time.Now())

	select {
	case ev := <-session.C:
		require.Equal(t, "followed", ev.Op)
	default:
		require.Fail(t, "no event was pushed")
	}

	notifications, err := notificationRepo.GetListByUserID(ctx, testutil.User2.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationFollowed, notifications[0].Type)
	require.Equal(t, testutil.User1.ID, notifications[0].ActorID)
	require.False(t, notifications[0].IsRead)
}

func TestHub_LeaveRemovesEmptyUserHub(t *testing.T) {
	hub := NewHub()
	s1 := hub.Join("u1")
	s2 := hub.Join("u1")

	require.Equal(t, 2, hub.Push("u1", &event.EventRequest{Op: "x"}))

	hub.Leave(s1)
	require.Equal(t, 1, hub.Push("u1", &event.EventRequest{Op: "x"}))

	hub.Leave(s2)
	_, ok := hub.userHubs.Load("u1")
	require.False(t, ok)
	require.Equal(t, 0, hub.Push("u1", &event.EventRequest{Op: "x"}))
}

func TestEmitter_SkipsEmptyReceiver(t *testing.T) {
	ctx := testutil.MockContext()
	publisher := &testutil.MockPublisher{}
	NewEmitter(publisher).Emit(ctx, "", event.BadgeEarnedEvent{Badge: "expert"})
	require.Empty(t, publisher.Packs)
}

func TestConsumer_DropsEventWithoutData(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	hub := NewHub()
	session := hub.Join(testutil.User2.ID)
	defer hub.Leave(session)

	notificationRepo := repository.NewNotificationRepository()
	consumer := NewConsumer(ctx, notificationRepo, hub)

	pack := &pubsub.Pack{Msg: []byte(`{"o":"followed","m":{"to":"` + testutil.User2.ID + `"}}`)}
	require.NotPanics(t, func() { consumer.Subscribe(ctx, pack, time.Now()) })

	require.Empty(t, session.C)
	notifications, err := notificationRepo.GetListByUserID(ctx, testutil.User2.ID, 0, 10)
	require.NoError(t, err)
	require.Empty(t, notifications)
}

func TestHub_ConcurrentJoinAndLeave(t *testing.T) {
	hub := NewHub()

	for i := 0; i < 500; i++ {
		first := hub.Join("u1")

		var second *UserSession
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Leave(first)
		}()
		go func() {
			defer wg.Done()
			second = hub.Join("u1")
		}()
		wg.Wait()

		// The session joined last must stay reachable.
		require.Equal(t, 1, hub.Push("u1", &event.EventRequest{Op: "x"}))

		hub.Leave(second)
		_, ok := hub.userHubs.Load("u1")
		require.False(t, ok)
	}
}
