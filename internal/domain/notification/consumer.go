package notification

import (
	"context"
	"time"

	"github.com/campusboard/backend/internal/common"
	"github.com/campusboard/backend/internal/domain/notification/event"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/pubsub"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/google/uuid"
)

// Consumer persists every event of the notification topic and pushes it to
// the live sessions of its receiver.
type Consumer struct {
	rootCtx          context.Context
	notificationRepo repository.NotificationRepository
	hub              *Hub
}

// NewConsumer keeps ctx to reach the database and the logger, the context
// given by the broker carries neither.
func NewConsumer(
	ctx context.Context,
	notificationRepo repository.NotificationRepository,
	hub *Hub,
) *Consumer {
	return &Consumer{rootCtx: ctx, notificationRepo: notificationRepo, hub: hub}
}

func (c *Consumer) Subscribe(_ context.Context, pack *pubsub.Pack, t time.Time) {
	ctx := c.rootCtx
	req, err := event.Unmarshal(pack.Msg)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to unmarshal event: %v", err)
		return
	}

	common.PromCounters[common.NotificationEventTotal].WithLabelValues(req.Op).Inc()

	ev, err := event.Decode(req)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to decode event: %v", err)
		return
	}

	notification := ev.Notification(req.Metadata.To)
	notification.ID = uuid.NewString()
	notification.CreatedAt = t
	if err := c.notificationRepo.Create(ctx, notification); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create notification: %v", err)
		return
	}

	data := make(map[string]any, len(req.Data)+1)
	for k, v := range req.Data {
		data[k] = v
	}
	data["notification_id"] = notification.ID

	c.hub.Push(req.Metadata.To, &event.EventRequest{Op: req.Op, Data: data, Metadata: req.Metadata})
}
