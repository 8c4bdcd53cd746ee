package notification

import (
	"context"

	"github.com/campusboard/backend/internal/domain/notification/event"
	"github.com/campusboard/backend/pkg/pubsub"
	"github.com/campusboard/backend/pkg/xcontext"
)

type Emitter interface {
	// Emit publishes ev for user to. It is best-effort, failures are only
	// logged.
	Emit(ctx context.Context, to string, ev event.Notifiable)
}

type emitter struct {
	publisher pubsub.Publisher
}

func NewEmitter(publisher pubsub.Publisher) *emitter {
	return &emitter{publisher: publisher}
}

func (e *emitter) Emit(ctx context.Context, to string, ev event.Notifiable) {
	if to == "" || e.publisher == nil {
		return
	}

	b, err := event.Marshal(event.New(ev, event.Metadata{To: to}))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal event %s: %v", ev.Op(), err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.NotificationTopic
	if err := e.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(to), Msg: b}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish event %s to %s: %v", ev.Op(), to, err)
	}
}
