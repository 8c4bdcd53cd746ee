// Package pubsub abstracts the message bus carrying notification events.
package pubsub

import (
	"context"
	"time"
)

// Pack is one message. Key decides the partition, so packs for one receiver
// keep their order.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
}

// SubscribeHandler is called once per message with the time the broker
// accepted it.
type SubscribeHandler func(ctx context.Context, pack *Pack, t time.Time)

type Subscriber interface {
	// Subscribe consumes messages until ctx is done or Stop is called.
	Subscribe(ctx context.Context) error
	Stop(ctx context.Context) error
}
