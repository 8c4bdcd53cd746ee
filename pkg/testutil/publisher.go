package testutil

import (
	"context"
	"sync"

	"github.com/campusboard/backend/pkg/pubsub"
)

// MockPublisher records every published pack and its topic unless
// PublishFunc is set. Domains may publish from concurrent requests, reads of
// Packs are only safe once they returned.
type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	mutex  sync.Mutex
	Topics []string
	Packs  []*pubsub.Pack
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Topics = append(m.Topics, topic)
	m.Packs = append(m.Packs, pack)
	return nil
}
