package testutil

import (
	"context"
	"sync"

	"github.com/questx-lab/fittrack/pkg/errorx"
	"github.com/questx-lab/fittrack/pkg/pubsub"
)

type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return errorx.New(errorx.NotImplemented, "Not implemented")
}

type PublishedPack struct {
	Topic string
	Pack  *pubsub.Pack
}

// NewRecordingPublisher returns a publisher which keeps every published pack.
func NewRecordingPublisher() (*MockPublisher, func() []PublishedPack) {
	var mutex sync.Mutex
	packs := []PublishedPack{}

	publisher := &MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			mutex.Lock()
			defer mutex.Unlock()
			packs = append(packs, PublishedPack{Topic: topic, Pack: pack})
			return nil
		},
	}

	return publisher, func() []PublishedPack {
		mutex.Lock()
		defer mutex.Unlock()
		return append([]PublishedPack(nil), packs...)
	}
}
