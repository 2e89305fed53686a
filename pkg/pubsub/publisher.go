package pubsub

import (
	"context"
	"encoding/json"
)

// Pack is one keyed message. Messages sharing a key land on the same
// partition and keep their order.
type Pack struct {
	Key     []byte
	Msg     []byte
	Headers map[string]string
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
}

// NewJSONPack encodes v as the message body and tags it with its event name.
func NewJSONPack(key, event string, v any) (*Pack, error) {
	msg, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &Pack{
		Key:     []byte(key),
		Msg:     msg,
		Headers: map[string]string{"event": event},
	}, nil
}
