package socket

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/dogechoco/messageboard/core"
)

type service struct {
	rdb *redis.Client
}

// NewService creates a socket service backed by redis pub/sub
func NewService(rdb *redis.Client) core.SocketService {
	return &service{rdb}
}

// Publish broadcasts event to every subscriber
func (s *service) Publish(ctx context.Context, event core.Event) error {
	ctx, span := tracer.Start(ctx, "Socket.Service.Publish")
	defer span.End()

	data, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return err
	}

	err = s.rdb.Publish(ctx, core.MessageChannel, data).Err()
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to publish event")
	}
	return nil
}

// Subscribe returns a channel of events published from now on.
// The returned func releases the subscription.
func (s *service) Subscribe(ctx context.Context) (<-chan core.Event, func(), error) {
	pubsub := s.rdb.Subscribe(ctx, core.MessageChannel)

	// wait for the confirmation so no event published after return is lost
	_, err := pubsub.Receive(ctx)
	if err != nil {
		pubsub.Close()
		return nil, nil, errors.Wrap(err, "failed to subscribe")
	}

	events := make(chan core.Event, 16)
	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var event core.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.Error("malformed event on channel", slog.String("channel", msg.Channel), slog.String("error", err.Error()))
				continue
			}
			select {
			case events <- event:
			default:
				slog.Warn("subscriber is slow, dropping event", slog.String("id", event.ID))
			}
		}
	}()

	return events, func() { pubsub.Close() }, nil
}
