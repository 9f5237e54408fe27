package channel

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"display-service/internal/domain"
)

// Handler consumes one raw payload from the data channel. Payloads are
// delivered sequentially in arrival order, so handlers never run
// concurrently with themselves.
type Handler func(payload []byte)

// Subscriber delivers order events from Redis pub/sub to a Handler. The
// subscription lives for the service lifetime and tears down when the
// context is cancelled.
type Subscriber struct {
	rdb     *redis.Client
	channel string
	logger  zerolog.Logger
}

func NewSubscriber(rdb *redis.Client, channel string, logger zerolog.Logger) *Subscriber {
	return &Subscriber{rdb: rdb, channel: channel, logger: logger}
}

// Run subscribes and blocks until ctx is cancelled, invoking handle for each
// payload. It returns ctx.Err() on cancellation so callers can treat
// context.Canceled as a clean stop.
func (s *Subscriber) Run(ctx context.Context, handle Handler) error {
	pubsub := s.rdb.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	// Wait for confirmation that the subscription is live before reporting
	// the consumer as started.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("channel: subscribe %s: %w", s.channel, err)
	}
	s.logger.Info().Str("channel", s.channel).Msg("subscribed to order events")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Str("channel", s.channel).Msg("subscription closed")
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("channel: %s: %w", s.channel, domain.ErrChannelClosed)
			}
			if msg == nil {
				continue
			}
			handle([]byte(msg.Payload))
		}
	}
}
