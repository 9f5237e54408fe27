package channel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"display-service/internal/domain"
)

// Publisher emits receipt envelopes on the order events channel. The display
// service itself never publishes; this exists for the publish CLI and tests
// standing in for the upstream pricing agent.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

func NewPublisher(rdb *redis.Client, channel string) *Publisher {
	return &Publisher{rdb: rdb, channel: channel}
}

// PublishReceipt wraps the receipt in its envelope and publishes it.
func (p *Publisher) PublishReceipt(ctx context.Context, receipt domain.Receipt) error {
	envelope := domain.Envelope{Type: domain.MessageTypeReceipt, Receipt: &receipt}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("channel: encode envelope: %w", err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("channel: publish %s: %w", p.channel, err)
	}
	return nil
}

// PublishRaw publishes an arbitrary payload without touching it. Used to
// exercise the malformed-payload path end to end.
func (p *Publisher) PublishRaw(ctx context.Context, payload []byte) error {
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("channel: publish %s: %w", p.channel, err)
	}
	return nil
}
