package display

import (
	"context"

	"github.com/rs/zerolog"

	"display-service/internal/channel"
	"display-service/internal/domain"
	"display-service/internal/store"
)

// Source delivers raw data-channel payloads to a handler until the context
// is cancelled.
type Source interface {
	Run(ctx context.Context, handle channel.Handler) error
}

// History records accepted receipts.
type History interface {
	Append(ctx context.Context, receipt domain.Receipt) (store.Entry, error)
}

// Notifier pushes display snapshots to connected UI clients.
type Notifier interface {
	Broadcast(snapshot Snapshot)
}

// Consumer binds the data channel to the board. Every accepted receipt is
// appended to history and the fresh snapshot is pushed to UI clients.
// Malformed payloads are logged and skipped; each message is handled
// independently, so one bad payload never stalls the next.
type Consumer struct {
	source  Source
	board   *Board
	history History
	notify  Notifier
	logger  zerolog.Logger
}

func NewConsumer(source Source, board *Board, history History, notify Notifier, logger zerolog.Logger) *Consumer {
	return &Consumer{
		source:  source,
		board:   board,
		history: history,
		notify:  notify,
		logger:  logger,
	}
}

// Run blocks consuming messages until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.source.Run(ctx, func(payload []byte) {
		c.handle(ctx, payload)
	})
}

func (c *Consumer) handle(ctx context.Context, payload []byte) {
	record, err := c.board.HandleMessage(payload)
	if err != nil {
		c.logger.Warn().Err(err).Int("bytes", len(payload)).Msg("dropping malformed payload")
		return
	}
	if record == nil {
		c.logger.Debug().Msg("ignoring non-receipt message")
		return
	}

	// The upstream agent owns completeness; surface gaps without rejecting.
	if !record.Complete() {
		c.logger.Warn().Strs("missing", record.MissingFields()).Msg("receipt accepted with missing fields")
	}

	if c.history != nil {
		if _, err := c.history.Append(ctx, *record); err != nil {
			c.logger.Error().Err(err).Msg("failed to persist receipt")
		}
	}

	snap := c.board.Snapshot()
	if c.notify != nil {
		c.notify.Broadcast(snap)
	}
	c.logger.Info().
		Str("customer", record.Name).
		Str("drink", record.DrinkType).
		Float64("total", record.Pricing.Total).
		Uint64("seq", snap.Seq).
		Msg("receipt updated")
}
