package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"display-service/internal/domain"
)

// defaultListLimit bounds history listings when callers pass no limit.
const defaultListLimit = 20

// Entry is one accepted receipt together with its arrival metadata.
type Entry struct {
	ID         uuid.UUID      `json:"id"`
	ReceivedAt time.Time      `json:"received_at"`
	Receipt    domain.Receipt `json:"receipt"`
}

// Store persists accepted receipts in arrival order.
type Store interface {
	Append(ctx context.Context, receipt domain.Receipt) (Entry, error)
	List(ctx context.Context, limit int) ([]Entry, error)
	Last(ctx context.Context) (Entry, error)
}
