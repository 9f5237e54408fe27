package display

import (
	"encoding/json"
	"fmt"
	"sync"
	"unicode/utf8"

	"display-service/internal/domain"
)

// Snapshot is the display state pushed to readers: the current record,
// whether the card shows, and a sequence number so clients can discard
// stale pushes.
type Snapshot struct {
	Visible bool            `json:"visible"`
	Receipt *domain.Receipt `json:"receipt,omitempty"`
	Seq     uint64          `json:"seq"`
}

// Board holds the current receipt and its visibility. Messages are applied
// one at a time by the consumer goroutine; the mutex makes snapshots safe
// for concurrent HTTP and WebSocket readers.
type Board struct {
	mu      sync.RWMutex
	receipt *domain.Receipt
	visible bool
	seq     uint64
}

func NewBoard() *Board {
	return &Board{}
}

// HandleMessage applies one data channel payload. A receipt envelope
// replaces the current record and shows the display, returning the accepted
// record. Envelopes of other types, or without a receipt object, are ignored
// and return (nil, nil). Payloads that are not UTF-8 text or not JSON return
// domain.ErrMalformedPayload and leave prior state untouched.
func (b *Board) HandleMessage(payload []byte) (*domain.Receipt, error) {
	if !utf8.Valid(payload) {
		return nil, fmt.Errorf("%w: payload is not valid UTF-8", domain.ErrMalformedPayload)
	}
	var envelope domain.Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	if envelope.Type != domain.MessageTypeReceipt || envelope.Receipt == nil {
		return nil, nil
	}

	record := envelope.Receipt.Clone()

	b.mu.Lock()
	b.receipt = &record
	b.visible = true
	b.seq++
	b.mu.Unlock()

	return &record, nil
}

// Dismiss hides the card without clearing the stored record, so a later
// message still replaces and re-shows it. It returns the new snapshot for
// broadcasting.
func (b *Board) Dismiss() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible = false
	b.seq++
	return b.snapshotLocked()
}

// Snapshot returns a copy of the current display state.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

func (b *Board) snapshotLocked() Snapshot {
	snap := Snapshot{Visible: b.visible, Seq: b.seq}
	if b.receipt != nil {
		record := b.receipt.Clone()
		snap.Receipt = &record
	}
	return snap
}
