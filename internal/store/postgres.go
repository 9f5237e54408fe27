package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"display-service/internal/domain"
	"display-service/internal/infra"
	"display-service/internal/sqlinline"
)

// PostgresStore persists receipt history in Postgres. It is selected when
// DATABASE_URL is configured.
type PostgresStore struct {
	sql infra.SQLExecutor
}

// NewPostgresStore ensures the receipts table exists and returns the store.
func NewPostgresStore(ctx context.Context, sql infra.SQLExecutor) (*PostgresStore, error) {
	if _, err := sql.Exec(ctx, sqlinline.QEnsureReceiptsTable); err != nil {
		return nil, fmt.Errorf("store: ensure receipts table: %w", err)
	}
	return &PostgresStore{sql: sql}, nil
}

func (s *PostgresStore) Append(ctx context.Context, receipt domain.Receipt) (Entry, error) {
	entry := Entry{
		ID:         uuid.New(),
		ReceivedAt: time.Now().UTC(),
		Receipt:    receipt.Clone(),
	}
	payload, err := json.Marshal(entry.Receipt)
	if err != nil {
		return Entry{}, fmt.Errorf("store: encode receipt: %w", err)
	}
	if _, err := s.sql.Exec(ctx, sqlinline.QInsertReceipt, entry.ID.String(), entry.ReceivedAt, payload); err != nil {
		return Entry{}, fmt.Errorf("store: insert receipt: %w", err)
	}
	return entry, nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.sql.Query(ctx, sqlinline.QListReceipts, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list receipts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan receipt: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate receipts: %w", err)
	}
	return entries, nil
}

func (s *PostgresStore) Last(ctx context.Context) (Entry, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QLastReceipt)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, domain.ErrNotFound
		}
		return Entry{}, fmt.Errorf("store: load last receipt: %w", err)
	}
	return entry, nil
}

// scanEntry decodes one (id, received_at, payload) row. pgx.Rows satisfies
// pgx.Row, so both Query and QueryRow results land here.
func scanEntry(row pgx.Row) (Entry, error) {
	var (
		entry   Entry
		id      string
		payload []byte
	)
	if err := row.Scan(&id, &entry.ReceivedAt, &payload); err != nil {
		return Entry{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Entry{}, fmt.Errorf("parse entry id: %w", err)
	}
	entry.ID = parsed
	if err := json.Unmarshal(payload, &entry.Receipt); err != nil {
		return Entry{}, fmt.Errorf("decode receipt payload: %w", err)
	}
	return entry, nil
}

var _ Store = (*PostgresStore)(nil)
