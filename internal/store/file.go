package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"display-service/internal/domain"
)

// FileStore keeps receipt history in a single JSON array file. It is intended
// for development and single-node deployments where Postgres is not
// configured.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
}

// NewFileStore initializes a FileStore writing to the given path, creating
// parent directories as needed.
func NewFileStore(path string, logger zerolog.Logger) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store: log path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure directory: %w", err)
		}
	}
	return &FileStore{path: path, logger: logger}, nil
}

// load reads the current history. A missing file means an empty history, and
// content that is not a JSON array resets to empty instead of failing.
func (s *FileStore) load() []Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("could not read receipt log")
		}
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("receipt log is not a JSON array, resetting")
		return nil
	}
	return entries
}

// Append adds a receipt to the end of the log and rewrites the file.
func (s *FileStore) Append(ctx context.Context, receipt domain.Receipt) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:         uuid.New(),
		ReceivedAt: time.Now().UTC(),
		Receipt:    receipt.Clone(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.load(), entry)
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return Entry{}, fmt.Errorf("store: encode receipt log: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return Entry{}, fmt.Errorf("store: write receipt log: %w", err)
	}
	return entry, nil
}

// List returns up to limit entries, newest first.
func (s *FileStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	s.mu.Lock()
	entries := s.load()
	s.mu.Unlock()

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Last returns the most recent entry, or domain.ErrNotFound when the log is
// empty.
func (s *FileStore) Last(ctx context.Context) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	entries := s.load()
	s.mu.Unlock()

	if len(entries) == 0 {
		return Entry{}, domain.ErrNotFound
	}
	return entries[len(entries)-1], nil
}

var _ Store = (*FileStore)(nil)
