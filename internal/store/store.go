// Package store persists the transaction collection as a whole snapshot.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/cleared-dev/fintrack/internal/model"
	"github.com/cleared-dev/fintrack/internal/store/jsonfile"
	"github.com/cleared-dev/fintrack/internal/store/sqlite"
)

// Store reads and writes the full collection. Save replaces whatever was
// stored before; the stored order is the order Load returns.
type Store interface {
	Load(ctx context.Context) ([]model.Transaction, error)
	Save(ctx context.Context, txns []model.Transaction) error
	Close() error
}

// Backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendJSON, BackendSQLite}
}

// Open returns the store for backend at path.
func Open(ctx context.Context, backend, path string) (Store, error) {
	switch backend {
	case BackendJSON, "":
		return jsonfile.New(path), nil
	case BackendSQLite:
		s, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Memory is an in-process Store. It is safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	txns  []model.Transaction
	saves int
}

// NewMemory returns a Memory store seeded with txns.
func NewMemory(txns ...model.Transaction) *Memory {
	return &Memory{txns: slices.Clone(txns)}
}

// Load returns a copy of the stored collection.
func (m *Memory) Load(_ context.Context) ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.txns), nil
}

// Save replaces the stored collection with a copy of txns.
func (m *Memory) Save(_ context.Context, txns []model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = slices.Clone(txns)
	m.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
