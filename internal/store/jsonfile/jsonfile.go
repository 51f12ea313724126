// Package jsonfile stores the collection as a pretty-printed JSON array,
// the same document an export produces.
package jsonfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/fintrack/internal/exchange"
	"github.com/cleared-dev/fintrack/internal/logger"
	"github.com/cleared-dev/fintrack/internal/model"
)

// Store is a JSON snapshot file.
type Store struct {
	path  string
	codec *exchange.JSONCodec
}

// New returns a Store backed by the file at path. The file is created on the
// first Save.
func New(path string) *Store {
	return &Store{path: path, codec: &exchange.JSONCodec{}}
}

// Path returns the snapshot file path.
func (s *Store) Path() string { return s.path }

// Load reads the snapshot. A missing file is an empty collection.
func (s *Store) Load(ctx context.Context) ([]model.Transaction, error) {
	log := logger.FromContext(ctx)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", s.path).Msg("no snapshot yet")
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	txns, err := s.codec.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.path, err)
	}
	log.Debug().Str("path", s.path).Int("count", len(txns)).Msg("snapshot loaded")
	return txns, nil
}

// Save writes the snapshot to a temporary file and renames it into place.
func (s *Store) Save(ctx context.Context, txns []model.Transaction) error {
	var buf bytes.Buffer
	if err := s.codec.Encode(&buf, txns); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	log := logger.FromContext(ctx)
	log.Debug().Str("path", s.path).Int("count", len(txns)).Msg("snapshot saved")
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
