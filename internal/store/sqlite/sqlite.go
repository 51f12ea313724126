// Package sqlite stores the collection in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/cleared-dev/fintrack/internal/logger"
	"github.com/cleared-dev/fintrack/internal/model"
)

const (
	selectAll = `SELECT id, kind, amount, description, category, date FROM transactions ORDER BY position`
	deleteAll = `DELETE FROM transactions`
	insertOne = `INSERT INTO transactions (position, id, kind, amount, description, category, date) VALUES (?, ?, ?, ?, ?, ?, ?)`
)

// Store is a SQLite-backed snapshot store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Debug().Str("path", path).Msg("sqlite store opened")
	return &Store{db: db, path: path}, nil
}

// Load returns every stored transaction in saved order.
func (s *Store) Load(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, selectAll)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		var (
			t      model.Transaction
			kind   string
			amount string
		)
		if err := rows.Scan(&t.ID, &kind, &amount, &t.Description, &t.Category, &t.Date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Kind = model.Kind(kind)
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parsing amount %q of %s: %w", amount, t.ID, err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Debug().Int("count", len(txns)).Msg("sqlite snapshot loaded")
	return txns, nil
}

// Save replaces the stored collection in one database transaction.
func (s *Store) Save(ctx context.Context, txns []model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteAll); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertOne)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range txns {
		if _, err := stmt.ExecContext(ctx, i, t.ID, string(t.Kind), t.Amount.String(), t.Description, t.Category, t.Date); err != nil {
			return fmt.Errorf("insert %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	log := logger.FromContext(ctx)
	log.Debug().Int("count", len(txns)).Msg("sqlite snapshot saved")
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
