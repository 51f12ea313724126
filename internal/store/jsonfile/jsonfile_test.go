package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/fintrack/internal/model"
)

func sample() []model.Transaction {
	return []model.Transaction{
		{ID: "1", Kind: model.KindExpense, Amount: decimal.RequireFromString("12.50"), Description: "Coffee", Category: "Food", Date: "2024-01-05"},
		{ID: "2", Kind: model.KindIncome, Amount: decimal.RequireFromString("5000"), Description: "Salary", Category: "Salary", Date: "2024-01-01"},
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.json"))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o644))

	got, err := New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "transactions.json")
	s := New(path)
	assert.Equal(t, path, s.Path())

	require.NoError(t, s.Save(ctx, sample()))
	assert.FileExists(t, path)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.True(t, decimal.RequireFromString("12.5").Equal(got[0].Amount))
	assert.Equal(t, model.KindIncome, got[1].Kind)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := New(filepath.Join(t.TempDir(), "transactions.json"))

	require.NoError(t, s.Save(ctx, sample()))
	require.NoError(t, s.Save(ctx, sample()[:1]))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))

	_, err := New(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading")
}
