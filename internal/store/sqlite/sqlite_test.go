package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/fintrack/internal/model"
)

func sample() []model.Transaction {
	return []model.Transaction{
		{ID: "z", Kind: model.KindExpense, Amount: decimal.RequireFromString("0.10"), Description: "Gum", Category: "Food", Date: "2024-03-01"},
		{ID: "a", Kind: model.KindIncome, Amount: decimal.RequireFromString("3000"), Description: "Pay", Category: "Salary", Date: "2024-03-01"},
		{ID: "m", Kind: model.KindExpense, Amount: decimal.RequireFromString("75.25"), Description: "Power", Category: "Bills", Date: "2024-02-27"},
	}
}

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "fintrack.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSaveLoadKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	require.NoError(t, s.Save(ctx, sample()))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "z", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "m", got[2].ID)
	assert.True(t, decimal.RequireFromString("0.1").Equal(got[0].Amount))
	assert.Equal(t, model.KindIncome, got[1].Kind)
	assert.Equal(t, "2024-02-27", got[2].Date)
}

func TestSaveReplaces(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	require.NoError(t, s.Save(ctx, sample()))
	require.NoError(t, s.Save(ctx, sample()[2:]))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "m", got[0].ID)

	require.NoError(t, s.Save(ctx, nil))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)
	require.NoError(t, s.Save(ctx, sample()))

	dup := append(sample(), sample()[0])
	require.Error(t, s.Save(ctx, dup))

	// Failed save leaves the previous snapshot intact.
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestReopenRunsMigrationsOnce(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)
	require.NoError(t, s.Save(ctx, sample()))
	require.NoError(t, s.Close())

	again, err := Open(ctx, path)
	require.NoError(t, err)
	defer again.Close()

	got, err := again.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
