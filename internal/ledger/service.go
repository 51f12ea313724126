// Package ledger owns the transaction collection. Every mutation goes
// through a Service, which validates it, persists the new snapshot and bumps
// the revision that keys the query cache.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/fintrack/internal/id"
	"github.com/cleared-dev/fintrack/internal/model"
	"github.com/cleared-dev/fintrack/internal/order"
	"github.com/cleared-dev/fintrack/internal/query"
	"github.com/cleared-dev/fintrack/internal/store"
)

// ErrNotFound is returned when no transaction has the requested ID.
var ErrNotFound = errors.New("transaction not found")

// ErrDuplicateID is returned by ReplaceAll when two records share an ID.
var ErrDuplicateID = errors.New("duplicate transaction ID")

// ImportResult reports how an import batch was applied.
type ImportResult struct {
	// Valid is the number of candidates offered.
	Valid int
	// Added is the number of records that were new to the collection.
	Added int
	// Skipped is the number of candidates dropped because their ID was
	// already present.
	Skipped int
}

// Service provides the mutations and views of the collection.
type Service struct {
	store    store.Store
	log      zerolog.Logger
	newID    func() string
	cache    *query.Cache
	txns     []model.Transaction
	revision uint64
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for mutations.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithIDGenerator replaces the ID source used by Add.
func WithIDGenerator(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

// NewService loads the current snapshot from st and returns a Service
// owning it.
func NewService(ctx context.Context, st store.Store, opts ...Option) (*Service, error) {
	cache, err := query.NewCache(query.DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	s := &Service{
		store: st,
		log:   zerolog.Nop(),
		newID: id.New,
		cache: cache,
	}
	for _, opt := range opts {
		opt(s)
	}

	txns, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	s.txns = txns
	s.log.Debug().Int("count", len(txns)).Msg("ledger loaded")
	return s, nil
}

// All returns a copy of the collection in stored order.
func (s *Service) All() []model.Transaction {
	return slices.Clone(s.txns)
}

// Len returns the number of transactions.
func (s *Service) Len() int {
	return len(s.txns)
}

// Revision increases on every successful mutation.
func (s *Service) Revision() uint64 {
	return s.revision
}

// Get returns the transaction with the exact ID.
func (s *Service) Get(txnID string) (model.Transaction, error) {
	i := s.indexOf(txnID)
	if i < 0 {
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, txnID)
	}
	return s.txns[i], nil
}

// Resolve expands a full ID or unique ID prefix to the stored ID.
func (s *Service) Resolve(ref string) (string, error) {
	ids := make([]string, len(s.txns))
	for i, t := range s.txns {
		ids[i] = t.ID
	}
	full, err := id.Resolve(ref, ids)
	if errors.Is(err, id.ErrNoMatch) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return full, err
}

// Add validates d, assigns a new ID and puts the record first.
func (s *Service) Add(ctx context.Context, d Draft) (model.Transaction, error) {
	d = d.normalized()
	if errs := Validate(d); errs != nil {
		return model.Transaction{}, errs
	}

	txn := d.transaction(s.newID())
	if s.indexOf(txn.ID) >= 0 {
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrDuplicateID, txn.ID)
	}

	next := make([]model.Transaction, 0, len(s.txns)+1)
	next = append(next, txn)
	next = append(next, s.txns...)
	if err := s.commit(ctx, next); err != nil {
		return model.Transaction{}, err
	}

	s.log.Info().
		Str("op", "add").
		Str("id", txn.ID).
		Str("type", string(txn.Kind)).
		Str("amount", txn.Amount.String()).
		Msg("transaction added")
	return txn, nil
}

// Update replaces every field of the transaction txnID with d. The ID and
// the record's position are kept.
func (s *Service) Update(ctx context.Context, txnID string, d Draft) (model.Transaction, error) {
	i := s.indexOf(txnID)
	if i < 0 {
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, txnID)
	}

	d = d.normalized()
	if errs := Validate(d); errs != nil {
		return model.Transaction{}, errs
	}

	txn := d.transaction(txnID)
	next := slices.Clone(s.txns)
	next[i] = txn
	if err := s.commit(ctx, next); err != nil {
		return model.Transaction{}, err
	}

	s.log.Info().Str("op", "update").Str("id", txnID).Msg("transaction updated")
	return txn, nil
}

// Delete removes the transaction txnID.
func (s *Service) Delete(ctx context.Context, txnID string) error {
	i := s.indexOf(txnID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, txnID)
	}

	next := slices.Delete(slices.Clone(s.txns), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.log.Info().Str("op", "delete").Str("id", txnID).Msg("transaction deleted")
	return nil
}

// ReplaceAll swaps the whole collection for txns. IDs must be unique.
func (s *Service) ReplaceAll(ctx context.Context, txns []model.Transaction) error {
	seen := make(map[string]bool, len(txns))
	for _, t := range txns {
		if seen[t.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = true
	}

	if err := s.commit(ctx, slices.Clone(txns)); err != nil {
		return err
	}
	s.cache.Purge()
	s.log.Info().Str("op", "replace").Int("count", len(txns)).Msg("collection replaced")
	return nil
}

// Clear removes every transaction and returns how many were removed.
func (s *Service) Clear(ctx context.Context) (int, error) {
	n := len(s.txns)
	if err := s.commit(ctx, nil); err != nil {
		return 0, err
	}
	s.cache.Purge()
	s.log.Info().Str("op", "clear").Int("count", n).Msg("all transactions cleared")
	return n, nil
}

// Import merges candidates into the collection. Candidates whose ID is
// already stored, or repeats an earlier candidate, are skipped; existing
// records are never overwritten. The merged collection is ordered newest
// first.
func (s *Service) Import(ctx context.Context, candidates []model.Transaction) (ImportResult, error) {
	res := ImportResult{Valid: len(candidates)}

	seen := make(map[string]bool, len(s.txns)+len(candidates))
	for _, t := range s.txns {
		seen[t.ID] = true
	}

	var added []model.Transaction
	for _, c := range candidates {
		if seen[c.ID] {
			res.Skipped++
			continue
		}
		seen[c.ID] = true
		added = append(added, c)
	}
	res.Added = len(added)

	if res.Added > 0 {
		merged := append(slices.Clone(s.txns), added...)
		merged = order.Sort(merged, model.SortByDate, model.SortDesc)
		if err := s.commit(ctx, merged); err != nil {
			return ImportResult{}, err
		}
	}

	s.log.Info().
		Str("op", "import").
		Int("valid", res.Valid).
		Int("added", res.Added).
		Int("skipped", res.Skipped).
		Msg("transactions imported")
	return res, nil
}

// View runs spec over the collection, with insights for ref's month.
// Results are memoized per revision.
func (s *Service) View(spec model.FilterSpec, ref time.Time) query.Result {
	return s.cache.Run(s.revision, s.txns, spec, ref)
}

// commit persists next and makes it the current collection.
func (s *Service) commit(ctx context.Context, next []model.Transaction) error {
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("saving transactions: %w", err)
	}
	s.txns = next
	s.revision++
	s.log.Debug().
		Uint64("revision", s.revision).
		Int("cached_views", s.cache.Len()).
		Msg("collection committed")
	return nil
}

func (s *Service) indexOf(txnID string) int {
	return slices.IndexFunc(s.txns, func(t model.Transaction) bool { return t.ID == txnID })
}
