// Package query runs the filter, sort, aggregate and insight engines over a
// store snapshot and memoizes the result per snapshot revision.
package query

import (
	"fmt"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/fintrack/internal/aggregate"
	"github.com/cleared-dev/fintrack/internal/filter"
	"github.com/cleared-dev/fintrack/internal/insight"
	"github.com/cleared-dev/fintrack/internal/model"
	"github.com/cleared-dev/fintrack/internal/order"
)

// DefaultCacheSize is the number of results a Cache keeps.
const DefaultCacheSize = 64

// Result is everything a view of the collection shows.
type Result struct {
	// Rows is the filtered, sorted subset.
	Rows []model.Transaction
	// Totals covers Rows only.
	Totals aggregate.Totals
	// Overall covers the whole collection.
	Overall       aggregate.Totals
	ActiveFilters int
	// Insights is computed over the whole collection for ref's month.
	Insights insight.Report
}

// Run evaluates spec against txns. The input slice is not modified.
func Run(txns []model.Transaction, spec model.FilterSpec, ref time.Time) Result {
	rows := order.Sort(filter.Apply(txns, spec), spec.SortBy, spec.SortOrder)
	return Result{
		Rows:          rows,
		Totals:        aggregate.Summarize(rows),
		Overall:       aggregate.Summarize(txns),
		ActiveFilters: filter.ActiveCount(spec),
		Insights:      insight.Compute(txns, ref),
	}
}

// Cache memoizes Run results keyed on (revision, filter, reference month).
// Callers must bump the revision whenever the collection changes.
type Cache struct {
	lru *lru.Cache
}

// NewCache returns a Cache holding at most size results.
func NewCache(size int) (*Cache, error) {
	l, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating query cache: %w", err)
	}
	return &Cache{lru: l}, nil
}

// Run returns the cached Result for the key, computing it on a miss. The
// returned slices are copies; callers may modify them.
func (c *Cache) Run(revision uint64, txns []model.Transaction, spec model.FilterSpec, ref time.Time) Result {
	key := keyOf(revision, spec, ref)
	if v, ok := c.lru.Get(key); ok {
		return v.(Result).clone()
	}
	res := Run(txns, spec, ref)
	c.lru.Add(key, res)
	return res.clone()
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge drops every cached result.
func (c *Cache) Purge() {
	c.lru.Purge()
}

func (r Result) clone() Result {
	r.Rows = slices.Clone(r.Rows)
	r.Insights.TopSpending = slices.Clone(r.Insights.TopSpending)
	return r
}

type cacheKey struct {
	revision  uint64
	typ       model.TypeFilter
	category  string
	search    string
	dateFrom  string
	dateTo    string
	amountMin string
	amountMax string
	sortBy    model.SortField
	sortOrder model.SortOrder
	month     string
}

func keyOf(revision uint64, spec model.FilterSpec, ref time.Time) cacheKey {
	return cacheKey{
		revision:  revision,
		typ:       spec.Type,
		category:  spec.Category,
		search:    spec.Search,
		dateFrom:  spec.DateFrom,
		dateTo:    spec.DateTo,
		amountMin: boundKey(spec.AmountMin),
		amountMax: boundKey(spec.AmountMax),
		sortBy:    spec.SortBy,
		sortOrder: spec.SortOrder,
		month:     ref.Format(model.MonthFormat),
	}
}

func boundKey(b *decimal.Decimal) string {
	if b == nil {
		return ""
	}
	return b.String()
}
