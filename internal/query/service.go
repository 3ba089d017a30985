// Package query is the read path: it composes the record store, the filter
// predicate and the aggregation engine, and serves the results over HTTP.
package query

import (
	"context"
	"fmt"
	"time"

	coreerrors "github.com/salesboard-lab/salesboard/internal/core/errors"
	"github.com/salesboard-lab/salesboard/internal/core/sales"
)

// RecordStore supplies the full record set for one request.
type RecordStore interface {
	Load(ctx context.Context) ([]sales.Record, error)
}

// Service handles sales queries. It holds no per-request state: every call
// loads, filters and aggregates independently, so concurrent requests never
// interfere.
type Service struct {
	store       RecordStore
	loadTimeout time.Duration
}

// NewService creates a query service. loadTimeout bounds the dataset read;
// zero means no timeout.
func NewService(store RecordStore, loadTimeout time.Duration) *Service {
	return &Service{
		store:       store,
		loadTimeout: loadTimeout,
	}
}

func (s *Service) load(ctx context.Context, criteria sales.Criteria) ([]sales.Record, error) {
	if s.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()
	}
	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return criteria.Apply(records), nil
}

// Records returns the filtered record sequence.
func (s *Service) Records(ctx context.Context, criteria sales.Criteria) ([]sales.Record, error) {
	return s.load(ctx, criteria)
}

// Analytics filters the record set, then groups and reduces it according to
// mode. Unknown modes fall back to overview inside the engine.
func (s *Service) Analytics(ctx context.Context, criteria sales.Criteria, mode sales.Mode) (any, error) {
	filtered, err := s.load(ctx, criteria)
	if err != nil {
		return nil, err
	}
	result := sales.Aggregate(filtered, mode)
	if result == nil {
		// Unreachable: every registered mode returns a value, and unknown
		// modes dispatch to overview.
		return nil, fmt.Errorf("%w: no result for mode %q", coreerrors.ErrInvalidResult, mode)
	}
	return result, nil
}

// FilterOptions lists the distinct values of every filterable dimension in
// the unfiltered dataset, in first-encountered order.
func (s *Service) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	records, err := s.load(ctx, sales.Criteria{})
	if err != nil {
		return nil, err
	}

	opts := &FilterOptions{
		Regions:       []string{},
		Products:      []string{},
		SalesReps:     []string{},
		Categories:    []string{},
		CustomerTypes: []string{},
	}
	seen := map[string]map[string]struct{}{
		"region": {}, "product": {}, "rep": {}, "category": {}, "type": {},
	}
	add := func(dim string, value string, dst *[]string) {
		if _, ok := seen[dim][value]; ok {
			return
		}
		seen[dim][value] = struct{}{}
		*dst = append(*dst, value)
	}
	for _, r := range records {
		add("region", r.Region, &opts.Regions)
		add("product", r.Product, &opts.Products)
		add("rep", r.SalesRep, &opts.SalesReps)
		add("category", r.Category, &opts.Categories)
		add("type", r.CustomerType, &opts.CustomerTypes)
	}
	return opts, nil
}
