// Package csvstore loads the sales transaction dataset from a delimited
// file with a header row. It is the only component that touches disk.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"

	coreerrors "github.com/salesboard-lab/salesboard/internal/core/errors"
	"github.com/salesboard-lab/salesboard/internal/core/sales"
)

// columns is the required dataset header, in no particular order.
var columns = []string{
	"date", "sales_rep", "region", "category", "product",
	"quantity", "unit_price", "total_price", "customer_type", "customer_name",
}

// Options configure a Store.
type Options struct {
	// Cache enables a read-through cache keyed by the file's fingerprint
	// (size + modtime). Off by default: the dataset is re-read on every
	// call so edits to the file show up immediately.
	Cache bool

	Logger *slog.Logger
}

// Store reads and parses the backing dataset. Records are immutable after
// load; callers get shared read-only slices and must not mutate them.
type Store struct {
	path   string
	cache  bool
	logger *slog.Logger

	mu          sync.RWMutex
	cached      []sales.Record
	fingerprint string

	loads singleflight.Group // dedupe concurrent reloads of the same file state
}

// New creates a Store for the dataset at path.
func New(path string, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		cache:  opts.Cache,
		logger: logger,
	}
}

// Ping reports whether the backing dataset is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("%w: %v", coreerrors.ErrDataUnavailable, err)
	}
	return nil
}

// Load returns all records in the dataset. Structural problems (missing
// file, bad header, ragged rows) fail with ErrDataUnavailable; malformed
// numeric cells degrade to NaN per field and keep the record.
func (s *Store) Load(ctx context.Context) ([]sales.Record, error) {
	if !s.cache {
		return s.read(ctx)
	}

	fp, err := s.currentFingerprint()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	if s.cached != nil && s.fingerprint == fp {
		records := s.cached
		s.mu.RUnlock()
		return records, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.loads.Do(fp, func() (interface{}, error) {
		records, err := s.read(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cached = records
		s.fingerprint = fp
		s.mu.Unlock()
		s.logger.Info("dataset cached", "path", s.path, "records", len(records))
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]sales.Record), nil
}

func (s *Store) currentFingerprint() (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("%w: stat %s: %v", coreerrors.ErrDataUnavailable, s.path, err)
	}
	return fmt.Sprintf("%d-%d", info.Size(), info.ModTime().UnixNano()), nil
}

func (s *Store) read(ctx context.Context) ([]sales.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", coreerrors.ErrDataUnavailable, err)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", coreerrors.ErrDataUnavailable, s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", coreerrors.ErrDataUnavailable, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range columns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", coreerrors.ErrDataUnavailable, name)
		}
	}

	var records []sales.Record
	for row := 0; ; row++ {
		if row%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %v", coreerrors.ErrDataUnavailable, err)
			}
		}

		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", coreerrors.ErrDataUnavailable, row+2, err)
		}

		records = append(records, sales.Record{
			Date:         sales.ParseDate(fields[index["date"]]),
			SalesRep:     fields[index["sales_rep"]],
			Region:       fields[index["region"]],
			Category:     fields[index["category"]],
			Product:      fields[index["product"]],
			Quantity:     sales.ParseInt(fields[index["quantity"]]),
			UnitPrice:    sales.ParseDecimal(fields[index["unit_price"]]),
			TotalPrice:   sales.ParseDecimal(fields[index["total_price"]]),
			CustomerType: fields[index["customer_type"]],
			CustomerName: fields[index["customer_name"]],
		})
	}

	return records, nil
}
