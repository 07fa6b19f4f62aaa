package assets

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/devin-hart/coinmage/internal/model"
)

// DefaultTTL is how long a fetched catalog is trusted without refetching.
const DefaultTTL = 10 * time.Minute

// ErrNotFound is returned when no catalog entry matches the input.
var ErrNotFound = errors.New("asset not found")

// overrides maps heavily ambiguous tickers directly to a well-known asset ID.
// Searching the catalog for these returns many unrelated tokens.
var overrides = map[string]string{
	"btc": "bitcoin",
	"eth": "ethereum",
	"sol": "solana",
	"ltc": "litecoin",
	"ada": "cardano",
}

// preferredNameKeyword breaks ties between catalog entries that share a symbol.
const preferredNameKeyword = "bitcoin"

// Catalog fetches the provider's full asset list.
type Catalog interface {
	ListCoins(ctx context.Context) ([]model.AssetRecord, error)
}

// Config holds AssetIndex configuration.
type Config struct {
	TTL time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{TTL: DefaultTTL}
}

// Index owns the cached asset catalog and resolves free-text input to asset IDs.
// The cache is replaced as a whole by Refresh; readers never see a partial catalog.
type Index struct {
	cfg     Config
	catalog Catalog
	logger  *slog.Logger
	now     func() time.Time

	snap    atomic.Pointer[snapshot]
	refresh singleflight.Group
	fetches atomic.Int64
}

// Option configures an Index.
type Option func(*Index)

// WithClock overrides the time source used for TTL checks.
func WithClock(now func() time.Time) Option {
	return func(ix *Index) {
		ix.now = now
	}
}

// New creates an Index. The catalog is fetched lazily on the first Resolve.
func New(cfg Config, catalog Catalog, logger *slog.Logger, opts ...Option) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	ix := &Index{
		cfg:     cfg,
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Refresh fetches the full catalog and replaces the cache atomically.
// On failure the previous cache, if any, is left untouched.
// Concurrent callers share a single in-flight fetch.
func (ix *Index) Refresh(ctx context.Context) error {
	_, err, _ := ix.refresh.Do("catalog", func() (any, error) {
		start := ix.now()
		ix.fetches.Add(1)

		records, err := ix.catalog.ListCoins(ctx)
		if err != nil {
			ix.logger.Warn("asset catalog refresh failed", "err", err)
			return nil, err
		}

		ix.snap.Store(newSnapshot(records, ix.now()))

		ix.logger.Debug("asset catalog refreshed",
			"assets", len(records),
			"duration", ix.now().Sub(start),
		)
		return nil, nil
	})
	return err
}

// Resolve maps user input to a canonical asset ID.
//
// Rules, first match wins, all case-insensitive:
//  1. fixed override table
//  2. exact symbol (unique hit; on collisions prefer a name containing
//     preferredNameKeyword, else the first match in catalog order)
//  3. exact id
//  4. exact name
//
// An empty or stale cache is refreshed first. If that refresh fails, a stale
// cache is still used; with no cache at all the fetch error is returned
// unless an override matches.
func (ix *Index) Resolve(ctx context.Context, input string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(input))
	if key == "" {
		return "", ErrNotFound
	}

	var refreshErr error
	if !ix.Fresh() {
		refreshErr = ix.Refresh(ctx)
	}

	if id, ok := overrides[key]; ok {
		return id, nil
	}

	snap := ix.snap.Load()
	if snap == nil {
		if refreshErr != nil {
			return "", refreshErr
		}
		return "", ErrNotFound
	}
	if refreshErr != nil {
		ix.logger.Debug("resolving against stale asset catalog",
			"input", key,
			"fetched_at", snap.fetchedAt,
		)
	}

	if id, ok := snap.lookup(key); ok {
		return id, nil
	}
	return "", ErrNotFound
}

// Fresh reports whether the cache is populated and younger than the TTL.
func (ix *Index) Fresh() bool {
	snap := ix.snap.Load()
	if snap == nil {
		return false
	}
	return ix.now().Sub(snap.fetchedAt) < ix.cfg.TTL
}

// Len returns the number of cached catalog entries.
func (ix *Index) Len() int {
	snap := ix.snap.Load()
	if snap == nil {
		return 0
	}
	return len(snap.records)
}

// FetchCount returns how many catalog fetches have been attempted.
func (ix *Index) FetchCount() int64 {
	return ix.fetches.Load()
}
