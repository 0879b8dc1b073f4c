// Package cache holds in-memory read-through caches in front of slow
// directories. Caches are created by the composition root and injected;
// there is no package level state.
package cache

import (
	"context"
	"errors"
	"time"

	"orderintake/internal/core/domain/model/pincode"
	"orderintake/internal/core/ports"
	"orderintake/internal/pkg/errs"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultPincodeTTL        = time.Hour
	DefaultPincodeMaxEntries = 10_000
)

// StatsRecorder receives hit and miss notifications.
type StatsRecorder interface {
	Hit()
	Miss()
}

type noopRecorder struct{}

func (noopRecorder) Hit()  {}
func (noopRecorder) Miss() {}

// PincodeCacheConfig bounds the cache. Zero values select the defaults.
type PincodeCacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// entry holds a directory record, or nil for a pincode the directory does
// not know. Unknown pincodes are cached as well.
type entry struct {
	record *pincode.Pincode
}

// PincodeCache is a ports.PincodeDirectory that remembers answers of the
// wrapped directory for a bounded time. It is safe for concurrent use.
// Infrastructure failures are never cached.
//
// Example:
//
//	directory := cache.NewPincodeCache(
//	    pincoderepo.NewGormPincodeDirectory(db),
//	    cache.PincodeCacheConfig{TTL: time.Hour, MaxEntries: 10_000},
//	    cacheMetrics,
//	)
//	ok, err := directory.IsServiceable(ctx, "560001")
type PincodeCache struct {
	next    ports.PincodeDirectory
	entries *expirable.LRU[string, entry]
	stats   StatsRecorder
}

// NewPincodeCache wraps next. stats may be nil.
func NewPincodeCache(next ports.PincodeDirectory, cfg PincodeCacheConfig, stats StatsRecorder) *PincodeCache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultPincodeTTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultPincodeMaxEntries
	}
	if stats == nil {
		stats = noopRecorder{}
	}

	return &PincodeCache{
		next:    next,
		entries: expirable.NewLRU[string, entry](cfg.MaxEntries, nil, cfg.TTL),
		stats:   stats,
	}
}

// Lookup returns the cached record, asking the wrapped directory on a miss.
func (c *PincodeCache) Lookup(ctx context.Context, code string) (*pincode.Pincode, error) {
	if cached, ok := c.entries.Get(code); ok {
		c.stats.Hit()
		if cached.record == nil {
			return nil, errs.NewObjectNotFoundError("pincode", code)
		}
		return cached.record, nil
	}
	c.stats.Miss()

	record, err := c.next.Lookup(ctx, code)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			c.entries.Add(code, entry{})
		}
		return nil, err
	}

	c.entries.Add(code, entry{record: record})
	return record, nil
}

// IsServiceable reports whether the pincode is known and serviceable.
func (c *PincodeCache) IsServiceable(ctx context.Context, code string) (bool, error) {
	record, err := c.Lookup(ctx, code)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.IsServiceable(), nil
}

// Len returns the number of live entries.
func (c *PincodeCache) Len() int {
	return c.entries.Len()
}

// Purge drops every entry, used after a directory import.
func (c *PincodeCache) Purge() {
	c.entries.Purge()
}
