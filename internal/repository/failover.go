package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/AleXx313/shareit/internal/domain"
	"github.com/AleXx313/shareit/internal/models"

	"github.com/rs/zerolog"
)

// FailoverSearchCache serves from the primary (redis) cache and drops
// to the in-memory fallback when the primary errors. Recovery is
// retried a minute after the last failure.
type FailoverSearchCache struct {
	primary   domain.SearchCache
	fallback  domain.SearchCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverSearchCache(primary, fallback domain.SearchCache, logger *zerolog.Logger) *FailoverSearchCache {
	return &FailoverSearchCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverSearchCache) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary search cache failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverSearchCache) shouldRetryPrimary() bool {
	if !r.isDown.Load() {
		return true
	}
	last := time.Unix(0, r.lastCheck.Load())
	if time.Since(last) > time.Minute {
		r.lastCheck.Store(time.Now().UnixNano())
		return true
	}
	return false
}

func (r *FailoverSearchCache) Get(ctx context.Context, text string, from, size int) ([]models.Item, bool, error) {
	if r.shouldRetryPrimary() {
		items, ok, err := r.primary.Get(ctx, text, from, size)
		if err == nil {
			r.isDown.Store(false)
			return items, ok, nil
		}
		r.markDown(err)
	}
	return r.fallback.Get(ctx, text, from, size)
}

func (r *FailoverSearchCache) Set(ctx context.Context, text string, from, size int, items []models.Item) error {
	if r.shouldRetryPrimary() {
		err := r.primary.Set(ctx, text, from, size, items)
		if err == nil {
			r.isDown.Store(false)
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.Set(ctx, text, from, size, items)
}

func (r *FailoverSearchCache) Invalidate(ctx context.Context) error {
	// Both layers are cleared: a failover may have left pages in the
	// fallback while the primary was down.
	var primaryErr error
	if r.shouldRetryPrimary() {
		primaryErr = r.primary.Invalidate(ctx)
		if primaryErr == nil {
			r.isDown.Store(false)
		} else {
			r.markDown(primaryErr)
		}
	}
	return r.fallback.Invalidate(ctx)
}
