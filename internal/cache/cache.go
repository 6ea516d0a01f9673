// Package cache implements the filename-keyed summary cache described in
// §4.6/§5: a map of filename to (observed file size, parsed summary)
// behind a single mutex that is never held across parsing or stat I/O.
// Two concurrent cold lookups for the same filename may both trigger a
// parse; the second writer simply overwrites the first. No singleflight or
// per-key lock table is used — that is a deliberate simplification, not an
// oversight (§9).
package cache

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/wowlog/combatlog/internal/errs"
	"github.com/wowlog/combatlog/internal/logdriver"
	"github.com/wowlog/combatlog/internal/metrics"
	"github.com/wowlog/combatlog/internal/model"
	"github.com/wowlog/combatlog/internal/workpool"
)

// Status reports whether Summary served a cached result or parsed fresh.
type Status string

const (
	StatusHit    Status = "HIT"
	StatusParsed Status = "PARSED"
)

type entry struct {
	size    int64
	summary *model.CombatLogSummary
}

// Cache serves parsed combat log summaries, keyed by filename and
// invalidated automatically when the file's observed size changes.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry

	pool *workpool.Pool
}

// New creates an empty Cache whose background parses run on pool.
func New(pool *workpool.Pool) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		pool:    pool,
	}
}

// Summary returns the parsed summary for the combat log at path, along with
// whether it was served from cache and how long the call took. A cache
// entry is invalidated when the file's current size no longer matches what
// was observed at parse time — the cheapest correctness signal available
// without hashing the whole file (§4.6).
func (c *Cache) Summary(ctx context.Context, path string) (*model.CombatLogSummary, Status, time.Duration, error) {
	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return nil, StatusParsed, time.Since(start), errs.ParseFailure("stat combat log", err)
	}
	size := info.Size()

	c.mu.Lock()
	e, ok := c.entries[path]
	c.mu.Unlock()
	if ok && e.size == size {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return e.summary, StatusHit, time.Since(start), nil
	}

	summary, err := c.parse(ctx, path, size)
	if err != nil {
		return nil, StatusParsed, time.Since(start), err
	}
	metrics.CacheLookups.WithLabelValues("parsed").Inc()
	return summary, StatusParsed, time.Since(start), nil
}

// parse submits a parse to the worker pool and waits for it, bounding how
// many parses run at once process-wide. The parse itself always runs
// against context.Background() — per §5, a cancelled request drops the
// awaiter here but the background parse continues to completion and its
// result is still inserted into the cache as a beneficial side effect.
func (c *Cache) parse(ctx context.Context, path string, size int64) (*model.CombatLogSummary, error) {
	var summary *model.CombatLogSummary
	var parseErr error

	done := c.pool.Submit(context.Background(), func() {
		t0 := time.Now()
		summary, parseErr = logdriver.Parse(context.Background(), path)
		metrics.ParseDuration.Observe(time.Since(t0).Seconds())
		if parseErr != nil {
			metrics.ParseFailures.Inc()
			return
		}
		c.mu.Lock()
		c.entries[path] = entry{size: size, summary: summary}
		c.mu.Unlock()
	})

	select {
	case <-done:
		if parseErr != nil {
			return nil, parseErr
		}
		return summary, nil
	case <-ctx.Done():
		return nil, errs.WorkerFailure("parse cancelled before completion", ctx.Err())
	}
}

// Invalidate drops any cached entry for path, forcing the next Summary call
// to re-parse regardless of observed size.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}
