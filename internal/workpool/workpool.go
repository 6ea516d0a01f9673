// Package workpool provides the bounded background-work pool that
// internal/cache runs parses on. It is a generalisation of the teacher's
// cmd/parse.go bulk-parse worker pool (jobs/results channels guarded by a
// sync.WaitGroup) into a reusable Submit(ctx, func()) API backed by a weighted
// semaphore instead of a fixed channel buffer.
package workpool

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/wowlog/combatlog/internal/applog"
)

// Pool bounds the number of goroutines concurrently running submitted work.
type Pool struct {
	sem *semaphore.Weighted
	log *applog.Logger
}

// New creates a Pool allowing at most size concurrently-running jobs. A
// size <= 0 defaults to runtime.GOMAXPROCS(0), matching §4.6's "bounded
// worker pool sized to GOMAXPROCS by default".
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		sem: semaphore.NewWeighted(int64(size)),
		log: applog.Default(),
	}
}

// Submit runs fn on a pool goroutine once a slot is free, and returns a
// channel that is closed when fn returns. If ctx is cancelled before a slot
// frees up, fn never runs and the returned channel is closed immediately.
// Each submission is tagged with a job id for log correlation, mirroring
// how other corpus worker processors tag units of background work.
func (p *Pool) Submit(ctx context.Context, fn func()) <-chan struct{} {
	done := make(chan struct{})
	jobID := uuid.New().String()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		p.log.With("job_id", jobID).Warn("workpool: acquire failed before job started: " + err.Error())
		close(done)
		return done
	}

	go func() {
		defer close(done)
		defer p.sem.Release(1)
		fn()
	}()

	return done
}
