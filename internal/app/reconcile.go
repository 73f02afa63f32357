package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"homenest/internal/domain"
)

const staleBatchSize = 500

// Reconciler repairs the eventual-consistency window left by the
// non-transactional cascades: reviews whose denormalized name/thumbnail
// drifted from their property, and reviews orphaned by a delete whose
// second leg never ran. Idempotent; safe to run on a schedule.
type Reconciler struct {
	reviews domain.ReviewRepository
	workers int
}

type ReconcileStats struct {
	OrphansDeleted     int64
	PropertiesRepaired int64
	ReviewsRepaired    int64
}

func NewReconciler(r domain.ReviewRepository, workers int) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	return &Reconciler{reviews: r, workers: workers}
}

func (rc *Reconciler) Run(ctx context.Context) (ReconcileStats, error) {
	var stats ReconcileStats

	orphans, err := rc.reviews.DeleteOrphans(ctx)
	if err != nil {
		return stats, err
	}
	stats.OrphansDeleted = orphans

	stale, err := rc.reviews.ListStaleProperties(ctx, staleBatchSize)
	if err != nil {
		return stats, err
	}

	sem := semaphore.NewWeighted(int64(rc.workers))
	var wg sync.WaitGroup
	var repairedProps, repairedReviews int64

	for _, p := range stale {
		if err := sem.Acquire(ctx, 1); err != nil {
			break // context canceled; report what we did so far
		}
		wg.Add(1)
		go func(p domain.Property) {
			defer wg.Done()
			defer sem.Release(1)

			n, err := rc.reviews.SyncDenormalized(ctx, p.ID, p.Name, p.Image)
			if err != nil {
				log.Warn().Int64("property_id", p.ID).Err(err).Msg("denorm repair failed")
				return
			}
			atomic.AddInt64(&repairedProps, 1)
			atomic.AddInt64(&repairedReviews, n)
		}(p)
	}

	wg.Wait()
	stats.PropertiesRepaired = atomic.LoadInt64(&repairedProps)
	stats.ReviewsRepaired = atomic.LoadInt64(&repairedReviews)
	return stats, ctx.Err()
}
