package inventory

import (
    "context"
    "log"
    "time"
)

// Reaper is the background sweep that reclaims slots whose hold has
// timed out.  It is a safety net behind the eager per-request purge:
// even if no request ever arrives for a route, its expired holds are
// still returned to available within one sweep interval.
type Reaper struct {
    store    SlotStore
    interval time.Duration
    now      func() time.Time
}

// NewReaper builds a reaper over the same store the engine uses; the
// purge takes the same per-key locks as the foreground operations.
func NewReaper(store SlotStore, interval time.Duration) *Reaper {
    return &Reaper{store: store, interval: interval, now: time.Now}
}

// Run sweeps the whole store on a fixed interval until ctx is
// cancelled.  It is meant to be started once per process in its own
// goroutine.
func (r *Reaper) Run(ctx context.Context) {
    ticker := time.NewTicker(r.interval)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            if n := r.store.PurgeAll(r.now().UTC()); n > 0 {
                log.Printf("reaper: purged %d expired holds", n)
            }
        }
    }
}
