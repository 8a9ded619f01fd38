package inventory

import (
    "context"
    "errors"
    "log"

    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/model"
)

// Failover serves every call from the primary inventory authority and
// falls back, per call, to the local mirror when the primary is
// unreachable or times out.  Conflict results from the primary are
// business outcomes and pass through untouched; only transport
// failures trigger the fallback.
//
// The mirror is not synchronized with the primary: holds created on
// one side are invisible to the other.  While an outage lasts the
// mirror is treated as authoritative; once the primary recovers, holds
// taken on the mirror are simply lost to it.  That consistency hazard
// is accepted and documented rather than papered over — the
// alternative is refusing all bookings during an upstream outage.
type Failover struct {
    primary Service
    mirror  Service
}

// NewFailover wires a primary authority client and a local mirror.
func NewFailover(primary, mirror Service) *Failover {
    return &Failover{primary: primary, mirror: mirror}
}

// degradeTo reports whether the error means the primary could not be
// reached, logging the switch once per call.
func degradeTo(ctx context.Context, op string, err error) bool {
    if err == nil || !errors.Is(err, ErrUpstreamUnavailable) {
        return false
    }
    log.Printf("inventory: %s degraded=true upstream error: %v", op, err)
    markDegraded(ctx)
    return true
}

func (f *Failover) Availability(ctx context.Context, rutaID, fecha, userID string) ([]model.SeatView, error) {
    seats, err := f.primary.Availability(ctx, rutaID, fecha, userID)
    if degradeTo(ctx, "availability", err) {
        return f.mirror.Availability(ctx, rutaID, fecha, userID)
    }
    return seats, err
}

func (f *Failover) RequestHold(ctx context.Context, rutaID, fecha string, asiento int, userID string) (model.Hold, error) {
    h, err := f.primary.RequestHold(ctx, rutaID, fecha, asiento, userID)
    if degradeTo(ctx, "request-hold", err) {
        return f.mirror.RequestHold(ctx, rutaID, fecha, asiento, userID)
    }
    return h, err
}

func (f *Failover) ReleaseHold(ctx context.Context, rutaID, fecha string, asiento int) (bool, error) {
    ok, err := f.primary.ReleaseHold(ctx, rutaID, fecha, asiento)
    if degradeTo(ctx, "release-hold", err) {
        return f.mirror.ReleaseHold(ctx, rutaID, fecha, asiento)
    }
    return ok, err
}

func (f *Failover) ReleaseByHoldID(ctx context.Context, holdID string) (bool, error) {
    ok, err := f.primary.ReleaseByHoldID(ctx, holdID)
    if degradeTo(ctx, "release-by-token", err) {
        return f.mirror.ReleaseByHoldID(ctx, holdID)
    }
    return ok, err
}

func (f *Failover) ListHolds(ctx context.Context) ([]model.Hold, error) {
    holds, err := f.primary.ListHolds(ctx)
    if degradeTo(ctx, "list-holds", err) {
        return f.mirror.ListHolds(ctx)
    }
    return holds, err
}

func (f *Failover) Finalize(ctx context.Context, rutaID, fecha string, asiento int, holdID string) (model.Reservation, error) {
    res, err := f.primary.Finalize(ctx, rutaID, fecha, asiento, holdID)
    if degradeTo(ctx, "finalize", err) {
        return f.mirror.Finalize(ctx, rutaID, fecha, asiento, holdID)
    }
    return res, err
}
