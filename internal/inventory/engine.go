package inventory

import (
    "context"
    "crypto/rand"
    "encoding/hex"
    "sort"
    "time"

    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/model"
)

// Service is the behavioral contract of the seat inventory lock.  It
// is implemented by the local Engine, by the HTTP client for the
// primary authority, and by the Failover wrapper that combines the
// two — one state machine, selectable storage behind it.
type Service interface {
    // Availability lists seats 1..capacity for a route departure with
    // their current status.  userID is optional; when supplied, held
    // seats owned by that user are marked as the caller's own.
    Availability(ctx context.Context, rutaID, fecha, userID string) ([]model.SeatView, error)
    // RequestHold places or renews a time-bounded hold on a seat.
    RequestHold(ctx context.Context, rutaID, fecha string, asiento int, userID string) (model.Hold, error)
    // ReleaseHold unconditionally deletes any hold at the seat key and
    // reports whether one was removed.  No ownership check is made.
    ReleaseHold(ctx context.Context, rutaID, fecha string, asiento int) (bool, error)
    // ReleaseByHoldID deletes the hold carrying the given token.
    ReleaseByHoldID(ctx context.Context, holdID string) (bool, error)
    // ListHolds snapshots every live hold.
    ListHolds(ctx context.Context) ([]model.Hold, error)
    // Finalize promotes a still-valid hold into a permanent reservation.
    Finalize(ctx context.Context, rutaID, fecha string, asiento int, holdID string) (model.Reservation, error)
}

// Engine implements Service against an injected SlotStore.  All
// compound sequences (check preconditions, then mutate) run inside one
// store critical section per key, so two concurrent requests for the
// same seat always serialize and exactly one wins a conflict.
//
// Every operation starts with an eager purge of expired holds in its
// scope, so a client can never observe a hold that has already
// logically expired regardless of how slowly the periodic reaper runs.
type Engine struct {
    store    SlotStore
    capacity int           // seats per route, fixed
    ttl      time.Duration // hold time-to-live
    now      func() time.Time
}

// NewEngine builds an Engine.  capacity and ttl come from the
// environment configuration; they are process-level, not per-request.
func NewEngine(store SlotStore, capacity int, ttl time.Duration) *Engine {
    return &Engine{store: store, capacity: capacity, ttl: ttl, now: time.Now}
}

// TTL exposes the configured hold time-to-live for response metadata.
func (e *Engine) TTL() time.Duration { return e.ttl }

// newHoldToken generates a 64 character random hexadecimal token used
// as the opaque hold identifier returned to the client.
func newHoldToken() (string, error) {
    b := make([]byte, 32)
    if _, err := rand.Read(b); err != nil {
        return "", err
    }
    return hex.EncodeToString(b), nil
}

func (e *Engine) checkSeat(asiento int) error {
    if asiento < 1 || asiento > e.capacity {
        return ErrSeatOutOfRange
    }
    return nil
}

// Availability reports the status of every seat for a route departure.
// Read-only apart from the eager purge that precedes it.
func (e *Engine) Availability(ctx context.Context, rutaID, fecha, userID string) ([]model.SeatView, error) {
    now := e.now().UTC()
    e.store.PurgeScope(rutaID, fecha, now)

    heldBy := make(map[int]model.Hold)
    for _, h := range e.store.HoldsInScope(rutaID, fecha) {
        if !h.Expired(now) {
            heldBy[h.Asiento] = h
        }
    }
    reserved := make(map[int]bool)
    for _, r := range e.store.ReservationsInScope(rutaID, fecha) {
        reserved[r.Asiento] = true
    }

    seats := make([]model.SeatView, 0, e.capacity)
    for n := 1; n <= e.capacity; n++ {
        v := model.SeatView{Numero: n, Estado: model.SeatDisponible}
        switch {
        case reserved[n]:
            v.Estado = model.SeatReservado
        case heldBy[n].HoldID != "":
            h := heldBy[n]
            exp := h.ExpiresAt
            v.Estado = model.SeatRetenido
            v.ExpiresAt = &exp
            v.Propia = userID != "" && h.UserID == userID
        }
        seats = append(seats, v)
    }
    return seats, nil
}

// RequestHold places a hold on the seat or renews the caller's own.
// Preconditions are checked atomically as one compound operation:
// a reserved seat conflicts, another user's live hold conflicts, and
// the same user's hold is renewed with a fresh token and expiry
// rather than rejected.
func (e *Engine) RequestHold(ctx context.Context, rutaID, fecha string, asiento int, userID string) (model.Hold, error) {
    if err := e.checkSeat(asiento); err != nil {
        return model.Hold{}, err
    }
    now := e.now().UTC()
    e.store.PurgeScope(rutaID, fecha, now)

    key := model.SeatKey{RutaID: rutaID, Fecha: fecha, Asiento: asiento}
    var hold model.Hold
    err := e.store.Update(key, func(s SlotState) error {
        if _, ok := s.Reservation(); ok {
            return ErrAlreadyReserved
        }
        if existing, ok := s.Hold(); ok && !existing.Expired(now) && existing.UserID != userID {
            return ErrHeldByOther
        }
        // Available, expired, or the caller's own hold being renewed:
        // in every case a fresh token and a restarted TTL.
        token, err := newHoldToken()
        if err != nil {
            return err
        }
        hold = model.Hold{
            HoldID:    token,
            UserID:    userID,
            RutaID:    rutaID,
            Fecha:     fecha,
            Asiento:   asiento,
            CreatedAt: now,
            ExpiresAt: now.Add(e.ttl),
        }
        s.PutHold(hold)
        return nil
    })
    if err != nil {
        return model.Hold{}, err
    }
    return hold, nil
}

// ReleaseHold deletes any hold at the key.  No ownership check
// happens at this layer: any caller that knows the seat key can
// release it, which doubles as an admin override.
func (e *Engine) ReleaseHold(ctx context.Context, rutaID, fecha string, asiento int) (bool, error) {
    if err := e.checkSeat(asiento); err != nil {
        return false, err
    }
    now := e.now().UTC()
    e.store.PurgeScope(rutaID, fecha, now)

    key := model.SeatKey{RutaID: rutaID, Fecha: fecha, Asiento: asiento}
    released := false
    err := e.store.Update(key, func(s SlotState) error {
        released = s.DeleteHold()
        return nil
    })
    return released, err
}

// ReleaseByHoldID deletes the hold carrying the given token, wherever
// it is.  The snapshot walk is safe because the actual delete re-takes
// the key lock and re-checks the token.
func (e *Engine) ReleaseByHoldID(ctx context.Context, holdID string) (bool, error) {
    now := e.now().UTC()
    e.store.PurgeAll(now)

    for _, h := range e.store.Holds() {
        if h.HoldID != holdID {
            continue
        }
        released := false
        err := e.store.Update(h.Key(), func(s SlotState) error {
            if cur, ok := s.Hold(); ok && cur.HoldID == holdID {
                released = s.DeleteHold()
            }
            return nil
        })
        return released, err
    }
    return false, nil
}

// ListHolds snapshots every live hold, ordered by expiry so the UI can
// show the soonest-expiring first.
func (e *Engine) ListHolds(ctx context.Context) ([]model.Hold, error) {
    now := e.now().UTC()
    e.store.PurgeAll(now)

    holds := e.store.Holds()
    sort.Slice(holds, func(i, j int) bool { return holds[i].ExpiresAt.Before(holds[j].ExpiresAt) })
    return holds, nil
}

// Finalize promotes a valid hold into a terminal reservation.  The
// validation order is significant: already reserved, then missing
// hold, then token mismatch, then expiry.  A failed finalize never
// partially commits — the hold is only deleted on the success path or
// when it was already expired.
func (e *Engine) Finalize(ctx context.Context, rutaID, fecha string, asiento int, holdID string) (model.Reservation, error) {
    if err := e.checkSeat(asiento); err != nil {
        return model.Reservation{}, err
    }
    now := e.now().UTC()
    e.store.PurgeScope(rutaID, fecha, now)

    key := model.SeatKey{RutaID: rutaID, Fecha: fecha, Asiento: asiento}
    var res model.Reservation
    err := e.store.Update(key, func(s SlotState) error {
        if _, ok := s.Reservation(); ok {
            return ErrAlreadyReserved
        }
        hold, ok := s.Hold()
        if !ok {
            return ErrHoldNotFound
        }
        if hold.HoldID != holdID {
            return ErrHoldIDMismatch
        }
        if hold.Expired(now) {
            s.DeleteHold()
            return ErrHoldExpired
        }
        s.DeleteHold()
        res = model.Reservation{
            RutaID:     rutaID,
            Fecha:      fecha,
            Asiento:    asiento,
            HoldID:     holdID,
            ReservedAt: now,
        }
        s.PutReservation(res)
        return nil
    })
    if err != nil {
        return model.Reservation{}, err
    }
    return res, nil
}
