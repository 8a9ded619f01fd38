package inventory

import (
    "time"

    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/model"
)

// SlotState exposes the hold and reservation at a single seat key.  It
// is only valid inside the critical section opened by SlotStore.Update
// and must not escape it.
type SlotState interface {
    // Hold returns the hold currently stored at the key, if any.
    // Expiry is not checked here; that is the engine's concern.
    Hold() (model.Hold, bool)
    // Reservation returns the terminal reservation at the key, if any.
    Reservation() (model.Reservation, bool)
    // PutHold stores or replaces the hold at the key.
    PutHold(h model.Hold)
    // DeleteHold removes the hold at the key and reports whether one
    // was present.
    DeleteHold() bool
    // PutReservation stores the terminal reservation at the key.
    PutReservation(r model.Reservation)
}

// SlotStore holds the authoritative state of every seat slot.  Slots
// are implicit: a key with neither a hold nor a reservation is
// available.  Every compound check-then-mutate sequence runs inside
// Update, which serializes all access to the same key, including the
// purge passes — purging is a write and takes the same lock as the
// foreground operations.
//
// The store is an injected abstraction so tests can substitute a fake
// and a durable backend can replace the in-memory one later without
// touching the engine.
type SlotStore interface {
    // Update runs fn while holding the exclusive lock for key.  The
    // error returned by fn is returned unchanged.
    Update(key model.SeatKey, fn func(s SlotState) error) error

    // HoldsInScope returns a snapshot of all holds for one route
    // departure, expired ones included.
    HoldsInScope(rutaID, fecha string) []model.Hold
    // ReservationsInScope returns a snapshot of all reservations for
    // one route departure.
    ReservationsInScope(rutaID, fecha string) []model.Reservation
    // Holds returns a snapshot of every hold in the store.
    Holds() []model.Hold

    // PurgeScope deletes all holds for one route departure whose
    // expiry is at or before now and returns how many were removed.
    PurgeScope(rutaID, fecha string, now time.Time) int
    // PurgeAll is PurgeScope over the whole store; it backs the
    // periodic reaper sweep.
    PurgeAll(now time.Time) int
}
