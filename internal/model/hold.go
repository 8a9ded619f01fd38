package model

import "time"

// Hold represents a temporary claim on a seat slot while a buyer is in
// the process of paying.  Holds prevent concurrent buyers from
// grabbing the same seat.  A hold expires automatically at its
// ExpiresAt timestamp; expired holds are purged eagerly before every
// inventory operation and by the background reaper.
//
// At most one live hold exists per seat key.  Re-requesting a hold on
// an already-held seat by the same user renews it: the token and the
// expiry are regenerated.  A different user gets a conflict.
type Hold struct {
    HoldID    string    // opaque random token returned to the client
    UserID    string    // owner of the hold; supplied by the caller
    RutaID    string    // route identifier
    Fecha     string    // departure date
    Asiento   int       // seat number
    CreatedAt time.Time // when the hold was created or last renewed
    ExpiresAt time.Time // when the hold becomes void
}

// Key returns the seat key this hold claims.
func (h *Hold) Key() SeatKey {
    return SeatKey{RutaID: h.RutaID, Fecha: h.Fecha, Asiento: h.Asiento}
}

// Expired reports whether the hold is void at the given instant.
func (h *Hold) Expired(now time.Time) bool {
    return !h.ExpiresAt.After(now)
}
