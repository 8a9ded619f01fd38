package model

import "time"

// Reservation is the terminal state of a seat slot.  It is created
// exactly once, by finalizing a still-valid hold, and is never mutated
// or deleted by this subsystem.  Cancellation, if the platform ever
// supports it, is an external concern.
type Reservation struct {
    RutaID     string    // route identifier
    Fecha      string    // departure date
    Asiento    int       // seat number
    HoldID     string    // the hold token that produced this reservation
    ReservedAt time.Time // when the hold was finalized
}

// Key returns the seat key this reservation occupies.
func (r *Reservation) Key() SeatKey {
    return SeatKey{RutaID: r.RutaID, Fecha: r.Fecha, Asiento: r.Asiento}
}
