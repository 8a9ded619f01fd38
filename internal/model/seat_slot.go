package model

import "time"

// SeatStatus enumerates the externally visible states of a seat slot.
// The wire values are Spanish to match the booking UI contract.
type SeatStatus string

const (
    SeatDisponible SeatStatus = "disponible" // no reservation and no live hold
    SeatRetenido   SeatStatus = "retenido"   // a non-expired hold exists
    SeatReservado  SeatStatus = "reservado"  // terminal; never transitions again
)

// SeatKey identifies one seat on one route departure.  Slots are
// implicit: the absence of a hold or reservation for a key means the
// seat is available.  Asiento is 1-based and bounded by the per-route
// capacity.
type SeatKey struct {
    RutaID  string // route identifier
    Fecha   string // departure date (YYYY-MM-DD as supplied by the UI)
    Asiento int    // seat number, 1..capacity
}

// SeatView is one row of an availability listing.  ExpiresAt is only
// populated for held seats.  Propia tells the caller whether the live
// hold belongs to the userId they supplied with the query.
type SeatView struct {
    Numero    int        `json:"numero"`
    Estado    SeatStatus `json:"estado"`
    ExpiresAt *time.Time `json:"expiresAt,omitempty"`
    Propia    bool       `json:"propia,omitempty"`
}
