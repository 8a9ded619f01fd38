// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationFinalizedEvent is published when a hold is successfully
// promoted into a permanent reservation.  It carries enough for
// downstream consumers to audit, notify, or feed analytics without
// querying the inventory.  Degraded marks reservations taken on the
// fallback mirror during an upstream outage — those need manual
// reconciliation once the primary recovers.
type ReservationFinalizedEvent struct {
    EventID    string `json:"event_id"`
    RutaID     string `json:"ruta_id"`
    Fecha      string `json:"fecha"`
    Asiento    int    `json:"asiento"`
    HoldID     string `json:"hold_id"`
    ReservedAt string `json:"reserved_at"`
    Degraded   bool   `json:"degraded"`
}
