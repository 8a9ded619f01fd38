// Package inventory implements the seat inventory lock: time-bounded
// holds on seat slots, their expiry, and the promotion of a valid hold
// into a permanent reservation.  These sentinel values let the handler
// layer distinguish failure scenarios without inspecting strings.  All
// conflict errors map to HTTP 409; ErrSeatOutOfRange is a validation
// failure and maps to 400 before any state is touched.
package inventory

import "errors"

// ErrAlreadyReserved is returned when the seat key already carries a
// terminal reservation.  Handlers should translate this into 409.
var ErrAlreadyReserved = errors.New("already_reserved")

// ErrHeldByOther is returned when a different user's live hold exists
// on the requested seat.  Handlers should translate this into 409.
var ErrHeldByOther = errors.New("held_by_other")

// ErrHoldNotFound is returned by Finalize when no hold exists at the
// seat key.  The reference surface does not distinguish "not found"
// from other conflicts at the status level, so this is also 409.
var ErrHoldNotFound = errors.New("hold_not_found")

// ErrHoldIDMismatch is returned by Finalize when a hold exists but its
// token differs from the one supplied.  The hold is left untouched.
var ErrHoldIDMismatch = errors.New("hold_id_mismatch")

// ErrHoldExpired is returned by Finalize when the hold at the key has
// passed its expiry.  The stale hold is purged as a side effect.
var ErrHoldExpired = errors.New("hold_expired")

// ErrSeatOutOfRange is returned when the seat number falls outside
// [1, capacity].  No store state is read or written.
var ErrSeatOutOfRange = errors.New("seat_out_of_range")

// ErrUpstreamUnavailable wraps transport failures talking to the
// primary inventory authority.  It is never surfaced to the end
// caller; the failover layer catches it and serves from the mirror.
var ErrUpstreamUnavailable = errors.New("upstream_unavailable")

// IsConflict reports whether err is one of the per-seat conflict
// sentinels that the HTTP layer surfaces as 409.
func IsConflict(err error) bool {
    return errors.Is(err, ErrAlreadyReserved) ||
        errors.Is(err, ErrHeldByOther) ||
        errors.Is(err, ErrHoldNotFound) ||
        errors.Is(err, ErrHoldIDMismatch) ||
        errors.Is(err, ErrHoldExpired)
}
