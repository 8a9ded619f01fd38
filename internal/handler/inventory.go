package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/inventory"
    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/queue"
)

// InventoryHandler exposes the seat inventory lock over HTTP: seat
// availability, hold creation/renewal, hold listing and release, and
// the finalization of a hold into a reservation.  The handler never
// talks to a store directly — everything goes through the injected
// inventory.Service, which may be the local engine or the failover
// pair around the primary authority.
type InventoryHandler struct {
    inv     inventory.Service
    ttl     time.Duration
    publish func(ctx context.Context, ev queue.ReservationFinalizedEvent) error
}

// NewInventoryHandler wires the handler.  publish may be nil when no
// broker is configured; finalization then skips event emission.
func NewInventoryHandler(inv inventory.Service, ttl time.Duration, publish func(ctx context.Context, ev queue.ReservationFinalizedEvent) error) *InventoryHandler {
    if inv == nil {
        panic("nil inventory service passed to NewInventoryHandler")
    }
    return &InventoryHandler{inv: inv, ttl: ttl, publish: publish}
}

// degradedCtx attaches the degraded flag and returns a closure that
// stamps the response header when the failover layer served the call
// from the mirror.
func degradedCtx(c echo.Context) (context.Context, func()) {
    ctx, flag := inventory.WithDegradedFlag(c.Request().Context())
    return ctx, func() {
        if *flag {
            c.Response().Header().Set("X-Degraded", "true")
        }
    }
}

// conflictResponse translates an inventory error into the coarse
// status mapping of the reference surface: every conflict is a 409
// with its code, seat range violations are a 400, and anything else
// is a 500.  Returns true when it wrote a response.
func conflictResponse(c echo.Context, err error) bool {
    switch {
    case err == nil:
        return false
    case inventory.IsConflict(err):
        _ = c.JSON(http.StatusConflict, echo.Map{"ok": false, "error": err.Error()})
    case errors.Is(err, inventory.ErrSeatOutOfRange):
        _ = c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": err.Error()})
    default:
        _ = c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "error": "internal_error"})
    }
    return true
}

// Disponibles handles GET /disponibles?rutaId&fecha[&userId].  The
// optional userId marks the caller's own holds in the listing.
func (h *InventoryHandler) Disponibles(c echo.Context) error {
    rutaID := c.QueryParam("rutaId")
    fecha := c.QueryParam("fecha")
    if rutaID == "" || fecha == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": "rutaId and fecha are required"})
    }
    ctx, stamp := degradedCtx(c)
    seats, err := h.inv.Availability(ctx, rutaID, fecha, c.QueryParam("userId"))
    stamp()
    if conflictResponse(c, err) {
        return nil
    }
    return c.JSON(http.StatusOK, echo.Map{
        "ok":       true,
        "rutaId":   rutaID,
        "fecha":    fecha,
        "asientos": seats,
    })
}

type holdRequest struct {
    RutaID  string `json:"rutaId" validate:"required"`
    Fecha   string `json:"fecha" validate:"required"`
    Asiento int    `json:"asiento" validate:"required,min=1"`
    UserID  string `json:"userId" validate:"required"`
}

// Reservar handles POST /reservar.  It creates a hold, or renews the
// caller's existing one on the same seat, and returns the opaque hold
// token plus its expiry.
func (h *InventoryHandler) Reservar(c echo.Context) error {
    var req holdRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": "invalid request body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": "rutaId, fecha, asiento and userId are required"})
    }
    ctx, stamp := degradedCtx(c)
    hold, err := h.inv.RequestHold(ctx, req.RutaID, req.Fecha, req.Asiento, req.UserID)
    stamp()
    if conflictResponse(c, err) {
        return nil
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "ok":        true,
        "holdId":    hold.HoldID,
        "asiento":   hold.Asiento,
        "expiresAt": hold.ExpiresAt,
        "ttlMs":     h.ttl.Milliseconds(),
    })
}

// ListHolds handles GET /holds.  It snapshots every live hold with its
// remaining time so the UI can render countdowns.
func (h *InventoryHandler) ListHolds(c echo.Context) error {
    ctx, stamp := degradedCtx(c)
    holds, err := h.inv.ListHolds(ctx)
    stamp()
    if conflictResponse(c, err) {
        return nil
    }
    now := time.Now().UTC()
    items := make([]echo.Map, 0, len(holds))
    for _, hold := range holds {
        remaining := hold.ExpiresAt.Sub(now).Milliseconds()
        if remaining < 0 {
            remaining = 0
        }
        items = append(items, echo.Map{
            "rutaId":      hold.RutaID,
            "fecha":       hold.Fecha,
            "asiento":     hold.Asiento,
            "holdId":      hold.HoldID,
            "userId":      hold.UserID,
            "createdAt":   hold.CreatedAt,
            "expiresAt":   hold.ExpiresAt,
            "remainingMs": remaining,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{
        "ok":    true,
        "ttlMs": h.ttl.Milliseconds(),
        "holds": items,
    })
}

type releaseRequest struct {
    RutaID  string `json:"rutaId"`
    Fecha   string `json:"fecha"`
    Asiento int    `json:"asiento"`
    HoldID  string `json:"holdId"`
}

// ReleaseHold handles DELETE /holds.  The body names either the seat
// key or a hold token.  The delete is unconditional — no ownership
// check happens at this layer.
func (h *InventoryHandler) ReleaseHold(c echo.Context) error {
    var req releaseRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": "invalid request body"})
    }
    ctx, stamp := degradedCtx(c)
    var released bool
    var err error
    switch {
    case req.HoldID != "":
        released, err = h.inv.ReleaseByHoldID(ctx, req.HoldID)
    case req.RutaID != "" && req.Fecha != "" && req.Asiento >= 1:
        released, err = h.inv.ReleaseHold(ctx, req.RutaID, req.Fecha, req.Asiento)
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": "holdId or rutaId, fecha and asiento are required"})
    }
    stamp()
    if conflictResponse(c, err) {
        return nil
    }
    return c.JSON(http.StatusOK, echo.Map{"ok": true, "released": released})
}

type finalizeRequest struct {
    RutaID  string `json:"rutaId" validate:"required"`
    Fecha   string `json:"fecha" validate:"required"`
    Asiento int    `json:"asiento" validate:"required,min=1"`
    HoldID  string `json:"holdId" validate:"required"`
}

// ReservarDefinitivo handles POST /reservar-definitivo.  A still-valid
// hold identified by its token becomes a permanent reservation; on
// success a reservation.finalized event is published best-effort.
func (h *InventoryHandler) ReservarDefinitivo(c echo.Context) error {
    var req finalizeRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": "invalid request body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": "rutaId, fecha, asiento and holdId are required"})
    }
    ctx, stamp := degradedCtx(c)
    res, err := h.inv.Finalize(ctx, req.RutaID, req.Fecha, req.Asiento, req.HoldID)
    stamp()
    if conflictResponse(c, err) {
        return nil
    }
    if h.publish != nil {
        degraded := c.Response().Header().Get("X-Degraded") == "true"
        // Publish failures are logged by the publisher and must never
        // fail the booking.
        _ = h.publish(ctx, queue.ReservationFinalizedEvent{
            RutaID:     res.RutaID,
            Fecha:      res.Fecha,
            Asiento:    res.Asiento,
            HoldID:     res.HoldID,
            ReservedAt: res.ReservedAt.Format(time.RFC3339),
            Degraded:   degraded,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{
        "ok":       true,
        "reserved": true,
        "asiento":  res.Asiento,
    })
}
