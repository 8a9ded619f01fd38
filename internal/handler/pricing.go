package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/pricing"
)

// PricingHandler exposes the pricing overlay.  It shares no state with
// the inventory components — both endpoints are pure functions of
// their request plus the configured base price.
type PricingHandler struct {
    precioBase int64 // default unit price when the request carries none
}

// NewPricingHandler builds the handler with the configured base price.
func NewPricingHandler(precioBase int64) *PricingHandler {
    return &PricingHandler{precioBase: precioBase}
}

type quoteRequest struct {
    Cantidad       int   `json:"cantidad" validate:"required,min=1"`
    PrecioUnitario int64 `json:"precioUnitario" validate:"omitempty,min=1"`
}

// CalcularPrecio handles POST /calcular-precio.  It applies the batch
// quantity discount to cantidad × unit price.  The unit price defaults
// to the configured base and may be overridden with a value the UI
// obtained from /precio-unitario — that is how a surcharged unit price
// reaches the batch discount without the two formulas ever nesting.
func (h *PricingHandler) CalcularPrecio(c echo.Context) error {
    var req quoteRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": "invalid request body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": "cantidad must be a positive integer"})
    }
    unit := req.PrecioUnitario
    if unit <= 0 {
        unit = h.precioBase
    }
    q := pricing.Quote(req.Cantidad, unit)
    return c.JSON(http.StatusOK, echo.Map{
        "cantidad":            q.Cantidad,
        "precioUnitario":      q.PrecioUnitario,
        "subtotal":            q.Subtotal,
        "porcentajeDescuento": q.PorcentajeDescuento,
        "montoDescuento":      q.MontoDescuento,
        "total":               q.Total,
        "ahorros":             q.MontoDescuento,
    })
}

type unitPriceRequest struct {
    PrecioBase      int64   `json:"precioBase" validate:"omitempty,min=1"`
    EsFeriado       bool    `json:"esFeriado"`
    HorasParaSalida float64 `json:"horasParaSalida"`
}

// PrecioUnitario handles POST /precio-unitario.  It applies the
// context surcharge to a base price: holiday beats last-minute beats
// standard, and the result is rounded to the nearest integer.
func (h *PricingHandler) PrecioUnitario(c echo.Context) error {
    var req unitPriceRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": "invalid request body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": "precioBase must be a positive integer"})
    }
    base := req.PrecioBase
    if base <= 0 {
        base = h.precioBase
    }
    unit, strategy := pricing.UnitPrice(base, pricing.Context{
        EsFeriado:       req.EsFeriado,
        HorasParaSalida: req.HorasParaSalida,
    })
    return c.JSON(http.StatusOK, echo.Map{
        "ok":             true,
        "precioBase":     base,
        "precioUnitario": unit,
        "estrategia":     strategy.String(),
    })
}
