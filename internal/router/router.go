package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/handler"
)

// RegisterRoutes maps the booking UI surface onto the handlers.  The
// paths and shapes are a wire contract with the UI and must not drift;
// note the Spanish route names carried over from that contract.
func RegisterRoutes(e *echo.Echo, inv *handler.InventoryHandler, pr *handler.PricingHandler) {
    // Health check for load balancers and monitoring.
    e.GET("/healthz", handler.Health)

    // Seat inventory lock.
    e.GET("/disponibles", inv.Disponibles)
    e.POST("/reservar", inv.Reservar)
    e.GET("/holds", inv.ListHolds)
    e.DELETE("/holds", inv.ReleaseHold)
    e.POST("/reservar-definitivo", inv.ReservarDefinitivo)

    // Pricing overlay.
    e.POST("/calcular-precio", pr.CalcularPrecio)
    e.POST("/precio-unitario", pr.PrecioUnitario)
}
