package handler

import (
    "net/http"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func newPricingServer(t *testing.T) (*echo.Echo, *PricingHandler) {
    t.Helper()
    e := echo.New()
    e.Validator = NewRequestValidator()
    return e, NewPricingHandler(50000)
}

func TestCalcularPrecioThreeSeats(t *testing.T) {
    e, h := newPricingServer(t)
    rec, body := doJSON(e, h.CalcularPrecio, http.MethodPost, "/calcular-precio", `{"cantidad":3}`)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, float64(3), body["cantidad"])
    assert.Equal(t, float64(50000), body["precioUnitario"])
    assert.Equal(t, float64(150000), body["subtotal"])
    assert.Equal(t, float64(7), body["porcentajeDescuento"])
    assert.Equal(t, float64(10500), body["montoDescuento"])
    assert.Equal(t, float64(139500), body["total"])
    assert.Equal(t, float64(10500), body["ahorros"])
}

func TestCalcularPrecioInvalidCantidad(t *testing.T) {
    e, h := newPricingServer(t)
    rec, _ := doJSON(e, h.CalcularPrecio, http.MethodPost, "/calcular-precio", `{"cantidad":0}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    rec, _ = doJSON(e, h.CalcularPrecio, http.MethodPost, "/calcular-precio", `{}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalcularPrecioWithSurchargedUnitPrice(t *testing.T) {
    // The UI feeds a unit price from /precio-unitario into the batch
    // quote; the two mechanisms compose without nesting.
    e, h := newPricingServer(t)
    rec, body := doJSON(e, h.CalcularPrecio, http.MethodPost, "/calcular-precio",
        `{"cantidad":2,"precioUnitario":65000}`)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, float64(130000), body["subtotal"])
    assert.Equal(t, float64(5), body["porcentajeDescuento"])
    assert.Equal(t, float64(6500), body["montoDescuento"])
    assert.Equal(t, float64(123500), body["total"])
}

func TestPrecioUnitarioHolidayBeatsLastMinute(t *testing.T) {
    e, h := newPricingServer(t)
    rec, body := doJSON(e, h.PrecioUnitario, http.MethodPost, "/precio-unitario",
        `{"precioBase":100,"esFeriado":true,"horasParaSalida":5}`)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, float64(130), body["precioUnitario"])
    assert.Equal(t, "feriado", body["estrategia"])
}

func TestPrecioUnitarioDefaultsToBasePrice(t *testing.T) {
    e, h := newPricingServer(t)
    rec, body := doJSON(e, h.PrecioUnitario, http.MethodPost, "/precio-unitario",
        `{"horasParaSalida":48}`)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, float64(50000), body["precioUnitario"])
    assert.Equal(t, "estandar", body["estrategia"])
}
