package model

// PricingQuote is the result of pricing a batch of seats.  It is
// derived fresh on every call and carries no relationship to holds or
// reservations: quantity and unit price in, discounted total out.
//
// Subtotal = Cantidad × PrecioUnitario.
// MontoDescuento = round(Subtotal × PorcentajeDescuento / 100).
// Total = Subtotal − MontoDescuento.
type PricingQuote struct {
    Cantidad            int   `json:"cantidad"`
    PrecioUnitario      int64 `json:"precioUnitario"`
    Subtotal            int64 `json:"subtotal"`
    PorcentajeDescuento int   `json:"porcentajeDescuento"`
    MontoDescuento      int64 `json:"montoDescuento"`
    Total               int64 `json:"total"`
}
