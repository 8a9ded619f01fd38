package pricing

import (
    "math"

    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/model"
)

// DiscountPercent returns the batch discount for a seat quantity.
// The table is fixed: a single seat gets nothing, small groups get a
// little, four or more seats get the cap.
func DiscountPercent(cantidad int) int {
    switch {
    case cantidad >= 4:
        return 10
    case cantidad == 3:
        return 7
    case cantidad == 2:
        return 5
    default:
        return 0
    }
}

// Quote prices a batch of seats at the given unit price.  The unit
// price may already carry a context surcharge; this function does not
// know or care — the two mechanisms stay independent.
func Quote(cantidad int, precioUnitario int64) model.PricingQuote {
    subtotal := int64(cantidad) * precioUnitario
    pct := DiscountPercent(cantidad)
    descuento := int64(math.Round(float64(subtotal) * float64(pct) / 100.0))
    return model.PricingQuote{
        Cantidad:            cantidad,
        PrecioUnitario:      precioUnitario,
        Subtotal:            subtotal,
        PorcentajeDescuento: pct,
        MontoDescuento:      descuento,
        Total:               subtotal - descuento,
    }
}
