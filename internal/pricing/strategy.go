// Package pricing computes what a batch of held seats costs.  Two
// independent mechanisms live here: a context surcharge that adjusts a
// unit price (holiday or last-minute departures cost more) and a batch
// quantity discount applied to a subtotal.  They are deliberately
// never nested into one formula — the UI obtains a surcharged unit
// price first and prices the batch with it in a separate call.
package pricing

import "math"

// Strategy tags the surcharge applied to a unit price.  Strategies are
// selected by priority, never combined: holiday strictly outranks
// last-minute when both contexts are true.
type Strategy int

const (
    StrategyEstandar   Strategy = iota // no surcharge
    StrategyUltimaHora                 // departure in under 24 hours, ×1.2
    StrategyFeriado                    // holiday departure, ×1.3
)

// String returns the wire name of the strategy.
func (s Strategy) String() string {
    switch s {
    case StrategyFeriado:
        return "feriado"
    case StrategyUltimaHora:
        return "ultima_hora"
    default:
        return "estandar"
    }
}

// Context carries the booking circumstances a surcharge depends on.
type Context struct {
    EsFeriado       bool    // the departure date is a flagged holiday
    HorasParaSalida float64 // hours until departure; <= 0 means unknown
}

// SelectStrategy picks the surcharge for a context.  Priority order:
// holiday first and short-circuiting, then last-minute when the
// departure is strictly between 0 and 24 hours away, then standard.
func SelectStrategy(ctx Context) Strategy {
    if ctx.EsFeriado {
        return StrategyFeriado
    }
    if ctx.HorasParaSalida > 0 && ctx.HorasParaSalida < 24 {
        return StrategyUltimaHora
    }
    return StrategyEstandar
}

// Apply returns the surcharged price, rounded to the nearest integer.
func (s Strategy) Apply(base int64) int64 {
    switch s {
    case StrategyFeriado:
        return int64(math.Round(float64(base) * 1.3))
    case StrategyUltimaHora:
        return int64(math.Round(float64(base) * 1.2))
    default:
        return base
    }
}

// UnitPrice selects the strategy for ctx and applies it to base.
func UnitPrice(base int64, ctx Context) (int64, Strategy) {
    s := SelectStrategy(ctx)
    return s.Apply(base), s
}
