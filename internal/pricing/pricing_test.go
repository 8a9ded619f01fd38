package pricing

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestDiscountPercentTable(t *testing.T) {
    cases := []struct {
        cantidad int
        want     int
    }{
        {1, 0},
        {2, 5},
        {3, 7},
        {4, 10},
        {5, 10},
        {12, 10},
    }
    for _, tc := range cases {
        assert.Equal(t, tc.want, DiscountPercent(tc.cantidad), "cantidad=%d", tc.cantidad)
    }
}

func TestQuoteThreeSeats(t *testing.T) {
    q := Quote(3, 50000)
    require.Equal(t, int64(150000), q.Subtotal)
    require.Equal(t, 7, q.PorcentajeDescuento)
    require.Equal(t, int64(10500), q.MontoDescuento)
    require.Equal(t, int64(139500), q.Total)
}

func TestQuoteSingleSeatNoDiscount(t *testing.T) {
    q := Quote(1, 50000)
    assert.Equal(t, int64(50000), q.Subtotal)
    assert.Equal(t, int64(0), q.MontoDescuento)
    assert.Equal(t, int64(50000), q.Total)
}

func TestQuoteRoundsDiscount(t *testing.T) {
    // 3 × 333 = 999; 7% of 999 = 69.93, rounds to 70.
    q := Quote(3, 333)
    assert.Equal(t, int64(70), q.MontoDescuento)
    assert.Equal(t, int64(929), q.Total)
}

func TestSelectStrategyPriority(t *testing.T) {
    // Holiday strictly outranks last-minute when both contexts hold.
    s := SelectStrategy(Context{EsFeriado: true, HorasParaSalida: 5})
    assert.Equal(t, StrategyFeriado, s)

    s = SelectStrategy(Context{HorasParaSalida: 5})
    assert.Equal(t, StrategyUltimaHora, s)

    s = SelectStrategy(Context{HorasParaSalida: 24})
    assert.Equal(t, StrategyEstandar, s)

    s = SelectStrategy(Context{HorasParaSalida: 0})
    assert.Equal(t, StrategyEstandar, s)

    s = SelectStrategy(Context{})
    assert.Equal(t, StrategyEstandar, s)
}

func TestUnitPriceSurcharge(t *testing.T) {
    // Holiday wins over last-minute: 100 → 130, not 120 or 156.
    unit, strategy := UnitPrice(100, Context{EsFeriado: true, HorasParaSalida: 5})
    assert.Equal(t, int64(130), unit)
    assert.Equal(t, "feriado", strategy.String())

    unit, strategy = UnitPrice(100, Context{HorasParaSalida: 3})
    assert.Equal(t, int64(120), unit)
    assert.Equal(t, "ultima_hora", strategy.String())

    unit, strategy = UnitPrice(100, Context{HorasParaSalida: 48})
    assert.Equal(t, int64(100), unit)
    assert.Equal(t, "estandar", strategy.String())
}

func TestSurchargeRoundsToNearest(t *testing.T) {
    // 1.3 × 50001 = 65001.3 → 65001; 1.2 × 50001 = 60001.2 → 60001.
    assert.Equal(t, int64(65001), StrategyFeriado.Apply(50001))
    assert.Equal(t, int64(60001), StrategyUltimaHora.Apply(50001))
    // 1.3 × 5 = 6.5 rounds half away from zero → 7.
    assert.Equal(t, int64(7), StrategyFeriado.Apply(5))
}
