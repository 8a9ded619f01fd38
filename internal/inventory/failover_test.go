package inventory

import (
    "context"
    "fmt"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/model"
)

// stubService scripts one Service endpoint for failover tests and
// counts how often it was hit.
type stubService struct {
    holdErr  error
    hold     model.Hold
    seatsErr error
    seats    []model.SeatView
    calls    int
}

func (s *stubService) Availability(ctx context.Context, rutaID, fecha, userID string) ([]model.SeatView, error) {
    s.calls++
    return s.seats, s.seatsErr
}

func (s *stubService) RequestHold(ctx context.Context, rutaID, fecha string, asiento int, userID string) (model.Hold, error) {
    s.calls++
    return s.hold, s.holdErr
}

func (s *stubService) ReleaseHold(ctx context.Context, rutaID, fecha string, asiento int) (bool, error) {
    s.calls++
    return false, s.holdErr
}

func (s *stubService) ReleaseByHoldID(ctx context.Context, holdID string) (bool, error) {
    s.calls++
    return false, s.holdErr
}

func (s *stubService) ListHolds(ctx context.Context) ([]model.Hold, error) {
    s.calls++
    return nil, s.holdErr
}

func (s *stubService) Finalize(ctx context.Context, rutaID, fecha string, asiento int, holdID string) (model.Reservation, error) {
    s.calls++
    return model.Reservation{}, s.holdErr
}

func TestFailoverUsesPrimaryWhenHealthy(t *testing.T) {
    primary := &stubService{hold: model.Hold{HoldID: "primary-hold"}}
    mirror := &stubService{hold: model.Hold{HoldID: "mirror-hold"}}
    f := NewFailover(primary, mirror)

    hold, err := f.RequestHold(context.Background(), "R1", "2025-06-10", 1, "user-a")
    require.NoError(t, err)
    assert.Equal(t, "primary-hold", hold.HoldID)
    assert.Equal(t, 0, mirror.calls)
}

func TestFailoverSwitchesToMirrorOnOutage(t *testing.T) {
    primary := &stubService{holdErr: fmt.Errorf("dial tcp: timeout: %w", ErrUpstreamUnavailable)}
    mirror := &stubService{hold: model.Hold{HoldID: "mirror-hold"}}
    f := NewFailover(primary, mirror)

    ctx, degraded := WithDegradedFlag(context.Background())
    hold, err := f.RequestHold(ctx, "R1", "2025-06-10", 1, "user-a")
    require.NoError(t, err)
    assert.Equal(t, "mirror-hold", hold.HoldID)
    assert.Equal(t, 1, mirror.calls)
    assert.True(t, *degraded, "degraded flag must be set when the mirror serves")
}

func TestFailoverPassesConflictsThrough(t *testing.T) {
    // A 409 from the primary is a business outcome, not an outage.
    primary := &stubService{holdErr: ErrHeldByOther}
    mirror := &stubService{}
    f := NewFailover(primary, mirror)

    ctx, degraded := WithDegradedFlag(context.Background())
    _, err := f.RequestHold(ctx, "R1", "2025-06-10", 1, "user-a")
    assert.ErrorIs(t, err, ErrHeldByOther)
    assert.Equal(t, 0, mirror.calls)
    assert.False(t, *degraded)
}

func TestFailoverMirrorIsRealEngine(t *testing.T) {
    // End to end through the degraded path: the mirror is a live
    // engine with its own unsynchronized store.
    primary := &stubService{holdErr: fmt.Errorf("unreachable: %w", ErrUpstreamUnavailable), seatsErr: fmt.Errorf("unreachable: %w", ErrUpstreamUnavailable)}
    engine := NewEngine(NewMemoryStore(), 40, 5*time.Minute)
    f := NewFailover(primary, engine)
    ctx := context.Background()

    hold, err := f.RequestHold(ctx, "R1", "2025-06-10", 4, "user-a")
    require.NoError(t, err)

    seats, err := f.Availability(ctx, "R1", "2025-06-10", "user-a")
    require.NoError(t, err)
    require.Len(t, seats, 40)
    assert.Equal(t, model.SeatRetenido, seats[3].Estado)

    res, err := f.Finalize(ctx, "R1", "2025-06-10", 4, hold.HoldID)
    require.NoError(t, err)
    assert.Equal(t, hold.HoldID, res.HoldID)
}
