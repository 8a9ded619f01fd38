package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/inventory"
)

func newTestServer(t *testing.T) (*echo.Echo, *InventoryHandler) {
    t.Helper()
    e := echo.New()
    e.Validator = NewRequestValidator()
    engine := inventory.NewEngine(inventory.NewMemoryStore(), 40, 5*time.Minute)
    h := NewInventoryHandler(engine, 5*time.Minute, nil)
    return e, h
}

func doJSON(e *echo.Echo, h echo.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
    var reader *strings.Reader
    if body != "" {
        reader = strings.NewReader(body)
    } else {
        reader = strings.NewReader("")
    }
    req := httptest.NewRequest(method, target, reader)
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    _ = h(c)
    out := map[string]interface{}{}
    _ = json.Unmarshal(rec.Body.Bytes(), &out)
    return rec, out
}

func TestDisponiblesRequiresParams(t *testing.T) {
    e, h := newTestServer(t)
    rec, body := doJSON(e, h.Disponibles, http.MethodGet, "/disponibles", "")
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Equal(t, false, body["ok"])
}

func TestDisponiblesListsAllSeats(t *testing.T) {
    e, h := newTestServer(t)
    rec, body := doJSON(e, h.Disponibles, http.MethodGet, "/disponibles?rutaId=R1&fecha=2025-06-10", "")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, true, body["ok"])
    assert.Equal(t, "R1", body["rutaId"])
    seats := body["asientos"].([]interface{})
    require.Len(t, seats, 40)
    first := seats[0].(map[string]interface{})
    assert.Equal(t, "disponible", first["estado"])
}

func TestReservarValidation(t *testing.T) {
    e, h := newTestServer(t)
    rec, _ := doJSON(e, h.Reservar, http.MethodPost, "/reservar", `{"rutaId":"R1"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReservarCreatesHold(t *testing.T) {
    e, h := newTestServer(t)
    rec, body := doJSON(e, h.Reservar, http.MethodPost, "/reservar",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":5,"userId":"user-a"}`)
    require.Equal(t, http.StatusCreated, rec.Code)
    assert.Equal(t, true, body["ok"])
    assert.NotEmpty(t, body["holdId"])
    assert.Equal(t, float64(5), body["asiento"])
    assert.Equal(t, float64(300000), body["ttlMs"])
}

func TestReservarConflict(t *testing.T) {
    e, h := newTestServer(t)
    _, _ = doJSON(e, h.Reservar, http.MethodPost, "/reservar",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":5,"userId":"user-a"}`)
    rec, body := doJSON(e, h.Reservar, http.MethodPost, "/reservar",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":5,"userId":"user-b"}`)
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Equal(t, false, body["ok"])
    assert.Equal(t, "held_by_other", body["error"])
}

func TestReservarSeatOutOfRangeIs400(t *testing.T) {
    e, h := newTestServer(t)
    rec, body := doJSON(e, h.Reservar, http.MethodPost, "/reservar",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":41,"userId":"user-a"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Equal(t, "seat_out_of_range", body["error"])
}

func TestListHoldsShape(t *testing.T) {
    e, h := newTestServer(t)
    _, created := doJSON(e, h.Reservar, http.MethodPost, "/reservar",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":5,"userId":"user-a"}`)

    rec, body := doJSON(e, h.ListHolds, http.MethodGet, "/holds", "")
    require.Equal(t, http.StatusOK, rec.Code)
    holds := body["holds"].([]interface{})
    require.Len(t, holds, 1)
    hold := holds[0].(map[string]interface{})
    assert.Equal(t, created["holdId"], hold["holdId"])
    assert.Equal(t, "user-a", hold["userId"])
    assert.Greater(t, hold["remainingMs"], float64(0))
}

func TestReleaseHoldByKey(t *testing.T) {
    e, h := newTestServer(t)
    _, _ = doJSON(e, h.Reservar, http.MethodPost, "/reservar",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":5,"userId":"user-a"}`)

    rec, body := doJSON(e, h.ReleaseHold, http.MethodDelete, "/holds",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":5}`)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, true, body["released"])

    rec, body = doJSON(e, h.ReleaseHold, http.MethodDelete, "/holds",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":5}`)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, false, body["released"])
}

func TestReleaseHoldByToken(t *testing.T) {
    e, h := newTestServer(t)
    _, created := doJSON(e, h.Reservar, http.MethodPost, "/reservar",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":5,"userId":"user-a"}`)

    rec, body := doJSON(e, h.ReleaseHold, http.MethodDelete, "/holds",
        `{"holdId":"`+created["holdId"].(string)+`"}`)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, true, body["released"])
}

func TestReleaseHoldRequiresKeyOrToken(t *testing.T) {
    e, h := newTestServer(t)
    rec, _ := doJSON(e, h.ReleaseHold, http.MethodDelete, "/holds", `{}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFinalizeHappyPath(t *testing.T) {
    e, h := newTestServer(t)
    _, created := doJSON(e, h.Reservar, http.MethodPost, "/reservar",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":5,"userId":"user-a"}`)

    rec, body := doJSON(e, h.ReservarDefinitivo, http.MethodPost, "/reservar-definitivo",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":5,"holdId":"`+created["holdId"].(string)+`"}`)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, true, body["reserved"])
    assert.Equal(t, float64(5), body["asiento"])
}

func TestFinalizeWrongToken(t *testing.T) {
    e, h := newTestServer(t)
    _, _ = doJSON(e, h.Reservar, http.MethodPost, "/reservar",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":5,"userId":"user-a"}`)

    rec, body := doJSON(e, h.ReservarDefinitivo, http.MethodPost, "/reservar-definitivo",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":5,"holdId":"bogus"}`)
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Equal(t, "hold_id_mismatch", body["error"])
}

func TestFinalizeWithoutHold(t *testing.T) {
    e, h := newTestServer(t)
    rec, body := doJSON(e, h.ReservarDefinitivo, http.MethodPost, "/reservar-definitivo",
        `{"rutaId":"R1","fecha":"2025-06-10","asiento":5,"holdId":"bogus"}`)
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Equal(t, "hold_not_found", body["error"])
}
