// Package upstream talks to the primary inventory authority over its
// HTTP surface.  The client implements the same inventory.Service
// contract as the local engine, which is what lets the failover layer
// swap one for the other without duplicating the state machine.
package upstream

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "net/url"
    "time"

    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/inventory"
    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/model"
)

// Client calls the primary authority.  Every request carries the
// configured timeout — this outbound call is the only blocking point
// in the subsystem, and when it trips the failover layer takes over.
type Client struct {
    base string
    http *http.Client
}

// New builds a client for the authority at base (scheme://host:port).
func New(base string, timeout time.Duration) *Client {
    return &Client{
        base: base,
        http: &http.Client{Timeout: timeout},
    }
}

// unavailable wraps transport and protocol failures so the failover
// layer can recognize them with errors.Is.
func unavailable(op string, cause error) error {
    return fmt.Errorf("%s: %v: %w", op, cause, inventory.ErrUpstreamUnavailable)
}

// conflictFromCode maps the wire error code of a 409 back onto the
// local sentinel so handlers treat both paths identically.
func conflictFromCode(code string) error {
    switch code {
    case "already_reserved":
        return inventory.ErrAlreadyReserved
    case "held_by_other":
        return inventory.ErrHeldByOther
    case "hold_not_found":
        return inventory.ErrHoldNotFound
    case "hold_id_mismatch":
        return inventory.ErrHoldIDMismatch
    case "hold_expired":
        return inventory.ErrHoldExpired
    default:
        return fmt.Errorf("conflict: %s", code)
    }
}

// do issues one request and decodes the response into out.  A 409 is
// decoded into its conflict sentinel; any other non-2xx status, and
// any transport error, is reported as upstream unavailability.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
    u := c.base + path
    if len(query) > 0 {
        u += "?" + query.Encode()
    }
    var reader *bytes.Reader
    if body != nil {
        raw, err := json.Marshal(body)
        if err != nil {
            return fmt.Errorf("%s %s: marshal: %w", method, path, err)
        }
        reader = bytes.NewReader(raw)
    } else {
        reader = bytes.NewReader(nil)
    }
    req, err := http.NewRequestWithContext(ctx, method, u, reader)
    if err != nil {
        return unavailable(method+" "+path, err)
    }
    req.Header.Set("Content-Type", "application/json")

    resp, err := c.http.Do(req)
    if err != nil {
        return unavailable(method+" "+path, err)
    }
    defer resp.Body.Close()

    if resp.StatusCode == http.StatusConflict {
        var conflict struct {
            Error string `json:"error"`
        }
        if err := json.NewDecoder(resp.Body).Decode(&conflict); err != nil {
            return unavailable(method+" "+path, err)
        }
        return conflictFromCode(conflict.Error)
    }
    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        return unavailable(method+" "+path, fmt.Errorf("status %d", resp.StatusCode))
    }
    if out != nil {
        if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
            return unavailable(method+" "+path, err)
        }
    }
    return nil
}

func (c *Client) Availability(ctx context.Context, rutaID, fecha, userID string) ([]model.SeatView, error) {
    q := url.Values{}
    q.Set("rutaId", rutaID)
    q.Set("fecha", fecha)
    if userID != "" {
        q.Set("userId", userID)
    }
    var resp struct {
        Asientos []model.SeatView `json:"asientos"`
    }
    if err := c.do(ctx, http.MethodGet, "/disponibles", q, nil, &resp); err != nil {
        return nil, err
    }
    return resp.Asientos, nil
}

func (c *Client) RequestHold(ctx context.Context, rutaID, fecha string, asiento int, userID string) (model.Hold, error) {
    body := map[string]interface{}{
        "rutaId":  rutaID,
        "fecha":   fecha,
        "asiento": asiento,
        "userId":  userID,
    }
    var resp struct {
        HoldID    string    `json:"holdId"`
        ExpiresAt time.Time `json:"expiresAt"`
    }
    if err := c.do(ctx, http.MethodPost, "/reservar", nil, body, &resp); err != nil {
        return model.Hold{}, err
    }
    return model.Hold{
        HoldID:    resp.HoldID,
        UserID:    userID,
        RutaID:    rutaID,
        Fecha:     fecha,
        Asiento:   asiento,
        CreatedAt: time.Now().UTC(),
        ExpiresAt: resp.ExpiresAt,
    }, nil
}

func (c *Client) ReleaseHold(ctx context.Context, rutaID, fecha string, asiento int) (bool, error) {
    body := map[string]interface{}{
        "rutaId":  rutaID,
        "fecha":   fecha,
        "asiento": asiento,
    }
    var resp struct {
        Released bool `json:"released"`
    }
    if err := c.do(ctx, http.MethodDelete, "/holds", nil, body, &resp); err != nil {
        return false, err
    }
    return resp.Released, nil
}

func (c *Client) ReleaseByHoldID(ctx context.Context, holdID string) (bool, error) {
    body := map[string]interface{}{"holdId": holdID}
    var resp struct {
        Released bool `json:"released"`
    }
    if err := c.do(ctx, http.MethodDelete, "/holds", nil, body, &resp); err != nil {
        return false, err
    }
    return resp.Released, nil
}

func (c *Client) ListHolds(ctx context.Context) ([]model.Hold, error) {
    var resp struct {
        Holds []struct {
            RutaID    string    `json:"rutaId"`
            Fecha     string    `json:"fecha"`
            Asiento   int       `json:"asiento"`
            HoldID    string    `json:"holdId"`
            UserID    string    `json:"userId"`
            CreatedAt time.Time `json:"createdAt"`
            ExpiresAt time.Time `json:"expiresAt"`
        } `json:"holds"`
    }
    if err := c.do(ctx, http.MethodGet, "/holds", nil, nil, &resp); err != nil {
        return nil, err
    }
    holds := make([]model.Hold, 0, len(resp.Holds))
    for _, h := range resp.Holds {
        holds = append(holds, model.Hold{
            HoldID:    h.HoldID,
            UserID:    h.UserID,
            RutaID:    h.RutaID,
            Fecha:     h.Fecha,
            Asiento:   h.Asiento,
            CreatedAt: h.CreatedAt,
            ExpiresAt: h.ExpiresAt,
        })
    }
    return holds, nil
}

func (c *Client) Finalize(ctx context.Context, rutaID, fecha string, asiento int, holdID string) (model.Reservation, error) {
    body := map[string]interface{}{
        "rutaId":  rutaID,
        "fecha":   fecha,
        "asiento": asiento,
        "holdId":  holdID,
    }
    var resp struct {
        Reserved bool `json:"reserved"`
    }
    if err := c.do(ctx, http.MethodPost, "/reservar-definitivo", nil, body, &resp); err != nil {
        return model.Reservation{}, err
    }
    return model.Reservation{
        RutaID:     rutaID,
        Fecha:      fecha,
        Asiento:    asiento,
        HoldID:     holdID,
        ReservedAt: time.Now().UTC(),
    }, nil
}
