package main // Entry point package

import (
    "context"
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/config"
    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/handler"
    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/inventory"
    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/middleware"
    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/queue"
    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/router"
    queue_publisher "github.com/ElPaul593/BusReservationFullStack-sub000/internal/service"
    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/upstream"
)

func main() {
    _ = godotenv.Load() // .env is optional; real deployments set env directly
    cfg := config.Load()

    // The seat inventory lock: in-memory slot store, hold engine and
    // the background reaper that reclaims expired holds.
    store := inventory.NewMemoryStore()
    engine := inventory.NewEngine(store, cfg.SeatCapacity, cfg.HoldTTL)

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    go inventory.NewReaper(store, cfg.SweepInterval).Run(ctx)

    // With UPSTREAM_URL set this process consumes a primary inventory
    // authority and keeps the local engine as a fallback mirror for
    // outages.  Without it, this process is the authority.
    var inv inventory.Service = engine
    if cfg.UpstreamURL != "" {
        primary := upstream.New(cfg.UpstreamURL, cfg.UpstreamTimeout)
        inv = inventory.NewFailover(primary, engine)
        log.Printf("inventory: consuming upstream authority at %s (timeout=%s)", cfg.UpstreamURL, cfg.UpstreamTimeout)
    }

    // Background consumer writes the reservation audit log.
    go func() {
        if err := queue.StartReservationConsumer(); err != nil {
            log.Printf("reservation consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    e.Validator = handler.NewRequestValidator()

    // Redis-backed rate limiting; degrades to pass-through when Redis
    // is unreachable.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; rate limiting disabled")
    }
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    invHandler := handler.NewInventoryHandler(inv, cfg.HoldTTL, queue_publisher.PublishReservationFinalized)
    priceHandler := handler.NewPricingHandler(cfg.PrecioBase)
    router.RegisterRoutes(e, invHandler, priceHandler)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s capacity=%d ttl=%s)", addr, cfg.Env, cfg.SeatCapacity, cfg.HoldTTL)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
