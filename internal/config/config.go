package config // package config loads application configuration from environment variables

import (
    "log"
    "os"
    "strconv"
    "time"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  Hold TTL, sweep interval
// and seat capacity are environment-level parameters of the inventory
// lock, never request parameters.
type Config struct {
    Env             string        // application environment (e.g. "dev", "prod")
    Port            string        // HTTP port to listen on
    HoldTTL         time.Duration // how long an unfinalized hold lives
    SweepInterval   time.Duration // how often the reaper sweeps for expired holds
    SeatCapacity    int           // seats per route (fixed, not dynamically resized)
    PrecioBase      int64         // default unit price for pricing quotes
    UpstreamURL     string        // primary inventory authority; empty = this process is the authority
    UpstreamTimeout time.Duration // timeout on calls to the primary before falling back
}

// Load reads configuration values from environment variables and
// returns a Config.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message;
// the inventory parameters carry sensible defaults.
func Load() Config {
    return Config{
        Env:             must("APP_ENV"),
        Port:            must("APP_PORT"),
        HoldTTL:         msDur("HOLD_TTL_MS", 5*time.Minute),
        SweepInterval:   msDur("SWEEP_INTERVAL_MS", 45*time.Second),
        SeatCapacity:    envInt("SEAT_CAPACITY", 40),
        PrecioBase:      int64(envInt("PRECIO_BASE", 50000)),
        UpstreamURL:     os.Getenv("UPSTREAM_URL"),
        UpstreamTimeout: msDur("UPSTREAM_TIMEOUT_MS", 15*time.Second),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// msDur reads an integer number of milliseconds, falling back to def
// when the variable is unset or malformed.
func msDur(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil || n <= 0 {
        log.Printf("config: ignoring invalid %s=%q", key, v)
        return def
    }
    return time.Duration(n) * time.Millisecond
}
