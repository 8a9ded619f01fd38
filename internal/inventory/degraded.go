package inventory

import "context"

type degradedKey struct{}

// WithDegradedFlag attaches a flag to the context that the Failover
// layer sets when a call is served by the mirror instead of the
// primary authority.  The HTTP layer uses it to tag degraded responses
// for observability without ever surfacing the upstream failure to the
// caller.
func WithDegradedFlag(ctx context.Context) (context.Context, *bool) {
    flag := new(bool)
    return context.WithValue(ctx, degradedKey{}, flag), flag
}

func markDegraded(ctx context.Context) {
    if flag, ok := ctx.Value(degradedKey{}).(*bool); ok {
        *flag = true
    }
}
