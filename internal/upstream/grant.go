package upstream

import "context"

// Grant carries the caller's credential into the interceptor transport,
// together with a hook for destroying the backing session when the
// credential turns out to be expired or rejected. It is attached to the
// request context by the HTTP layer; requests without a grant are treated as
// anonymous.
type Grant struct {
	// Credential is the bearer token string, possibly empty or poisoned.
	Credential string

	// Invalidate destroys the backing session. Called by the transport when
	// the credential is expired, poisoned, or rejected by the backend with an
	// authentication failure. May be nil for anonymous grants.
	Invalidate func(ctx context.Context) error
}

// invalidate runs the hook if present, swallowing nothing.
func (g *Grant) invalidate(ctx context.Context) error {
	if g == nil || g.Invalidate == nil {
		return nil
	}
	return g.Invalidate(ctx)
}

// grantKey is an unexported context key type to avoid collisions.
type grantKey struct{}

// WithGrant returns a child context carrying the grant.
func WithGrant(ctx context.Context, grant *Grant) context.Context {
	if grant == nil {
		return ctx
	}
	return context.WithValue(ctx, grantKey{}, grant)
}

// GrantFromContext returns the grant attached to ctx, or nil.
func GrantFromContext(ctx context.Context) *Grant {
	if g, ok := ctx.Value(grantKey{}).(*Grant); ok {
		return g
	}
	return nil
}
