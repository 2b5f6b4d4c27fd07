package auth

import "context"

// contextKey is a private type for context keys so they cannot collide
// with keys from other packages.
type contextKey string

const identityKey = contextKey("authIdentity")

// WithIdentity returns a context carrying the authenticated claims.
func WithIdentity(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, identityKey, claims)
}

// IdentityFromContext retrieves the authenticated claims attached by the
// auth middleware, if present.
func IdentityFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(identityKey).(Claims)
	return claims, ok
}
