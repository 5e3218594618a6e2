package httpx

import "context"

// Identity is the authenticated caller attached to the request context by
// RequireSession.
type Identity struct {
	AccountID    string
	Email        string
	Role         string
	SessionToken string // opaque server-side session token (raw, not fingerprint)
}

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

func contextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFromContext returns the caller identity, if a session guard ran.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return id, ok
}
