package httpx

import (
	"context"
	"net/http"

	"github.com/forumwatch/threadwatch/pkg/slogx"
)

// SessionResolver turns an opaque browser-held token into an Identity.
// Implementations look the token up in server-side storage; expired or
// unknown tokens return an error.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (Identity, error)
}

// RequireSession authenticates the request via the named cookie. Failure is
// an HTTP redirect to loginPath, never an error body.
func RequireSession(resolver SessionResolver, secret []byte, cookieName, loginPath string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(cookieName)
			if err != nil {
				Redirect(w, r, loginPath)
				return
			}

			token, err := ParseCookieToken(secret, cookie.Value)
			if err != nil {
				log.Warn("session cookie rejected", "err", err)
				ClearCookie(w, cookieName)
				Redirect(w, r, loginPath)
				return
			}

			identity, err := resolver.ResolveSession(ctx, token)
			if err != nil {
				ClearCookie(w, cookieName)
				Redirect(w, r, loginPath)
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithIdentity(ctx, identity)))
		})
	}
}
