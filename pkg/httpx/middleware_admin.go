package httpx

import (
	"context"
	"net/http"

	"github.com/forumwatch/threadwatch/pkg/slogx"
)

// FlashWriter stores a one-shot notice on the caller's session so the next
// page load can surface it.
type FlashWriter interface {
	PushFlash(ctx context.Context, sessionToken, message string) error
}

// RequireRole gates a route to callers whose session role matches. Must run
// after RequireSession. A mismatch leaves a flash notice and redirects to
// homePath; the response carries no hint of what the route would have shown.
func RequireRole(role string, flash FlashWriter, notice, homePath string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			identity, ok := IdentityFromContext(ctx)
			if !ok || identity.Role != role {
				if ok && flash != nil {
					if err := flash.PushFlash(ctx, identity.SessionToken, notice); err != nil {
						slogx.FromContext(ctx).Warn("failed to set flash notice", "err", err)
					}
				}
				Redirect(w, r, homePath)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
