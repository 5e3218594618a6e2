package http

import (
	"net/http"

	"github.com/forumwatch/threadwatch/internal/web/service"
	"github.com/forumwatch/threadwatch/pkg/httpx"
	"github.com/forumwatch/threadwatch/pkg/watchsdk"
)

// HomeHandler serves the landing page. Callers with a live session go
// straight to the dashboard.
type HomeHandler struct {
	Sessions *service.SessionService
	Secret   []byte
}

func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if token, err := httpx.ParseCookieToken(h.Secret, cookie.Value); err == nil {
			if _, err := h.Sessions.ResolveSession(r.Context(), token); err == nil {
				httpx.Redirect(w, r, "/dashboard")
				return
			}
		}
	}

	httpx.WriteJSON(w, http.StatusOK, watchsdk.Page{Page: "landing"})
}
