package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/forumwatch/threadwatch/internal/web/service"
	"github.com/forumwatch/threadwatch/pkg/httpx"
	"github.com/forumwatch/threadwatch/pkg/slogx"
	"github.com/forumwatch/threadwatch/pkg/watchsdk"
)

// LoginHandler authenticates against the credential store and issues the
// session cookie.
type LoginHandler struct {
	Sessions   *service.SessionService
	Secret     []byte
	SessionTTL time.Duration
}

func (h *LoginHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, watchsdk.Page{Page: "login"})
}

func (h *LoginHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Invalid form data",
		}).WriteError(w)
		return
	}

	token, err := h.Sessions.Login(ctx, r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			(&watchsdk.APIError{
				StatusCode: http.StatusUnauthorized,
				Code:       watchsdk.ErrorCodeInvalidCredentials,
				Message:    "Incorrect email or password",
			}).WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
		return
	}

	signed, err := httpx.SignCookieToken(h.Secret, token, h.SessionTTL)
	if err != nil {
		log.Error("failed to sign session cookie", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
		return
	}

	httpx.SetCookie(w, SessionCookie, signed, h.SessionTTL)
	httpx.Redirect(w, r, "/dashboard")
}

// LogoutHandler destroys the session and clears the cookie. Safe to hit
// without a session.
type LogoutHandler struct {
	Sessions *service.SessionService
	Secret   []byte
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if token, err := httpx.ParseCookieToken(h.Secret, cookie.Value); err == nil {
			if err := h.Sessions.Logout(r.Context(), token); err != nil {
				slogx.FromContext(r.Context()).Warn("logout failed", "err", err)
			}
		}
	}

	httpx.ClearCookie(w, SessionCookie)
	httpx.Redirect(w, r, "/login")
}
