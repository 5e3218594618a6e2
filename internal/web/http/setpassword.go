package http

import (
	"errors"
	"net/http"

	"github.com/forumwatch/threadwatch/internal/web/service"
	"github.com/forumwatch/threadwatch/pkg/httpx"
	"github.com/forumwatch/threadwatch/pkg/slogx"
	"github.com/forumwatch/threadwatch/pkg/watchsdk"
)

// SetPasswordHandler is the final registration step. Only reachable with a
// live, verified attempt; anyone else is sent back to /register.
type SetPasswordHandler struct {
	Registration *service.RegistrationService
	Secret       []byte
}

func (h *SetPasswordHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	token := attemptToken(r, h.Secret)
	if token == "" {
		httpx.Redirect(w, r, "/register")
		return
	}

	email, err := h.Registration.AttemptEmail(r.Context(), token)
	if err != nil {
		httpx.ClearCookie(w, RegistrationCookie)
		httpx.Redirect(w, r, "/register")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, watchsdk.SetPasswordPage{
		Page:  "set_password",
		Email: email,
	})
}

func (h *SetPasswordHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Invalid form data",
		}).WriteError(w)
		return
	}

	token := attemptToken(r, h.Secret)
	if token == "" {
		httpx.Redirect(w, r, "/register")
		return
	}

	_, err := h.Registration.CompletePassword(ctx, token, r.FormValue("password"))
	switch {
	case err == nil:
		httpx.ClearCookie(w, RegistrationCookie)
		httpx.Redirect(w, r, "/login")
	case errors.Is(err, service.ErrMissingField):
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Password is required",
		}).WriteError(w)
	case errors.Is(err, service.ErrCodeNotVerified):
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeCodeNotVerified,
			Message:    "Verify your code first",
		}).WriteError(w)
	case errors.Is(err, service.ErrAttemptNotFound):
		httpx.ClearCookie(w, RegistrationCookie)
		httpx.Redirect(w, r, "/register")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.ClearCookie(w, RegistrationCookie)
		(&watchsdk.APIError{
			StatusCode: http.StatusConflict,
			Code:       watchsdk.ErrorCodeConflict,
			Message:    "An account with this email already exists",
		}).WriteError(w)
	default:
		slogx.FromContext(ctx).Error("failed to complete registration", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
	}
}
