package http

import (
	"errors"
	"net/http"

	"github.com/forumwatch/threadwatch/internal/web/service"
	"github.com/forumwatch/threadwatch/pkg/httpx"
	"github.com/forumwatch/threadwatch/pkg/slogx"
	"github.com/forumwatch/threadwatch/pkg/watchsdk"
)

// RegisterHandler drives the first two registration steps: requesting a code
// (delivered to the administrator) and verifying it. The in-flight attempt is
// tracked by an opaque token in the registration cookie.
type RegisterHandler struct {
	Registration *service.RegistrationService
	Secret       []byte
}

// attemptToken extracts the registration attempt token from the cookie, or
// "" when the caller has no usable attempt.
func attemptToken(r *http.Request, secret []byte) string {
	cookie, err := r.Cookie(RegistrationCookie)
	if err != nil {
		return ""
	}
	token, err := httpx.ParseCookieToken(secret, cookie.Value)
	if err != nil {
		return ""
	}
	return token
}

func (h *RegisterHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	stage := "request"
	if token := attemptToken(r, h.Secret); token != "" {
		if _, err := h.Registration.AttemptEmail(r.Context(), token); err == nil {
			stage = "verify"
		}
	}

	httpx.WriteJSON(w, http.StatusOK, watchsdk.RegisterPage{Page: "register", Stage: stage})
}

func (h *RegisterHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Invalid form data",
		}).WriteError(w)
		return
	}

	// The same form posts both steps; the send_code button marks the first.
	if r.FormValue("send_code") != "" {
		h.handleSendCode(w, r)
		return
	}
	h.handleVerify(w, r)
}

func (h *RegisterHandler) handleSendCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email := r.FormValue("email")
	if email == "" {
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Email is required",
		}).WriteError(w)
		return
	}

	token, err := h.Registration.RequestCode(ctx, email)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyInvited) {
			(&watchsdk.APIError{
				StatusCode: http.StatusConflict,
				Code:       watchsdk.ErrorCodeConflict,
				Message:    "An invitation already exists for this email",
			}).WriteError(w)
			return
		}
		log.Error("failed to request registration code", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
		return
	}

	signed, err := httpx.SignCookieToken(h.Secret, token, service.RegistrationTTL)
	if err != nil {
		log.Error("failed to sign registration cookie", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
		return
	}

	httpx.SetCookie(w, RegistrationCookie, signed, service.RegistrationTTL)
	httpx.Redirect(w, r, "/register")
}

func (h *RegisterHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := attemptToken(r, h.Secret)
	if token == "" {
		httpx.Redirect(w, r, "/register")
		return
	}

	err := h.Registration.VerifyCode(ctx, token, r.FormValue("code"))
	switch {
	case err == nil:
		httpx.Redirect(w, r, "/set-password")
	case errors.Is(err, service.ErrCodeMismatch):
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeCodeMismatch,
			Message:    "Incorrect code",
		}).WriteError(w)
	case errors.Is(err, service.ErrTooManyAttempts):
		// The attempt is gone; the registrant must start over.
		httpx.ClearCookie(w, RegistrationCookie)
		(&watchsdk.APIError{
			StatusCode: http.StatusTooManyRequests,
			Code:       watchsdk.ErrorCodeTooManyAttempts,
			Message:    "Too many incorrect codes, request a new one",
		}).WriteError(w)
	case errors.Is(err, service.ErrAttemptNotFound):
		httpx.ClearCookie(w, RegistrationCookie)
		httpx.Redirect(w, r, "/register")
	default:
		slogx.FromContext(ctx).Error("failed to verify registration code", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
	}
}
