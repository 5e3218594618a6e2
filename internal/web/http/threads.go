package http

import (
	"errors"
	"net/http"

	"github.com/forumwatch/threadwatch/internal/web/service"
	"github.com/forumwatch/threadwatch/pkg/httpx"
	"github.com/forumwatch/threadwatch/pkg/slogx"
	"github.com/forumwatch/threadwatch/pkg/watchsdk"
)

// ThreadsHandler owns the dashboard form posts: add, pause/resume and the
// two-step title rename. Every success redirects back to the dashboard.
type ThreadsHandler struct {
	Sessions *service.SessionService
	Threads  *service.ThreadService
}

func (h *ThreadsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := httpx.IdentityFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Invalid form data",
		}).WriteError(w)
		return
	}

	_, err := h.Threads.Create(ctx, identity.AccountID, service.NewThread{
		Title:        r.FormValue("title"),
		URL:          r.FormValue("url"),
		ColorMessage: r.FormValue("color_message"),
		ColorQuote:   r.FormValue("color_quote"),
		ColorSpoiler: r.FormValue("color_spoiler"),
	})
	switch {
	case err == nil:
		httpx.Redirect(w, r, "/dashboard")
	case errors.Is(err, service.ErrMissingField):
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Title and URL are required",
		}).WriteError(w)
	case errors.Is(err, service.ErrThreadExists):
		(&watchsdk.APIError{
			StatusCode: http.StatusConflict,
			Code:       watchsdk.ErrorCodeConflict,
			Message:    "This thread is already being watched",
		}).WriteError(w)
	default:
		slogx.FromContext(ctx).Error("failed to add thread", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
	}
}

func (h *ThreadsHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := httpx.IdentityFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Invalid form data",
		}).WriteError(w)
		return
	}

	err := h.Threads.TogglePaused(ctx, identity.AccountID, r.FormValue("id"))
	switch {
	case err == nil:
		httpx.Redirect(w, r, "/dashboard")
	case errors.Is(err, service.ErrThreadNotFound):
		(&watchsdk.APIError{
			StatusCode: http.StatusNotFound,
			Code:       watchsdk.ErrorCodeNotFound,
			Message:    "Thread not found",
		}).WriteError(w)
	default:
		slogx.FromContext(ctx).Error("failed to toggle thread", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
	}
}

func (h *ThreadsHandler) HandleEditTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := httpx.IdentityFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Invalid form data",
		}).WriteError(w)
		return
	}

	if err := h.Sessions.SetEditTarget(ctx, identity.SessionToken, r.FormValue("url")); err != nil {
		slogx.FromContext(ctx).Error("failed to park edit target", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
		return
	}

	httpx.Redirect(w, r, "/dashboard")
}

func (h *ThreadsHandler) HandleSaveTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := httpx.IdentityFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Invalid form data",
		}).WriteError(w)
		return
	}

	err := h.Threads.Rename(ctx, identity.AccountID, r.FormValue("url"), r.FormValue("new_title"))
	switch {
	case err == nil:
		// Clear the parked target regardless of whether it matched.
		if err := h.Sessions.SetEditTarget(ctx, identity.SessionToken, ""); err != nil {
			slogx.FromContext(ctx).Warn("failed to clear edit target", "err", err)
		}
		httpx.Redirect(w, r, "/dashboard")
	case errors.Is(err, service.ErrMissingField):
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Title cannot be empty",
		}).WriteError(w)
	case errors.Is(err, service.ErrThreadNotFound):
		(&watchsdk.APIError{
			StatusCode: http.StatusNotFound,
			Code:       watchsdk.ErrorCodeNotFound,
			Message:    "Thread not found",
		}).WriteError(w)
	default:
		slogx.FromContext(ctx).Error("failed to rename thread", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
	}
}
