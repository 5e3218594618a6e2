package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/forumwatch/threadwatch/internal/web/service"
	"github.com/forumwatch/threadwatch/pkg/httpx"
	"github.com/forumwatch/threadwatch/pkg/slogx"
	"github.com/forumwatch/threadwatch/pkg/watchsdk"
)

// InviteHandler lets an administrator pre-invite an email. The generated
// code is mailed to the administrator, same as a self-service registration.
type InviteHandler struct {
	Invitations *service.InvitationService
	Notifier    service.Notifier
	Sessions    *service.SessionService
	AdminEmail  string
}

func (h *InviteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := httpx.IdentityFromContext(ctx)

	httpx.WriteJSON(w, http.StatusOK, watchsdk.Page{
		Page:  "invite",
		Flash: h.Sessions.TakeFlash(ctx, identity.SessionToken),
	})
}

func (h *InviteHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := httpx.IdentityFromContext(ctx)
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Invalid form data",
		}).WriteError(w)
		return
	}

	email := r.FormValue("email")
	if email == "" {
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Email is required",
		}).WriteError(w)
		return
	}

	code, err := h.Invitations.Issue(ctx, email)
	switch {
	case err == nil:
		h.Notifier.Notify(h.AdminEmail, "New invitation",
			fmt.Sprintf("New user: %s\nCode: %s", email, code))
		h.flash(ctx, identity.SessionToken, "Invitation sent to the administrator")
		httpx.Redirect(w, r, "/invite")
	case errors.Is(err, service.ErrAlreadyInvited):
		h.flash(ctx, identity.SessionToken, "An invitation already exists for this email")
		httpx.Redirect(w, r, "/invite")
	default:
		log.Error("failed to issue invitation", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
	}
}

func (h *InviteHandler) flash(ctx context.Context, token, message string) {
	if err := h.Sessions.PushFlash(ctx, token, message); err != nil {
		slogx.FromContext(ctx).Warn("failed to set flash notice", "err", err)
	}
}
