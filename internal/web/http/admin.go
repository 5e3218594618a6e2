package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/forumwatch/threadwatch/internal/web/domain"
	"github.com/forumwatch/threadwatch/internal/web/service"
	"github.com/forumwatch/threadwatch/pkg/httpx"
	"github.com/forumwatch/threadwatch/pkg/slogx"
	"github.com/forumwatch/threadwatch/pkg/watchsdk"
)

// AdminHandler owns the user management surface: the account overview, one
// user's threads, and the moderation posts (toggle, remove, disable). All
// routes sit behind the admin guard.
type AdminHandler struct {
	Accounts *service.AccountService
	Sessions *service.SessionService
	Threads  *service.ThreadService
}

func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := httpx.IdentityFromContext(ctx)

	users, err := h.Accounts.ListUsers(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
		return
	}

	page := watchsdk.AdminUsersPage{
		Page:  "admin",
		Flash: h.Sessions.TakeFlash(ctx, identity.SessionToken),
		Users: make([]watchsdk.AdminUser, 0, len(users)),
	}
	for _, u := range users {
		page.Users = append(page.Users, toSDKUser(u))
	}

	httpx.WriteJSON(w, http.StatusOK, page)
}

func (h *AdminHandler) HandleUserThreads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	account, ok := h.targetUser(w, r)
	if !ok {
		return
	}

	threads, err := h.Threads.ListByAccount(ctx, account.ID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list user threads", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, watchsdk.AdminThreadsPage{
		Page:    "admin_user",
		User:    toSDKUser(account),
		Threads: toSDKThreads(threads, ""),
	})
}

func (h *AdminHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	account, ok := h.targetUser(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Invalid form data",
		}).WriteError(w)
		return
	}

	err := h.Threads.TogglePaused(ctx, account.ID, r.FormValue("id"))
	h.moderationOutcome(w, r, err, "/admin/"+account.ID)
}

func (h *AdminHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	account, ok := h.targetUser(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		(&watchsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       watchsdk.ErrorCodeInvalidRequest,
			Message:    "Invalid form data",
		}).WriteError(w)
		return
	}

	err := h.Threads.Delete(ctx, account.ID, r.FormValue("id"))
	h.moderationOutcome(w, r, err, "/admin/"+account.ID)
}

func (h *AdminHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	account, ok := h.targetUser(w, r)
	if !ok {
		return
	}

	if err := h.Accounts.Disable(ctx, account.ID); err != nil {
		slogx.FromContext(ctx).Error("failed to disable account", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
		return
	}

	httpx.Redirect(w, r, "/admin")
}

// targetUser resolves the {userId} path parameter. A miss writes the 404
// and reports false.
func (h *AdminHandler) targetUser(w http.ResponseWriter, r *http.Request) (domain.Account, bool) {
	account, err := h.Accounts.GetByID(r.Context(), r.PathValue("userId"))
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			(&watchsdk.APIError{
				StatusCode: http.StatusNotFound,
				Code:       watchsdk.ErrorCodeNotFound,
				Message:    "User not found",
			}).WriteError(w)
		} else {
			slogx.FromContext(r.Context()).Error("failed to load user", "err", err)
			(&watchsdk.APIError{
				StatusCode: http.StatusInternalServerError,
				Code:       watchsdk.ErrorCodeServerError,
				Message:    "Something went wrong",
			}).WriteError(w)
		}
		return domain.Account{}, false
	}
	return account, true
}

// moderationOutcome maps a thread moderation result onto the wire: success
// redirects back to the target user's page.
func (h *AdminHandler) moderationOutcome(w http.ResponseWriter, r *http.Request, err error, backTo string) {
	switch {
	case err == nil:
		httpx.Redirect(w, r, backTo)
	case errors.Is(err, service.ErrThreadNotFound):
		(&watchsdk.APIError{
			StatusCode: http.StatusNotFound,
			Code:       watchsdk.ErrorCodeNotFound,
			Message:    "Thread not found",
		}).WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("moderation action failed", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
	}
}

func toSDKUser(a domain.Account) watchsdk.AdminUser {
	return watchsdk.AdminUser{
		ID:        a.ID,
		Email:     a.Email,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
