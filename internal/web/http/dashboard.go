package http

import (
	"net/http"

	"github.com/forumwatch/threadwatch/internal/web/domain"
	"github.com/forumwatch/threadwatch/internal/web/service"
	"github.com/forumwatch/threadwatch/pkg/httpx"
	"github.com/forumwatch/threadwatch/pkg/slogx"
	"github.com/forumwatch/threadwatch/pkg/watchsdk"
)

// DashboardHandler renders the caller's threads.
type DashboardHandler struct {
	Sessions *service.SessionService
	Threads  *service.ThreadService
}

func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := httpx.IdentityFromContext(ctx)

	session, err := h.Sessions.Current(ctx, identity.SessionToken)
	if err != nil {
		httpx.Redirect(w, r, "/login")
		return
	}

	threads, err := h.Threads.ListByAccount(ctx, identity.AccountID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list threads", "err", err)
		(&watchsdk.APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       watchsdk.ErrorCodeServerError,
			Message:    "Something went wrong",
		}).WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, watchsdk.DashboardPage{
		Page:    "dashboard",
		Email:   identity.Email,
		Role:    identity.Role,
		Flash:   h.Sessions.TakeFlash(ctx, identity.SessionToken),
		Threads: toSDKThreads(threads, session.EditTarget),
	})
}

// toSDKThreads converts domain threads into the shared payload type, marking
// the one parked for renaming.
func toSDKThreads(threads []domain.Thread, editTarget string) []watchsdk.Thread {
	out := make([]watchsdk.Thread, 0, len(threads))
	for _, t := range threads {
		out = append(out, watchsdk.Thread{
			ID:           t.ID,
			Title:        t.Title,
			URL:          t.URL,
			ColorMessage: t.ColorMessage,
			ColorQuote:   t.ColorQuote,
			ColorSpoiler: t.ColorSpoiler,
			Paused:       t.Paused,
			Editing:      editTarget != "" && editTarget == t.URL,
		})
	}
	return out
}
