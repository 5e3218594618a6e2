package http

import (
	"net/http"
	"time"

	"github.com/forumwatch/threadwatch/pkg/httpx"
	"github.com/forumwatch/threadwatch/pkg/watchsdk"
)

// LivezHandler is the liveness probe: 200 whenever the process is serving.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, watchsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
