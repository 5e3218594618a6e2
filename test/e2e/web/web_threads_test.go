package web_test

import (
	"net/http"
	"testing"

	"github.com/forumwatch/threadwatch/pkg/watchsdk"
	"github.com/stretchr/testify/require"
)

// TestThreadLifecycle drives a thread from creation through pause, rename
// and back, all through the dashboard surface.
func TestThreadLifecycle(t *testing.T) {
	baseURL, cleanup := setupWebContainer(t)
	defer cleanup()

	client := adminClient(t, baseURL)

	thread := watchsdk.Thread{
		Title:        "Release discussion",
		URL:          "https://forum.example.com/t/42",
		ColorMessage: "#112233",
		ColorQuote:   "#445566",
		ColorSpoiler: "#778899",
	}
	require.NoError(t, client.AddThread(t.Context(), thread))

	page, err := client.Dashboard(t.Context())
	require.NoError(t, err)
	require.Len(t, page.Threads, 1)
	require.Equal(t, thread.URL, page.Threads[0].URL)
	require.Equal(t, thread.ColorMessage, page.Threads[0].ColorMessage)
	require.False(t, page.Threads[0].Paused)

	// Pause and resume.
	id := page.Threads[0].ID
	require.NoError(t, client.ToggleThread(t.Context(), id))
	page, err = client.Dashboard(t.Context())
	require.NoError(t, err)
	require.True(t, page.Threads[0].Paused)

	require.NoError(t, client.ToggleThread(t.Context(), id))
	page, err = client.Dashboard(t.Context())
	require.NoError(t, err)
	require.False(t, page.Threads[0].Paused)

	// Two-step rename: mark, then save.
	require.NoError(t, client.EditTitle(t.Context(), thread.URL))
	page, err = client.Dashboard(t.Context())
	require.NoError(t, err)
	require.True(t, page.Threads[0].Editing)

	require.NoError(t, client.SaveTitle(t.Context(), thread.URL, "Renamed discussion"))
	page, err = client.Dashboard(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Renamed discussion", page.Threads[0].Title)
	require.False(t, page.Threads[0].Editing)
}

// TestThreadValidation verifies duplicate URLs and missing fields are
// rejected.
func TestThreadValidation(t *testing.T) {
	baseURL, cleanup := setupWebContainer(t)
	defer cleanup()

	client := adminClient(t, baseURL)

	thread := watchsdk.Thread{
		Title: "Watched thread",
		URL:   "https://forum.example.com/t/7",
	}
	require.NoError(t, client.AddThread(t.Context(), thread))

	err := client.AddThread(t.Context(), thread)
	assertAPIError(t, err, http.StatusConflict, watchsdk.ErrorCodeConflict)

	err = client.AddThread(t.Context(), watchsdk.Thread{Title: "No URL"})
	assertAPIError(t, err, http.StatusBadRequest, watchsdk.ErrorCodeInvalidRequest)

	err = client.ToggleThread(t.Context(), "no-such-thread")
	assertAPIError(t, err, http.StatusNotFound, watchsdk.ErrorCodeNotFound)
}
