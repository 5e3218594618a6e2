package web_test

import (
	"net/http"
	"testing"

	"github.com/forumwatch/threadwatch/pkg/watchsdk"
	"github.com/stretchr/testify/require"
)

// TestAdminOverview verifies the user overview answers for the
// administrator and excludes the administrator itself.
func TestAdminOverview(t *testing.T) {
	baseURL, cleanup := setupWebContainer(t)
	defer cleanup()

	client := adminClient(t, baseURL)

	page, err := client.AdminUsers(t.Context())
	require.NoError(t, err)
	require.Equal(t, "admin", page.Page)

	for _, u := range page.Users {
		require.NotEqual(t, adminEmail, u.Email)
	}
}

// TestAdminUnknownUser verifies the detail page 404s for an id that does
// not exist.
func TestAdminUnknownUser(t *testing.T) {
	baseURL, cleanup := setupWebContainer(t)
	defer cleanup()

	client := adminClient(t, baseURL)

	_, err := client.AdminUserThreads(t.Context(), "no-such-user")
	assertAPIError(t, err, http.StatusNotFound, watchsdk.ErrorCodeNotFound)
}

// TestInviteFlow verifies an administrator can pre-invite an email and the
// outcome notice survives the redirect back to the invite page.
func TestInviteFlow(t *testing.T) {
	baseURL, cleanup := setupWebContainer(t)
	defer cleanup()

	client := adminClient(t, baseURL)

	require.NoError(t, client.Invite(t.Context(), "guest@threadwatch.test"))

	page, err := client.InvitePage(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Invitation sent to the administrator", page.Flash)

	// Inviting the same email again is surfaced as a notice, not an error.
	require.NoError(t, client.Invite(t.Context(), "guest@threadwatch.test"))
	page, err = client.InvitePage(t.Context())
	require.NoError(t, err)
	require.Equal(t, "An invitation already exists for this email", page.Flash)

	// The claimed email cannot self-request a code anymore.
	err = watchsdk.NewClient(baseURL).RequestCode(t.Context(), "guest@threadwatch.test")
	assertAPIError(t, err, http.StatusConflict, watchsdk.ErrorCodeConflict)
}

// TestAdminRoutesRequireAdmin verifies an anonymous browser never reaches
// the admin surface.
func TestAdminRoutesRequireAdmin(t *testing.T) {
	baseURL, cleanup := setupWebContainer(t)
	defer cleanup()

	client := watchsdk.NewClient(baseURL)

	_, err := client.AdminUsers(t.Context())
	assertRedirect(t, err, "/login")

	_, err = client.InvitePage(t.Context())
	assertRedirect(t, err, "/login")
}
