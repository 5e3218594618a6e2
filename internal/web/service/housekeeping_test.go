package service

import (
	"context"
	"testing"
	"time"

	"github.com/forumwatch/threadwatch/internal/web/domain"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	sessions := []domain.Session{
		{TokenHash: "live-session", AccountID: "a1", Email: "alice@example.com",
			Role: domain.RoleUser, ExpiresAt: time.Now().Add(time.Hour)},
		{TokenHash: "dead-session", AccountID: "a1", Email: "alice@example.com",
			Role: domain.RoleUser, ExpiresAt: time.Now().Add(-time.Hour)},
	}
	for _, s := range sessions {
		require.NoError(t, st.Sessions().CreateSession(ctx, s))
	}

	attempts := []domain.RegistrationAttempt{
		{TokenHash: "live-attempt", Email: "bob@example.com", CodeHash: "x",
			ExpiresAt: time.Now().Add(time.Hour)},
		{TokenHash: "dead-attempt", Email: "carol@example.com", CodeHash: "x",
			ExpiresAt: time.Now().Add(-time.Hour)},
	}
	for _, a := range attempts {
		require.NoError(t, st.Registrations().CreateAttempt(ctx, a))
	}

	svc := NewHousekeepingService(st, discardLogger(), time.Hour)
	svc.cleanup()

	// Expired rows are gone: updates that ignore expiry no longer find them.
	require.Error(t, st.Sessions().SetSessionFlash(ctx, "dead-session", "x"))
	require.Error(t, st.Registrations().MarkAttemptVerified(ctx, "dead-attempt"))

	// Live rows survive.
	require.NoError(t, st.Sessions().SetSessionFlash(ctx, "live-session", "x"))
	require.NoError(t, st.Registrations().MarkAttemptVerified(ctx, "live-attempt"))
}

func TestHousekeepingStartStop(t *testing.T) {
	svc := NewHousekeepingService(newTestStore(t), discardLogger(), 10*time.Millisecond)

	svc.Start()
	time.Sleep(30 * time.Millisecond)
	svc.Stop()
}
