package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvitationServiceIssue(t *testing.T) {
	ctx := context.Background()
	svc := &InvitationService{Store: newTestStore(t)}

	t.Run("issues an 8 char uppercase hex code", func(t *testing.T) {
		code, err := svc.Issue(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Regexp(t, regexp.MustCompile(`^[0-9A-F]{8}$`), code)
	})

	t.Run("only the fingerprint is stored", func(t *testing.T) {
		inv, err := svc.Store.Invitations().GetInvitationByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotRegexp(t, regexp.MustCompile(`^[0-9A-F]{8}$`), inv.CodeHash)
		require.False(t, inv.Consumed)
	})

	t.Run("second invitation for the same email is rejected", func(t *testing.T) {
		_, err := svc.Issue(ctx, "alice@example.com")
		require.ErrorIs(t, err, ErrAlreadyInvited)
	})

	t.Run("rejection persists after the invitation is consumed", func(t *testing.T) {
		require.NoError(t, svc.Consume(ctx, "alice@example.com"))

		_, err := svc.Issue(ctx, "alice@example.com")
		require.ErrorIs(t, err, ErrAlreadyInvited)
	})

	t.Run("empty email is rejected", func(t *testing.T) {
		_, err := svc.Issue(ctx, "")
		require.ErrorIs(t, err, ErrMissingField)
	})
}

func TestInvitationServiceConsume(t *testing.T) {
	ctx := context.Background()
	svc := &InvitationService{Store: newTestStore(t)}

	_, err := svc.Issue(ctx, "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Consume(ctx, "alice@example.com"))
	inv, err := svc.Store.Invitations().GetInvitationByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, inv.Consumed)

	// Idempotent, including for emails that were never invited.
	require.NoError(t, svc.Consume(ctx, "alice@example.com"))
	require.NoError(t, svc.Consume(ctx, "nobody@example.com"))
}
