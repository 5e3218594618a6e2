package service

import (
	"context"
	"testing"

	"github.com/forumwatch/threadwatch/internal/web/domain"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(t *testing.T) (*SessionService, *AccountService) {
	t.Helper()
	st := newTestStore(t)
	accounts := &AccountService{Store: st}
	return &SessionService{Accounts: accounts, Store: st}, accounts
}

func TestSessionServiceLogin(t *testing.T) {
	ctx := context.Background()
	sessions, accounts := newSessionFixture(t)

	account, err := accounts.Create(ctx, "alice@example.com", "hunter2!", domain.RoleUser)
	require.NoError(t, err)

	t.Run("valid credentials open a resolvable session", func(t *testing.T) {
		token, err := sessions.Login(ctx, "alice@example.com", "hunter2!")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		identity, err := sessions.ResolveSession(ctx, token)
		require.NoError(t, err)
		require.Equal(t, account.ID, identity.AccountID)
		require.Equal(t, "alice@example.com", identity.Email)
		require.Equal(t, "user", identity.Role)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, err := sessions.Login(ctx, "alice@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails identically", func(t *testing.T) {
		_, err := sessions.Login(ctx, "nobody@example.com", "hunter2!")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty fields fail", func(t *testing.T) {
		_, err := sessions.Login(ctx, "", "hunter2!")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = sessions.Login(ctx, "alice@example.com", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled account cannot log in", func(t *testing.T) {
		require.NoError(t, accounts.Disable(ctx, account.ID))

		_, err := sessions.Login(ctx, "alice@example.com", "hunter2!")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSessionServiceLogout(t *testing.T) {
	ctx := context.Background()
	sessions, accounts := newSessionFixture(t)

	_, err := accounts.Create(ctx, "alice@example.com", "hunter2!", domain.RoleUser)
	require.NoError(t, err)

	token, err := sessions.Login(ctx, "alice@example.com", "hunter2!")
	require.NoError(t, err)

	require.NoError(t, sessions.Logout(ctx, token))

	_, err = sessions.ResolveSession(ctx, token)
	require.ErrorIs(t, err, ErrSessionNotFound)

	// Logging out an already-dead token is a no-op.
	require.NoError(t, sessions.Logout(ctx, token))
}

func TestSessionServiceFlash(t *testing.T) {
	ctx := context.Background()
	sessions, accounts := newSessionFixture(t)

	_, err := accounts.Create(ctx, "alice@example.com", "hunter2!", domain.RoleUser)
	require.NoError(t, err)

	token, err := sessions.Login(ctx, "alice@example.com", "hunter2!")
	require.NoError(t, err)

	t.Run("flash is read once then cleared", func(t *testing.T) {
		require.NoError(t, sessions.PushFlash(ctx, token, "admins only"))
		require.Equal(t, "admins only", sessions.TakeFlash(ctx, token))
		require.Empty(t, sessions.TakeFlash(ctx, token))
	})

	t.Run("a new flash replaces the pending one", func(t *testing.T) {
		require.NoError(t, sessions.PushFlash(ctx, token, "first"))
		require.NoError(t, sessions.PushFlash(ctx, token, "second"))
		require.Equal(t, "second", sessions.TakeFlash(ctx, token))
	})

	t.Run("flash on an unknown session errors", func(t *testing.T) {
		err := sessions.PushFlash(ctx, "bogus-token", "hello")
		require.Error(t, err)
	})
}

func TestSessionServiceEditTarget(t *testing.T) {
	ctx := context.Background()
	sessions, accounts := newSessionFixture(t)

	_, err := accounts.Create(ctx, "alice@example.com", "hunter2!", domain.RoleUser)
	require.NoError(t, err)

	token, err := sessions.Login(ctx, "alice@example.com", "hunter2!")
	require.NoError(t, err)

	require.NoError(t, sessions.SetEditTarget(ctx, token, "https://forum.example/t/42"))

	current, err := sessions.Current(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "https://forum.example/t/42", current.EditTarget)

	require.NoError(t, sessions.SetEditTarget(ctx, token, ""))

	current, err = sessions.Current(ctx, token)
	require.NoError(t, err)
	require.Empty(t, current.EditTarget)
}

func TestSessionServiceResolveUnknownToken(t *testing.T) {
	ctx := context.Background()
	sessions, _ := newSessionFixture(t)

	_, err := sessions.ResolveSession(ctx, "never-issued")
	require.ErrorIs(t, err, ErrSessionNotFound)
}
