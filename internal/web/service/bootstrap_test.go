package service

import (
	"context"
	"testing"

	"github.com/forumwatch/threadwatch/internal/web/domain"
	"github.com/stretchr/testify/require"
)

func TestBootstrapSeedsAdmin(t *testing.T) {
	ctx := context.Background()
	accounts := &AccountService{Store: newTestStore(t)}

	boot := &BootstrapService{
		Accounts:   accounts,
		AdminEmail: "admin@example.com",
		AdminPass:  "bootstrap-secret",
	}

	require.NoError(t, boot.Run(ctx))

	admin, err := accounts.FindActiveByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, admin.Role)
	require.True(t, accounts.VerifySecret(admin, "bootstrap-secret"))

	t.Run("a restart is a no-op", func(t *testing.T) {
		require.NoError(t, boot.Run(ctx))

		again, err := accounts.FindActiveByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		require.Equal(t, admin.ID, again.ID)
	})

	t.Run("a changed password does not reseed", func(t *testing.T) {
		boot.AdminPass = "rotated-secret"
		require.NoError(t, boot.Run(ctx))

		same, err := accounts.FindActiveByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		require.True(t, accounts.VerifySecret(same, "bootstrap-secret"))
	})
}

func TestBootstrapRequiresConfig(t *testing.T) {
	ctx := context.Background()
	accounts := &AccountService{Store: newTestStore(t)}

	boot := &BootstrapService{Accounts: accounts, AdminEmail: "", AdminPass: "x"}
	require.ErrorIs(t, boot.Run(ctx), ErrBootstrapConfig)

	boot = &BootstrapService{Accounts: accounts, AdminEmail: "admin@example.com", AdminPass: ""}
	require.ErrorIs(t, boot.Run(ctx), ErrBootstrapConfig)
}
