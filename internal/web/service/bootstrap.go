package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/forumwatch/threadwatch/internal/web/domain"
	"github.com/forumwatch/threadwatch/internal/web/store"
	"github.com/forumwatch/threadwatch/pkg/slogx"
)

// BootstrapService seeds the administrator account from configuration so a
// fresh deployment has exactly one way in. Runs at startup; a restart with
// the admin already present is a no-op.
type BootstrapService struct {
	Accounts   *AccountService
	AdminEmail string
	AdminPass  string
}

var ErrBootstrapConfig = errors.New("bootstrap requires admin email and password")

// Run ensures the seeded admin exists. Idempotent across restarts.
func (s *BootstrapService) Run(ctx context.Context) error {
	log := slogx.FromContext(ctx)

	if s.AdminEmail == "" || s.AdminPass == "" {
		return ErrBootstrapConfig
	}

	_, err := s.Accounts.Store.Accounts().GetAccountByEmail(ctx, s.AdminEmail)
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	account, err := s.Accounts.Create(ctx, s.AdminEmail, s.AdminPass, domain.RoleAdmin)
	if err != nil {
		// A concurrent replica may have seeded first; that's fine.
		if errors.Is(err, ErrEmailTaken) {
			return nil
		}
		return err
	}

	log.Info("bootstrap admin seeded",
		slog.String("account_id", account.ID),
		slog.String("email", s.AdminEmail),
	)
	return nil
}
