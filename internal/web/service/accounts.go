package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/forumwatch/threadwatch/internal/web/domain"
	"github.com/forumwatch/threadwatch/internal/web/store"
	"github.com/forumwatch/threadwatch/pkg/cryptox"
	"github.com/forumwatch/threadwatch/pkg/idx"
	"github.com/forumwatch/threadwatch/pkg/slogx"
)

var (
	ErrEmailTaken      = errors.New("an account with this email already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrMissingField    = errors.New("required field is missing")
)

// AccountService is the credential store: it owns account creation, secret
// verification and the one-way active -> disabled transition. Raw secrets
// are hashed before they reach storage and never logged.
type AccountService struct {
	Store store.Store
}

// Create hashes the secret and inserts a new account.
func (s *AccountService) Create(ctx context.Context, email, rawSecret string, role domain.Role) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	if email == "" || rawSecret == "" {
		return domain.Account{}, ErrMissingField
	}
	if !role.Valid() {
		return domain.Account{}, ErrMissingField
	}

	hash, err := cryptox.HashPassword(rawSecret)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.StatusActive,
	}

	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("account creation rejected, email already registered",
				slog.String("email", email),
			)
			return domain.Account{}, ErrEmailTaken
		}
		log.Error("failed to create account", slog.Any("error", err))
		return domain.Account{}, err
	}

	log.Info("account created",
		slog.String("account_id", account.ID),
		slog.String("email", email),
		slog.String("role", role.String()),
	)
	return account, nil
}

// FindActiveByEmail returns the account only if it exists and is active.
func (s *AccountService) FindActiveByEmail(ctx context.Context, email string) (domain.Account, error) {
	a, err := s.Store.Accounts().GetActiveAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}
	return a, nil
}

// GetByID fetches an account regardless of status (admin target lookups).
func (s *AccountService) GetByID(ctx context.Context, accountID string) (domain.Account, error) {
	a, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}
	return a, nil
}

// VerifySecret recomputes the digest and compares in constant time.
func (s *AccountService) VerifySecret(account domain.Account, rawSecret string) bool {
	return cryptox.VerifyPassword(rawSecret, account.PasswordHash) == nil
}

// ListUsers returns all non-admin accounts for the admin overview.
func (s *AccountService) ListUsers(ctx context.Context) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccountsByRole(ctx, domain.RoleUser)
}

// Disable transitions an account to disabled. One-way: there is no
// re-enable in the current surface.
func (s *AccountService) Disable(ctx context.Context, accountID string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Accounts().UpdateAccountStatus(ctx, accountID, domain.StatusDisabled)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		log.Error("failed to disable account",
			slog.String("account_id", accountID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("account disabled", slog.String("account_id", accountID))
	return nil
}
