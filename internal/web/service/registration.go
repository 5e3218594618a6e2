package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/forumwatch/threadwatch/internal/web/domain"
	"github.com/forumwatch/threadwatch/internal/web/store"
	"github.com/forumwatch/threadwatch/pkg/cryptox"
	"github.com/forumwatch/threadwatch/pkg/idx"
	"github.com/forumwatch/threadwatch/pkg/slogx"
)

var (
	ErrAttemptNotFound = errors.New("registration attempt not found or expired")
	ErrCodeMismatch    = errors.New("incorrect code")
	ErrTooManyAttempts = errors.New("too many incorrect code submissions")
	ErrCodeNotVerified = errors.New("code has not been verified")
)

const (
	// RegistrationTTL bounds how long a requested code stays redeemable.
	RegistrationTTL = 15 * time.Minute

	// maxCodeAttempts is the failed-submission budget before the attempt
	// record is destroyed and the registrant must start over.
	maxCodeAttempts = 5
)

// RegistrationService drives the self-registration workflow:
//
//	NoInvitation -> CodeIssued -> CodeVerified -> AccountCreated
//
// Each browser's progress is a registration_attempts record keyed by an
// opaque token it holds in a cookie. The invitation code is delivered to the
// ADMINISTRATOR, never to the registrant: obtaining it out-of-band is the
// gate on who may join.
type RegistrationService struct {
	Store       store.Store
	Invitations *InvitationService
	Notifier    Notifier
	AdminEmail  string
}

// RequestCode begins a registration: issues an invitation for the email,
// dispatches the code to the administrator, and opens an attempt record.
// Returns the opaque attempt token for the registrant's cookie. A second
// request for an already-invited email is a terminal user-visible failure.
func (s *RegistrationService) RequestCode(ctx context.Context, email string) (string, error) {
	log := slogx.FromContext(ctx)

	code, err := s.Invitations.Issue(ctx, email)
	if err != nil {
		return "", err
	}

	// Fire-and-forget: registration latency never includes mail transport.
	s.Notifier.Notify(s.AdminEmail, "New registration code",
		fmt.Sprintf("New user: %s\nCode: %s", email, code))

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate registration token", slog.Any("error", err))
		return "", err
	}

	attempt := domain.RegistrationAttempt{
		TokenHash: cryptox.FingerprintToken(token),
		Email:     email,
		CodeHash:  cryptox.FingerprintToken(code),
		ExpiresAt: time.Now().Add(RegistrationTTL),
	}
	if err := s.Store.Registrations().CreateAttempt(ctx, attempt); err != nil {
		log.Error("failed to create registration attempt", slog.Any("error", err))
		return "", err
	}

	log.Info("registration code issued",
		slog.String("email", email),
	)
	return token, nil
}

// VerifyCode advances CodeIssued -> CodeVerified when the submitted code
// matches the attempt's. A mismatch keeps the state at CodeIssued and counts
// against the attempt budget; exhausting the budget destroys the attempt.
func (s *RegistrationService) VerifyCode(ctx context.Context, token, code string) error {
	log := slogx.FromContext(ctx)

	tokenHash := cryptox.FingerprintToken(token)
	attempt, err := s.Store.Registrations().GetAttempt(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAttemptNotFound
		}
		return err
	}

	supplied := cryptox.FingerprintToken(code)
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(attempt.CodeHash)) != 1 {
		updated, err := s.Store.Registrations().IncrementAttempts(ctx, tokenHash)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if updated.Attempts >= maxCodeAttempts {
			log.Warn("registration attempt locked out",
				slog.String("email", attempt.Email),
				slog.Int("attempts", updated.Attempts),
			)
			if err := s.Store.Registrations().DeleteAttempt(ctx, tokenHash); err != nil {
				log.Error("failed to delete locked-out attempt", slog.Any("error", err))
			}
			return ErrTooManyAttempts
		}
		return ErrCodeMismatch
	}

	if err := s.Store.Registrations().MarkAttemptVerified(ctx, tokenHash); err != nil {
		return err
	}

	log.Info("registration code verified", slog.String("email", attempt.Email))
	return nil
}

// AttemptEmail returns the email of a live attempt, used to gate the
// set-password page on an in-progress registration.
func (s *RegistrationService) AttemptEmail(ctx context.Context, token string) (string, error) {
	attempt, err := s.Store.Registrations().GetAttempt(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrAttemptNotFound
		}
		return "", err
	}
	return attempt.Email, nil
}

// CompletePassword finishes the workflow: creates the account, marks the
// invitation consumed and retires the attempt, all in one transaction so a
// crash can't leave an account without a consumed invitation. A concurrent
// completion of the same email loses on the accounts uniqueness constraint
// and surfaces as ErrEmailTaken.
func (s *RegistrationService) CompletePassword(ctx context.Context, token, password string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	if password == "" {
		return domain.Account{}, ErrMissingField
	}

	tokenHash := cryptox.FingerprintToken(token)
	attempt, err := s.Store.Registrations().GetAttempt(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAttemptNotFound
		}
		return domain.Account{}, err
	}
	if !attempt.Verified {
		return domain.Account{}, ErrCodeNotVerified
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        attempt.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, account); err != nil {
			return err
		}
		if err := tx.Invitations().MarkInvitationConsumed(ctx, attempt.Email); err != nil {
			return err
		}
		return tx.Registrations().DeleteAttempt(ctx, tokenHash)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("registration completion lost duplicate race",
				slog.String("email", attempt.Email),
			)
			return domain.Account{}, ErrEmailTaken
		}
		log.Error("failed to complete registration", slog.Any("error", err))
		return domain.Account{}, err
	}

	log.Info("account registered",
		slog.String("account_id", account.ID),
		slog.String("email", account.Email),
	)
	return account, nil
}
