package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/forumwatch/threadwatch/internal/web/domain"
	"github.com/forumwatch/threadwatch/internal/web/store"
	"github.com/forumwatch/threadwatch/pkg/cryptox"
	"github.com/forumwatch/threadwatch/pkg/httpx"
	"github.com/forumwatch/threadwatch/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

// DefaultSessionTTL bounds how long a browser-held token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// SessionService owns login sessions: server-held records keyed by the
// fingerprint of an opaque token the browser carries. It implements the
// httpx SessionResolver and FlashWriter interfaces consumed by the guards.
type SessionService struct {
	Accounts *AccountService
	Store    store.Store
	TTL      time.Duration
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

// Login verifies credentials against an active account and opens a session.
// Returns the raw opaque token for the cookie. Disabled accounts fail the
// same way unknown emails do.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, error) {
	log := slogx.FromContext(ctx)

	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	account, err := s.Accounts.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			// Hash anyway so response timing doesn't reveal whether the
			// email exists.
			_ = s.Accounts.VerifySecret(domain.Account{PasswordHash: dummyHash}, password)
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !s.Accounts.VerifySecret(account, password) {
		log.Warn("login failed, bad credentials", slog.String("email", email))
		return "", ErrInvalidCredentials
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate session token", slog.Any("error", err))
		return "", err
	}

	session := domain.Session{
		TokenHash: cryptox.FingerprintToken(token),
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
		ExpiresAt: time.Now().Add(s.ttl()),
	}
	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		log.Error("failed to create session", slog.Any("error", err))
		return "", err
	}

	log.Info("session opened",
		slog.String("account_id", account.ID),
		slog.String("role", account.Role.String()),
	)
	return token, nil
}

// Logout destroys the session. Unknown tokens are a no-op.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	return s.Store.Sessions().DeleteSession(ctx, cryptox.FingerprintToken(token))
}

// ResolveSession implements httpx.SessionResolver: opaque token in,
// authenticated identity out.
func (s *SessionService) ResolveSession(ctx context.Context, token string) (httpx.Identity, error) {
	session, err := s.Store.Sessions().GetSession(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Identity{}, ErrSessionNotFound
		}
		return httpx.Identity{}, err
	}
	return httpx.Identity{
		AccountID:    session.AccountID,
		Email:        session.Email,
		Role:         session.Role.String(),
		SessionToken: token,
	}, nil
}

// Current returns the full session record for the token (dashboard needs
// the parked edit target alongside the identity).
func (s *SessionService) Current(ctx context.Context, token string) (domain.Session, error) {
	session, err := s.Store.Sessions().GetSession(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrSessionNotFound
		}
		return domain.Session{}, err
	}
	return session, nil
}

// SetEditTarget parks the URL of the thread being renamed; an empty URL
// clears it.
func (s *SessionService) SetEditTarget(ctx context.Context, token, url string) error {
	return s.Store.Sessions().SetSessionEditTarget(ctx, cryptox.FingerprintToken(token), url)
}

// PushFlash implements httpx.FlashWriter.
func (s *SessionService) PushFlash(ctx context.Context, token, message string) error {
	return s.Store.Sessions().SetSessionFlash(ctx, cryptox.FingerprintToken(token), message)
}

// TakeFlash returns the pending notice and clears it.
func (s *SessionService) TakeFlash(ctx context.Context, token string) string {
	flash, err := s.Store.Sessions().TakeSessionFlash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		return ""
	}
	return flash
}

// dummyHash is a valid PHC string used to equalize login timing when the
// email doesn't resolve to an account.
const dummyHash = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
