package store

import (
	"context"
	"errors"

	"github.com/forumwatch/threadwatch/internal/web/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories per entity to keep concerns
// tidy and testable.
type Store interface {
	Accounts() Accounts
	Invitations() Invitations
	Registrations() Registrations
	Sessions() Sessions
	Threads() Threads
	Notifications() Notifications

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a new account (id is provided by app via ULID).
	// A duplicate email returns ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) error

	// GetAccountByID returns an account regardless of status.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetActiveAccountByEmail returns the account only when status=active.
	// Used during login; disabled accounts are indistinguishable from
	// missing ones.
	GetActiveAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// GetAccountByEmail returns the account regardless of status.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// ListAccountsByRole returns accounts with the given role, newest first.
	ListAccountsByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)

	// UpdateAccountStatus flips the status and bumps updated_at.
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.Status) error
}

type Invitations interface {
	// CreateInvitation writes a new invitation (code_hash, never the raw
	// code). A second invitation for the same email returns
	// ErrAlreadyExists regardless of the consumed flag.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByEmail fetches the invitation row for an email.
	GetInvitationByEmail(ctx context.Context, email string) (domain.Invitation, error)

	// MarkInvitationConsumed sets consumed=1. Idempotent.
	MarkInvitationConsumed(ctx context.Context, email string) error
}

type Registrations interface {
	// CreateAttempt stores a new registration attempt keyed by token hash.
	CreateAttempt(ctx context.Context, a domain.RegistrationAttempt) error

	// GetAttempt returns a not-yet-expired attempt by token hash.
	GetAttempt(ctx context.Context, tokenHash string) (domain.RegistrationAttempt, error)

	// IncrementAttempts bumps the failed-submission counter and returns the
	// updated attempt.
	IncrementAttempts(ctx context.Context, tokenHash string) (domain.RegistrationAttempt, error)

	// MarkAttemptVerified records a successful code submission.
	MarkAttemptVerified(ctx context.Context, tokenHash string) error

	// DeleteAttempt removes an attempt (completion or lockout).
	DeleteAttempt(ctx context.Context, tokenHash string) error

	// DeleteExpiredAttempts is housekeeping.
	DeleteExpiredAttempts(ctx context.Context) error
}

type Sessions interface {
	// CreateSession stores a new login session keyed by token hash.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSession returns a not-yet-expired session by token hash.
	GetSession(ctx context.Context, tokenHash string) (domain.Session, error)

	// SetSessionFlash stores a one-shot notice on the session.
	SetSessionFlash(ctx context.Context, tokenHash, flash string) error

	// TakeSessionFlash returns the pending notice and clears it.
	TakeSessionFlash(ctx context.Context, tokenHash string) (string, error)

	// SetSessionEditTarget parks (or clears, with "") the URL of the
	// thread whose title is being edited.
	SetSessionEditTarget(ctx context.Context, tokenHash, url string) error

	// DeleteSession removes a session (logout).
	DeleteSession(ctx context.Context, tokenHash string) error

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context) error
}

type Threads interface {
	// CreateThread inserts a thread. A duplicate (account_id, url) pair
	// returns ErrAlreadyExists.
	CreateThread(ctx context.Context, t domain.Thread) error

	// ListThreadsByAccount returns an account's threads, oldest first.
	ListThreadsByAccount(ctx context.Context, accountID string) ([]domain.Thread, error)

	// ToggleThreadPaused flips the paused flag on the account's thread.
	// A (threadID, accountID) pair matching no row returns ErrNotFound.
	ToggleThreadPaused(ctx context.Context, threadID, accountID string) error

	// UpdateThreadTitle renames the account's thread identified by URL.
	UpdateThreadTitle(ctx context.Context, accountID, url, title string) error

	// DeleteThread removes the account's thread.
	DeleteThread(ctx context.Context, threadID, accountID string) error
}

type Notifications interface {
	// CreateNotification records a delivered message.
	CreateNotification(ctx context.Context, n domain.Notification) error

	// NotificationExists reports whether a message with this content
	// fingerprint was already sent.
	NotificationExists(ctx context.Context, messageHash string) (bool, error)
}
