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

var ErrAlreadyInvited = errors.New("an invitation already exists for this email")

// InvitationService is the invitation ledger: one-time codes keyed by email,
// at most one row per email for all time. Only code fingerprints are stored.
type InvitationService struct {
	Store store.Store
}

// Issue generates a fresh one-time code for the email and stores its
// fingerprint. A second request for the same email fails regardless of the
// consumed flag; the row is never replaced.
func (s *InvitationService) Issue(ctx context.Context, email string) (string, error) {
	log := slogx.FromContext(ctx)

	if email == "" {
		return "", ErrMissingField
	}

	code, err := cryptox.GenerateInviteCode()
	if err != nil {
		log.Error("failed to generate invitation code", slog.Any("error", err))
		return "", err
	}

	invitation := domain.Invitation{
		ID:       idx.New().String(),
		Email:    email,
		CodeHash: cryptox.FingerprintToken(code),
	}

	if err := s.Store.Invitations().CreateInvitation(ctx, invitation); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("invitation rejected, email already invited",
				slog.String("email", email),
			)
			return "", ErrAlreadyInvited
		}
		log.Error("failed to create invitation", slog.Any("error", err))
		return "", err
	}

	log.Info("invitation issued",
		slog.String("invitation_id", invitation.ID),
		slog.String("email", email),
	)
	return code, nil
}

// Consume marks the invitation used. Idempotent; missing rows are not an
// error because the uniqueness of accounts is the final arbiter.
func (s *InvitationService) Consume(ctx context.Context, email string) error {
	return s.Store.Invitations().MarkInvitationConsumed(ctx, email)
}
