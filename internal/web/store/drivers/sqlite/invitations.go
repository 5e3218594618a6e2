package sqlite

import (
	"context"
	"time"

	"github.com/forumwatch/threadwatch/internal/web/domain"
)

type invitationsRepo struct {
	db dbtx
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitations (id, email, code_hash, consumed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Email, inv.CodeHash, inv.Consumed, now, now,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByEmail(ctx context.Context, email string) (domain.Invitation, error) {
	var inv domain.Invitation
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, code_hash, consumed, created_at, updated_at
		FROM invitations WHERE email = ?`, email,
	).Scan(&inv.ID, &inv.Email, &inv.CodeHash, &inv.Consumed, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) MarkInvitationConsumed(ctx context.Context, email string) error {
	// Idempotent: marking an already-consumed invitation is a no-op.
	_, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET consumed = 1, updated_at = ? WHERE email = ?`,
		time.Now().UTC(), email)
	return err
}
