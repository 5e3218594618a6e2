package sqlite

import (
	"context"
	"time"

	"github.com/forumwatch/threadwatch/internal/web/domain"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (token_hash, account_id, email, role, flash, edit_target, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.TokenHash, s.AccountID, s.Email, s.Role.String(), s.Flash,
		s.EditTarget, s.ExpiresAt.UTC(), time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSession(ctx context.Context, tokenHash string) (domain.Session, error) {
	var s domain.Session
	var role string
	err := r.db.QueryRowContext(ctx, `
		SELECT token_hash, account_id, email, role, flash, edit_target, expires_at, created_at
		FROM sessions
		WHERE token_hash = ? AND expires_at > ?`,
		tokenHash, time.Now().UTC(),
	).Scan(&s.TokenHash, &s.AccountID, &s.Email, &role, &s.Flash, &s.EditTarget, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.Role = domain.Role(role)
	return s, nil
}

func (r *sessionsRepo) SetSessionFlash(ctx context.Context, tokenHash, flash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET flash = ? WHERE token_hash = ?`, flash, tokenHash)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *sessionsRepo) TakeSessionFlash(ctx context.Context, tokenHash string) (string, error) {
	var flash string
	err := r.db.QueryRowContext(ctx,
		`SELECT flash FROM sessions WHERE token_hash = ?`, tokenHash,
	).Scan(&flash)
	if err != nil {
		return "", mapNotFound(err)
	}
	if flash == "" {
		return "", nil
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE sessions SET flash = '' WHERE token_hash = ?`, tokenHash)
	return flash, err
}

func (r *sessionsRepo) SetSessionEditTarget(ctx context.Context, tokenHash, url string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET edit_target = ? WHERE token_hash = ?`, url, tokenHash)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE token_hash = ?`, tokenHash)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
