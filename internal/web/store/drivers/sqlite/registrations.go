package sqlite

import (
	"context"
	"time"

	"github.com/forumwatch/threadwatch/internal/web/domain"
)

type registrationsRepo struct {
	db dbtx
}

func (r *registrationsRepo) CreateAttempt(ctx context.Context, a domain.RegistrationAttempt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO registration_attempts (token_hash, email, code_hash, attempts, verified, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.TokenHash, a.Email, a.CodeHash, a.Attempts, a.Verified,
		a.ExpiresAt.UTC(), time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *registrationsRepo) GetAttempt(ctx context.Context, tokenHash string) (domain.RegistrationAttempt, error) {
	var a domain.RegistrationAttempt
	err := r.db.QueryRowContext(ctx, `
		SELECT token_hash, email, code_hash, attempts, verified, expires_at, created_at
		FROM registration_attempts
		WHERE token_hash = ? AND expires_at > ?`,
		tokenHash, time.Now().UTC(),
	).Scan(&a.TokenHash, &a.Email, &a.CodeHash, &a.Attempts, &a.Verified, &a.ExpiresAt, &a.CreatedAt)
	if err != nil {
		return domain.RegistrationAttempt{}, mapNotFound(err)
	}
	return a, nil
}

func (r *registrationsRepo) IncrementAttempts(ctx context.Context, tokenHash string) (domain.RegistrationAttempt, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE registration_attempts SET attempts = attempts + 1 WHERE token_hash = ?`,
		tokenHash)
	if err != nil {
		return domain.RegistrationAttempt{}, err
	}
	if err := requireRowAffected(res); err != nil {
		return domain.RegistrationAttempt{}, err
	}
	return r.GetAttempt(ctx, tokenHash)
}

func (r *registrationsRepo) MarkAttemptVerified(ctx context.Context, tokenHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE registration_attempts SET verified = 1 WHERE token_hash = ?`,
		tokenHash)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *registrationsRepo) DeleteAttempt(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM registration_attempts WHERE token_hash = ?`, tokenHash)
	return err
}

func (r *registrationsRepo) DeleteExpiredAttempts(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM registration_attempts WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
