package sqlite

import (
	"context"
	"time"

	"github.com/forumwatch/threadwatch/internal/web/domain"
)

type threadsRepo struct {
	db dbtx
}

func (r *threadsRepo) CreateThread(ctx context.Context, t domain.Thread) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO threads (id, account_id, title, url, color_message, color_quote, color_spoiler, paused, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.AccountID, t.Title, t.URL,
		t.ColorMessage, t.ColorQuote, t.ColorSpoiler, t.Paused, now, now,
	)
	return mapConstraint(err)
}

func (r *threadsRepo) ListThreadsByAccount(ctx context.Context, accountID string) ([]domain.Thread, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, title, url, color_message, color_quote, color_spoiler, paused, created_at, updated_at
		FROM threads WHERE account_id = ? ORDER BY id`,
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var threads []domain.Thread
	for rows.Next() {
		var t domain.Thread
		if err := rows.Scan(
			&t.ID, &t.AccountID, &t.Title, &t.URL,
			&t.ColorMessage, &t.ColorQuote, &t.ColorSpoiler, &t.Paused,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		threads = append(threads, t)
	}
	return threads, rows.Err()
}

func (r *threadsRepo) ToggleThreadPaused(ctx context.Context, threadID, accountID string) error {
	// The account_id predicate is the ownership scope: a caller can only
	// flip rows it owns (or, on admin routes, rows of the named target).
	res, err := r.db.ExecContext(ctx, `
		UPDATE threads SET paused = NOT paused, updated_at = ?
		WHERE id = ? AND account_id = ?`,
		time.Now().UTC(), threadID, accountID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *threadsRepo) UpdateThreadTitle(ctx context.Context, accountID, url, title string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE threads SET title = ?, updated_at = ?
		WHERE account_id = ? AND url = ?`,
		title, time.Now().UTC(), accountID, url)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *threadsRepo) DeleteThread(ctx context.Context, threadID, accountID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM threads WHERE id = ? AND account_id = ?`,
		threadID, accountID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
