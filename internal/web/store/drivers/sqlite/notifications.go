package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/forumwatch/threadwatch/internal/web/domain"
)

type notificationsRepo struct {
	db dbtx
}

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, recipient, subject, message_hash, sent_at)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.Recipient, n.Subject, n.MessageHash, time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *notificationsRepo) NotificationExists(ctx context.Context, messageHash string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM notifications WHERE message_hash = ?`, messageHash,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
