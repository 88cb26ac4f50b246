package repository

import (
	"context"
	"database/sql"

	"grameengo/backend/internal/notification/domain"
)

const notificationColumns = `id, user_id, title, message, type, read, link, created_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a notification repository backed by the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByUser returns up to limit notifications for userID, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		var link sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &link, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Link = link.String
		out = append(out, &n)
	}
	return out, rows.Err()
}

// Create persists the notification. The notification must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, n *domain.Notification) error {
	link := sql.NullString{String: n.Link, Valid: n.Link != ""}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, title, message, type, read, link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.UserID, n.Title, n.Message, n.Type, n.Read, link, n.CreatedAt,
	)
	return err
}

// MarkRead flips read to true for the row owned by userID. Idempotent;
// a miss is not an error.
func (r *PostgresRepository) MarkRead(ctx context.Context, id, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}
