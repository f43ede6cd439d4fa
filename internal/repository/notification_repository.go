package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nucampus/campus-backend/internal/model"
)

// NotificationRepository handles the durable notification log.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create appends a notification row. Rows are never deleted.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (kind, recipient, course_id, message, application_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, seen, created_at`,
		n.Kind, n.Recipient, n.CourseID, n.Message, n.ApplicationDate,
	).Scan(&n.ID, &n.Seen, &n.CreatedAt)
}

// ListForRecipients retrieves notifications addressed to any of the given
// rooms (a caller's email plus their role room), newest first.
func (r *NotificationRepository) ListForRecipients(ctx context.Context, recipients []string, limit int) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, kind, recipient, course_id, message, application_date, seen, created_at
		 FROM notifications
		 WHERE recipient = ANY($1)
		 ORDER BY created_at DESC
		 LIMIT $2`, recipients, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.Recipient, &n.CourseID, &n.Message, &n.ApplicationDate, &n.Seen, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkSeen sets seen=true for the given ids, scoped to the caller's
// recipients. Ids addressed to someone else are simply not matched; the
// returned count tells the caller how many took effect.
func (r *NotificationRepository) MarkSeen(ctx context.Context, recipients []string, ids []int64) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET seen = TRUE
		 WHERE id = ANY($1) AND recipient = ANY($2)`, ids, recipients)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
