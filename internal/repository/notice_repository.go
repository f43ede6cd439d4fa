package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nucampus/campus-backend/internal/model"
)

// NoticeRepository handles scheduled notices.
type NoticeRepository struct {
	pool *pgxpool.Pool
}

// NewNoticeRepository creates a new NoticeRepository.
func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{pool: pool}
}

const noticeColumns = `id, title, body, audience, publish_at, reminded, created_by, created_at`

func scanNotice(row interface{ Scan(...interface{}) error }, n *model.Notice) error {
	return row.Scan(&n.ID, &n.Title, &n.Body, &n.Audience, &n.PublishAt, &n.Reminded, &n.CreatedBy, &n.CreatedAt)
}

// Create inserts a scheduled notice.
func (r *NoticeRepository) Create(ctx context.Context, n *model.Notice) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notices (title, body, audience, publish_at, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, reminded, created_at`,
		n.Title, n.Body, n.Audience, n.PublishAt, n.CreatedBy,
	).Scan(&n.ID, &n.Reminded, &n.CreatedAt)
}

// GetByID retrieves a notice by ID.
func (r *NoticeRepository) GetByID(ctx context.Context, id int64) (*model.Notice, error) {
	n := &model.Notice{}
	row := r.pool.QueryRow(ctx, `SELECT `+noticeColumns+` FROM notices WHERE id = $1`, id)
	if err := scanNotice(row, n); err != nil {
		return nil, err
	}
	return n, nil
}

// List retrieves all notices, newest schedule first.
func (r *NoticeRepository) List(ctx context.Context) ([]model.Notice, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+noticeColumns+` FROM notices ORDER BY publish_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []model.Notice
	for rows.Next() {
		var n model.Notice
		if err := scanNotice(rows, &n); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// Update modifies a notice that has not been announced yet.
func (r *NoticeRepository) Update(ctx context.Context, n *model.Notice) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notices SET title = $1, body = $2, audience = $3, publish_at = $4
		 WHERE id = $5 AND reminded = FALSE`,
		n.Title, n.Body, n.Audience, n.PublishAt, n.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a notice by ID.
func (r *NoticeRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	return err
}

// ClaimDue atomically flips due, unannounced notices to reminded and returns
// them. The UPDATE...RETURNING claim means concurrent scheduler instances
// never announce the same notice twice.
func (r *NoticeRepository) ClaimDue(ctx context.Context, now time.Time) ([]model.Notice, error) {
	rows, err := r.pool.Query(ctx,
		`UPDATE notices SET reminded = TRUE
		 WHERE publish_at <= $1 AND reminded = FALSE
		 RETURNING `+noticeColumns, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []model.Notice
	for rows.Next() {
		var n model.Notice
		if err := scanNotice(rows, &n); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}
