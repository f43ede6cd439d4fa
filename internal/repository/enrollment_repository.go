package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nucampus/campus-backend/internal/model"
)

// ErrDuplicateRequest signals the UNIQUE(email, course_id) constraint fired.
// One request per (email, course) for the account's lifetime; this covers
// pending, approved and declined alike.
var ErrDuplicateRequest = errors.New("enrollment already requested for this course")

// EnrollmentRepository handles enrollment requests and course memberships.
// It holds the pool directly because approval spans three tables in one
// transaction.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

const requestColumns = `id, email, course_id, course_code, course_name, student_name, student_department, quarter, status, requested_at, updated_at`

func scanRequest(row interface{ Scan(...interface{}) error }, req *model.EnrollmentRequest) error {
	return row.Scan(&req.ID, &req.Email, &req.CourseID, &req.CourseCode, &req.CourseName,
		&req.StudentName, &req.StudentDepartment, &req.Quarter, &req.Status, &req.RequestedAt, &req.UpdatedAt)
}

// CreateRequest inserts a pending enrollment request. Duplicate detection is
// the unique index, not a pre-check, so concurrent submissions cannot both
// pass.
func (r *EnrollmentRepository) CreateRequest(ctx context.Context, req *model.EnrollmentRequest) error {
	req.Status = model.RequestStatusPending
	err := r.pool.QueryRow(ctx,
		`INSERT INTO enrollment_requests
		     (email, course_id, course_code, course_name, student_name, student_department, quarter, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, requested_at`,
		req.Email, req.CourseID, req.CourseCode, req.CourseName,
		req.StudentName, req.StudentDepartment, req.Quarter, req.Status,
	).Scan(&req.ID, &req.RequestedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateRequest
		}
		return err
	}
	return nil
}

// GetRequest retrieves the request for (email, course).
func (r *EnrollmentRepository) GetRequest(ctx context.Context, email string, courseID uuid.UUID) (*model.EnrollmentRequest, error) {
	req := &model.EnrollmentRequest{}
	row := r.pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM enrollment_requests WHERE email = $1 AND course_id = $2`,
		email, courseID)
	if err := scanRequest(row, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListRequestsByEmail retrieves a student's own requests, newest first.
func (r *EnrollmentRepository) ListRequestsByEmail(ctx context.Context, email string) ([]model.EnrollmentRequest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+requestColumns+` FROM enrollment_requests WHERE email = $1 ORDER BY requested_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []model.EnrollmentRequest
	for rows.Next() {
		var req model.EnrollmentRequest
		if err := scanRequest(rows, &req); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// ListPendingRequests retrieves the admin review queue with pagination.
func (r *EnrollmentRepository) ListPendingRequests(ctx context.Context, limit, offset int) ([]model.EnrollmentRequest, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollment_requests WHERE status = $1`,
		model.RequestStatusPending).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+requestColumns+` FROM enrollment_requests
		 WHERE status = $1 ORDER BY requested_at LIMIT $2 OFFSET $3`,
		model.RequestStatusPending, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reqs []model.EnrollmentRequest
	for rows.Next() {
		var req model.EnrollmentRequest
		if err := scanRequest(rows, &req); err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, req)
	}
	return reqs, total, rows.Err()
}

// Approve applies an approval in a single transaction:
//
//  1. ensure a student record exists for the email (create from the request
//     fields if absent)
//  2. insert the membership with ON CONFLICT DO NOTHING so a re-approval or a
//     retry after partial failure never duplicates it
//  3. promote the user to the student role and clear the in-flight flag
//  4. mark the request approved last, so the sequence is safe to repeat
//
// Returns the membership row (existing or newly created).
func (r *EnrollmentRepository) Approve(ctx context.Context, req *model.EnrollmentRequest, course *model.Course) (*model.CourseMembership, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO students (email, name, department)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO NOTHING`,
		req.Email, req.StudentName, req.StudentDepartment,
	); err != nil {
		return nil, fmt.Errorf("upsert student: %w", err)
	}

	var studentID int
	if err := tx.QueryRow(ctx,
		`SELECT id FROM students WHERE email = $1`, req.Email,
	).Scan(&studentID); err != nil {
		return nil, fmt.Errorf("resolve student: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO course_memberships (student_id, course_id, course_name, credit, semester, fee, payment_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (student_id, course_id) DO NOTHING`,
		studentID, course.ID, course.Name, course.Credit, course.Semester, course.Fee, model.PaymentStatusUnpaid,
	); err != nil {
		return nil, fmt.Errorf("insert membership: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET role = $1, enroll_request = FALSE, updated_at = CURRENT_TIMESTAMP
		 WHERE email = $2 AND role = $3`,
		model.RoleStudent, req.Email, model.RoleUser,
	); err != nil {
		return nil, fmt.Errorf("promote user: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE enrollment_requests SET status = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE email = $2 AND course_id = $3`,
		model.RequestStatusApproved, req.Email, req.CourseID,
	); err != nil {
		return nil, fmt.Errorf("mark approved: %w", err)
	}

	m := &model.CourseMembership{}
	if err := tx.QueryRow(ctx,
		`SELECT id, student_id, course_id, course_name, credit, semester, fee, payment_status, enrolled_at
		 FROM course_memberships WHERE student_id = $1 AND course_id = $2`,
		studentID, course.ID,
	).Scan(&m.ID, &m.StudentID, &m.CourseID, &m.CourseName, &m.Credit, &m.Semester, &m.Fee, &m.PaymentStatus, &m.EnrolledAt); err != nil {
		return nil, fmt.Errorf("fetch membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return m, nil
}

// Decline marks a request declined and clears the user's in-flight flag.
func (r *EnrollmentRepository) Decline(ctx context.Context, email string, courseID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE enrollment_requests SET status = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE email = $2 AND course_id = $3`,
		model.RequestStatusDeclined, email, courseID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET enroll_request = FALSE, updated_at = CURRENT_TIMESTAMP WHERE email = $1`,
		email,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// AddMembership performs a direct add-if-absent membership insert for an
// existing student. Returns false when the membership was already present.
func (r *EnrollmentRepository) AddMembership(ctx context.Context, studentID int, course *model.Course) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO course_memberships (student_id, course_id, course_name, credit, semester, fee, payment_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (student_id, course_id) DO NOTHING`,
		studentID, course.ID, course.Name, course.Credit, course.Semester, course.Fee, model.PaymentStatusUnpaid,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListMembershipsByEmail retrieves a student's memberships, newest first.
func (r *EnrollmentRepository) ListMembershipsByEmail(ctx context.Context, email string) ([]model.CourseMembership, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.student_id, m.course_id, m.course_name, m.credit, m.semester, m.fee, m.payment_status, m.enrolled_at
		 FROM course_memberships m
		 JOIN students s ON s.id = m.student_id
		 WHERE s.email = $1
		 ORDER BY m.enrolled_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []model.CourseMembership
	for rows.Next() {
		var m model.CourseMembership
		if err := rows.Scan(&m.ID, &m.StudentID, &m.CourseID, &m.CourseName, &m.Credit, &m.Semester, &m.Fee, &m.PaymentStatus, &m.EnrolledAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

// MarkMembershipPaid flips a membership's payment status. Kept narrow: the
// payment provider callback is outside this service's boundary.
func (r *EnrollmentRepository) MarkMembershipPaid(ctx context.Context, studentID int, courseID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE course_memberships SET payment_status = $1
		 WHERE student_id = $2 AND course_id = $3`,
		model.PaymentStatusPaid, studentID, courseID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
