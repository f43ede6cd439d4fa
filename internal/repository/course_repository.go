package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nucampus/campus-backend/internal/model"
)

var ErrDuplicateCourseCode = errors.New("course with this code already exists")

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `id, course_code, name, credit, description, faculty_email, department, semester, fee, starts_on, created_at, updated_at`

func scanCourse(row interface{ Scan(...interface{}) error }, c *model.Course) error {
	return row.Scan(&c.ID, &c.CourseCode, &c.Name, &c.Credit, &c.Description, &c.FacultyEmail,
		&c.Department, &c.Semester, &c.Fee, &c.StartsOn, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID retrieves a course by ID.
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	c := &model.Course{}
	row := r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)
	if err := scanCourse(row, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByCode retrieves a course by its human-readable code.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	c := &model.Course{}
	row := r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE course_code = $1`, code)
	if err := scanCourse(row, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves courses with optional semester and department filters.
func (r *CourseRepository) List(ctx context.Context, semester, department *string) ([]model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE 1=1`
	var args []interface{}
	if semester != nil {
		args = append(args, *semester)
		query += ` AND semester = $1`
	}
	if department != nil {
		args = append(args, *department)
		if len(args) == 1 {
			query += ` AND department = $1`
		} else {
			query += ` AND department = $2`
		}
	}
	query += ` ORDER BY course_code`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// ListByFaculty retrieves the courses assigned to a faculty member.
func (r *CourseRepository) ListByFaculty(ctx context.Context, facultyEmail string) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE faculty_email = $1 ORDER BY course_code`, facultyEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO courses (id, course_code, name, credit, description, faculty_email, department, semester, fee, starts_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		c.ID, c.CourseCode, c.Name, c.Credit, c.Description, c.FacultyEmail, c.Department, c.Semester, c.Fee, c.StartsOn,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCourseCode
		}
		return err
	}
	return nil
}

// Update modifies an existing course.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses SET name = $1, credit = $2, description = $3, faculty_email = $4,
		        department = $5, semester = $6, fee = $7, starts_on = $8, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $9`,
		c.Name, c.Credit, c.Description, c.FacultyEmail, c.Department, c.Semester, c.Fee, c.StartsOn, c.ID,
	)
	return err
}

// Delete removes a course by ID. Fails with 23503 while memberships or
// requests still reference it.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	return err
}
