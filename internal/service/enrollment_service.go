package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/nucampus/campus-backend/internal/metrics"
	"github.com/nucampus/campus-backend/internal/model"
	"github.com/nucampus/campus-backend/internal/repository"
)

// Enrollment workflow errors surfaced to handlers.
var (
	ErrNotOwner           = errors.New("caller does not own this resource")
	ErrCourseNotFound     = errors.New("course not found")
	ErrRequestNotFound    = errors.New("enrollment request not found")
	ErrStudentNotFound    = errors.New("student record not found")
	ErrRequestSettled     = errors.New("request already decided differently")
	ErrMembershipNotFound = errors.New("course membership not found")
)

// EnrollmentService implements the request → pending → approved/declined
// workflow plus direct membership management.
type EnrollmentService struct {
	enrollmentRepo *repository.EnrollmentRepository
	courseRepo     *repository.CourseRepository
	studentRepo    *repository.StudentRepository
	userRepo       *repository.UserRepository
	notifications  *NotificationService
	log            zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	studentRepo *repository.StudentRepository,
	userRepo *repository.UserRepository,
	notifications *NotificationService,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		studentRepo:    studentRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		log:            log.With().Str("component", "enrollment_service").Logger(),
	}
}

// Submit records a student's request to join a course and notifies the admin
// room. Callers may only submit for their own email. Duplicates (any prior
// request for the same course, whatever its outcome) surface as
// repository.ErrDuplicateRequest.
func (s *EnrollmentService) Submit(ctx context.Context, claims *Claims, in *model.SubmitEnrollmentRequest) (*model.EnrollmentRequest, error) {
	if claims.Email != in.Email {
		return nil, ErrNotOwner
	}

	course, err := s.courseRepo.GetByID(ctx, in.CourseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	req := &model.EnrollmentRequest{
		Email:             in.Email,
		CourseID:          course.ID,
		CourseCode:        course.CourseCode,
		CourseName:        course.Name,
		StudentName:       in.StudentName,
		StudentDepartment: in.StudentDepartment,
		Quarter:           in.Quarter,
	}
	if err := s.enrollmentRepo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	// Flag is advisory UI state; its failure should not fail the submit.
	if err := s.userRepo.SetEnrollRequestFlag(ctx, in.Email, true); err != nil {
		s.log.Warn().Err(err).Str("email", in.Email).Msg("Set enroll flag failed")
	}

	msg := fmt.Sprintf("%s requested enrollment in %s (%s)", in.StudentName, course.Name, course.CourseCode)
	if _, err := s.notifications.Dispatch(ctx, model.NotificationEnrollmentRequest, model.RoleAdmin.Room(), &course.ID, msg); err != nil {
		s.log.Error().Err(err).Int64("request_id", req.ID).Msg("Admin notification failed")
	}

	return req, nil
}

// ListByEmail returns a student's own requests; admins may read anyone's.
func (s *EnrollmentService) ListByEmail(ctx context.Context, claims *Claims, email string) ([]model.EnrollmentRequest, error) {
	if claims.Email != email && claims.Role != model.RoleAdmin {
		return nil, ErrNotOwner
	}
	return s.enrollmentRepo.ListRequestsByEmail(ctx, email)
}

// ListPending returns the admin review queue.
func (s *EnrollmentService) ListPending(ctx context.Context, page, perPage int) ([]model.EnrollmentRequest, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.enrollmentRepo.ListPendingRequests(ctx, perPage, (page-1)*perPage)
}

// evaluateDecision checks a decision against the request's current status.
// apply=false with a nil error means the call is an idempotent repeat.
func evaluateDecision(current, decision model.RequestStatus) (apply bool, err error) {
	switch current {
	case model.RequestStatusPending:
		return true, nil
	case model.RequestStatusApproved:
		if decision == model.RequestStatusApproved {
			// Re-running the approval sequence is a no-op by construction
			// and heals a previously interrupted one.
			return true, nil
		}
		return false, ErrRequestSettled
	case model.RequestStatusDeclined:
		if decision == model.RequestStatusDeclined {
			return false, nil
		}
		return false, ErrRequestSettled
	default:
		return false, fmt.Errorf("unknown request status %q", current)
	}
}

// Decide applies an admin decision. Approval runs the idempotent
// transactional sequence in the repository and notifies the student's
// personal room; decline flips the status only.
func (s *EnrollmentService) Decide(ctx context.Context, email string, courseID uuid.UUID, decision model.RequestStatus) (*model.EnrollmentRequest, *model.CourseMembership, error) {
	req, err := s.enrollmentRepo.GetRequest(ctx, email, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrRequestNotFound
		}
		return nil, nil, fmt.Errorf("get request: %w", err)
	}

	apply, err := evaluateDecision(req.Status, decision)
	if err != nil {
		return nil, nil, err
	}
	if !apply {
		return req, nil, nil
	}

	firstDecision := req.Status == model.RequestStatusPending

	var membership *model.CourseMembership
	switch decision {
	case model.RequestStatusApproved:
		course, err := s.courseRepo.GetByID(ctx, courseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil, ErrCourseNotFound
			}
			return nil, nil, fmt.Errorf("get course: %w", err)
		}
		membership, err = s.enrollmentRepo.Approve(ctx, req, course)
		if err != nil {
			return nil, nil, fmt.Errorf("approve: %w", err)
		}
	case model.RequestStatusDeclined:
		if err := s.enrollmentRepo.Decline(ctx, email, courseID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil, ErrRequestNotFound
			}
			return nil, nil, fmt.Errorf("decline: %w", err)
		}
	}
	req.Status = decision

	if firstDecision {
		metrics.EnrollmentDecisions.WithLabelValues(string(decision)).Inc()

		msg := fmt.Sprintf("Your enrollment request for %s (%s) was %s", req.CourseName, req.CourseCode, decision)
		if _, err := s.notifications.Dispatch(ctx, model.NotificationEnrollmentResult, email, &req.CourseID, msg); err != nil {
			s.log.Error().Err(err).Str("email", email).Msg("Decision notification failed")
		}
	}

	return req, membership, nil
}

// AddMembership performs the direct add-if-absent enrollment for an existing
// student record. Self or admin only. Returns the student's memberships and
// whether this call inserted a new one.
func (s *EnrollmentService) AddMembership(ctx context.Context, claims *Claims, in *model.EnrollCourseRequest) (bool, error) {
	if claims.Email != in.Email && claims.Role != model.RoleAdmin {
		return false, ErrNotOwner
	}

	student, err := s.studentRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrStudentNotFound
		}
		return false, fmt.Errorf("get student: %w", err)
	}

	course, err := s.courseRepo.GetByID(ctx, in.CourseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrCourseNotFound
		}
		return false, fmt.Errorf("get course: %w", err)
	}

	return s.enrollmentRepo.AddMembership(ctx, student.ID, course)
}

// ListMemberships returns a student's memberships; admins may read anyone's.
func (s *EnrollmentService) ListMemberships(ctx context.Context, claims *Claims, email string) ([]model.CourseMembership, error) {
	if claims.Email != email && claims.Role != model.RoleAdmin {
		return nil, ErrNotOwner
	}
	return s.enrollmentRepo.ListMembershipsByEmail(ctx, email)
}

// MarkPaid settles a membership's fee. Self or admin only; repeating the
// call on an already-paid membership is a no-op success.
func (s *EnrollmentService) MarkPaid(ctx context.Context, claims *Claims, email string, courseID uuid.UUID) error {
	if claims.Email != email && claims.Role != model.RoleAdmin {
		return ErrNotOwner
	}

	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("get student: %w", err)
	}

	if err := s.enrollmentRepo.MarkMembershipPaid(ctx, student.ID, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMembershipNotFound
		}
		return fmt.Errorf("mark paid: %w", err)
	}
	return nil
}
