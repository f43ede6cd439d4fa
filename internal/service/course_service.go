package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/nucampus/campus-backend/internal/model"
	"github.com/nucampus/campus-backend/internal/repository"
)

// CourseService handles course management. Assigning a faculty member
// notifies both the faculty room and the assignee's personal room.
type CourseService struct {
	courseRepo    *repository.CourseRepository
	notifications *NotificationService
	log           zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo *repository.CourseRepository, notifications *NotificationService, log zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo:    courseRepo,
		notifications: notifications,
		log:           log.With().Str("component", "course_service").Logger(),
	}
}

// List returns courses with optional semester/department filters.
func (s *CourseService) List(ctx context.Context, semester, department *string) ([]model.Course, error) {
	return s.courseRepo.List(ctx, semester, department)
}

// ListByFaculty returns a faculty member's assigned courses.
func (s *CourseService) ListByFaculty(ctx context.Context, facultyEmail string) ([]model.Course, error) {
	return s.courseRepo.ListByFaculty(ctx, facultyEmail)
}

// GetByID retrieves one course.
func (s *CourseService) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// Create inserts a course and announces any faculty assignment.
func (s *CourseService) Create(ctx context.Context, in *model.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		CourseCode:   in.CourseCode,
		Name:         in.Name,
		Credit:       in.Credit,
		Description:  in.Description,
		FacultyEmail: in.FacultyEmail,
		Department:   in.Department,
		Semester:     in.Semester,
		Fee:          in.Fee,
		StartsOn:     in.StartsOn,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	if course.FacultyEmail != "" {
		s.announceAssignment(ctx, course)
	}
	return course, nil
}

// Update modifies a course; a changed faculty email re-announces the
// assignment.
func (s *CourseService) Update(ctx context.Context, id uuid.UUID, in *model.UpdateCourseRequest) (*model.Course, error) {
	course, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousFaculty := course.FacultyEmail
	if in.Name != "" {
		course.Name = in.Name
	}
	if in.Credit != 0 {
		course.Credit = in.Credit
	}
	if in.Description != "" {
		course.Description = in.Description
	}
	if in.FacultyEmail != "" {
		course.FacultyEmail = in.FacultyEmail
	}
	if in.Department != "" {
		course.Department = in.Department
	}
	if in.Semester != "" {
		course.Semester = in.Semester
	}
	if in.Fee != nil {
		course.Fee = *in.Fee
	}
	if in.StartsOn != nil {
		course.StartsOn = in.StartsOn
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	if course.FacultyEmail != "" && course.FacultyEmail != previousFaculty {
		s.announceAssignment(ctx, course)
	}
	return course, nil
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.courseRepo.Delete(ctx, id)
}

func (s *CourseService) announceAssignment(ctx context.Context, course *model.Course) {
	msg := fmt.Sprintf("Course %s (%s) was assigned to %s", course.Name, course.CourseCode, course.FacultyEmail)
	for _, room := range []string{model.RoleFaculty.Room(), course.FacultyEmail} {
		if _, err := s.notifications.Dispatch(ctx, model.NotificationCourseAssigned, room, &course.ID, msg); err != nil {
			s.log.Error().Err(err).Str("room", room).Msg("Assignment notification failed")
		}
	}
}
