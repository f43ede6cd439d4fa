package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nucampus/campus-backend/internal/model"
	"github.com/nucampus/campus-backend/internal/repository"
)

// StudentService handles student record management.
type StudentService struct {
	studentRepo *repository.StudentRepository
	userRepo    *repository.UserRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, userRepo *repository.UserRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo, userRepo: userRepo}
}

// GetByEmail retrieves a student; self or admin enforcement is the caller's.
func (s *StudentService) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// List retrieves students with pagination and optional department filter.
func (s *StudentService) List(ctx context.Context, department *string, page, perPage int) ([]model.Student, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.studentRepo.ListPaginated(ctx, department, perPage, (page-1)*perPage)
}

// Create registers a student record and promotes the matching user account
// to the student role if one exists.
func (s *StudentService) Create(ctx context.Context, in *model.CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		Email:         in.Email,
		Name:          in.Name,
		Photo:         in.Photo,
		StudentNumber: in.StudentNumber,
		Department:    in.Department,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	if user, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil && user.Role == model.RoleUser {
		_ = s.userRepo.UpdateRole(ctx, user.ID, model.RoleStudent)
	}
	return student, nil
}

// Update modifies a student record.
func (s *StudentService) Update(ctx context.Context, id int, in *model.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	student.Name = in.Name
	student.Photo = in.Photo
	student.StudentNumber = in.StudentNumber
	student.Department = in.Department

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student record; memberships cascade.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	return s.studentRepo.Delete(ctx, id)
}
