package model

import (
	"time"

	"github.com/google/uuid"
)

// Course represents a course offering in an academic term.
type Course struct {
	ID           uuid.UUID `json:"id"`
	CourseCode   string    `json:"course_code"`
	Name         string    `json:"name"`
	Credit       int       `json:"credit"`
	Description  string    `json:"description,omitempty"`
	FacultyEmail string    `json:"faculty_email,omitempty"`
	Department   string    `json:"department"`
	Semester     string    `json:"semester"`
	Fee          float64   `json:"fee"`
	StartsOn     *time.Time `json:"starts_on,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	CourseCode   string     `json:"course_code" binding:"required,min=2,max=20"`
	Name         string     `json:"name" binding:"required,min=2,max=200"`
	Credit       int        `json:"credit" binding:"required,min=1,max=12"`
	Description  string     `json:"description" binding:"omitempty,max=2000"`
	FacultyEmail string     `json:"faculty_email" binding:"omitempty,email"`
	Department   string     `json:"department" binding:"required,min=2,max=100"`
	Semester     string     `json:"semester" binding:"required,min=2,max=30"`
	Fee          float64    `json:"fee" binding:"omitempty,min=0"`
	StartsOn     *time.Time `json:"starts_on" binding:"omitempty"`
}

// UpdateCourseRequest is the payload for updating a course. Assigning a new
// faculty email notifies the faculty room.
type UpdateCourseRequest struct {
	Name         string     `json:"name" binding:"omitempty,min=2,max=200"`
	Credit       int        `json:"credit" binding:"omitempty,min=1,max=12"`
	Description  string     `json:"description" binding:"omitempty,max=2000"`
	FacultyEmail string     `json:"faculty_email" binding:"omitempty,email"`
	Department   string     `json:"department" binding:"omitempty,min=2,max=100"`
	Semester     string     `json:"semester" binding:"omitempty,min=2,max=30"`
	Fee          *float64   `json:"fee" binding:"omitempty,min=0"`
	StartsOn     *time.Time `json:"starts_on" binding:"omitempty"`
}
