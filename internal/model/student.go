package model

import "time"

// Student is the academic record behind a user account with the student role.
// It is created when a user is promoted to student, either manually or through
// enrollment approval.
type Student struct {
	ID            int       `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Photo         string    `json:"photo,omitempty"`
	StudentNumber string    `json:"student_number"`
	Department    string    `json:"department"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateStudentRequest is the payload for registering a student record.
type CreateStudentRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Name          string `json:"name" binding:"required,min=2,max=100"`
	Photo         string `json:"photo" binding:"omitempty,url"`
	StudentNumber string `json:"student_number" binding:"required,min=2,max=30"`
	Department    string `json:"department" binding:"required,min=2,max=100"`
}

// UpdateStudentRequest is the payload for updating an existing student record.
type UpdateStudentRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=100"`
	Photo         string `json:"photo" binding:"omitempty,url"`
	StudentNumber string `json:"student_number" binding:"required,min=2,max=30"`
	Department    string `json:"department" binding:"required,min=2,max=100"`
}
