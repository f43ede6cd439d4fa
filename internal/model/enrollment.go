package model

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus enumerates the lifecycle of an enrollment request.
// Transitions are pending→approved or pending→declined only; a decided
// request is terminal.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusDeclined RequestStatus = "declined"
)

// PaymentStatus enumerates the fee payment state of a course membership.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// EnrollmentRequest is a student's admin-reviewed intent to join a course.
// One request per (email, course) is allowed for the account's lifetime;
// re-requesting after a decline is intentionally blocked.
type EnrollmentRequest struct {
	ID                int64         `json:"id"`
	Email             string        `json:"email"`
	CourseID          uuid.UUID     `json:"course_id"`
	CourseCode        string        `json:"course_code"`
	CourseName        string        `json:"course_name"`
	StudentName       string        `json:"student_name"`
	StudentDepartment string        `json:"student_department"`
	Quarter           string        `json:"quarter"`
	Status            RequestStatus `json:"status"`
	RequestedAt       time.Time     `json:"requested_at"`
	UpdatedAt         *time.Time    `json:"updated_at,omitempty"`
}

// CourseMembership is the authoritative record that a student is enrolled in
// a course. At most one membership exists per (student, course).
type CourseMembership struct {
	ID            int64         `json:"id"`
	StudentID     int           `json:"student_id"`
	CourseID      uuid.UUID     `json:"course_id"`
	CourseName    string        `json:"course_name"`
	Credit        int           `json:"credit"`
	Semester      string        `json:"semester"`
	Fee           float64       `json:"fee"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	EnrolledAt    time.Time     `json:"enrolled_at"`
}

// SubmitEnrollmentRequest is the payload a student sends to request a course.
type SubmitEnrollmentRequest struct {
	Email             string    `json:"email" binding:"required,email"`
	CourseID          uuid.UUID `json:"course_id" binding:"required"`
	CourseCode        string    `json:"course_code" binding:"required,min=2,max=20"`
	CourseName        string    `json:"course_name" binding:"required,min=2,max=200"`
	StudentName       string    `json:"student_name" binding:"required,min=2,max=100"`
	StudentDepartment string    `json:"student_department" binding:"required,min=2,max=100"`
	Quarter           string    `json:"quarter" binding:"required,min=2,max=30"`
}

// DecideEnrollmentRequest is the admin payload deciding a pending request.
type DecideEnrollmentRequest struct {
	Status RequestStatus `json:"status" binding:"required,oneof=approved declined"`
}

// EnrollCourseRequest is the direct membership-add payload (self or admin).
// The insert is add-if-absent: repeating it never duplicates a membership.
type EnrollCourseRequest struct {
	Email    string    `json:"email" binding:"required,email"`
	CourseID uuid.UUID `json:"course_id" binding:"required"`
}
