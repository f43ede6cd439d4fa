package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind identifies what state change produced a notification.
type NotificationKind string

const (
	NotificationEnrollmentRequest NotificationKind = "enrollment_request"
	NotificationEnrollmentResult  NotificationKind = "enrollment_result"
	NotificationCourseAssigned    NotificationKind = "course_assigned"
	NotificationNotice            NotificationKind = "notice"
)

// Notification is a durable, append-only record addressed to a room: either
// a single user's email or a role room such as "admin-room". The realtime
// push is a latency optimization; this row is the source of truth.
type Notification struct {
	ID              int64            `json:"id"`
	Kind            NotificationKind `json:"kind"`
	Recipient       string           `json:"recipient"`
	CourseID        *uuid.UUID       `json:"course_id,omitempty"`
	Message         string           `json:"message"`
	ApplicationDate time.Time        `json:"application_date"`
	Seen            bool             `json:"seen"`
	CreatedAt       time.Time        `json:"created_at"`
}

// MarkSeenRequest is the batch mark-seen payload. Only ids addressed to the
// caller (their email or their role room) are matched.
type MarkSeenRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1,dive,min=1"`
}
