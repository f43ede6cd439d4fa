package model

import "time"

// NoticeAudience selects which role rooms a notice is announced to.
type NoticeAudience string

const (
	NoticeAudienceAll     NoticeAudience = "all"
	NoticeAudienceStudent NoticeAudience = "student"
	NoticeAudienceFaculty NoticeAudience = "faculty"
)

// Rooms returns the role rooms the audience maps to.
func (a NoticeAudience) Rooms() []string {
	switch a {
	case NoticeAudienceStudent:
		return []string{RoleStudent.Room()}
	case NoticeAudienceFaculty:
		return []string{RoleFaculty.Room()}
	default:
		return []string{RoleStudent.Room(), RoleFaculty.Room()}
	}
}

// Roles returns the account roles whose users receive the notice email.
func (a NoticeAudience) Roles() []Role {
	switch a {
	case NoticeAudienceStudent:
		return []Role{RoleStudent}
	case NoticeAudienceFaculty:
		return []Role{RoleFaculty}
	default:
		return []Role{RoleStudent, RoleFaculty}
	}
}

// Notice is a scheduled announcement. When publish_at passes, the scheduler
// dispatches room notifications and queues reminder emails exactly once.
type Notice struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Audience  NoticeAudience `json:"audience"`
	PublishAt time.Time      `json:"publish_at"`
	Reminded  bool           `json:"reminded"`
	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
}

// CreateNoticeRequest is the payload for scheduling a notice.
type CreateNoticeRequest struct {
	Title     string         `json:"title" binding:"required,min=2,max=200"`
	Body      string         `json:"body" binding:"required,min=2,max=5000"`
	Audience  NoticeAudience `json:"audience" binding:"required,oneof=all student faculty"`
	PublishAt time.Time      `json:"publish_at" binding:"required"`
}
