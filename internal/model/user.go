package model

import "time"

// Role enumerates the account roles. A fresh account starts as RoleUser and
// is promoted by admin actions.
type Role string

const (
	RoleUser    Role = "user"
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// Room returns the realtime broadcast room shared by all accounts of this role.
func (r Role) Room() string {
	return string(r) + "-room"
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

// User represents an account of any role.
type User struct {
	ID            int       `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Photo         string    `json:"photo,omitempty"`
	Role          Role      `json:"role"`
	EnrollRequest bool      `json:"enroll_request"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginResponse is returned after successful login. The token is also set as
// an HTTP-only cookie.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest is the payload for creating a new account.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Photo    string `json:"photo" binding:"omitempty,url"`
	Role     Role   `json:"role" binding:"required,oneof=user student faculty admin"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateUserRoleRequest changes an account's role.
type UpdateUserRoleRequest struct {
	Role Role `json:"role" binding:"required,oneof=user student faculty admin"`
}
