package dto

import "github.com/yigit/lrms/internal/app/models"

// RegisterRequest creates an account. Students register with a student
// number; every other role needs an email.
type RegisterRequest struct {
	Email         string `json:"email" binding:"omitempty,email,max=255"`
	StudentNumber string `json:"student_number" binding:"omitempty,max=32"`
	Password      string `json:"password" binding:"required,min=8,max=72"`
	Role          string `json:"role" binding:"required"`
	Name          string `json:"name" binding:"required,max=255"`
}

// RegisterResponse carries the new user id.
type RegisterResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// LoginRequest identifies a user by email or student number. Role is
// optional; when sent it must match the stored role.
type LoginRequest struct {
	Role          string `json:"role"`
	Email         string `json:"email"`
	StudentNumber string `json:"student_number"`
	Password      string `json:"password" binding:"required"`
}

// UserData is the public view of a user.
type UserData struct {
	ID            int64       `json:"id"`
	Role          models.Role `json:"role"`
	Name          string      `json:"name"`
	Email         string      `json:"email,omitempty"`
	StudentNumber string      `json:"student_number,omitempty"`
}

// NewUserData builds the public view of u.
func NewUserData(u *models.User) UserData {
	id := u.Identity()
	return UserData{
		ID:            id.UserID,
		Role:          id.Role,
		Name:          id.Name,
		Email:         id.Email,
		StudentNumber: id.StudentNumber,
	}
}

// AuthResponse is returned by login and refresh.
type AuthResponse struct {
	Success   bool     `json:"success"`
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	User      UserData `json:"user"`
}

// ProfileResponse is returned by GET /me.
type ProfileResponse struct {
	Success bool     `json:"success"`
	User    UserData `json:"user"`
}

// LecturerListResponse lists lecturer accounts.
type LecturerListResponse struct {
	Success   bool       `json:"success"`
	Lecturers []UserData `json:"lecturers"`
}
