package models

import (
	"time"
)

// User is a row of the users table.
type User struct {
	ID            int64     `json:"id"`
	Email         *string   `json:"email,omitempty"`
	StudentNumber *string   `json:"student_number,omitempty"`
	Password      string    `json:"-"`
	Role          Role      `json:"role"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
}

// Identity returns the token identity for u.
func (u *User) Identity() Identity {
	id := Identity{UserID: u.ID, Role: u.Role, Name: u.Name}
	if u.Email != nil {
		id.Email = *u.Email
	}
	if u.StudentNumber != nil {
		id.StudentNumber = *u.StudentNumber
	}
	return id
}
