package dto

import "github.com/yigit/lrms/internal/app/models"

// CreateFacultyRequest represents faculty creation data
type CreateFacultyRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Code string `json:"code" binding:"required,max=32"`
}

// FacultyResponse wraps a single faculty
type FacultyResponse struct {
	Success bool            `json:"success"`
	Faculty *models.Faculty `json:"faculty"`
}

// FacultyListResponse represents a list of faculties
type FacultyListResponse struct {
	Success   bool             `json:"success"`
	Faculties []models.Faculty `json:"faculties"`
}
