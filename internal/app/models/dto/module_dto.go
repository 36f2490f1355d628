package dto

import "github.com/yigit/lrms/internal/app/models"

// CreateModuleRequest represents module creation data
type CreateModuleRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Code        string `json:"code" binding:"required,max=32"`
	Description string `json:"description" binding:"max=2000"`
	CourseID    int64  `json:"course_id" binding:"required,gt=0"`
	LecturerID  *int64 `json:"lecturer_id" binding:"omitempty,gt=0"`
}

// AssignLecturerRequest sets the module lecturer
type AssignLecturerRequest struct {
	LecturerID int64 `json:"lecturer_id" binding:"required,gt=0"`
}

// EnrollRequest enrolls a student; StudentID is only read for PL callers.
type EnrollRequest struct {
	StudentID int64 `json:"student_id" binding:"omitempty,gt=0"`
}

// ModuleResponse wraps a single module
type ModuleResponse struct {
	Success bool           `json:"success"`
	Module  *models.Module `json:"module"`
}

// ModuleListResponse wraps a list of modules
type ModuleListResponse struct {
	Success bool            `json:"success"`
	Modules []models.Module `json:"modules"`
}
