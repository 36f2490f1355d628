package dto

import "github.com/yigit/lrms/internal/app/models"

// CreateClassRequest represents class creation data. LecturerID is ignored
// when the caller is a lecturer.
type CreateClassRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	ModuleID      int64  `json:"module_id" binding:"required,gt=0"`
	Venue         string `json:"venue" binding:"max=255"`
	ScheduledTime string `json:"scheduled_time" binding:"max=64"`
	LecturerID    *int64 `json:"lecturer_id" binding:"omitempty,gt=0"`
}

// ClassResponse wraps a single class
type ClassResponse struct {
	Success bool          `json:"success"`
	Class   *models.Class `json:"class"`
}

// ClassListResponse wraps a list of classes
type ClassListResponse struct {
	Success bool           `json:"success"`
	Classes []models.Class `json:"classes"`
}
