package dto

import "github.com/yigit/lrms/internal/app/models"

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	Code      string `json:"code" binding:"required,max=32"`
	FacultyID int64  `json:"faculty_id" binding:"required,gt=0"`
}

// CourseResponse wraps a single course
type CourseResponse struct {
	Success bool           `json:"success"`
	Course  *models.Course `json:"course"`
}

// CourseListResponse wraps a list of courses
type CourseListResponse struct {
	Success bool            `json:"success"`
	Courses []models.Course `json:"courses"`
}
