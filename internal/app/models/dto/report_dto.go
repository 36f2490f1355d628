package dto

import "github.com/yigit/lrms/internal/app/models"

// CreateReportRequest is the lecturer's report form. The author always
// comes from the token.
type CreateReportRequest struct {
	FacultyName      string      `json:"faculty_name" binding:"required,max=255"`
	ClassName        string      `json:"class_name" binding:"required,max=255"`
	Week             int         `json:"week" binding:"required,gte=1,lte=52"`
	LectureDate      models.Date `json:"lecture_date"`
	CourseName       string      `json:"course_name" binding:"required,max=255"`
	CourseCode       string      `json:"course_code" binding:"required,max=32"`
	LecturerName     string      `json:"lecturer_name" binding:"max=255"`
	ModuleID         *int64      `json:"module_id" binding:"omitempty,gt=0"`
	ClassID          *int64      `json:"class_id" binding:"omitempty,gt=0"`
	StudentsPresent  int         `json:"students_present" binding:"gte=0"`
	TotalStudents    int         `json:"total_students" binding:"gte=0"`
	Venue            string      `json:"venue" binding:"max=255"`
	ScheduledTime    string      `json:"scheduled_time" binding:"max=64"`
	TopicTaught      string      `json:"topic_taught" binding:"required"`
	LearningOutcomes string      `json:"learning_outcomes"`
	Recommendations  string      `json:"recommendations"`
}

// FeedbackRequest sets the PRL feedback on a report
type FeedbackRequest struct {
	PRLFeedback string `json:"prl_feedback" binding:"required,max=5000"`
}

// ReportResponse wraps a single report
type ReportResponse struct {
	Success bool           `json:"success"`
	Report  *models.Report `json:"report"`
}

// ReportListResponse wraps a list of reports
type ReportListResponse struct {
	Success bool            `json:"success"`
	Reports []models.Report `json:"reports"`
}
