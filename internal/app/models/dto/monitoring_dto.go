package dto

import "github.com/yigit/lrms/internal/app/models"

// ProgramMonitoringResponse is the PL programme dashboard.
type ProgramMonitoringResponse struct {
	Success              bool              `json:"success"`
	AvgAttendance        float64           `json:"avg_attendance"`
	CurriculumCoverage   float64           `json:"curriculum_coverage"`
	StudentSatisfaction  float64           `json:"student_satisfaction"`
	ReportCompletionRate float64           `json:"report_completion_rate"`
	FeedbackRatio        float64           `json:"feedback_ratio"`
	LecturerPerformance  map[int64]float64 `json:"lecturer_performance"`
	OverallPerformance   float64           `json:"overall_performance"`
}

// AttendanceMonitoringResponse is the PRL attendance view.
type AttendanceMonitoringResponse struct {
	Success       bool    `json:"success"`
	AvgAttendance float64 `json:"avg_attendance"`
	ReportCount   int     `json:"report_count"`
}

// LecturerMonitoringResponse is a lecturer's own view.
type LecturerMonitoringResponse struct {
	Success           bool    `json:"success"`
	AvgAttendance     float64 `json:"avg_attendance"`
	StudentEngagement float64 `json:"student_engagement"`
}

// LogActionRequest records a client-side action
type LogActionRequest struct {
	Action string `json:"action" binding:"required,max=255"`
}

// MonitoringLogListResponse lists recent actions
type MonitoringLogListResponse struct {
	Success bool                   `json:"success"`
	Logs    []models.MonitoringLog `json:"logs"`
}
