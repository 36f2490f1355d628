package dto

import "github.com/yigit/lrms/internal/app/models"

// AttendanceEntry is one lecture as seen by an enrolled student.
type AttendanceEntry struct {
	ReportID        int64       `json:"report_id"`
	ModuleID        int64       `json:"module_id"`
	CourseName      string      `json:"course_name"`
	ClassName       string      `json:"class_name"`
	Week            int         `json:"week"`
	LectureDate     models.Date `json:"lecture_date"`
	StudentsPresent int         `json:"students_present"`
	TotalStudents   int         `json:"total_students"`
	AttendanceRate  float64     `json:"attendance_rate"`
}

// StudentAttendanceResponse lists lectures in the student's modules.
type StudentAttendanceResponse struct {
	Success       bool              `json:"success"`
	AvgAttendance float64           `json:"avg_attendance"`
	Attendance    []AttendanceEntry `json:"attendance"`
}

// StudentFeedbackResponse lists ratings the student has submitted.
type StudentFeedbackResponse struct {
	Success  bool            `json:"success"`
	Feedback []models.Rating `json:"feedback"`
}
