package models

import "time"

// Course is a programme-level unit owned by a faculty.
type Course struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	FacultyID int64     `json:"faculty_id"`
	CreatedBy *int64    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Module belongs to a course and is taught by at most one lecturer.
type Module struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Description  string    `json:"description"`
	CourseID     int64     `json:"course_id"`
	LecturerID   *int64    `json:"lecturer_id"`
	LecturerName *string   `json:"lecturer_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Enrollment links a student to a module.
type Enrollment struct {
	StudentID  int64     `json:"student_id"`
	ModuleID   int64     `json:"module_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
