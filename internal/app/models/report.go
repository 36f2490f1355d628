package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar day serialised as YYYY-MM-DD.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Report is a lecturer's record of one delivered lecture. Only PRLFeedback
// changes after creation.
type Report struct {
	ID              int64     `json:"id"`
	FacultyName     string    `json:"faculty_name"`
	ClassName       string    `json:"class_name"`
	Week            int       `json:"week"`
	LectureDate     Date      `json:"lecture_date"`
	CourseName      string    `json:"course_name"`
	CourseCode      string    `json:"course_code"`
	LecturerName    string    `json:"lecturer_name"`
	LecturerID      int64     `json:"lecturer_id"`
	ModuleID        *int64    `json:"module_id"`
	ClassID         *int64    `json:"class_id"`
	StudentsPresent int       `json:"students_present"`
	TotalStudents   int       `json:"total_students"`
	Venue           string    `json:"venue"`
	ScheduledTime   string    `json:"scheduled_time"`
	TopicTaught     string    `json:"topic_taught"`
	LearningOutcome string    `json:"learning_outcomes"`
	Recommendations string    `json:"recommendations"`
	PRLFeedback     *string   `json:"prl_feedback"`
	CreatedAt       time.Time `json:"created_at"`
}

// HasFeedback reports whether a PRL has reviewed the report.
func (r *Report) HasFeedback() bool {
	return r.PRLFeedback != nil && *r.PRLFeedback != ""
}
