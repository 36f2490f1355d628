package models

import "time"

// RatingType classifies what a rating scores.
type RatingType string

const (
	RatingStudentEngagement RatingType = "student_engagement"
	RatingClassPerformance  RatingType = "class_performance"
	RatingCourseDelivery    RatingType = "course_delivery"
	RatingContentQuality    RatingType = "content_quality"
	RatingOverall           RatingType = "overall"
)

// Valid reports whether t is a known rating type.
func (t RatingType) Valid() bool {
	switch t {
	case RatingStudentEngagement, RatingClassPerformance, RatingCourseDelivery,
		RatingContentQuality, RatingOverall:
		return true
	}
	return false
}

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is an immutable 1..5 score attached to a report.
type Rating struct {
	ID        int64      `json:"id"`
	ReportID  int64      `json:"report_id"`
	UserID    int64      `json:"user_id"`
	Rating    int        `json:"rating"`
	Comments  string     `json:"comments"`
	Type      RatingType `json:"type"`
	CreatedAt time.Time  `json:"created_at"`
}
