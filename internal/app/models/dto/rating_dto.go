package dto

import "github.com/yigit/lrms/internal/app/models"

// CreateRatingRequest represents rating submission data
type CreateRatingRequest struct {
	ReportID int64  `json:"report_id" binding:"required,gt=0"`
	Rating   int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comments string `json:"comments" binding:"max=2000"`
	Type     string `json:"type" binding:"required,oneof=student_engagement class_performance course_delivery content_quality overall"`
}

// RatingResponse wraps a single rating
type RatingResponse struct {
	Success bool           `json:"success"`
	Rating  *models.Rating `json:"rating"`
}

// RatingListResponse wraps a list of ratings
type RatingListResponse struct {
	Success bool            `json:"success"`
	Ratings []models.Rating `json:"ratings"`
}
