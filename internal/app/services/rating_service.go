package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/app/repositories"
)

// RatingService manages report ratings.
type RatingService interface {
	CreateRating(ctx context.Context, caller models.Identity, req *dto.CreateRatingRequest) (*models.Rating, error)
	ListRatings(ctx context.Context, caller models.Identity) ([]models.Rating, error)
	ListReportRatings(ctx context.Context, caller models.Identity, reportID int64) ([]models.Rating, error)
}

type ratingServiceImpl struct {
	ratingRepo repositories.IRatingRepository
	reportRepo repositories.IReportRepository
}

// NewRatingService creates a new rating service instance
func NewRatingService(ratingRepo repositories.IRatingRepository, reportRepo repositories.IReportRepository) RatingService {
	return &ratingServiceImpl{
		ratingRepo: ratingRepo,
		reportRepo: reportRepo,
	}
}

// CreateRating stores a rating by the caller on a report the caller can see.
func (s *ratingServiceImpl) CreateRating(ctx context.Context, caller models.Identity, req *dto.CreateRatingRequest) (*models.Rating, error) {
	if _, err := s.reportRepo.Get(ctx, caller, req.ReportID); err != nil {
		return nil, bodyReference(err, "report", req.ReportID)
	}

	rating := &models.Rating{
		ReportID: req.ReportID,
		UserID:   caller.UserID,
		Rating:   req.Rating,
		Comments: strings.TrimSpace(req.Comments),
		Type:     models.RatingType(req.Type),
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// ListRatings returns the ratings visible to the caller.
func (s *ratingServiceImpl) ListRatings(ctx context.Context, caller models.Identity) ([]models.Rating, error) {
	ratings, err := s.ratingRepo.List(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("error retrieving ratings: %w", err)
	}
	return ratings, nil
}

// ListReportRatings returns the ratings of one visible report. Students only
// see their own ratings.
func (s *ratingServiceImpl) ListReportRatings(ctx context.Context, caller models.Identity, reportID int64) ([]models.Rating, error) {
	if _, err := s.reportRepo.Get(ctx, caller, reportID); err != nil {
		return nil, err
	}

	ratings, err := s.ratingRepo.ListByReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving ratings: %w", err)
	}
	if caller.Role != models.RoleStudent {
		return ratings, nil
	}

	own := ratings[:0]
	for _, r := range ratings {
		if r.UserID == caller.UserID {
			own = append(own, r)
		}
	}
	return own, nil
}
