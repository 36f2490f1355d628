package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/pkg/apperrors"
	"github.com/yigit/lrms/internal/pkg/dberrors"
	"github.com/yigit/lrms/internal/pkg/logger"
)

var ratingColumns = []string{"rt.id", "rt.report_id", "rt.user_id", "rt.rating", "rt.comments", "rt.type", "rt.created_at"}

// RatingRepository handles rating database operations
type RatingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{
		db: db,
		sb: newBuilder(),
	}
}

func scanRating(row pgx.Row) (*models.Rating, error) {
	rt := &models.Rating{}
	if err := row.Scan(&rt.ID, &rt.ReportID, &rt.UserID, &rt.Rating, &rt.Comments, &rt.Type, &rt.CreatedAt); err != nil {
		return nil, err
	}
	return rt, nil
}

// Create inserts a rating.
func (r *RatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	sql, args, err := r.sb.Insert("ratings").
		Columns("report_id", "user_id", "rating", "comments", "type").
		Values(rating.ReportID, rating.UserID, rating.Rating, rating.Comments, rating.Type).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create rating SQL")
		return fmt.Errorf("failed to build create rating query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&rating.ID, &rating.CreatedAt); err != nil {
		switch {
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewValidationError("report does not exist")
		case dberrors.IsCheckViolation(err):
			return apperrors.NewValidationError("rating must be between 1 and 5 with a known type")
		}
		logger.Error().Err(err).Int64("reportID", rating.ReportID).Msg("Error executing create rating query")
		return fmt.Errorf("error creating rating: %w", err)
	}
	return nil
}

func (r *RatingRepository) selectBase() squirrel.SelectBuilder {
	return r.sb.Select(ratingColumns...).From("ratings rt")
}

func (r *RatingRepository) listQuery(caller models.Identity) squirrel.SelectBuilder {
	return scoped(r.selectBase(), ratingScope(caller)).OrderBy("rt.created_at DESC", "rt.id DESC")
}

// List returns the ratings visible to caller.
func (r *RatingRepository) List(ctx context.Context, caller models.Identity) ([]models.Rating, error) {
	return r.query(ctx, r.listQuery(caller))
}

// ListByReport returns every rating of one report. Callers check report
// visibility first.
func (r *RatingRepository) ListByReport(ctx context.Context, reportID int64) ([]models.Rating, error) {
	return r.query(ctx, r.selectBase().Where(squirrel.Eq{"rt.report_id": reportID}).OrderBy("rt.id ASC"))
}

// ListByUser returns ratings authored by one user.
func (r *RatingRepository) ListByUser(ctx context.Context, userID int64) ([]models.Rating, error) {
	return r.query(ctx, r.selectBase().Where(squirrel.Eq{"rt.user_id": userID}).OrderBy("rt.created_at DESC", "rt.id DESC"))
}

func (r *RatingRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]models.Rating, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list ratings SQL")
		return nil, fmt.Errorf("failed to build list ratings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list ratings query")
		return nil, fmt.Errorf("error querying ratings: %w", err)
	}
	defer rows.Close()

	ratings := []models.Rating{}
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning rating row: %w", err)
		}
		ratings = append(ratings, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating rows: %w", err)
	}
	return ratings, nil
}
