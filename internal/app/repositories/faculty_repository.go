package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/pkg/apperrors"
	"github.com/yigit/lrms/internal/pkg/dberrors"
	"github.com/yigit/lrms/internal/pkg/logger"
)

// FacultyRepository handles faculty database operations
type FacultyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create creates a new faculty
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	sql, args, err := r.sb.Insert("faculties").
		Columns("name", "code").
		Values(faculty.Name, faculty.Code).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create faculty SQL")
		return fmt.Errorf("failed to build create faculty query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&faculty.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_faculties_code") {
			return apperrors.NewConflictError("faculty code already exists")
		}
		logger.Error().Err(err).Msg("Error executing create faculty query")
		return fmt.Errorf("error creating faculty: %w", err)
	}

	return nil
}

// List retrieves all faculties
func (r *FacultyRepository) List(ctx context.Context) ([]models.Faculty, error) {
	sql, args, err := r.sb.Select("id", "name", "code").
		From("faculties").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all faculties SQL")
		return nil, fmt.Errorf("failed to build get all faculties query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all faculties query")
		return nil, fmt.Errorf("error querying faculties: %w", err)
	}
	defer rows.Close()

	faculties := []models.Faculty{}
	for rows.Next() {
		var f models.Faculty
		if err := rows.Scan(&f.ID, &f.Name, &f.Code); err != nil {
			logger.Error().Err(err).Msg("Error scanning faculty row")
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculties = append(faculties, f)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating faculty rows")
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}

	return faculties, nil
}

// EnsureByCode inserts the faculty unless one with the same code exists.
func (r *FacultyRepository) EnsureByCode(ctx context.Context, faculty *models.Faculty) error {
	sql, args, err := r.sb.Insert("faculties").
		Columns("name", "code").
		Values(faculty.Name, faculty.Code).
		Suffix("ON CONFLICT (code) DO UPDATE SET code = EXCLUDED.code RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build ensure faculty query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&faculty.ID); err != nil {
		return fmt.Errorf("error ensuring faculty %s: %w", faculty.Code, err)
	}
	return nil
}
