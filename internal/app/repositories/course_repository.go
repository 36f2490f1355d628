package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/pkg/apperrors"
	"github.com/yigit/lrms/internal/pkg/dberrors"
	"github.com/yigit/lrms/internal/pkg/logger"
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts a course and fills its id and creation time.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "code", "faculty_id", "created_by").
		Values(course.Name, course.Code, course.FacultyID, course.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "uq_courses_code"):
			return apperrors.NewConflictError("course code already exists")
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewValidationError("faculty does not exist")
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

func (r *CourseRepository) selectScoped(caller models.Identity) squirrel.SelectBuilder {
	q := r.sb.Select("c.id", "c.name", "c.code", "c.faculty_id", "c.created_by", "c.created_at").
		From("courses c")
	return scoped(q, courseScope(caller))
}

// listQuery is the scoped course listing.
func (r *CourseRepository) listQuery(caller models.Identity) squirrel.SelectBuilder {
	return r.selectScoped(caller).OrderBy("c.name ASC", "c.id ASC")
}

func (r *CourseRepository) searchQuery(caller models.Identity, query string) squirrel.SelectBuilder {
	return r.listQuery(caller).Where(anyILike(containsPattern(query), "c.name", "c.code"))
}

// Get returns one course if the caller may see it.
func (r *CourseRepository) Get(ctx context.Context, caller models.Identity, id int64) (*models.Course, error) {
	sql, args, err := r.selectScoped(caller).Where(squirrel.Eq{"c.id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	var c models.Course
	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name, &c.Code, &c.FacultyID, &c.CreatedBy, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("course not found")
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return &c, nil
}

// List returns the courses visible to caller.
func (r *CourseRepository) List(ctx context.Context, caller models.Identity) ([]models.Course, error) {
	return r.query(ctx, r.listQuery(caller))
}

// Search matches name or code, within the caller's scope.
func (r *CourseRepository) Search(ctx context.Context, caller models.Identity, query string) ([]models.Course, error) {
	return r.query(ctx, r.searchQuery(caller, query))
}

func (r *CourseRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]models.Course, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.FacultyID, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}
