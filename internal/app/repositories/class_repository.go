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

var classColumns = []string{
	"cl.id", "cl.name", "cl.module_id", "cl.venue", "cl.scheduled_time", "cl.lecturer_id", "cl.created_at",
}

// ClassRepository handles class database operations
type ClassRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
		sb: newBuilder(),
	}
}

func scanClass(row pgx.Row) (*models.Class, error) {
	c := &models.Class{}
	if err := row.Scan(&c.ID, &c.Name, &c.ModuleID, &c.Venue, &c.ScheduledTime, &c.LecturerID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a class.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	sql, args, err := r.sb.Insert("classes").
		Columns("name", "module_id", "venue", "scheduled_time", "lecturer_id").
		Values(class.Name, class.ModuleID, class.Venue, class.ScheduledTime, class.LecturerID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create class SQL")
		return fmt.Errorf("failed to build create class query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&class.ID, &class.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewValidationError("module or lecturer does not exist")
		}
		logger.Error().Err(err).Msg("Error executing create class query")
		return fmt.Errorf("error creating class: %w", err)
	}
	return nil
}

// GetByID reads a class without scoping.
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	sql, args, err := r.sb.Select(classColumns...).
		From("classes cl").
		Where(squirrel.Eq{"cl.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class query: %w", err)
	}

	c, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("class not found")
		}
		logger.Error().Err(err).Int64("classID", id).Msg("Error scanning class row")
		return nil, fmt.Errorf("error getting class: %w", err)
	}
	return c, nil
}

func (r *ClassRepository) listQuery(caller models.Identity) squirrel.SelectBuilder {
	q := r.sb.Select(classColumns...).From("classes cl")
	return scoped(q, classScope(caller)).OrderBy("cl.name ASC", "cl.id ASC")
}

func (r *ClassRepository) searchQuery(caller models.Identity, query string) squirrel.SelectBuilder {
	return r.listQuery(caller).Where(anyILike(containsPattern(query), "cl.name"))
}

// List returns the classes visible to caller.
func (r *ClassRepository) List(ctx context.Context, caller models.Identity) ([]models.Class, error) {
	return r.query(ctx, r.listQuery(caller))
}

// Search matches the class name within the caller's scope.
func (r *ClassRepository) Search(ctx context.Context, caller models.Identity, query string) ([]models.Class, error) {
	return r.query(ctx, r.searchQuery(caller, query))
}

func (r *ClassRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]models.Class, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list classes SQL")
		return nil, fmt.Errorf("failed to build list classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list classes query")
		return nil, fmt.Errorf("error querying classes: %w", err)
	}
	defer rows.Close()

	classes := []models.Class{}
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning class row: %w", err)
		}
		classes = append(classes, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class rows: %w", err)
	}
	return classes, nil
}
