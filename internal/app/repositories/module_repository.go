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

var moduleColumns = []string{
	"m.id", "m.name", "m.code", "m.description", "m.course_id", "m.lecturer_id", "u.name", "m.created_at",
}

// ModuleRepository handles module and enrollment database operations
type ModuleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewModuleRepository creates a new ModuleRepository
func NewModuleRepository(db *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{
		db: db,
		sb: newBuilder(),
	}
}

func scanModule(row pgx.Row) (*models.Module, error) {
	m := &models.Module{}
	err := row.Scan(&m.ID, &m.Name, &m.Code, &m.Description, &m.CourseID, &m.LecturerID, &m.LecturerName, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *ModuleRepository) selectBase() squirrel.SelectBuilder {
	return r.sb.Select(moduleColumns...).
		From("modules m").
		LeftJoin("users u ON u.id = m.lecturer_id")
}

// Create inserts a module.
func (r *ModuleRepository) Create(ctx context.Context, module *models.Module) error {
	sql, args, err := r.sb.Insert("modules").
		Columns("name", "code", "description", "course_id", "lecturer_id").
		Values(module.Name, module.Code, module.Description, module.CourseID, module.LecturerID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create module SQL")
		return fmt.Errorf("failed to build create module query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&module.ID, &module.CreatedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "uq_modules_code"):
			return apperrors.NewConflictError("module code already exists")
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewValidationError("course or lecturer does not exist")
		}
		logger.Error().Err(err).Msg("Error executing create module query")
		return fmt.Errorf("error creating module: %w", err)
	}
	return nil
}

// GetByID reads a module without scoping; callers enforce visibility.
func (r *ModuleRepository) GetByID(ctx context.Context, id int64) (*models.Module, error) {
	sql, args, err := r.selectBase().Where(squirrel.Eq{"m.id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get module query: %w", err)
	}

	m, err := scanModule(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("module not found")
		}
		logger.Error().Err(err).Int64("moduleID", id).Msg("Error scanning module row")
		return nil, fmt.Errorf("error getting module: %w", err)
	}
	return m, nil
}

// listQuery is the scoped module listing, optionally narrowed to a course.
func (r *ModuleRepository) listQuery(caller models.Identity, courseID int64) squirrel.SelectBuilder {
	q := scoped(r.selectBase(), moduleScope(caller))
	if courseID > 0 {
		q = q.Where(squirrel.Eq{"m.course_id": courseID})
	}
	return q.OrderBy("m.name ASC", "m.id ASC")
}

func (r *ModuleRepository) searchQuery(caller models.Identity, query string) squirrel.SelectBuilder {
	return r.listQuery(caller, 0).Where(anyILike(containsPattern(query), "m.name", "m.code"))
}

// List returns the modules visible to caller; courseID 0 means any course.
func (r *ModuleRepository) List(ctx context.Context, caller models.Identity, courseID int64) ([]models.Module, error) {
	return r.query(ctx, r.listQuery(caller, courseID))
}

// Search matches name or code within the caller's scope.
func (r *ModuleRepository) Search(ctx context.Context, caller models.Identity, query string) ([]models.Module, error) {
	return r.query(ctx, r.searchQuery(caller, query))
}

func (r *ModuleRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]models.Module, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list modules SQL")
		return nil, fmt.Errorf("failed to build list modules query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list modules query")
		return nil, fmt.Errorf("error querying modules: %w", err)
	}
	defer rows.Close()

	modules := []models.Module{}
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning module row: %w", err)
		}
		modules = append(modules, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating module rows: %w", err)
	}
	return modules, nil
}

// AssignLecturer overwrites the module lecturer and returns the updated row.
func (r *ModuleRepository) AssignLecturer(ctx context.Context, moduleID, lecturerID int64) (*models.Module, error) {
	sql, args, err := r.sb.Update("modules").
		Set("lecturer_id", lecturerID).
		Where(squirrel.Eq{"id": moduleID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build assign lecturer query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewValidationError("lecturer does not exist")
		}
		logger.Error().Err(err).Int64("moduleID", moduleID).Msg("Error executing assign lecturer query")
		return nil, fmt.Errorf("error assigning lecturer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewResourceNotFoundError("module not found")
	}

	return r.GetByID(ctx, moduleID)
}

// Enroll adds a student to a module. Enrolling twice is a no-op.
func (r *ModuleRepository) Enroll(ctx context.Context, studentID, moduleID int64) error {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "module_id").
		Values(studentID, moduleID).
		Suffix("ON CONFLICT (student_id, module_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build enroll query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewValidationError("student or module does not exist")
		}
		logger.Error().Err(err).Int64("moduleID", moduleID).Int64("studentID", studentID).Msg("Error executing enroll query")
		return fmt.Errorf("error enrolling student: %w", err)
	}
	return nil
}

// CountEnrollments counts students enrolled in a module.
func (r *ModuleRepository) CountEnrollments(ctx context.Context, moduleID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("enrollments").
		Where(squirrel.Eq{"module_id": moduleID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count enrollments query: %w", err)
	}

	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Int64("moduleID", moduleID).Msg("Error counting enrollments")
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return n, nil
}
