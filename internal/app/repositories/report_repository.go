package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/pkg/apperrors"
	"github.com/yigit/lrms/internal/pkg/dberrors"
	"github.com/yigit/lrms/internal/pkg/logger"
)

var reportColumns = []string{
	"r.id", "r.faculty_name", "r.class_name", "r.week", "r.lecture_date", "r.course_name", "r.course_code",
	"r.lecturer_name", "r.lecturer_id", "r.module_id", "r.class_id", "r.students_present", "r.total_students",
	"r.venue", "r.scheduled_time", "r.topic_taught", "r.learning_outcomes", "r.recommendations",
	"r.prl_feedback", "r.created_at",
}

// ReportRepository handles lecture report database operations
type ReportRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: newBuilder(),
	}
}

func scanReport(row pgx.Row) (*models.Report, error) {
	rp := &models.Report{}
	err := row.Scan(
		&rp.ID, &rp.FacultyName, &rp.ClassName, &rp.Week, &rp.LectureDate.Time, &rp.CourseName, &rp.CourseCode,
		&rp.LecturerName, &rp.LecturerID, &rp.ModuleID, &rp.ClassID, &rp.StudentsPresent, &rp.TotalStudents,
		&rp.Venue, &rp.ScheduledTime, &rp.TopicTaught, &rp.LearningOutcome, &rp.Recommendations,
		&rp.PRLFeedback, &rp.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rp, nil
}

// Create inserts a report. The caller has already resolved total_students
// and set the lecturer from the token.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	sql, args, err := r.sb.Insert("reports").
		Columns(
			"faculty_name", "class_name", "week", "lecture_date", "course_name", "course_code",
			"lecturer_name", "lecturer_id", "module_id", "class_id", "students_present", "total_students",
			"venue", "scheduled_time", "topic_taught", "learning_outcomes", "recommendations",
		).
		Values(
			report.FacultyName, report.ClassName, report.Week, report.LectureDate.Time, report.CourseName, report.CourseCode,
			report.LecturerName, report.LecturerID, report.ModuleID, report.ClassID, report.StudentsPresent, report.TotalStudents,
			report.Venue, report.ScheduledTime, report.TopicTaught, report.LearningOutcome, report.Recommendations,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create report SQL")
		return fmt.Errorf("failed to build create report query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&report.ID, &report.CreatedAt); err != nil {
		switch {
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewValidationError("referenced module or class does not exist")
		case dberrors.IsCheckViolation(err):
			return apperrors.NewValidationError("attendance figures must not be negative")
		}
		logger.Error().Err(err).Int64("lecturerID", report.LecturerID).Msg("Error executing create report query")
		return fmt.Errorf("error creating report: %w", err)
	}
	return nil
}

func (r *ReportRepository) selectScoped(caller models.Identity) squirrel.SelectBuilder {
	return scoped(r.sb.Select(reportColumns...).From("reports r"), reportScope(caller))
}

func (r *ReportRepository) listQuery(caller models.Identity) squirrel.SelectBuilder {
	return r.selectScoped(caller).OrderBy("r.lecture_date DESC", "r.id DESC")
}

func (r *ReportRepository) searchQuery(caller models.Identity, query string) squirrel.SelectBuilder {
	pattern := containsPattern(query)
	return r.listQuery(caller).Where(squirrel.Or{
		anyILike(pattern, "r.course_name", "r.class_name", "r.topic_taught"),
		squirrel.Expr("r.module_id IN (SELECT sm.id FROM modules sm WHERE sm.name ILIKE ?)", pattern),
	})
}

// Get returns one report if the caller may see it.
func (r *ReportRepository) Get(ctx context.Context, caller models.Identity, id int64) (*models.Report, error) {
	sql, args, err := r.selectScoped(caller).Where(squirrel.Eq{"r.id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get report query: %w", err)
	}

	rp, err := scanReport(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("report not found")
		}
		logger.Error().Err(err).Int64("reportID", id).Msg("Error scanning report row")
		return nil, fmt.Errorf("error getting report: %w", err)
	}
	return rp, nil
}

// List returns the reports visible to caller, newest lecture first.
func (r *ReportRepository) List(ctx context.Context, caller models.Identity) ([]models.Report, error) {
	return r.query(ctx, r.listQuery(caller))
}

// Search matches course, class, topic or module name within scope.
func (r *ReportRepository) Search(ctx context.Context, caller models.Identity, query string) ([]models.Report, error) {
	return r.query(ctx, r.searchQuery(caller, query))
}

func (r *ReportRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]models.Report, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list reports SQL")
		return nil, fmt.Errorf("failed to build list reports query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list reports query")
		return nil, fmt.Errorf("error querying reports: %w", err)
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning report row: %w", err)
		}
		reports = append(reports, *rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}
	return reports, nil
}

// setFeedbackQuery touches prl_feedback and nothing else.
func (r *ReportRepository) setFeedbackQuery(id int64, feedback string) squirrel.UpdateBuilder {
	return r.sb.Update("reports r").
		Set("prl_feedback", feedback).
		Where(squirrel.Eq{"r.id": id}).
		Suffix("RETURNING " + strings.Join(reportColumns, ", "))
}

// SetFeedback stores PRL feedback and returns the updated report.
func (r *ReportRepository) SetFeedback(ctx context.Context, id int64, feedback string) (*models.Report, error) {
	sql, args, err := r.setFeedbackQuery(id, feedback).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build set feedback query: %w", err)
	}

	rp, err := scanReport(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("report not found")
		}
		logger.Error().Err(err).Int64("reportID", id).Msg("Error executing set feedback query")
		return nil, fmt.Errorf("error setting feedback: %w", err)
	}
	return rp, nil
}
