package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lrms/internal/app/analytics"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/pkg/apperrors"
	"github.com/yigit/lrms/internal/pkg/dberrors"
	"github.com/yigit/lrms/internal/pkg/logger"
)

// MonitoringRepository reads the raw rows behind the dashboards and stores
// the activity log.
type MonitoringRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMonitoringRepository creates a new MonitoringRepository
func NewMonitoringRepository(db *pgxpool.Pool) *MonitoringRepository {
	return &MonitoringRepository{
		db: db,
		sb: newBuilder(),
	}
}

// LogAction appends to the activity log.
func (r *MonitoringRepository) LogAction(ctx context.Context, entry *models.MonitoringLog) error {
	sql, args, err := r.sb.Insert("monitoring_logs").
		Columns("user_id", "action").
		Values(entry.UserID, entry.Action).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build log action query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewValidationError("user does not exist")
		}
		logger.Error().Err(err).Int64("userID", entry.UserID).Msg("Error executing log action query")
		return fmt.Errorf("error logging action: %w", err)
	}
	return nil
}

// RecentLogs returns the newest activity entries.
func (r *MonitoringRepository) RecentLogs(ctx context.Context, limit uint64) ([]models.MonitoringLog, error) {
	sql, args, err := r.sb.Select("l.id", "l.user_id", "u.name", "l.action", "l.created_at").
		From("monitoring_logs l").
		Join("users u ON u.id = l.user_id").
		OrderBy("l.created_at DESC", "l.id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recent logs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing recent logs query")
		return nil, fmt.Errorf("error querying logs: %w", err)
	}
	defer rows.Close()

	logs := []models.MonitoringLog{}
	for rows.Next() {
		var l models.MonitoringLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.UserName, &l.Action, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning log row: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log rows: %w", err)
	}
	return logs, nil
}

func (r *MonitoringRepository) reportStatsQuery(lecturerID int64) squirrel.SelectBuilder {
	q := r.sb.Select("r.lecturer_id", "u.role", "r.students_present", "r.total_students",
		"(r.prl_feedback IS NOT NULL AND r.prl_feedback <> '')").
		From("reports r").
		Join("users u ON u.id = r.lecturer_id")
	if lecturerID > 0 {
		q = q.Where(squirrel.Eq{"r.lecturer_id": lecturerID})
	}
	return q
}

// ReportStats returns one row per report.
func (r *MonitoringRepository) ReportStats(ctx context.Context, lecturerID int64) ([]analytics.ReportStat, error) {
	sql, args, err := r.reportStatsQuery(lecturerID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build report stats query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing report stats query")
		return nil, fmt.Errorf("error querying report stats: %w", err)
	}
	defer rows.Close()

	stats := []analytics.ReportStat{}
	for rows.Next() {
		var s analytics.ReportStat
		if err := rows.Scan(&s.LecturerID, &s.LecturerRole, &s.StudentsPresent, &s.TotalStudents, &s.HasFeedback); err != nil {
			return nil, fmt.Errorf("error scanning report stats row: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report stats rows: %w", err)
	}
	return stats, nil
}

// ModuleRefs returns the id and name of every module.
func (r *MonitoringRepository) ModuleRefs(ctx context.Context) ([]analytics.ModuleRef, error) {
	sql, args, err := r.sb.Select("id", "name").From("modules").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build module refs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing module refs query")
		return nil, fmt.Errorf("error querying module refs: %w", err)
	}
	defer rows.Close()

	refs := []analytics.ModuleRef{}
	for rows.Next() {
		var m analytics.ModuleRef
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("error scanning module ref row: %w", err)
		}
		refs = append(refs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating module ref rows: %w", err)
	}
	return refs, nil
}

func (r *MonitoringRepository) ratingStatsQuery(lecturerID int64) squirrel.SelectBuilder {
	q := r.sb.Select("rt.rating", "rt.type").From("ratings rt")
	if lecturerID > 0 {
		q = q.Join("reports r ON r.id = rt.report_id").Where(squirrel.Eq{"r.lecturer_id": lecturerID})
	}
	return q
}

// RatingStats returns score and type of every rating, optionally limited to
// ratings of one lecturer's reports.
func (r *MonitoringRepository) RatingStats(ctx context.Context, lecturerID int64) ([]analytics.RatingStat, error) {
	sql, args, err := r.ratingStatsQuery(lecturerID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build rating stats query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing rating stats query")
		return nil, fmt.Errorf("error querying rating stats: %w", err)
	}
	defer rows.Close()

	stats := []analytics.RatingStat{}
	for rows.Next() {
		var s analytics.RatingStat
		if err := rows.Scan(&s.Rating, &s.Type); err != nil {
			return nil, fmt.Errorf("error scanning rating stats row: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating stats rows: %w", err)
	}
	return stats, nil
}
