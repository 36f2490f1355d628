package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/lrms/internal/app/analytics"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/app/repositories"
	"github.com/yigit/lrms/internal/pkg/apperrors"
)

// RecentLogLimit caps GET /monitoring/logs.
const RecentLogLimit = 100

// MonitoringService computes the dashboards and keeps the activity log.
type MonitoringService interface {
	Program(ctx context.Context) (*dto.ProgramMonitoringResponse, error)
	Attendance(ctx context.Context) (*dto.AttendanceMonitoringResponse, error)
	Lecturer(ctx context.Context, caller models.Identity) (*dto.LecturerMonitoringResponse, error)
	LogAction(ctx context.Context, caller models.Identity, req *dto.LogActionRequest) error
	RecentLogs(ctx context.Context) ([]models.MonitoringLog, error)
}

type monitoringServiceImpl struct {
	monitoringRepo repositories.IMonitoringRepository
}

// NewMonitoringService creates a new monitoring service instance
func NewMonitoringService(monitoringRepo repositories.IMonitoringRepository) MonitoringService {
	return &monitoringServiceImpl{monitoringRepo: monitoringRepo}
}

// Program is the PL view over every report, module and rating.
func (s *monitoringServiceImpl) Program(ctx context.Context) (*dto.ProgramMonitoringResponse, error) {
	reports, err := s.monitoringRepo.ReportStats(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load report stats: %w", err)
	}
	modules, err := s.monitoringRepo.ModuleRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load modules: %w", err)
	}
	ratings, err := s.monitoringRepo.RatingStats(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load rating stats: %w", err)
	}

	p := analytics.ComputeProgram(reports, modules, ratings)
	return &dto.ProgramMonitoringResponse{
		Success:              true,
		AvgAttendance:        p.AvgAttendance,
		CurriculumCoverage:   p.CurriculumCoverage,
		StudentSatisfaction:  p.StudentSatisfaction,
		ReportCompletionRate: p.ReportCompletionRate,
		FeedbackRatio:        p.FeedbackRatio,
		LecturerPerformance:  p.LecturerPerformance,
		OverallPerformance:   p.OverallPerformance,
	}, nil
}

// Attendance is the PRL view of attendance across all reports.
func (s *monitoringServiceImpl) Attendance(ctx context.Context) (*dto.AttendanceMonitoringResponse, error) {
	reports, err := s.monitoringRepo.ReportStats(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load report stats: %w", err)
	}
	return &dto.AttendanceMonitoringResponse{
		Success:       true,
		AvgAttendance: analytics.AvgAttendance(reports),
		ReportCount:   len(reports),
	}, nil
}

// Lecturer covers the caller's own reports and the ratings on them.
func (s *monitoringServiceImpl) Lecturer(ctx context.Context, caller models.Identity) (*dto.LecturerMonitoringResponse, error) {
	reports, err := s.monitoringRepo.ReportStats(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load report stats: %w", err)
	}
	ratings, err := s.monitoringRepo.RatingStats(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rating stats: %w", err)
	}
	return &dto.LecturerMonitoringResponse{
		Success:           true,
		AvgAttendance:     analytics.AvgAttendance(reports),
		StudentEngagement: analytics.StudentEngagement(ratings),
	}, nil
}

// LogAction appends an entry for the caller to the activity log.
func (s *monitoringServiceImpl) LogAction(ctx context.Context, caller models.Identity, req *dto.LogActionRequest) error {
	action := strings.TrimSpace(req.Action)
	if action == "" {
		return apperrors.NewValidationError("action cannot be empty")
	}
	return s.monitoringRepo.LogAction(ctx, &models.MonitoringLog{
		UserID: caller.UserID,
		Action: action,
	})
}

// RecentLogs returns the newest activity entries.
func (s *monitoringServiceImpl) RecentLogs(ctx context.Context) ([]models.MonitoringLog, error) {
	logs, err := s.monitoringRepo.RecentLogs(ctx, RecentLogLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity log: %w", err)
	}
	return logs, nil
}
