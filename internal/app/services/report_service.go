package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/app/repositories"
	"github.com/yigit/lrms/internal/pkg/apperrors"
	"github.com/yigit/lrms/internal/pkg/export"
)

// ReportService manages lecture reports and PRL feedback.
type ReportService interface {
	CreateReport(ctx context.Context, caller models.Identity, req *dto.CreateReportRequest) (*models.Report, error)
	GetReport(ctx context.Context, caller models.Identity, id int64) (*models.Report, error)
	ListReports(ctx context.Context, caller models.Identity) ([]models.Report, error)
	SetFeedback(ctx context.Context, id int64, req *dto.FeedbackRequest) (*models.Report, error)
	ExportReports(ctx context.Context, caller models.Identity, w io.Writer) error
}

type reportServiceImpl struct {
	reportRepo repositories.IReportRepository
	moduleRepo repositories.IModuleRepository
	classRepo  repositories.IClassRepository
	logger     zerolog.Logger
}

// NewReportService creates a new report service instance
func NewReportService(
	reportRepo repositories.IReportRepository,
	moduleRepo repositories.IModuleRepository,
	classRepo repositories.IClassRepository,
	logger zerolog.Logger,
) ReportService {
	return &reportServiceImpl{
		reportRepo: reportRepo,
		moduleRepo: moduleRepo,
		classRepo:  classRepo,
		logger:     logger,
	}
}

// bodyReference turns a not-found lookup of an id taken from a request body
// into a validation error.
func bodyReference(err error, what string, id int64) error {
	if apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return fmt.Errorf("%w: %s %d does not exist", apperrors.ErrValidationFailed, what, id)
	}
	return err
}

// CreateReport stores a report authored by the caller. The author id and
// default name come from the caller identity. When the lecture is linked to a
// class or module with enrollments, total_students is the enrollment count.
func (s *reportServiceImpl) CreateReport(ctx context.Context, caller models.Identity, req *dto.CreateReportRequest) (*models.Report, error) {
	if req.LectureDate.IsZero() {
		return nil, fmt.Errorf("%w: lecture_date is required", apperrors.ErrValidationFailed)
	}

	report := &models.Report{
		FacultyName:     strings.TrimSpace(req.FacultyName),
		ClassName:       strings.TrimSpace(req.ClassName),
		Week:            req.Week,
		LectureDate:     req.LectureDate,
		CourseName:      strings.TrimSpace(req.CourseName),
		CourseCode:      strings.TrimSpace(req.CourseCode),
		LecturerName:    strings.TrimSpace(req.LecturerName),
		LecturerID:      caller.UserID,
		ModuleID:        req.ModuleID,
		ClassID:         req.ClassID,
		StudentsPresent: req.StudentsPresent,
		TotalStudents:   req.TotalStudents,
		Venue:           strings.TrimSpace(req.Venue),
		ScheduledTime:   strings.TrimSpace(req.ScheduledTime),
		TopicTaught:     strings.TrimSpace(req.TopicTaught),
		LearningOutcome: strings.TrimSpace(req.LearningOutcomes),
		Recommendations: strings.TrimSpace(req.Recommendations),
	}
	if report.LecturerName == "" {
		report.LecturerName = caller.Name
	}

	if err := s.resolveTotalStudents(ctx, report); err != nil {
		return nil, err
	}
	if report.StudentsPresent > report.TotalStudents {
		return nil, fmt.Errorf("%w: students_present (%d) exceeds total_students (%d)",
			apperrors.ErrValidationFailed, report.StudentsPresent, report.TotalStudents)
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("reportId", report.ID).Int64("lecturerId", caller.UserID).Msg("Report created")
	return report, nil
}

func (s *reportServiceImpl) resolveTotalStudents(ctx context.Context, report *models.Report) error {
	if report.ClassID != nil {
		class, err := s.classRepo.GetByID(ctx, *report.ClassID)
		if err != nil {
			return bodyReference(err, "class", *report.ClassID)
		}
		moduleID := class.ModuleID
		report.ModuleID = &moduleID
	} else if report.ModuleID != nil {
		if _, err := s.moduleRepo.GetByID(ctx, *report.ModuleID); err != nil {
			return bodyReference(err, "module", *report.ModuleID)
		}
	}

	if report.ModuleID == nil {
		return nil
	}

	enrolled, err := s.moduleRepo.CountEnrollments(ctx, *report.ModuleID)
	if err != nil {
		return fmt.Errorf("failed to count enrollments: %w", err)
	}
	if enrolled > 0 {
		report.TotalStudents = enrolled
	}
	return nil
}

// GetReport returns one report if the caller can see it.
func (s *reportServiceImpl) GetReport(ctx context.Context, caller models.Identity, id int64) (*models.Report, error) {
	return s.reportRepo.Get(ctx, caller, id)
}

// ListReports returns the reports visible to the caller.
func (s *reportServiceImpl) ListReports(ctx context.Context, caller models.Identity) ([]models.Report, error) {
	reports, err := s.reportRepo.List(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("error retrieving reports: %w", err)
	}
	return reports, nil
}

// SetFeedback records PRL feedback. No other column changes.
func (s *reportServiceImpl) SetFeedback(ctx context.Context, id int64, req *dto.FeedbackRequest) (*models.Report, error) {
	feedback := strings.TrimSpace(req.PRLFeedback)
	if feedback == "" {
		return nil, fmt.Errorf("%w: prl_feedback cannot be empty", apperrors.ErrValidationFailed)
	}
	return s.reportRepo.SetFeedback(ctx, id, feedback)
}

// ExportReports writes the caller's visible reports as a workbook.
func (s *reportServiceImpl) ExportReports(ctx context.Context, caller models.Identity, w io.Writer) error {
	reports, err := s.ListReports(ctx, caller)
	if err != nil {
		return err
	}
	return export.Write(w, export.ReportsSheet(reports))
}
