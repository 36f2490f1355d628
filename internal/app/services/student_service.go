package services

import (
	"context"
	"fmt"
	"io"

	"github.com/yigit/lrms/internal/app/analytics"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/app/repositories"
	"github.com/yigit/lrms/internal/pkg/export"
)

// StudentService serves the student's own views.
type StudentService interface {
	Attendance(ctx context.Context, caller models.Identity) (*dto.StudentAttendanceResponse, error)
	Feedback(ctx context.Context, caller models.Identity) ([]models.Rating, error)
	ExportFeedback(ctx context.Context, caller models.Identity, w io.Writer) error
}

type studentServiceImpl struct {
	reportRepo repositories.IReportRepository
	ratingRepo repositories.IRatingRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(reportRepo repositories.IReportRepository, ratingRepo repositories.IRatingRepository) StudentService {
	return &studentServiceImpl{
		reportRepo: reportRepo,
		ratingRepo: ratingRepo,
	}
}

// Attendance lists the lectures of the student's enrolled modules.
func (s *studentServiceImpl) Attendance(ctx context.Context, caller models.Identity) (*dto.StudentAttendanceResponse, error) {
	reports, err := s.reportRepo.List(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("error retrieving reports: %w", err)
	}

	entries := make([]dto.AttendanceEntry, 0, len(reports))
	stats := make([]analytics.ReportStat, 0, len(reports))
	for _, r := range reports {
		stat := analytics.ReportStat{
			LecturerID:      r.LecturerID,
			StudentsPresent: r.StudentsPresent,
			TotalStudents:   r.TotalStudents,
		}
		stats = append(stats, stat)

		entry := dto.AttendanceEntry{
			ReportID:        r.ID,
			CourseName:      r.CourseName,
			ClassName:       r.ClassName,
			Week:            r.Week,
			LectureDate:     r.LectureDate,
			StudentsPresent: r.StudentsPresent,
			TotalStudents:   r.TotalStudents,
			AttendanceRate:  analytics.AvgAttendance([]analytics.ReportStat{stat}),
		}
		if r.ModuleID != nil {
			entry.ModuleID = *r.ModuleID
		}
		entries = append(entries, entry)
	}

	return &dto.StudentAttendanceResponse{
		Success:       true,
		AvgAttendance: analytics.AvgAttendance(stats),
		Attendance:    entries,
	}, nil
}

// Feedback returns the ratings the student has submitted.
func (s *studentServiceImpl) Feedback(ctx context.Context, caller models.Identity) ([]models.Rating, error) {
	ratings, err := s.ratingRepo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}
	return ratings, nil
}

// ExportFeedback writes the student's ratings as a workbook.
func (s *studentServiceImpl) ExportFeedback(ctx context.Context, caller models.Identity, w io.Writer) error {
	ratings, err := s.Feedback(ctx, caller)
	if err != nil {
		return err
	}
	return export.Write(w, export.FeedbackSheet(ratings))
}
