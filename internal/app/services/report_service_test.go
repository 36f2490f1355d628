package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/pkg/apperrors"
)

var lecturerA = models.Identity{UserID: 11, Role: models.RoleLecturer, Name: "Lecturer A"}

func newTestReportService() (*reportServiceImpl, *fakeReportRepo, *fakeModuleRepo, *fakeClassRepo) {
	reports := &fakeReportRepo{}
	modules := newFakeModuleRepo(&models.Module{ID: 1, Name: "Web", LecturerID: int64Ptr(lecturerA.UserID)})
	classes := &fakeClassRepo{classes: map[int64]*models.Class{5: {ID: 5, Name: "DIWA-A", ModuleID: 1}}}
	svc := NewReportService(reports, modules, classes, zerolog.Nop()).(*reportServiceImpl)
	return svc, reports, modules, classes
}

func decodeReportRequest(t *testing.T, body string) *dto.CreateReportRequest {
	t.Helper()
	var req dto.CreateReportRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return &req
}

func TestCreateReportIgnoresForgedLecturerID(t *testing.T) {
	svc, reports, _, _ := newTestReportService()

	req := decodeReportRequest(t, `{
		"faculty_name": "FICT", "class_name": "DIWA-A", "week": 3, "lecture_date": "2024-03-05",
		"course_name": "Web", "course_code": "DIWA2110", "lecturer_id": 999,
		"students_present": 20, "total_students": 30, "topic_taught": "Routing"
	}`)

	report, err := svc.CreateReport(context.Background(), lecturerA, req)
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if report.LecturerID != lecturerA.UserID || reports.reports[0].LecturerID != lecturerA.UserID {
		t.Fatalf("stored lecturer_id = %d, want %d", reports.reports[0].LecturerID, lecturerA.UserID)
	}
	if report.LecturerName != lecturerA.Name {
		t.Fatalf("lecturer name = %q, want token name", report.LecturerName)
	}
}

func TestCreateReportTotalStudents(t *testing.T) {
	ctx := context.Background()

	t.Run("class enrollments win", func(t *testing.T) {
		svc, _, modules, _ := newTestReportService()
		for i := int64(1); i <= 30; i++ {
			_ = modules.Enroll(ctx, 1000+i, 1)
		}
		req := decodeReportRequest(t, `{"faculty_name":"F","class_name":"C","week":1,"lecture_date":"2024-01-10",
			"course_name":"Web","course_code":"W1","class_id":5,"students_present":25,"total_students":10,"topic_taught":"T"}`)

		report, err := svc.CreateReport(ctx, lecturerA, req)
		if err != nil {
			t.Fatalf("CreateReport: %v", err)
		}
		if report.TotalStudents != 30 || report.ModuleID == nil || *report.ModuleID != 1 {
			t.Fatalf("total = %d module = %v", report.TotalStudents, report.ModuleID)
		}
	})

	t.Run("body value without enrollments", func(t *testing.T) {
		svc, _, _, _ := newTestReportService()
		req := decodeReportRequest(t, `{"faculty_name":"F","class_name":"C","week":1,"lecture_date":"2024-01-10",
			"course_name":"Web","course_code":"W1","module_id":1,"students_present":5,"total_students":12,"topic_taught":"T"}`)

		report, err := svc.CreateReport(ctx, lecturerA, req)
		if err != nil {
			t.Fatalf("CreateReport: %v", err)
		}
		if report.TotalStudents != 12 {
			t.Fatalf("total = %d, want 12", report.TotalStudents)
		}
	})

	rejects := map[string]string{
		"unknown class":       `{"week":1,"lecture_date":"2024-01-10","class_id":77,"students_present":1,"total_students":2}`,
		"unknown module":      `{"week":1,"lecture_date":"2024-01-10","module_id":77,"students_present":1,"total_students":2}`,
		"present over total":  `{"week":1,"lecture_date":"2024-01-10","students_present":9,"total_students":2}`,
		"missing lecture day": `{"week":1,"students_present":1,"total_students":2}`,
	}
	for name, body := range rejects {
		t.Run(name, func(t *testing.T) {
			svc, reports, _, _ := newTestReportService()
			_, err := svc.CreateReport(ctx, lecturerA, decodeReportRequest(t, body))
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("err = %v, want validation failure", err)
			}
			if len(reports.reports) != 0 {
				t.Fatal("report stored despite validation failure")
			}
		})
	}
}

func TestReportVisibilityAndFeedback(t *testing.T) {
	ctx := context.Background()
	svc, reports, _, _ := newTestReportService()
	_ = reports.Create(ctx, &models.Report{LecturerID: lecturerA.UserID, TopicTaught: "A"})

	lecturerB := models.Identity{UserID: 12, Role: models.RoleLecturer}
	if _, err := svc.GetReport(ctx, lecturerB, 1); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("other lecturer get err = %v", err)
	}
	list, err := svc.ListReports(ctx, lecturerB)
	if err != nil || len(list) != 0 {
		t.Fatalf("lecturer B list = %v, %v", list, err)
	}

	if _, err := svc.SetFeedback(ctx, 1, &dto.FeedbackRequest{PRLFeedback: "   "}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("blank feedback err = %v", err)
	}
	report, err := svc.SetFeedback(ctx, 1, &dto.FeedbackRequest{PRLFeedback: "Good pacing"})
	if err != nil {
		t.Fatalf("SetFeedback: %v", err)
	}
	if !report.HasFeedback() || report.TopicTaught != "A" {
		t.Fatalf("report = %+v", report)
	}
	if _, err := svc.SetFeedback(ctx, 99, &dto.FeedbackRequest{PRLFeedback: "x"}); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("unknown report err = %v", err)
	}

	got, err := svc.GetReport(ctx, lecturerA, 1)
	if err != nil || got.PRLFeedback == nil || *got.PRLFeedback != "Good pacing" {
		t.Fatalf("lecturer A sees %+v, %v", got, err)
	}
}

func TestExportReports(t *testing.T) {
	ctx := context.Background()
	svc, reports, _, _ := newTestReportService()
	_ = reports.Create(ctx, &models.Report{LecturerID: lecturerA.UserID, TopicTaught: "A"})

	var buf bytes.Buffer
	if err := svc.ExportReports(ctx, models.Identity{UserID: 1, Role: models.RolePL}, &buf); err != nil {
		t.Fatalf("ExportReports: %v", err)
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Fatal("export is not a zip container")
	}
}
