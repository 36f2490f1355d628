package services

import (
	"context"
	"strings"

	"github.com/yigit/lrms/internal/app/analytics"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/pkg/apperrors"
)

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]*models.User{}, nextID: 100}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	for _, u := range r.users {
		if user.Email != nil && u.Email != nil && strings.EqualFold(*u.Email, *user.Email) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if user.StudentNumber != nil && u.StudentNumber != nil && *u.StudentNumber == *user.StudentNumber {
			return 0, apperrors.ErrIdentifierExists
		}
	}
	r.nextID++
	stored := *user
	stored.ID = r.nextID
	r.users[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email != nil && strings.EqualFold(*u.Email, email) {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByStudentNumber(_ context.Context, number string) (*models.User, error) {
	for _, u := range r.users {
		if u.StudentNumber != nil && *u.StudentNumber == number {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeModuleRepo struct {
	modules     map[int64]*models.Module
	enrollments map[int64][]int64
}

func newFakeModuleRepo(modules ...*models.Module) *fakeModuleRepo {
	r := &fakeModuleRepo{modules: map[int64]*models.Module{}, enrollments: map[int64][]int64{}}
	for _, m := range modules {
		r.modules[m.ID] = m
	}
	return r
}

func (r *fakeModuleRepo) Create(_ context.Context, module *models.Module) error {
	module.ID = int64(len(r.modules) + 1)
	r.modules[module.ID] = module
	return nil
}

func (r *fakeModuleRepo) GetByID(_ context.Context, id int64) (*models.Module, error) {
	if m, ok := r.modules[id]; ok {
		return m, nil
	}
	return nil, apperrors.NewResourceNotFoundError("module not found")
}

func (r *fakeModuleRepo) List(_ context.Context, caller models.Identity, courseID int64) ([]models.Module, error) {
	var out []models.Module
	for _, m := range r.modules {
		if courseID > 0 && m.CourseID != courseID {
			continue
		}
		if caller.Role == models.RoleLecturer && (m.LecturerID == nil || *m.LecturerID != caller.UserID) {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeModuleRepo) Search(_ context.Context, _ models.Identity, query string) ([]models.Module, error) {
	var out []models.Module
	for _, m := range r.modules {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(query)) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeModuleRepo) AssignLecturer(_ context.Context, moduleID, lecturerID int64) (*models.Module, error) {
	m, ok := r.modules[moduleID]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("module not found")
	}
	m.LecturerID = &lecturerID
	return m, nil
}

func (r *fakeModuleRepo) Enroll(_ context.Context, studentID, moduleID int64) error {
	r.enrollments[moduleID] = append(r.enrollments[moduleID], studentID)
	return nil
}

func (r *fakeModuleRepo) CountEnrollments(_ context.Context, moduleID int64) (int, error) {
	return len(r.enrollments[moduleID]), nil
}

type fakeClassRepo struct {
	classes map[int64]*models.Class
}

func (r *fakeClassRepo) Create(_ context.Context, class *models.Class) error {
	if r.classes == nil {
		r.classes = map[int64]*models.Class{}
	}
	class.ID = int64(len(r.classes) + 1)
	r.classes[class.ID] = class
	return nil
}

func (r *fakeClassRepo) GetByID(_ context.Context, id int64) (*models.Class, error) {
	if c, ok := r.classes[id]; ok {
		return c, nil
	}
	return nil, apperrors.NewResourceNotFoundError("class not found")
}

func (r *fakeClassRepo) List(context.Context, models.Identity) ([]models.Class, error) {
	var out []models.Class
	for _, c := range r.classes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeClassRepo) Search(context.Context, models.Identity, string) ([]models.Class, error) {
	return []models.Class{}, nil
}

// fakeReportRepo scopes lecturers to their own reports and lets every other
// role see everything.
type fakeReportRepo struct {
	reports []*models.Report
}

func (r *fakeReportRepo) visible(caller models.Identity, rep *models.Report) bool {
	return caller.Role != models.RoleLecturer || rep.LecturerID == caller.UserID
}

func (r *fakeReportRepo) Create(_ context.Context, report *models.Report) error {
	report.ID = int64(len(r.reports) + 1)
	r.reports = append(r.reports, report)
	return nil
}

func (r *fakeReportRepo) Get(_ context.Context, caller models.Identity, id int64) (*models.Report, error) {
	for _, rep := range r.reports {
		if rep.ID == id && r.visible(caller, rep) {
			return rep, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("report not found")
}

func (r *fakeReportRepo) List(_ context.Context, caller models.Identity) ([]models.Report, error) {
	out := []models.Report{}
	for _, rep := range r.reports {
		if r.visible(caller, rep) {
			out = append(out, *rep)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) Search(ctx context.Context, caller models.Identity, query string) ([]models.Report, error) {
	all, _ := r.List(ctx, caller)
	out := []models.Report{}
	for _, rep := range all {
		if strings.Contains(strings.ToLower(rep.TopicTaught), strings.ToLower(query)) {
			out = append(out, rep)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) SetFeedback(_ context.Context, id int64, feedback string) (*models.Report, error) {
	for _, rep := range r.reports {
		if rep.ID == id {
			rep.PRLFeedback = &feedback
			return rep, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("report not found")
}

type fakeRatingRepo struct {
	ratings []models.Rating
}

func (r *fakeRatingRepo) Create(_ context.Context, rating *models.Rating) error {
	rating.ID = int64(len(r.ratings) + 1)
	r.ratings = append(r.ratings, *rating)
	return nil
}

func (r *fakeRatingRepo) List(_ context.Context, caller models.Identity) ([]models.Rating, error) {
	if caller.Role.CanSeeAll() {
		return r.ratings, nil
	}
	return r.ListByUser(context.Background(), caller.UserID)
}

func (r *fakeRatingRepo) ListByReport(_ context.Context, reportID int64) ([]models.Rating, error) {
	var out []models.Rating
	for _, rt := range r.ratings {
		if rt.ReportID == reportID {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (r *fakeRatingRepo) ListByUser(_ context.Context, userID int64) ([]models.Rating, error) {
	var out []models.Rating
	for _, rt := range r.ratings {
		if rt.UserID == userID {
			out = append(out, rt)
		}
	}
	return out, nil
}

type fakeMonitoringRepo struct {
	reports []analytics.ReportStat
	modules []analytics.ModuleRef
	ratings []analytics.RatingStat
	logs    []models.MonitoringLog

	lastLecturerID int64
}

func (r *fakeMonitoringRepo) LogAction(_ context.Context, entry *models.MonitoringLog) error {
	r.logs = append(r.logs, *entry)
	return nil
}

func (r *fakeMonitoringRepo) RecentLogs(_ context.Context, limit uint64) ([]models.MonitoringLog, error) {
	if uint64(len(r.logs)) > limit {
		return r.logs[:limit], nil
	}
	return r.logs, nil
}

func (r *fakeMonitoringRepo) ReportStats(_ context.Context, lecturerID int64) ([]analytics.ReportStat, error) {
	r.lastLecturerID = lecturerID
	if lecturerID == 0 {
		return r.reports, nil
	}
	var out []analytics.ReportStat
	for _, s := range r.reports {
		if s.LecturerID == lecturerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeMonitoringRepo) ModuleRefs(context.Context) ([]analytics.ModuleRef, error) {
	return r.modules, nil
}

func (r *fakeMonitoringRepo) RatingStats(context.Context, int64) ([]analytics.RatingStat, error) {
	return r.ratings, nil
}

type fakeCourseRepo struct {
	courses []models.Course
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	for _, c := range r.courses {
		if c.Code == course.Code {
			return apperrors.NewConflictError("course code already exists")
		}
	}
	course.ID = int64(len(r.courses) + 1)
	r.courses = append(r.courses, *course)
	return nil
}

func (r *fakeCourseRepo) Get(_ context.Context, _ models.Identity, id int64) (*models.Course, error) {
	for i := range r.courses {
		if r.courses[i].ID == id {
			return &r.courses[i], nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("course not found")
}

func (r *fakeCourseRepo) List(context.Context, models.Identity) ([]models.Course, error) {
	return r.courses, nil
}

func (r *fakeCourseRepo) Search(context.Context, models.Identity, string) ([]models.Course, error) {
	return r.courses, nil
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
