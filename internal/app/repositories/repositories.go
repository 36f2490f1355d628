package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lrms/internal/app/analytics"
	"github.com/yigit/lrms/internal/app/models"
)

// IUserRepository is the credential store.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByStudentNumber(ctx context.Context, studentNumber string) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
}

// IFacultyRepository stores faculties.
type IFacultyRepository interface {
	Create(ctx context.Context, faculty *models.Faculty) error
	List(ctx context.Context) ([]models.Faculty, error)
}

// ICourseRepository stores courses; reads are scoped to the caller.
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	Get(ctx context.Context, caller models.Identity, id int64) (*models.Course, error)
	List(ctx context.Context, caller models.Identity) ([]models.Course, error)
	Search(ctx context.Context, caller models.Identity, query string) ([]models.Course, error)
}

// IModuleRepository stores modules and enrollments.
type IModuleRepository interface {
	Create(ctx context.Context, module *models.Module) error
	GetByID(ctx context.Context, id int64) (*models.Module, error)
	List(ctx context.Context, caller models.Identity, courseID int64) ([]models.Module, error)
	Search(ctx context.Context, caller models.Identity, query string) ([]models.Module, error)
	AssignLecturer(ctx context.Context, moduleID, lecturerID int64) (*models.Module, error)
	Enroll(ctx context.Context, studentID, moduleID int64) error
	CountEnrollments(ctx context.Context, moduleID int64) (int, error)
}

// IClassRepository stores classes.
type IClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	List(ctx context.Context, caller models.Identity) ([]models.Class, error)
	Search(ctx context.Context, caller models.Identity, query string) ([]models.Class, error)
}

// IReportRepository stores lecture reports.
type IReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	Get(ctx context.Context, caller models.Identity, id int64) (*models.Report, error)
	List(ctx context.Context, caller models.Identity) ([]models.Report, error)
	Search(ctx context.Context, caller models.Identity, query string) ([]models.Report, error)
	SetFeedback(ctx context.Context, id int64, feedback string) (*models.Report, error)
}

// IRatingRepository stores ratings.
type IRatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	List(ctx context.Context, caller models.Identity) ([]models.Rating, error)
	ListByReport(ctx context.Context, reportID int64) ([]models.Rating, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Rating, error)
}

// IMonitoringRepository feeds the dashboards and keeps the activity log.
// A lecturerID of 0 means every lecturer.
type IMonitoringRepository interface {
	LogAction(ctx context.Context, entry *models.MonitoringLog) error
	RecentLogs(ctx context.Context, limit uint64) ([]models.MonitoringLog, error)
	ReportStats(ctx context.Context, lecturerID int64) ([]analytics.ReportStat, error)
	ModuleRefs(ctx context.Context) ([]analytics.ModuleRef, error)
	RatingStats(ctx context.Context, lecturerID int64) ([]analytics.RatingStat, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	FacultyRepository    *FacultyRepository
	CourseRepository     *CourseRepository
	ModuleRepository     *ModuleRepository
	ClassRepository      *ClassRepository
	ReportRepository     *ReportRepository
	RatingRepository     *RatingRepository
	MonitoringRepository *MonitoringRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		FacultyRepository:    NewFacultyRepository(db),
		CourseRepository:     NewCourseRepository(db),
		ModuleRepository:     NewModuleRepository(db),
		ClassRepository:      NewClassRepository(db),
		ReportRepository:     NewReportRepository(db),
		RatingRepository:     NewRatingRepository(db),
		MonitoringRepository: NewMonitoringRepository(db),
	}
}

func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
