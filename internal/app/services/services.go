// Package services holds the business rules between the HTTP controllers and
// the role-scoped repositories. Every method takes the caller identity taken
// from the verified token; nothing here trusts identity fields in a body.
package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/lrms/internal/app/repositories"
	"github.com/yigit/lrms/internal/pkg/auth"
)

// Services bundles every service the router needs.
type Services struct {
	Auth       *AuthService
	Faculty    FacultyService
	Course     CourseService
	Module     ModuleService
	Class      ClassService
	Report     ReportService
	Rating     RatingService
	Monitoring MonitoringService
	Search     SearchService
	Student    StudentService
}

// NewServices wires the services over the given repositories.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, logger zerolog.Logger) *Services {
	return &Services{
		Auth:       NewAuthService(repos.UserRepository, jwtService, logger),
		Faculty:    NewFacultyService(repos.FacultyRepository),
		Course:     NewCourseService(repos.CourseRepository, repos.ModuleRepository),
		Module:     NewModuleService(repos.ModuleRepository, repos.UserRepository),
		Class:      NewClassService(repos.ClassRepository, repos.ModuleRepository, repos.UserRepository),
		Report:     NewReportService(repos.ReportRepository, repos.ModuleRepository, repos.ClassRepository, logger),
		Rating:     NewRatingService(repos.RatingRepository, repos.ReportRepository),
		Monitoring: NewMonitoringService(repos.MonitoringRepository),
		Search:     NewSearchService(repos.ReportRepository, repos.CourseRepository, repos.ModuleRepository, repos.ClassRepository),
		Student:    NewStudentService(repos.ReportRepository, repos.RatingRepository),
	}
}
