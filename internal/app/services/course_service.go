package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/app/repositories"
	"github.com/yigit/lrms/internal/pkg/validation"
)

// CourseService manages courses and their module listings.
type CourseService interface {
	CreateCourse(ctx context.Context, caller models.Identity, req *dto.CreateCourseRequest) (*models.Course, error)
	ListCourses(ctx context.Context, caller models.Identity) ([]models.Course, error)
	ListCourseModules(ctx context.Context, caller models.Identity, courseID int64) ([]models.Module, error)
}

type courseServiceImpl struct {
	courseRepo repositories.ICourseRepository
	moduleRepo repositories.IModuleRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.ICourseRepository, moduleRepo repositories.IModuleRepository) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
	}
}

// CreateCourse stores a course created by the caller. A duplicate code is a
// conflict.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, caller models.Identity, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Name:      strings.TrimSpace(req.Name),
		Code:      strings.TrimSpace(req.Code),
		FacultyID: req.FacultyID,
		CreatedBy: &caller.UserID,
	}
	if err := validation.Name("name", course.Name); err != nil {
		return nil, err
	}
	if err := validation.Code("code", course.Code); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// ListCourses returns the courses visible to the caller.
func (s *courseServiceImpl) ListCourses(ctx context.Context, caller models.Identity) ([]models.Course, error) {
	courses, err := s.courseRepo.List(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// ListCourseModules returns the caller's visible modules of one course. A
// course the caller cannot see is not found.
func (s *courseServiceImpl) ListCourseModules(ctx context.Context, caller models.Identity, courseID int64) ([]models.Module, error) {
	if _, err := s.courseRepo.Get(ctx, caller, courseID); err != nil {
		return nil, err
	}
	modules, err := s.moduleRepo.List(ctx, caller, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving modules: %w", err)
	}
	return modules, nil
}
