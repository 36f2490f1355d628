package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/app/repositories"
	"github.com/yigit/lrms/internal/pkg/apperrors"
)

// Searchable entity types.
const (
	SearchReports = "reports"
	SearchCourses = "courses"
	SearchModules = "modules"
	SearchClasses = "classes"
)

// SearchService runs case-insensitive substring searches within the
// caller's scope.
type SearchService interface {
	Search(ctx context.Context, caller models.Identity, entity, query string) (interface{}, error)
}

type searchServiceImpl struct {
	reportRepo repositories.IReportRepository
	courseRepo repositories.ICourseRepository
	moduleRepo repositories.IModuleRepository
	classRepo  repositories.IClassRepository
}

// NewSearchService creates a new search service instance
func NewSearchService(
	reportRepo repositories.IReportRepository,
	courseRepo repositories.ICourseRepository,
	moduleRepo repositories.IModuleRepository,
	classRepo repositories.IClassRepository,
) SearchService {
	return &searchServiceImpl{
		reportRepo: reportRepo,
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
		classRepo:  classRepo,
	}
}

// Search returns a typed slice for the requested entity.
func (s *searchServiceImpl) Search(ctx context.Context, caller models.Identity, entity, query string) (interface{}, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("query cannot be empty")
	}

	var (
		results interface{}
		err     error
	)
	switch strings.ToLower(entity) {
	case SearchReports:
		results, err = s.reportRepo.Search(ctx, caller, query)
	case SearchCourses:
		results, err = s.courseRepo.Search(ctx, caller, query)
	case SearchModules:
		results, err = s.moduleRepo.Search(ctx, caller, query)
	case SearchClasses:
		results, err = s.classRepo.Search(ctx, caller, query)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown search type %q", entity))
	}
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", entity, err)
	}
	return results, nil
}
