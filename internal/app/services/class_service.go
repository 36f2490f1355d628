package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/app/repositories"
	"github.com/yigit/lrms/internal/pkg/apperrors"
	"github.com/yigit/lrms/internal/pkg/validation"
)

// ClassService manages scheduled classes.
type ClassService interface {
	CreateClass(ctx context.Context, caller models.Identity, req *dto.CreateClassRequest) (*models.Class, error)
	ListClasses(ctx context.Context, caller models.Identity) ([]models.Class, error)
}

type classServiceImpl struct {
	classRepo  repositories.IClassRepository
	moduleRepo repositories.IModuleRepository
	userRepo   repositories.IUserRepository
}

// NewClassService creates a new class service instance
func NewClassService(classRepo repositories.IClassRepository, moduleRepo repositories.IModuleRepository, userRepo repositories.IUserRepository) ClassService {
	return &classServiceImpl{
		classRepo:  classRepo,
		moduleRepo: moduleRepo,
		userRepo:   userRepo,
	}
}

// CreateClass stores a class. A lecturer may only schedule classes for their
// own modules and is always recorded as the class lecturer.
func (s *classServiceImpl) CreateClass(ctx context.Context, caller models.Identity, req *dto.CreateClassRequest) (*models.Class, error) {
	class := &models.Class{
		Name:          strings.TrimSpace(req.Name),
		ModuleID:      req.ModuleID,
		Venue:         strings.TrimSpace(req.Venue),
		ScheduledTime: strings.TrimSpace(req.ScheduledTime),
		LecturerID:    req.LecturerID,
	}
	if err := validation.Name("name", class.Name); err != nil {
		return nil, err
	}

	module, err := s.moduleRepo.GetByID(ctx, req.ModuleID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, fmt.Errorf("%w: module %d does not exist", apperrors.ErrValidationFailed, req.ModuleID)
		}
		return nil, err
	}

	if caller.Role == models.RoleLecturer {
		if module.LecturerID == nil || *module.LecturerID != caller.UserID {
			return nil, apperrors.NewForbiddenError("module is not assigned to you")
		}
		class.LecturerID = &caller.UserID
	} else if class.LecturerID != nil {
		if err := requireRole(ctx, s.userRepo, "lecturer_id", *class.LecturerID, models.RoleLecturer); err != nil {
			return nil, err
		}
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// ListClasses returns the classes visible to the caller.
func (s *classServiceImpl) ListClasses(ctx context.Context, caller models.Identity) ([]models.Class, error) {
	classes, err := s.classRepo.List(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("error retrieving classes: %w", err)
	}
	return classes, nil
}
