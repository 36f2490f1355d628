package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/app/repositories"
	"github.com/yigit/lrms/internal/pkg/apperrors"
	"github.com/yigit/lrms/internal/pkg/validation"
)

// ModuleService manages modules, lecturer assignment and enrollment.
type ModuleService interface {
	CreateModule(ctx context.Context, req *dto.CreateModuleRequest) (*models.Module, error)
	ListModules(ctx context.Context, caller models.Identity) ([]models.Module, error)
	AssignLecturer(ctx context.Context, moduleID int64, req *dto.AssignLecturerRequest) (*models.Module, error)
	Enroll(ctx context.Context, caller models.Identity, moduleID int64, req *dto.EnrollRequest) error
}

type moduleServiceImpl struct {
	moduleRepo repositories.IModuleRepository
	userRepo   repositories.IUserRepository
}

// NewModuleService creates a new module service instance
func NewModuleService(moduleRepo repositories.IModuleRepository, userRepo repositories.IUserRepository) ModuleService {
	return &moduleServiceImpl{
		moduleRepo: moduleRepo,
		userRepo:   userRepo,
	}
}

// requireRole loads a user referenced from a request body and checks its
// role. Missing users and role mismatches are both validation errors.
func requireRole(ctx context.Context, users repositories.IUserRepository, field string, id int64, role models.Role) error {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return fmt.Errorf("%w: %s %d does not exist", apperrors.ErrValidationFailed, field, id)
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user.Role != role {
		return fmt.Errorf("%w: %s %d is not a %s", apperrors.ErrValidationFailed, field, id, role)
	}
	return nil
}

// CreateModule validates and stores a module. An initial lecturer must hold
// the lecturer role.
func (s *moduleServiceImpl) CreateModule(ctx context.Context, req *dto.CreateModuleRequest) (*models.Module, error) {
	module := &models.Module{
		Name:        strings.TrimSpace(req.Name),
		Code:        strings.TrimSpace(req.Code),
		Description: strings.TrimSpace(req.Description),
		CourseID:    req.CourseID,
		LecturerID:  req.LecturerID,
	}
	if err := validation.Name("name", module.Name); err != nil {
		return nil, err
	}
	if err := validation.Code("code", module.Code); err != nil {
		return nil, err
	}
	if module.LecturerID != nil {
		if err := requireRole(ctx, s.userRepo, "lecturer_id", *module.LecturerID, models.RoleLecturer); err != nil {
			return nil, err
		}
	}

	if err := s.moduleRepo.Create(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

// ListModules returns the modules visible to the caller.
func (s *moduleServiceImpl) ListModules(ctx context.Context, caller models.Identity) ([]models.Module, error) {
	modules, err := s.moduleRepo.List(ctx, caller, 0)
	if err != nil {
		return nil, fmt.Errorf("error retrieving modules: %w", err)
	}
	return modules, nil
}

// AssignLecturer replaces the module's lecturer. The last assignment wins.
func (s *moduleServiceImpl) AssignLecturer(ctx context.Context, moduleID int64, req *dto.AssignLecturerRequest) (*models.Module, error) {
	if err := requireRole(ctx, s.userRepo, "lecturer_id", req.LecturerID, models.RoleLecturer); err != nil {
		return nil, err
	}
	return s.moduleRepo.AssignLecturer(ctx, moduleID, req.LecturerID)
}

// Enroll adds a student to a module. Students enroll themselves; a PL names
// the student in the body.
func (s *moduleServiceImpl) Enroll(ctx context.Context, caller models.Identity, moduleID int64, req *dto.EnrollRequest) error {
	studentID := caller.UserID
	switch caller.Role {
	case models.RoleStudent:
	case models.RolePL:
		if req == nil || req.StudentID == 0 {
			return fmt.Errorf("%w: student_id is required", apperrors.ErrValidationFailed)
		}
		studentID = req.StudentID
		if err := requireRole(ctx, s.userRepo, "student_id", studentID, models.RoleStudent); err != nil {
			return err
		}
	default:
		return apperrors.NewForbiddenError("only students and program leaders can enroll")
	}

	if _, err := s.moduleRepo.GetByID(ctx, moduleID); err != nil {
		return err
	}
	return s.moduleRepo.Enroll(ctx, studentID, moduleID)
}
