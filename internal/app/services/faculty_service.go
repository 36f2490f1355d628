package services

import (
	"context"
	"fmt"

	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/app/repositories"
	"github.com/yigit/lrms/internal/pkg/apperrors"
	"github.com/yigit/lrms/internal/pkg/validation"
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*models.Faculty, error)
	ListFaculties(ctx context.Context) ([]models.Faculty, error)
}

type facultyServiceImpl struct {
	facultyRepo repositories.IFacultyRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo repositories.IFacultyRepository) FacultyService {
	return &facultyServiceImpl{facultyRepo: facultyRepo}
}

// isValidFacultyCode checks if a faculty code is uppercase alphanumeric
func isValidFacultyCode(code string) bool {
	if code == "" {
		return false
	}
	for _, char := range code {
		if !((char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9')) {
			return false
		}
	}
	return true
}

// CreateFaculty validates and stores a faculty. Codes are upper-cased first.
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*models.Faculty, error) {
	faculty := &models.Faculty{Name: req.Name, Code: req.Code}
	faculty.Normalize()
	if err := validation.Name("name", faculty.Name); err != nil {
		return nil, err
	}
	if !isValidFacultyCode(faculty.Code) {
		return nil, fmt.Errorf("%w: code must be alphanumeric", apperrors.ErrValidationFailed)
	}

	if err := s.facultyRepo.Create(ctx, faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

// ListFaculties returns all faculties
func (s *facultyServiceImpl) ListFaculties(ctx context.Context) ([]models.Faculty, error) {
	faculties, err := s.facultyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving faculties: %w", err)
	}
	return faculties, nil
}
