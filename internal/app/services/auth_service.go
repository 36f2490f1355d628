package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/app/repositories"
	"github.com/yigit/lrms/internal/pkg/apperrors"
	"github.com/yigit/lrms/internal/pkg/auth"
	"github.com/yigit/lrms/internal/pkg/validation"
)

// AuthService handles registration, login and token refresh
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and returns its id. Students are identified by
// student number, everyone else by email.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (int64, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	if err := validation.Name("name", req.Name); err != nil {
		return 0, err
	}
	if err := validation.Password(req.Password); err != nil {
		return 0, err
	}

	user := &models.User{
		Role: role,
		Name: strings.TrimSpace(req.Name),
	}

	if email := normalizeEmail(req.Email); email != "" {
		user.Email = &email
	}

	if role == models.RoleStudent {
		number := strings.TrimSpace(req.StudentNumber)
		if number == "" {
			return 0, fmt.Errorf("%w: student_number is required for students", apperrors.ErrValidationFailed)
		}
		if err := validation.StudentNumber(number); err != nil {
			return 0, err
		}
		user.StudentNumber = &number
	} else if user.Email == nil {
		return 0, fmt.Errorf("%w: email is required for role %s", apperrors.ErrValidationFailed, role)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	user.Password = hash

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmailAlreadyExists):
			return 0, fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, err)
		case errors.Is(err, apperrors.ErrIdentifierExists):
			return 0, fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, err)
		}
		return 0, fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().Int64("userId", id).Str("role", string(role)).Msg("User registered")
	return id, nil
}

// Login checks the credentials and issues an access token. Every lookup or
// comparison failure is reported as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var (
		user *models.User
		err  error
	)

	switch {
	case strings.TrimSpace(req.StudentNumber) != "":
		user, err = s.userRepo.GetByStudentNumber(ctx, strings.TrimSpace(req.StudentNumber))
	case strings.TrimSpace(req.Email) != "":
		user, err = s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	default:
		return nil, fmt.Errorf("%w: email or student_number is required", apperrors.ErrValidationFailed)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Debug().Int64("userId", user.ID).Msg("Password mismatch")
		return nil, apperrors.ErrInvalidCredentials
	}

	if req.Role != "" {
		role, err := models.ParseRole(req.Role)
		if err != nil || role != user.Role {
			return nil, apperrors.ErrInvalidCredentials
		}
	}

	return s.issue(user)
}

// Refresh re-issues a token for a caller whose token is valid or expired
// within the grace period. The new token reflects the current user row.
func (s *AuthService) Refresh(ctx context.Context, token string) (*dto.AuthResponse, error) {
	claims, err := s.jwtService.VerifyForRefresh(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", apperrors.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return s.issue(user)
}

// Profile returns the caller's account.
func (s *AuthService) Profile(ctx context.Context, caller models.Identity) (*dto.UserData, error) {
	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	data := dto.NewUserData(user)
	return &data, nil
}

// ListLecturers returns every lecturer account.
func (s *AuthService) ListLecturers(ctx context.Context) ([]dto.UserData, error) {
	users, err := s.userRepo.ListByRole(ctx, models.RoleLecturer)
	if err != nil {
		return nil, fmt.Errorf("failed to list lecturers: %w", err)
	}
	out := make([]dto.UserData, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserData(&users[i]))
	}
	return out, nil
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.jwtService.Issue(auth.ClaimsFor(user.Identity()))
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}
	return &dto.AuthResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		User:      dto.NewUserData(user),
	}, nil
}
