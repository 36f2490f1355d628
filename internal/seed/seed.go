package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/config"
	"github.com/yigit/lrms/internal/pkg/apperrors"
	"github.com/yigit/lrms/internal/pkg/auth"
)

// DefaultFaculty is created on every seed run unless its code already exists.
var DefaultFaculty = models.Faculty{
	Name: "Faculty of Information Communication Technology",
	Code: "FICT",
}

// FacultyStore is the part of the faculty repository seeding needs.
type FacultyStore interface {
	EnsureByCode(ctx context.Context, faculty *models.Faculty) error
}

// UserStore is the part of the user repository seeding needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
}

// CreateDefaultData makes sure the default faculty and the configured
// program leader account exist. It keeps going after a failure and returns
// every error it met.
func CreateDefaultData(ctx context.Context, faculties FacultyStore, users UserStore, cfg *config.Config, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	faculty := DefaultFaculty
	faculty.Normalize()
	if err := faculties.EnsureByCode(ctx, &faculty); err != nil {
		lgr.Error().Err(err).Str("code", faculty.Code).Msg("Error ensuring default faculty")
		finalErr = errors.Join(finalErr, err)
	} else {
		lgr.Info().Int64("facultyID", faculty.ID).Str("code", faculty.Code).Msg("Default faculty present")
	}

	if err := createProgramLeader(ctx, users, cfg, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func createProgramLeader(ctx context.Context, users UserStore, cfg *config.Config, lgr zerolog.Logger) error {
	email, password := cfg.Seed.PLEmail, cfg.Seed.PLPassword
	if email == "" || password == "" {
		lgr.Info().Msg("No seed program leader configured, skipping")
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing program leader password")
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	name := cfg.Seed.PLName
	if name == "" {
		name = "Program Leader"
	}

	id, err := users.Create(ctx, &models.User{
		Email:    &email,
		Password: hashed,
		Role:     models.RolePL,
		Name:     name,
	})
	switch {
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		lgr.Info().Str("email", email).Msg("Program leader already exists, skipping creation")
		return nil
	case err != nil:
		lgr.Error().Err(err).Msg("Error creating program leader")
		return err
	}

	lgr.Info().Int64("userID", id).Str("email", email).Msg("Default program leader created")
	return nil
}
