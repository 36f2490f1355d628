package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/pkg/apperrors"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey      string
	AccessTokenExp time.Duration
	// RefreshGrace is how long after expiry a token may still be refreshed.
	RefreshGrace time.Duration
	TokenIssuer  string
}

// JWTService signs and verifies HS256 access tokens.
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
		now:    time.Now,
	}
}

// Claims is the token payload.
type Claims struct {
	UserID        int64       `json:"id"`
	Role          models.Role `json:"role"`
	Name          string      `json:"name"`
	Email         string      `json:"email,omitempty"`
	StudentNumber string      `json:"student_number,omitempty"`
	jwt.RegisteredClaims
}

// ClaimsFor builds the identity part of the claims from id.
func ClaimsFor(id models.Identity) Claims {
	return Claims{
		UserID:        id.UserID,
		Role:          id.Role,
		Name:          id.Name,
		Email:         id.Email,
		StudentNumber: id.StudentNumber,
	}
}

// Identity converts verified claims back into a caller identity.
func (c *Claims) Identity() models.Identity {
	return models.Identity{
		UserID:        c.UserID,
		Role:          c.Role,
		Name:          c.Name,
		Email:         c.Email,
		StudentNumber: c.StudentNumber,
	}
}

// Issue signs claims with a fresh registered block and returns the token and
// its expiry.
func (s *JWTService) Issue(claims Claims) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.config.AccessTokenExp)

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    s.config.TokenIssuer,
		Subject:   strconv.FormatInt(claims.UserID, 10),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	return s.parse(tokenString, 0)
}

// VerifyForRefresh is Verify with the configured grace period applied to the
// expiry check.
func (s *JWTService) VerifyForRefresh(tokenString string) (*Claims, error) {
	return s.parse(tokenString, s.config.RefreshGrace)
}

func (s *JWTService) parse(tokenString string, leeway time.Duration) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if leeway > 0 {
		opts = append(opts, jwt.WithLeeway(leeway))
	}
	if s.config.TokenIssuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.TokenIssuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}
	if claims.UserID <= 0 || !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: incomplete identity claims", apperrors.ErrTokenInvalid)
	}

	return claims, nil
}

// ExtractBearerToken extracts the token from an Authorization header value.
// An empty header is ErrMissingToken; anything other than "Bearer <token>" is
// ErrMalformedHeader.
func ExtractBearerToken(authHeader string) (string, error) {
	if strings.TrimSpace(authHeader) == "" {
		return "", apperrors.ErrMissingToken
	}

	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", apperrors.ErrMalformedHeader
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", apperrors.ErrMalformedHeader
	}

	return token, nil
}
