package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/lrms/internal/app/auth"
	"github.com/yigit/lrms/internal/app/models"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/pkg/apperrors"
	"github.com/yigit/lrms/internal/pkg/auth"
	"github.com/yigit/lrms/internal/pkg/metrics"
)

const identityKey = "identity"

// AuthMiddleware authenticates bearer tokens and enforces the route policy.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	policy     appauth.Policy
	metrics    *metrics.Metrics
}

// NewAuthMiddleware creates a new AuthMiddleware. m may be nil.
func NewAuthMiddleware(jwtService *auth.JWTService, policy appauth.Policy, m *metrics.Metrics) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		policy:     policy,
		metrics:    m,
	}
}

// SetIdentity stores the caller on the request context.
func SetIdentity(c *gin.Context, id models.Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity returns the caller set by Authenticate.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, apperrors.ErrMalformedHeader):
		return "malformed_header"
	case errors.Is(err, apperrors.ErrTokenExpired):
		return "expired_token"
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return "invalid_token"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return "forbidden"
	default:
		return "other"
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, err error) {
	m.metrics.AuthFailure(failureReason(err))
	HandleAPIError(c, err)
}

// Authenticate verifies the bearer token and sets the caller identity.
// No header or a malformed one is 401; a token that fails verification is 403.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			m.reject(c, err)
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.reject(c, err)
			return
		}

		SetIdentity(c, claims.Identity())
		c.Next()
	}
}

// Authorize checks the caller's role against the policy entry for the
// matched route template.
func (m *AuthMiddleware) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			m.reject(c, apperrors.ErrMissingToken)
			return
		}

		if !m.policy.Allows(c.Request.Method, c.FullPath(), id.Role) {
			m.reject(c, apperrors.NewForbiddenError("Access denied for role "+string(id.Role)))
			return
		}

		c.Next()
	}
}

// MustIdentity returns the caller or aborts with 401. Controllers behind
// Authenticate always find one.
func MustIdentity(c *gin.Context) (models.Identity, bool) {
	id, ok := CurrentIdentity(c)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeMissingToken, "Authorization token required")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
	}
	return id, ok
}
