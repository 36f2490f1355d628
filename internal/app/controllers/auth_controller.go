package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/app/services"
	"github.com/yigit/lrms/internal/middleware"
	"github.com/yigit/lrms/internal/pkg/auth"
)

// AuthController handles account and token endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles POST /register
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RegisterResponse{Success: true, ID: id})
}

// Login handles POST /login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Refresh handles POST /refresh. It reads the bearer token itself because a
// token inside the grace period would fail the normal authentication step.
func (c *AuthController) Refresh(ctx *gin.Context) {
	token, err := auth.ExtractBearerToken(ctx.GetHeader("Authorization"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.authService.Refresh(ctx.Request.Context(), token)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Profile handles GET /me
func (c *AuthController) Profile(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	user, err := c.authService.Profile(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProfileResponse{Success: true, User: *user})
}

// ListLecturers handles GET /users/lecturers
func (c *AuthController) ListLecturers(ctx *gin.Context) {
	lecturers, err := c.authService.ListLecturers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LecturerListResponse{Success: true, Lecturers: lecturers})
}
