package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/app/services"
	"github.com/yigit/lrms/internal/middleware"
	"github.com/yigit/lrms/internal/pkg/export"
)

// ReportController handles lecture reports and their ratings
type ReportController struct {
	reportService services.ReportService
	ratingService services.RatingService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService, ratingService services.RatingService) *ReportController {
	return &ReportController{
		reportService: reportService,
		ratingService: ratingService,
	}
}

// sendWorkbook renders into memory first so a failure still gets a JSON error.
func sendWorkbook(ctx *gin.Context, filename string, render func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// ListReports handles GET /reports
func (c *ReportController) ListReports(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	reports, err := c.reportService.ListReports(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ReportListResponse{Success: true, Reports: reports})
}

// GetReport handles GET /reports/:id
func (c *ReportController) GetReport(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	report, err := c.reportService.GetReport(ctx.Request.Context(), caller, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ReportResponse{Success: true, Report: report})
}

// CreateReport handles POST /reports
func (c *ReportController) CreateReport(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	var req dto.CreateReportRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	report, err := c.reportService.CreateReport(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ReportResponse{Success: true, Report: report})
}

// SetFeedback handles PUT /reports/:id/feedback
func (c *ReportController) SetFeedback(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.FeedbackRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	report, err := c.reportService.SetFeedback(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ReportResponse{Success: true, Report: report})
}

// ListReportRatings handles GET /reports/:id/ratings
func (c *ReportController) ListReportRatings(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	ratings, err := c.ratingService.ListReportRatings(ctx.Request.Context(), caller, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.RatingListResponse{Success: true, Ratings: ratings})
}

// ExportReports handles GET /reports/export
func (c *ReportController) ExportReports(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	sendWorkbook(ctx, export.ReportsFilename, func(buf *bytes.Buffer) error {
		return c.reportService.ExportReports(ctx.Request.Context(), caller, buf)
	})
}

// ListRatings handles GET /ratings
func (c *ReportController) ListRatings(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	ratings, err := c.ratingService.ListRatings(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.RatingListResponse{Success: true, Ratings: ratings})
}

// CreateRating handles POST /ratings
func (c *ReportController) CreateRating(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	var req dto.CreateRatingRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	rating, err := c.ratingService.CreateRating(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.RatingResponse{Success: true, Rating: rating})
}
