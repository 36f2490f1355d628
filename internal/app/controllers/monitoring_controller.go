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

// MonitoringController serves dashboards, search and the student views
type MonitoringController struct {
	monitoringService services.MonitoringService
	searchService     services.SearchService
	studentService    services.StudentService
}

// NewMonitoringController creates a new MonitoringController
func NewMonitoringController(
	monitoringService services.MonitoringService,
	searchService services.SearchService,
	studentService services.StudentService,
) *MonitoringController {
	return &MonitoringController{
		monitoringService: monitoringService,
		searchService:     searchService,
		studentService:    studentService,
	}
}

// Program handles GET /monitoring/program
func (c *MonitoringController) Program(ctx *gin.Context) {
	resp, err := c.monitoringService.Program(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Attendance handles GET /monitoring/attendance
func (c *MonitoringController) Attendance(ctx *gin.Context) {
	resp, err := c.monitoringService.Attendance(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Lecturer handles GET /monitoring/lecturer
func (c *MonitoringController) Lecturer(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	resp, err := c.monitoringService.Lecturer(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// LogAction handles POST /monitoring/logs
func (c *MonitoringController) LogAction(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	var req dto.LogActionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.monitoringService.LogAction(ctx.Request.Context(), caller, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessResponse{Success: true, Message: "Action logged"})
}

// RecentLogs handles GET /monitoring/logs
func (c *MonitoringController) RecentLogs(ctx *gin.Context) {
	logs, err := c.monitoringService.RecentLogs(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MonitoringLogListResponse{Success: true, Logs: logs})
}

// Search handles GET /search/:type?query=
func (c *MonitoringController) Search(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	entity, query := ctx.Param("type"), ctx.Query("query")

	results, err := c.searchService.Search(ctx.Request.Context(), caller, entity, query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SearchResponse{Success: true, Type: entity, Query: query, Results: results})
}

// StudentAttendance handles GET /students/me/attendance
func (c *MonitoringController) StudentAttendance(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	resp, err := c.studentService.Attendance(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StudentFeedback handles GET /students/me/feedback
func (c *MonitoringController) StudentFeedback(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	feedback, err := c.studentService.Feedback(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentFeedbackResponse{Success: true, Feedback: feedback})
}

// ExportStudentFeedback handles GET /students/me/feedback/export
func (c *MonitoringController) ExportStudentFeedback(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	sendWorkbook(ctx, export.StudentFeedbackFilename, func(buf *bytes.Buffer) error {
		return c.studentService.ExportFeedback(ctx.Request.Context(), caller, buf)
	})
}
