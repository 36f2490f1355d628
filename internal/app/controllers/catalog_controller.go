package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lrms/internal/app/models/dto"
	"github.com/yigit/lrms/internal/app/services"
	"github.com/yigit/lrms/internal/middleware"
)

// CatalogController serves faculties, courses, modules and classes
type CatalogController struct {
	facultyService services.FacultyService
	courseService  services.CourseService
	moduleService  services.ModuleService
	classService   services.ClassService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(
	facultyService services.FacultyService,
	courseService services.CourseService,
	moduleService services.ModuleService,
	classService services.ClassService,
) *CatalogController {
	return &CatalogController{
		facultyService: facultyService,
		courseService:  courseService,
		moduleService:  moduleService,
		classService:   classService,
	}
}

// ListFaculties handles GET /faculties
func (c *CatalogController) ListFaculties(ctx *gin.Context) {
	faculties, err := c.facultyService.ListFaculties(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.FacultyListResponse{Success: true, Faculties: faculties})
}

// CreateFaculty handles POST /faculties
func (c *CatalogController) CreateFaculty(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	faculty, err := c.facultyService.CreateFaculty(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.FacultyResponse{Success: true, Faculty: faculty})
}

// ListCourses handles GET /courses
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	courses, err := c.courseService.ListCourses(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CourseListResponse{Success: true, Courses: courses})
}

// CreateCourse handles POST /courses
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CourseResponse{Success: true, Course: course})
}

// ListCourseModules handles GET /courses/:id/modules
func (c *CatalogController) ListCourseModules(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	courseID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	modules, err := c.courseService.ListCourseModules(ctx.Request.Context(), caller, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ModuleListResponse{Success: true, Modules: modules})
}

// ListModules handles GET /modules
func (c *CatalogController) ListModules(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	modules, err := c.moduleService.ListModules(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ModuleListResponse{Success: true, Modules: modules})
}

// CreateModule handles POST /modules
func (c *CatalogController) CreateModule(ctx *gin.Context) {
	var req dto.CreateModuleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	module, err := c.moduleService.CreateModule(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ModuleResponse{Success: true, Module: module})
}

// AssignLecturer handles PUT /modules/:id/assign
func (c *CatalogController) AssignLecturer(ctx *gin.Context) {
	moduleID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.AssignLecturerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	module, err := c.moduleService.AssignLecturer(ctx.Request.Context(), moduleID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ModuleResponse{Success: true, Module: module})
}

// Enroll handles POST /modules/:id/enrollments. Students may send no body.
func (c *CatalogController) Enroll(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	moduleID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.EnrollRequest
	if ctx.Request.ContentLength != 0 && !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.moduleService.Enroll(ctx.Request.Context(), caller, moduleID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessResponse{Success: true, Message: "Enrolled"})
}

// ListClasses handles GET /classes
func (c *CatalogController) ListClasses(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}

	classes, err := c.classService.ListClasses(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ClassListResponse{Success: true, Classes: classes})
}

// CreateClass handles POST /classes
func (c *CatalogController) CreateClass(ctx *gin.Context) {
	caller, ok := middleware.MustIdentity(ctx)
	if !ok {
		return
	}
	var req dto.CreateClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.CreateClass(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ClassResponse{Success: true, Class: class})
}
