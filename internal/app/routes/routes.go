package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/lrms/internal/app/controllers"
	"github.com/yigit/lrms/internal/middleware"
)

// APIBase is the prefix every API route is mounted under. The route policy
// table is keyed on full paths, so it must be built with the same base.
const APIBase = "/api"

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	catalogController *controllers.CatalogController,
	reportController *controllers.ReportController,
	monitoringController *controllers.MonitoringController,
	authMiddleware *middleware.AuthMiddleware,
	authLimiter gin.HandlerFunc,
) {
	api := router.Group(APIBase)

	// --- Public auth routes ---
	public := api.Group("")
	public.Use(authLimiter)
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		// refresh reads the bearer token itself so expired tokens can be renewed
		public.POST("/refresh", authController.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.Authenticate(), authMiddleware.Authorize())

	authenticated.GET("/me", authController.Profile)
	authenticated.GET("/users/lecturers", authController.ListLecturers)

	faculties := authenticated.Group("/faculties")
	{
		faculties.GET("", catalogController.ListFaculties)
		faculties.POST("", catalogController.CreateFaculty)
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", catalogController.ListCourses)
		courses.POST("", catalogController.CreateCourse)
		courses.GET("/:id/modules", catalogController.ListCourseModules)
	}

	modules := authenticated.Group("/modules")
	{
		modules.GET("", catalogController.ListModules)
		modules.POST("", catalogController.CreateModule)
		modules.PUT("/:id/assign", catalogController.AssignLecturer)
		modules.POST("/:id/enrollments", catalogController.Enroll)
	}

	classes := authenticated.Group("/classes")
	{
		classes.GET("", catalogController.ListClasses)
		classes.POST("", catalogController.CreateClass)
	}

	reports := authenticated.Group("/reports")
	{
		reports.GET("", reportController.ListReports)
		reports.POST("", reportController.CreateReport)
		reports.GET("/export", reportController.ExportReports)
		reports.GET("/:id", reportController.GetReport)
		reports.PUT("/:id/feedback", reportController.SetFeedback)
		reports.GET("/:id/ratings", reportController.ListReportRatings)
	}

	ratings := authenticated.Group("/ratings")
	{
		ratings.GET("", reportController.ListRatings)
		ratings.POST("", reportController.CreateRating)
	}

	monitoring := authenticated.Group("/monitoring")
	{
		monitoring.GET("/program", monitoringController.Program)
		monitoring.GET("/attendance", monitoringController.Attendance)
		monitoring.GET("/lecturer", monitoringController.Lecturer)
		monitoring.GET("/logs", monitoringController.RecentLogs)
		monitoring.POST("/logs", monitoringController.LogAction)
	}

	authenticated.GET("/search/:type", monitoringController.Search)

	students := authenticated.Group("/students/me")
	{
		students.GET("/attendance", monitoringController.StudentAttendance)
		students.GET("/feedback", monitoringController.StudentFeedback)
		students.GET("/feedback/export", monitoringController.ExportStudentFeedback)
	}
}
