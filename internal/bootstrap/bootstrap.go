package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/yigit/lrms/internal/app/auth"
	appControllers "github.com/yigit/lrms/internal/app/controllers"
	appMigrations "github.com/yigit/lrms/internal/app/migrations"
	"github.com/yigit/lrms/internal/app/models/dto"
	appRepos "github.com/yigit/lrms/internal/app/repositories"
	appRoutes "github.com/yigit/lrms/internal/app/routes"
	appServices "github.com/yigit/lrms/internal/app/services"
	"github.com/yigit/lrms/internal/config"
	"github.com/yigit/lrms/internal/db"
	appMiddleware "github.com/yigit/lrms/internal/middleware"
	pkgAuth "github.com/yigit/lrms/internal/pkg/auth"
	"github.com/yigit/lrms/internal/pkg/helpers"
	"github.com/yigit/lrms/internal/pkg/logger"
	"github.com/yigit/lrms/internal/pkg/metrics"
	"github.com/yigit/lrms/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	Services             *appServices.Services
	JWTService           *pkgAuth.JWTService
	Metrics              *metrics.Metrics
	AuthMiddleware       *appMiddleware.AuthMiddleware
	AuthController       *appControllers.AuthController
	CatalogController    *appControllers.CatalogController
	ReportController     *appControllers.ReportController
	MonitoringController *appControllers.MonitoringController
	// Health is pinged by GET /health; nil reports healthy.
	Health Pinger
	Logger zerolog.Logger
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		},
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// RunMigrations applies every embedded migration that has not run yet.
func RunMigrations(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(database).Apply(ctx, appMigrations.Files())
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return nil
}

// SeedDefaultData creates the default faculty and program leader.
func SeedDefaultData(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(pool)
	return seed.CreateDefaultData(ctx, repos.FacultyRepository, repos.UserRepository, cfg, lgr)
}

// NewJWTService builds the token service from the jwt config section.
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshGrace:   helpers.ParseDuration(cfg.JWT.RefreshGracePeriod, 15*time.Minute),
		TokenIssuer:    cfg.JWT.Issuer,
	})
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	if dbPool == nil {
		return nil, fmt.Errorf("database pool is required")
	}
	deps := &Dependencies{Logger: lgr, Health: dbPool}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.JWTService = NewJWTService(cfg)
	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, lgr)
	deps.Metrics = metrics.New()

	wireControllers(deps)
	return deps, nil
}

// wireControllers builds the middleware and controllers over deps.Services.
func wireControllers(deps *Dependencies) {
	svc := deps.Services

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(
		deps.JWTService,
		appAuth.DefaultPolicy(appRoutes.APIBase),
		deps.Metrics,
	)

	deps.AuthController = appControllers.NewAuthController(svc.Auth)
	deps.CatalogController = appControllers.NewCatalogController(svc.Faculty, svc.Course, svc.Module, svc.Class)
	deps.ReportController = appControllers.NewReportController(svc.Report, svc.Rating)
	deps.MonitoringController = appControllers.NewMonitoringController(svc.Monitoring, svc.Search, svc.Student)
}

// SetupRouter configures the Gin engine with middleware and routes.
// Background work started for the router stops when ctx is done.
func SetupRouter(ctx context.Context, cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterJSONTagNames()

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(),
		deps.Metrics.Middleware(),
		appMiddleware.CORS(cfg.AllowedOrigins()),
		appMiddleware.SecureHeaders(),
	)

	authLimiter := appMiddleware.RateLimiter(ctx,
		cfg.RateLimit.AuthRequests,
		helpers.ParseDuration(cfg.RateLimit.AuthWindow, time.Minute),
	)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CatalogController,
		deps.ReportController,
		deps.MonitoringController,
		deps.AuthMiddleware,
		authLimiter,
	)

	router.GET("/health", healthHandler(deps.Health))
	router.GET("/metrics", deps.Metrics.Handler())

	return router
}

func healthHandler(p Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				logger.Warn().Err(err).Msg("Health check failed")
				detail := dto.NewErrorDetail(dto.ErrorCodeServiceUnavailable, "Database unavailable")
				c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(detail))
				return
			}
		}
		c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "ok"})
	}
}
