package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/fems12/WBL-Management-Sytem/internal/app/controllers"
	appMigrations "github.com/fems12/WBL-Management-Sytem/internal/app/migrations"
	appRepos "github.com/fems12/WBL-Management-Sytem/internal/app/repositories"
	appRoutes "github.com/fems12/WBL-Management-Sytem/internal/app/routes"
	appServices "github.com/fems12/WBL-Management-Sytem/internal/app/services"
	"github.com/fems12/WBL-Management-Sytem/internal/config"
	"github.com/fems12/WBL-Management-Sytem/internal/db"
	appMiddleware "github.com/fems12/WBL-Management-Sytem/internal/middleware"
	pkgAuth "github.com/fems12/WBL-Management-Sytem/internal/pkg/auth"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/email"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/helpers"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/objectstore"
	"github.com/fems12/WBL-Management-Sytem/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	StudentService       *appServices.StudentService
	SyncService          *appServices.SyncService
	VisibilityService    *appServices.VisibilityService
	MarksService         *appServices.MarksService
	AssignmentService    *appServices.AssignmentService
	StaffService         *appServices.StaffService
	CompanyService       *appServices.CompanyService
	RubricService        *appServices.RubricService
	ImportService        *appServices.ImportService
	AuditService         *appServices.AuditService
	DashboardService     *appServices.DashboardService
	SystemService        *appServices.SystemService
	AuthController       *appControllers.AuthController
	StudentController    *appControllers.StudentController
	MarksController      *appControllers.MarksController
	AssignmentController *appControllers.AssignmentController
	StaffController      *appControllers.StaffController
	CompanyController    *appControllers.CompanyController
	RubricController     *appControllers.RubricController
	ImportController     *appControllers.ImportController
	AuditController      *appControllers.AuditController
	SystemController     *appControllers.SystemController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	EmailService         email.EmailService
	Storage              objectstore.Store
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// setupStorage builds the object store named by the configuration.
func setupStorage(cfg *config.Config) (objectstore.Store, error) {
	switch strings.ToLower(cfg.Storage.Provider) {
	case "supabase":
		store, err := objectstore.NewSupabaseStorage(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "local", "":
		store, err := objectstore.NewLocalStorage(cfg.Storage.LocalPath, cfg.Storage.LocalBaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Storage.Provider)
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.Storage, err = setupStorage(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize object storage")
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	lgr.Info().Str("provider", cfg.Storage.Provider).Msg("Object storage initialized")

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromAddress,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	// Services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.StudentRepository,
		deps.Repos.StaffRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		deps.EmailService,
	)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.StaffRepository,
		deps.Repos.CompanyRepository,
		deps.Repos.AuditRepository,
		deps.Storage,
	)
	deps.SyncService = appServices.NewSyncService(deps.Repos.StudentRepository, deps.Repos.AuditRepository)
	deps.VisibilityService = appServices.NewVisibilityService(
		deps.Repos.StudentRepository,
		deps.Repos.StaffRepository,
		deps.Repos.CompanyRepository,
	)
	deps.MarksService = appServices.NewMarksService(deps.Repos.StudentRepository, deps.Repos.AuditRepository)
	deps.AssignmentService = appServices.NewAssignmentService(
		deps.Repos.StudentRepository,
		deps.Repos.StaffRepository,
		deps.Repos.CompanyRepository,
		deps.Repos.AuditRepository,
	)
	deps.StaffService = appServices.NewStaffService(deps.Repos.StaffRepository)
	deps.CompanyService = appServices.NewCompanyService(deps.Repos.CompanyRepository)
	deps.RubricService = appServices.NewRubricService(deps.Repos.RubricRepository, deps.Storage, cfg.Storage.RubricBucket)
	deps.ImportService = appServices.NewImportService(
		deps.Repos.StudentRepository,
		deps.Repos.CompanyRepository,
		deps.Repos.AuditRepository,
	)
	deps.AuditService = appServices.NewAuditService(deps.Repos.AuditRepository)
	deps.DashboardService = appServices.NewDashboardService(deps.Repos.StudentRepository)
	deps.SystemService = appServices.NewSystemService(deps.Repos.SystemRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.SyncService)
	deps.MarksController = appControllers.NewMarksController(deps.MarksService)
	deps.AssignmentController = appControllers.NewAssignmentController(deps.AssignmentService)
	deps.StaffController = appControllers.NewStaffController(deps.StaffService, deps.VisibilityService)
	deps.CompanyController = appControllers.NewCompanyController(deps.CompanyService)
	deps.RubricController = appControllers.NewRubricController(deps.RubricService)
	deps.ImportController = appControllers.NewImportController(deps.ImportService)
	deps.AuditController = appControllers.NewAuditController(deps.AuditService, deps.DashboardService)
	deps.SystemController = appControllers.NewSystemController(deps.SystemService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.MarksController,
		deps.AssignmentController,
		deps.StaffController,
		deps.CompanyController,
		deps.RubricController,
		deps.ImportController,
		deps.AuditController,
		deps.SystemController,
		deps.AuthMiddleware,
	)

	return router
}
