package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appMigrations "github.com/yigit/hostelsphere/internal/app/migrations"
	appRepos "github.com/yigit/hostelsphere/internal/app/repositories"
	appRoutes "github.com/yigit/hostelsphere/internal/app/routes"
	appServices "github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/config"
	"github.com/yigit/hostelsphere/internal/db"
	"github.com/yigit/hostelsphere/internal/domain"
	appMiddleware "github.com/yigit/hostelsphere/internal/middleware"
	pkgAuth "github.com/yigit/hostelsphere/internal/pkg/auth"
	"github.com/yigit/hostelsphere/internal/pkg/filestorage"
	"github.com/yigit/hostelsphere/internal/pkg/helpers"
	"github.com/yigit/hostelsphere/internal/pkg/logger"
	"github.com/yigit/hostelsphere/internal/pkg/metrics"
	"github.com/yigit/hostelsphere/internal/pkg/validation"
	"github.com/yigit/hostelsphere/internal/pkg/websocket"
	"github.com/yigit/hostelsphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repo           appRepos.StateRepository
	Hub            *websocket.Hub
	Services       *appServices.Services
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	WSHandler      *websocket.Handler
	JWTService     *pkgAuth.JWTService
	PhotoStorage   filestorage.FileStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.FromSettings(cfg.Logging.Level, cfg.Logging.Format))

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStateRepository opens the snapshot store selected by storage.driver.
// For postgres it also applies pending migrations.
func SetupStateRepository(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.StateRepository, error) {
	switch cfg.Storage.Driver {
	case "memory":
		lgr.Warn().Msg("Using in-memory storage; data is lost on restart")
		return appRepos.NewMemoryStateRepository(), nil

	case "sqlite":
		repo, err := appRepos.NewSQLiteStateRepository(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		lgr.Info().Str("path", cfg.Storage.SQLitePath).Msg("SQLite snapshot store opened")
		return repo, nil

	case "postgres":
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg, lgr)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		migrations := appMigrations.Embedded()
		if dir := cfg.Storage.MigrationsDir; dir != "" {
			migrations = os.DirFS(dir)
		}
		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database.Pool).Migrate(ctx, migrations); err != nil {
			database.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
		return appRepos.NewPostgresStateRepository(database), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// SetupPhotoStorage builds the photo store selected by photos.driver
func SetupPhotoStorage(ctx context.Context, cfg *config.Config) (filestorage.FileStorage, error) {
	maxBytes := int64(cfg.Photos.MaxSizeMB) << 20
	if cfg.Photos.Driver == "s3" {
		return filestorage.NewS3Storage(ctx, filestorage.S3Config{
			Bucket:    cfg.Photos.S3Bucket,
			Region:    cfg.Photos.S3Region,
			Endpoint:  cfg.Photos.S3Endpoint,
			Prefix:    cfg.Photos.S3Prefix,
			BaseURL:   cfg.Photos.BaseURL,
			PathStyle: cfg.Photos.PathStyle,
			MaxBytes:  maxBytes,
		})
	}
	return filestorage.NewLocalStorage(cfg.Photos.LocalDir, cfg.Photos.BaseURL, maxBytes)
}

// BuildDependencies loads the hostel state and wires services and controllers.
// The hub is created here but started by the server.
func BuildDependencies(ctx context.Context, cfg *config.Config, repo appRepos.StateRepository, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repo: repo, Logger: lgr}

	if err := validation.RegisterGinValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	photos, err := SetupPhotoStorage(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize photo storage")
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}
	deps.PhotoStorage = photos

	deps.Hub = websocket.NewHub(logger.Component("websocket"))

	engine := domain.NewEngine(cfg.MaintenancePolicy())
	state, err := appServices.NewStateManager(ctx, repo, engine, deps.Hub, logger.Component("state"))
	if err != nil {
		return nil, fmt.Errorf("failed to load hostel state: %w", err)
	}

	if cfg.Seed.Enabled {
		opts := seed.Options{Rooms: cfg.Seed.Rooms, RoomsPerFloor: cfg.Seed.RoomsPerFloor, Students: cfg.Seed.Students}
		if _, err := seed.Run(ctx, state, opts, logger.Component("seed")); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to seed demo data, proceeding anyway...")
		}
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.New(appServices.Dependencies{
		State:   state,
		JWT:     deps.JWTService,
		Storage: photos,
		Admin:   appServices.AdminCredentials{Username: cfg.Admin.Username, PasswordHash: cfg.Admin.PasswordHash},
		Fees:    appServices.FeeConfig{AnnualAmount: cfg.Fees.AnnualAmount, Currency: cfg.Fees.Currency},
		Clock:   helpers.SystemClock,
		Logger:  lgr,
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.WSHandler = websocket.NewHandler(deps.Hub, cfg.Server.AllowedOrigins, logger.Component("websocket"))
	deps.Controllers = appRoutes.NewControllers(deps.Services)

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

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
		metrics.GinMiddleware(),
	)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.WSHandler)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	if cfg.Photos.Driver == "local" {
		router.Static("/uploads", cfg.Photos.LocalDir)
		lgr.Info().Str("path", cfg.Photos.LocalDir).Msg("Static file serving configured for photos")
	}

	return router
}
