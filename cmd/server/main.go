package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"alcyxob/wellness-app/internal/api"
	"alcyxob/wellness-app/internal/config"
	"alcyxob/wellness-app/internal/metrics"
	"alcyxob/wellness-app/internal/repository"
	"alcyxob/wellness-app/internal/repository/memory"
	"alcyxob/wellness-app/internal/repository/mongo"
	"alcyxob/wellness-app/internal/service"
	"alcyxob/wellness-app/internal/session"
	"alcyxob/wellness-app/internal/storage"
	"alcyxob/wellness-app/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// repositories groups the persistence layer chosen by database.driver.
type repositories struct {
	users       repository.UserRepository
	progress    repository.ProgressRepository
	recipes     repository.RecipeRepository
	yoga        repository.YogaRepository
	dailyPlans  repository.DailyPlanRepository
	suggestions repository.LifestyleSuggestionRepository
	routines    repository.UserLifestyleRepository
}

// @title Wellness API
// @version 1.0
// @description Wellness tracking: profiles, progress history with photos, recipes, yoga, daily plans and lifestyle routines.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log := logrus.New()
	log.Info("Starting Wellness App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("Could not load config")
	}
	configureLogger(log, cfg.Log)
	log.Info("Configuration loaded.")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// --- Repositories ---
	var repos repositories
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn("Using in-memory repositories; data is lost on exit")
		store := memory.NewStore()
		repos = repositories{
			users:       memory.NewUserRepository(store),
			progress:    memory.NewProgressRepository(store),
			recipes:     memory.NewRecipeRepository(store),
			yoga:        memory.NewYogaRepository(store),
			dailyPlans:  memory.NewDailyPlanRepository(store),
			suggestions: memory.NewLifestyleSuggestionRepository(store),
			routines:    memory.NewUserLifestyleRepository(store),
		}
	default:
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.WithError(err).Fatal("Could not connect to MongoDB")
		}
		defer func() {
			log.Info("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.WithError(err).Error("Failed to disconnect MongoDB")
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.WithField("database", cfg.Database.Name).Info("Database connection established.")

		// Unique indexes back the conflict errors, so they must exist before serving.
		indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
		err = mongo.EnsureIndexes(indexCtx, appDB)
		cancel()
		if err != nil {
			log.WithError(err).Fatal("Could not ensure database indexes")
		}

		repos = repositories{
			users:       mongo.NewMongoUserRepository(appDB),
			progress:    mongo.NewMongoProgressRepository(appDB),
			recipes:     mongo.NewMongoRecipeRepository(appDB),
			yoga:        mongo.NewMongoYogaRepository(appDB),
			dailyPlans:  mongo.NewMongoDailyPlanRepository(appDB),
			suggestions: mongo.NewMongoLifestyleSuggestionRepository(appDB),
			routines:    mongo.NewMongoUserLifestyleRepository(appDB),
		}
	}

	// --- Photo storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize S3 storage")
		}
	} else {
		log.Warn("No S3 bucket configured; progress photos are kept in memory")
		fileStorage = storage.NewMemoryStorage()
	}
	photos, err := storage.NewPhotos(fileStorage, storage.PublicBaseURL(cfg.S3), cfg.S3.Folder)
	if err != nil {
		log.WithError(err).Fatal("Invalid photo storage configuration")
	}

	// --- Token revocation ---
	var denylist session.Denylist
	if cfg.Redis.Address != "" {
		redisDenylist, err := session.NewRedisDenylist(ctx, session.Options{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.WithError(err).Fatal("Could not connect to Redis")
		}
		defer redisDenylist.Close()
		denylist = redisDenylist
	} else {
		log.Warn("No Redis configured; logged-out tokens are tracked in memory")
		denylist = session.NewMemoryDenylist()
	}

	// --- Services ---
	progressService := service.NewProgressService(repos.progress, photos, log)
	authService := service.NewAuthService(
		repos.users,
		progressService,
		service.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration),
		denylist,
		log,
	)
	profileService := service.NewProfileService(repos.users, repos.progress, repos.routines, progressService, photos, log)

	limiter := api.NewRateLimiter(cfg.Server.AuthRateLimit, cfg.Server.AuthRateBurst)
	limiter.StartCleanup(ctx, time.Minute)

	// --- Router ---
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Dependencies{
		AuthService:      authService,
		ProfileService:   profileService,
		ProgressService:  progressService,
		RecipeService:    service.NewRecipeService(repos.recipes),
		YogaService:      service.NewYogaService(repos.yoga),
		DailyPlanService: service.NewDailyPlanService(repos.dailyPlans, repos.recipes, repos.yoga),
		LifestyleService: service.NewLifestyleService(repos.suggestions, repos.routines),
		Validator:        validation.New(validation.Options{}),
		Log:              log,
		Metrics:          metrics.New(),
		AuthLimiter:      limiter,
		CORSOrigins:      cfg.Server.CORSOrigins,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("address", cfg.Server.Address).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("ListenAndServe error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	log.Info("Server exiting.")
}

func configureLogger(log *logrus.Logger, cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		log.WithField("level", cfg.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
