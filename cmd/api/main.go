package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ecoloop/ecoloop-api/internal/config"
	"github.com/ecoloop/ecoloop-api/internal/domain/auth"
	"github.com/ecoloop/ecoloop-api/internal/domain/catalog"
	"github.com/ecoloop/ecoloop-api/internal/domain/dashboard"
	"github.com/ecoloop/ecoloop-api/internal/domain/education"
	"github.com/ecoloop/ecoloop-api/internal/domain/facility"
	"github.com/ecoloop/ecoloop-api/internal/domain/ledger"
	"github.com/ecoloop/ecoloop-api/internal/domain/reward"
	"github.com/ecoloop/ecoloop-api/internal/domain/submission"
	"github.com/ecoloop/ecoloop-api/internal/domain/user"
	"github.com/ecoloop/ecoloop-api/internal/domain/valuation"
	"github.com/ecoloop/ecoloop-api/internal/middleware"
	"github.com/ecoloop/ecoloop-api/internal/pkg/database"
	"github.com/ecoloop/ecoloop-api/internal/pkg/jwt"
	"github.com/ecoloop/ecoloop-api/internal/pkg/password"
	pkgresponse "github.com/ecoloop/ecoloop-api/internal/pkg/response"
	"github.com/ecoloop/ecoloop-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting EcoLoop API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	// Redis backs refresh token sessions; the API stays up without it.
	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, refresh sessions disabled")
		redis = nil
	} else {
		defer database.CloseRedis(redis)
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	password.SetCost(cfg.BcryptCost)

	var store storage.Storage
	if cfg.S3AccessKey != "" {
		s3Store, err := storage.NewS3Storage(storage.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize object storage")
		}
		store = s3Store
	} else {
		log.Warn().Msg("Object storage not configured, image uploads disabled")
	}

	estimator, err := valuation.NewGeminiEstimator(
		context.Background(),
		cfg.GeminiAPIKey,
		cfg.GeminiModelName,
		time.Duration(cfg.GeminiTimeoutSeconds)*time.Second,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize valuation client")
	}

	// ---------- Services ----------
	userRepo := user.NewRepository(db)
	ledgerService := ledger.NewService(db)
	catalogService := catalog.NewService(db, store)
	facilityService := facility.NewService(db)
	educationService := education.NewService(education.NewRepository(db))
	rewardService := reward.NewService(reward.NewRepository(db), ledgerService)

	authService := auth.NewService(userRepo, jwtService, redis, ledgerService)

	submissionService := submission.NewService(
		db,
		catalogService,
		ledgerService,
		&submissionFacilityAdapter{facilities: facilityService},
		estimator,
	)

	dashboardService := dashboard.NewService(
		ledgerService,
		submissionService,
		facilityService,
		educationService,
		rewardService,
	)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	ledgerHandler := ledger.NewHandler(ledgerService)
	catalogHandler := catalog.NewHandler(catalogService)
	facilityHandler := facility.NewHandler(facilityService)
	educationHandler := education.NewHandler(educationService)
	submissionHandler := submission.NewHandler(submissionService)
	rewardHandler := reward.NewHandler(rewardService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/profile", ledgerHandler.Routes(authMiddleware))
		r.Mount("/catalog", catalogHandler.Routes(authMiddleware))
		r.Mount("/facilities", facilityHandler.Routes())
		r.Mount("/education", educationHandler.Routes())
		r.Mount("/submissions", submissionHandler.Routes(authMiddleware))
		r.Mount("/rewards", rewardHandler.Routes(authMiddleware))
		r.Mount("/dashboard", dashboardHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}

// submissionFacilityAdapter narrows the facility service to the slice the
// submission lifecycle needs.
type submissionFacilityAdapter struct {
	facilities facility.Service
}

func (a *submissionFacilityAdapter) GetFacility(ctx context.Context, id uuid.UUID) (*submission.FacilityRef, error) {
	f, err := a.facilities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &submission.FacilityRef{
		ID:   f.ID,
		Name: f.Name,
		Slug: f.Slug,
	}, nil
}
