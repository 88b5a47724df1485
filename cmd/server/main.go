package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/ats"
	"github.com/yourusername/resumeiq-api/internal/cache"
	"github.com/yourusername/resumeiq-api/internal/config"
	"github.com/yourusername/resumeiq-api/internal/extract"
	"github.com/yourusername/resumeiq-api/internal/handler"
	"github.com/yourusername/resumeiq-api/internal/middleware"
	"github.com/yourusername/resumeiq-api/internal/repository"
)

func main() {
	// ── Config ───────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// ── Logging ──────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Unknown LOG_LEVEL, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting ResumeIQ API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Storage ──────────────────────────────────────────
	var store repository.AnalysisStore
	if cfg.DatabaseURL != "" {
		if err := repository.Migrate(ctx, cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to ping database")
		}
		log.Info().Msg("Database connected")
		store = repository.NewAnalysisRepo(pool)
	} else {
		log.Warn().Msg("DATABASE_URL not set, analysis history is kept in memory")
		store = repository.NewMemoryAnalysisRepo()
	}

	// ── Report cache ─────────────────────────────────────
	var reports cache.ReportCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisReportCache(ctx, cfg.RedisURL, cfg.ReportCacheTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisCache.Close()
		log.Info().Msg("Redis report cache connected")
		reports = redisCache
	} else {
		reports = cache.NewMemoryReportCache(cache.DefaultMemoryEntries, cfg.ReportCacheTTL)
	}

	// ── Handlers ─────────────────────────────────────────
	analyzer := ats.NewAnalyzer(extract.NewPDFExtractor())
	resumeHandler := handler.NewResumeHandler(analyzer, store, cfg.MaxUploadBytes).WithReportCache(reports)

	// ── Middleware ────────────────────────────────────────
	var authenticate gin.HandlerFunc
	if cfg.AuthDisabled {
		log.Warn().Str("uid", middleware.DevUID).Msg("Auth disabled, every request uses a fixed identity")
		authenticate = middleware.StaticIdentity(middleware.DevUID)
	} else {
		authMiddleware, err := middleware.NewAuthMiddleware(cfg.FirebaseProjectID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Firebase auth")
		}
		authenticate = authMiddleware.Authenticate()
	}
	rateLimiter := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS)

	// ── Router ───────────────────────────────────────────
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check (unauthenticated)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "resumeiq-api",
			"time":    time.Now().UTC(),
		})
	})

	// ── Authenticated Routes ─────────────────────────────
	api := r.Group("/", authenticate, rateLimiter.Limit())
	resumeHandler.RegisterRoutes(api)

	// ── Server ───────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("ResumeIQ API server running")

	<-ctx.Done()
	stop()

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server stopped")
}
