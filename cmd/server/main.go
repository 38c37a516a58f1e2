package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Maazpendari01/InterviewQi/internal/config"
	"github.com/Maazpendari01/InterviewQi/internal/handlers"
	"github.com/Maazpendari01/InterviewQi/internal/interview"
	"github.com/Maazpendari01/InterviewQi/internal/jobs"
	"github.com/Maazpendari01/InterviewQi/internal/llm"
	_ "github.com/Maazpendari01/InterviewQi/internal/llm/gemini"
	_ "github.com/Maazpendari01/InterviewQi/internal/llm/groq"
	"github.com/Maazpendari01/InterviewQi/internal/metrics"
	"github.com/Maazpendari01/InterviewQi/internal/prompts"
	"github.com/Maazpendari01/InterviewQi/internal/repositories"
	"github.com/Maazpendari01/InterviewQi/internal/retrieval"
	mongorepo "github.com/Maazpendari01/InterviewQi/internal/retrieval/mongo"
	"github.com/Maazpendari01/InterviewQi/internal/routers"
	"github.com/Maazpendari01/InterviewQi/internal/sessions"
	"github.com/Maazpendari01/InterviewQi/internal/utils"
)

func registerRoutes(router *chi.Mux, cfg *config.Config, interviewHandler *handlers.InterviewHandler, analyticsHandler *handlers.AnalyticsHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, interviewHandler, cfg.JWTSecret)
	if analyticsHandler != nil {
		routers.AnalyticsRoutes(router, analyticsHandler)
	}
}

func newRouter(cfg *config.Config) *chi.Mux {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(cfg.RequestTimeout))
	router.Use(metrics.Middleware)
	return router
}

// Helper functions for environment variables
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// initDatabase opens the PostgreSQL archive and migrates its tables
func initDatabase() (*gorm.DB, error) {
	host := getEnv("POSTGRES_HOST", "localhost")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "postgres")
	port := getEnv("POSTGRES_PORT", "5432")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := repositories.NewSessionRepository(db).Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// buildRetriever returns the exemplar source for cfg.RetrievalBackend. The
// returned cleanup must be called on shutdown.
func buildRetriever(ctx context.Context, cfg *config.Config, logger *zap.Logger) (interview.Retriever, handlers.Pinger, func(context.Context), error) {
	if cfg.RetrievalBackend != config.BackendMongo {
		index, err := retrieval.NewDefaultIndex()
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("Using in-process exemplar index", zap.Int("exemplars", index.Len()))
		return index, nil, func(context.Context) {}, nil
	}

	client, err := mongorepo.NewClient(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	repo, err := mongorepo.NewExemplarRepo(client)
	if err != nil {
		return nil, nil, nil, err
	}

	// an empty collection is seeded from the embedded bank
	count, err := repo.Count(ctx)
	if err != nil {
		logger.Warn("Failed to count exemplars", zap.Error(err))
	} else if count == 0 {
		bank, err := retrieval.LoadBank()
		if err != nil {
			return nil, nil, nil, err
		}
		n, err := repo.Upsert(ctx, bank)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to seed exemplars: %w", err)
		}
		logger.Info("Seeded exemplar collection", zap.Int64("exemplars", n))
	}

	cleanup := func(ctx context.Context) {
		if err := client.Disconnect(ctx); err != nil {
			logger.Warn("Mongo disconnect failed", zap.Error(err))
		}
	}
	return repo, client, cleanup, nil
}

// buildStore returns the live session store for cfg.SessionStore
func buildStore(cfg *config.Config) (sessions.Store, func()) {
	if cfg.SessionStore == config.BackendRedis {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		return sessions.NewRedisStore(rdb, cfg.SessionTTL), func() { _ = rdb.Close() }
	}
	store := sessions.NewMemoryStore(cfg.SessionTTL)
	return store, store.Close
}

func main() {
	// a missing .env file is fine, the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger, err := utils.NewLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("retrieval_backend", cfg.RetrievalBackend),
		zap.String("session_store", cfg.SessionStore),
		zap.Bool("auth_enabled", cfg.JWTSecret != ""))

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	retriever, exemplarPinger, closeRetriever, err := buildRetriever(startupCtx, cfg, logger)
	cancelStartup()
	if err != nil {
		logger.Fatal("Failed to initialize exemplar retrieval", zap.Error(err))
	}

	store, closeStore := buildStore(cfg)
	dependencies := map[string]handlers.Pinger{"session_store": store}
	if exemplarPinger != nil {
		dependencies["exemplars"] = exemplarPinger
	}

	// the archive is optional; interviews still run without it
	var (
		archive          sessions.Archive
		analyticsHandler *handlers.AnalyticsHandler
		exporterJob      *jobs.TranscriptExporterJob
	)
	db, err := initDatabase()
	if err != nil {
		logger.Error("Failed to initialize database, archive and analytics will be disabled", zap.Error(err))
	} else {
		repo := repositories.NewSessionRepository(db)
		archive = repo
		analyticsHandler = handlers.NewAnalyticsHandler(repo, logger)
		dependencies["database"] = repo

		exporterConfig := &jobs.ExporterConfig{
			Schedule:      getEnv("TRANSCRIPT_EXPORT_SCHEDULE", "0 2 * * *"),
			ExportDir:     getEnv("TRANSCRIPT_EXPORT_DIR", "./exports"),
			ExportEnabled: getEnv("TRANSCRIPT_EXPORT_ENABLED", "false") == "true",
			BatchSize:     getEnvInt("TRANSCRIPT_EXPORT_BATCH_SIZE", 500),
		}
		exporterJob = jobs.NewTranscriptExporterJob(repo, exporterConfig, logger)
		if err := exporterJob.Start(); err != nil {
			logger.Error("Failed to start transcript exporter job", zap.Error(err))
		}
	}

	controller := interview.NewController(retriever, aiProvider, promptManager, logger)
	manager := sessions.NewManager(controller, store, archive, logger)

	interviewHandler := handlers.NewInterviewHandler(manager, logger)
	healthHandler := handlers.NewHealthHandler(aiProvider, promptManager, cfg, dependencies)

	router := newRouter(cfg)
	registerRoutes(router, cfg, interviewHandler, analyticsHandler, healthHandler)

	serverAddr := ":" + cfg.Port

	// completions can be slow, so the write timeout follows the request timeout
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	if exporterJob != nil {
		exporterJob.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	closeStore()
	closeRetriever(ctx)

	logger.Info("Interview service exited")
}
