package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/courtflow/intake-server-go/internal/config"
	"github.com/courtflow/intake-server-go/internal/database"
	"github.com/courtflow/intake-server-go/internal/handler"
	"github.com/courtflow/intake-server-go/internal/intake"
	"github.com/courtflow/intake-server-go/internal/jobs"
	"github.com/courtflow/intake-server-go/internal/middleware"
	"github.com/courtflow/intake-server-go/internal/processing"
	"github.com/courtflow/intake-server-go/internal/ragindex"
	"github.com/courtflow/intake-server-go/internal/redis"
	"github.com/courtflow/intake-server-go/internal/repository"
	"github.com/courtflow/intake-server-go/internal/session"
	"github.com/courtflow/intake-server-go/internal/storage"
	"github.com/courtflow/intake-server-go/internal/telegram"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	attachmentDir, err := storage.NewDir(cfg.TempDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create attachment storage")
	}

	caseRepo := repository.NewCaseRepository(db.DB)
	sessionStore := session.NewStore(redisClient, cfg.SessionTTL())
	telegramClient := telegram.NewClient(cfg.TelegramAPIBaseURL, cfg.TelegramBotToken)
	classifyClient := processing.NewClient(cfg.ProcessingServerURL)
	ragClient := ragindex.NewClient(cfg.RAGServiceURL)

	intakeService := intake.NewService(
		sessionStore, telegramClient, telegramClient, attachmentDir,
		classifyClient, caseRepo, ragClient,
		intake.DefaultMessages(), cfg.ResetDelay(),
	)

	webhookHandler := handler.NewWebhookHandler(intakeService)
	caseHandler := handler.NewCaseHandler(caseRepo)
	ragHandler := handler.NewRAGHandler(ragClient)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/telegram", func(r chi.Router) {
		r.Post("/webhook", webhookHandler.Webhook)
		r.Get("/health", webhookHandler.Health)
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/cases", caseHandler.Routes())
		r.Post("/rag/query", ragHandler.Query)
	})

	cleanupJob := jobs.NewCleanupJob(attachmentDir, config.TempFileMaxAge, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
