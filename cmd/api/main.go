package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/swasthyasetu/health-assistant/internal/api/router"
	appconfig "github.com/swasthyasetu/health-assistant/internal/config"
	"github.com/swasthyasetu/health-assistant/internal/emergency"
	"github.com/swasthyasetu/health-assistant/internal/engine"
	"github.com/swasthyasetu/health-assistant/internal/escalation"
	"github.com/swasthyasetu/health-assistant/internal/history"
	"github.com/swasthyasetu/health-assistant/internal/http/handlers"
	"github.com/swasthyasetu/health-assistant/internal/language"
	"github.com/swasthyasetu/health-assistant/internal/notify"
	"github.com/swasthyasetu/health-assistant/internal/observability/metrics"
	"github.com/swasthyasetu/health-assistant/internal/responders"
	"github.com/swasthyasetu/health-assistant/internal/session"
	"github.com/swasthyasetu/health-assistant/internal/symptoms"
	"github.com/swasthyasetu/health-assistant/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting health assistant API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"session_backend", cfg.SessionBackend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Session store.
	retention := time.Duration(cfg.SessionRetentionDays) * 24 * time.Hour
	var sessions session.Store
	switch cfg.SessionBackend {
	case "redis":
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Error("redis unreachable", "error", err, "addr", cfg.RedisAddr)
			os.Exit(1)
		}
		sessions = session.NewRedisStore(client, retention, nil)
		defer client.Close()
	default:
		memStore := session.NewMemoryStore()
		sessions = memStore
		sweeper := session.NewSweeper(memStore, logger).
			WithRetention(retention).
			WithInterval(cfg.SweepInterval)
		go sweeper.Run(ctx)
	}

	// Knowledge: symptom tables and responder roster, file-backed with
	// built-in fallbacks.
	symptomLoader := symptoms.NewLoader(cfg.DataDir, logger)
	catalog := symptomLoader.Load()
	directory := responders.Load(cfg.DataDir, logger)

	// Conversation archive.
	var (
		turns   engine.TurnStore
		records escalation.RecordStore
		archive handlers.Archive
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		if err := db.PingContext(ctx); err != nil {
			logger.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store := history.NewStore(db)
		turns, records, archive = store, store, store
	} else {
		logger.Warn("no DATABASE_URL set, conversation archive is in-memory only")
		store := history.NewMemoryStore()
		turns, records, archive = store, store, store
	}

	// Alert delivery.
	var sender escalation.AlertSender
	if cfg.SMSProvider == "fast2sms" && cfg.Fast2SMSAPIKey != "" {
		client, err := notify.NewFast2SMS(notify.Fast2SMSConfig{
			BaseURL:    cfg.Fast2SMSBaseURL,
			APIKey:     cfg.Fast2SMSAPIKey,
			SenderID:   cfg.AlertSenderID,
			MaxRetries: 2,
			Logger:     logger.Logger,
		})
		if err != nil {
			logger.Error("failed to build SMS client", "error", err)
			os.Exit(1)
		}
		sender = client
	} else {
		sender = notify.NewLogSender(logger)
	}

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.NewEngineMetrics(registry)

	composer := escalation.NewComposer(directory, records, sender, logger)
	eng := engine.New(
		sessions,
		language.NewDetector(language.Parse(cfg.DefaultLanguage)),
		catalog,
		emergency.NewClassifier(),
		composer,
		directory,
		turns,
		logger,
		engineMetrics,
		cfg.EmergencyHotline,
	)
	reloader := engine.NewReloader(symptomLoader, eng)

	r := router.New(&router.Config{
		Logger:           logger,
		Assistant:        handlers.NewAssistantHandler(eng, logger),
		Admin:            handlers.NewAdminHandler(eng, sessions, archive, reloader, logger),
		AdminAuthSecret:  cfg.AdminJWTSecret,
		MetricsHandler:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		WebhookRateLimit: 10,
		WebhookRateBurst: 30,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
