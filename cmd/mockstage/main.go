// Mockstage server — runs the interview agent and the proctoring monitor
// behind one HTTP API.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mockstage/mockstage/pkg/agent"
	"github.com/mockstage/mockstage/pkg/api"
	"github.com/mockstage/mockstage/pkg/catalog"
	"github.com/mockstage/mockstage/pkg/config"
	"github.com/mockstage/mockstage/pkg/proctor"
	"github.com/mockstage/mockstage/pkg/providers/mock"
	"github.com/mockstage/mockstage/pkg/store"
	"github.com/mockstage/mockstage/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configPath := flag.String("config",
		getEnv("MOCKSTAGE_CONFIG", ""),
		"Path to the YAML configuration file (empty for defaults)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment", "error", err)
	}

	slog.Info("Starting mockstage", "version", version.Full(), "config", *configPath)

	ctx := context.Background()

	// 1. Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Store: PostgreSQL when enabled, in-memory otherwise
	var st store.Store
	var db *sql.DB
	if cfg.Database.Enabled {
		pg, err := store.NewPostgres(ctx, store.PostgresConfig{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime.Std(),
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime.Std(),
		})
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		st = pg
		db = pg.DB()
		slog.Info("Connected to PostgreSQL database", "host", cfg.Database.Host)
	} else {
		st = store.NewMemory()
		slog.Info("Running on the in-memory store, interviews will not survive restarts")
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("Error closing store", "error", err)
		}
	}()

	// 3. Question catalog
	cat, err := catalog.New()
	if err != nil {
		slog.Error("Failed to load question catalog", "error", err)
		os.Exit(1)
	}

	// 4. Collaborator providers. Real speech and vision backends attach
	// here; the mock providers keep the service runnable without them.
	transcriber := &mock.Transcriber{}
	emotions := &mock.EmotionClassifier{}
	detector := &mock.FaceDetector{}
	mesh := &mock.FaceMesh{}
	embedder := &mock.FaceEmbedder{}

	// 5. Interview agent
	interviewAgent := agent.New(cat, transcriber, emotions, store.NewHistory(st), st, slog.Default())
	interviewAgent.SetTunables(agent.Tunables{
		WeakScoreThreshold:   cfg.Interview.WeakScoreThreshold,
		StrongScoreThreshold: cfg.Interview.StrongScoreThreshold,
		AdjustMinAnswers:     cfg.Interview.AdjustMinAnswers,
		AdjustUpThreshold:    cfg.Interview.AdjustUpThreshold,
		AdjustDownThreshold:  cfg.Interview.AdjustDownThreshold,
		AdaptiveDifficulty:   cfg.Interview.Adaptive(),
	})

	// 6. Proctoring monitor
	monitor := proctor.NewMonitor(detector, mesh, embedder, emotions, cfg.Proctor.Sensitivity, slog.Default())
	slog.Info("Core initialized",
		"sensitivity", cfg.Proctor.Sensitivity,
		"adaptive_difficulty", cfg.Interview.Adaptive())

	// 7. HTTP server (non-blocking start)
	httpServer := api.NewServer(interviewAgent, monitor, db, slog.Default())

	errCh := make(chan error, 1)
	go func() {
		addr := cfg.Server.Addr()
		slog.Info("HTTP server listening", "addr", addr)
		if err := httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			errCh <- err
		}
	}()

	// 8. Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
	}

	// 9. Graceful shutdown
	shutdownTimeout := cfg.Server.ShutdownTimeout.Std()
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
