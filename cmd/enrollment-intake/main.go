// main is the entry point of the enrollment intake service.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the local fallback queue (SQLite)
//  4. Build the remote writer for the configured driver
//  5. Wire validation, metrics, and the submission pipeline
//  6. Register all HTTP routes and start the server
//  7. Block until an OS signal arrives, then shut down gracefully
//
// RUNNING THE SERVER:
//
//	go run ./cmd/enrollment-intake --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/enrollment-intake
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aanand-mishra/enrollment-intake/internal/config"
	"github.com/aanand-mishra/enrollment-intake/internal/http/handlers/enrollment"
	"github.com/aanand-mishra/enrollment-intake/internal/metrics"
	"github.com/aanand-mishra/enrollment-intake/internal/remote"
	"github.com/aanand-mishra/enrollment-intake/internal/storage/sqlite"
	"github.com/aanand-mishra/enrollment-intake/internal/submission"
	"github.com/aanand-mishra/enrollment-intake/internal/validation"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting enrollment-intake",
		slog.String("env", cfg.Env),
		slog.String("remote_driver", cfg.Remote.Driver),
	)

	// ── 3. Open the Local Queue ───────────────────────────────────────────
	queue, err := sqlite.New(cfg.LocalQueue.Path)
	if err != nil {
		log.Error("failed to open local queue",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer queue.Close()

	log.Info("local queue opened",
		slog.String("path", cfg.LocalQueue.Path))

	// ── 4. Remote Writer ──────────────────────────────────────────────────
	writer, closeRemote, err := newRemoteWriter(cfg.Remote)
	if err != nil {
		log.Error("failed to initialise remote writer",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRemote()

	// ── 5. Pipeline ───────────────────────────────────────────────────────
	m := metrics.New(prometheus.DefaultRegisterer)
	pipeline := submission.New(
		validation.NewEngine(),
		writer,
		queue,
		submission.WithRemoteTimeout(cfg.Remote.Timeout),
		submission.WithLogger(log),
		submission.WithMetrics(m),
	)

	// ── 6. Register HTTP Routes ───────────────────────────────────────────
	// Route table:
	//   POST /api/enrollments                → validate and submit
	//   POST /api/enrollments/draft          → format one edited field
	//   GET  /api/enrollments/pending        → list the local queue
	//   GET  /api/enrollments/pending/{id}   → one queued entry
	//   GET  /metrics                        → Prometheus scrape endpoint
	router := http.NewServeMux()

	router.HandleFunc("POST /api/enrollments", enrollment.New(pipeline))
	router.HandleFunc("POST /api/enrollments/draft", enrollment.Draft())
	router.HandleFunc("GET /api/enrollments/pending", enrollment.GetPendingList(queue))
	router.HandleFunc("GET /api/enrollments/pending/{id}", enrollment.GetPendingByID(queue))
	router.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		ReadTimeout: 10 * time.Second,
		// Leaves room for the remote timeout plus the local append.
		WriteTimeout: cfg.Remote.Timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// In-flight submissions get the full remote timeout to finish.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Remote.Timeout+5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped gracefully")
}

// newRemoteWriter builds the writer selected by cfg.Driver along with a
// function releasing whatever it holds open.
func newRemoteWriter(cfg config.Remote) (submission.RemoteWriter, func() error, error) {
	switch cfg.Driver {
	case config.DriverHTTP:
		return remote.NewHTTPWriter(cfg.BaseURL, cfg.APIKey, cfg.Timeout), func() error { return nil }, nil
	case config.DriverPostgres:
		db, err := remote.OpenPostgres(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		w := remote.NewPostgresWriter(db)
		return w, w.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown remote driver %q", cfg.Driver)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
