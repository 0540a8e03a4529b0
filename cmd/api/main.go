// Package main is the entry point for the Travel Planner API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"google.golang.org/api/option"

	"github.com/mpopescu/travel-planner/backend/internal/auth"
	"github.com/mpopescu/travel-planner/backend/internal/config"
	"github.com/mpopescu/travel-planner/backend/internal/handler"
	"github.com/mpopescu/travel-planner/backend/internal/middleware"
	"github.com/mpopescu/travel-planner/backend/internal/repo"
	"github.com/mpopescu/travel-planner/backend/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before the configured one exists.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Document store ---------------------------------------------------
	// One Firestore client per process; it is safe for concurrent use and
	// shared read-only by every handler.
	creds, err := cfg.ServiceAccountJSON()
	if err != nil {
		slog.Error("failed to assemble store credentials", "error", err)
		os.Exit(1)
	}
	store, err := firestore.NewClient(context.Background(), cfg.GoogleProjectID, option.WithCredentialsJSON(creds))
	if err != nil {
		slog.Error("failed to create document store client", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("document store client created", "project", cfg.GoogleProjectID)

	// --- Services ---------------------------------------------------------
	trips := repo.NewTripRepo(store)
	activities := repo.NewActivityRepo(store)
	tripService := service.NewTripService(trips, activities)
	activityService := service.NewActivityService(trips, activities)
	verifier := auth.NewGoogleVerifier(cfg.AuthAudience)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body size cap. Auth gates are attached per route inside
	// handler.Routes because list endpoints take the optional gate while
	// write endpoints take the mandatory one.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srv := handler.NewServer(tripService, activityService)
	r.Mount("/", srv.Routes(verifier))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
