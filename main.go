package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"vote-be/internal/config"
	"vote-be/internal/container"
	"vote-be/internal/handler"
	"vote-be/internal/middleware"
	"vote-be/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if cfg.InsecureAdminPassword {
		log.Warn("ADMIN_PASSWORD is not set, falling back to the built-in default. Set it before exposing this service.")
	}
	if cfg.DefaultMongoURI {
		log.Warn("MONGODB_URI is not set, using the local default address")
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
		}); err != nil {
			log.WithError(err).Warn("Failed to initialize Sentry, continuing without error reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting vote-be server")

	ctx := context.Background()
	c, err := container.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	router := setupRouter(c)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server")
	}
	if err := c.Close(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to close container resources")
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(c *container.Container) *chi.Mux {
	cfg := c.Config
	log := c.Logger

	r := chi.NewRouter()

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.AllowedOrigins

	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	healthHandler := handler.NewHealthHandler(c.DB, log)
	votingHandler := handler.NewVotingHandler(c.VotingService, log)
	adminHandler := handler.NewAdminHandler(c.AdminService, c.AuthService, log)

	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Get("/company/{companyId}", votingHandler.GetCompany)
		r.Get("/voting/{companyId}", votingHandler.GetVotingSummary)
		r.Post("/vote", votingHandler.SubmitVote)
		r.Get("/results/{votingSessionId}", votingHandler.GetResults)
		r.Get("/results/{votingSessionId}/company/{companyId}", votingHandler.GetResults)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.Login)

			// Everything else requires an admin bearer token
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(c.AuthService, log))

				r.Post("/create-voting", adminHandler.CreateVoting)
				r.Get("/votings", adminHandler.ListVotings)
				r.Patch("/voting/{id}/toggle", adminHandler.ToggleVoting)
				r.Post("/reset-voting/{id}", adminHandler.ResetVoting)

				r.Post("/companies", adminHandler.CreateCompany)
				r.Get("/companies", adminHandler.ListCompanies)
				r.Delete("/companies/{id}", adminHandler.DeleteCompany)

				r.Get("/stats", adminHandler.Stats)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}
