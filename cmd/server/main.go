package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charbelabdallah/bookstore-backend/internal/config"
	"github.com/charbelabdallah/bookstore-backend/internal/email"
	"github.com/charbelabdallah/bookstore-backend/internal/handlers"
	"github.com/charbelabdallah/bookstore-backend/internal/middleware"
	"github.com/charbelabdallah/bookstore-backend/internal/ratelimit"
	"github.com/charbelabdallah/bookstore-backend/internal/service"
	"github.com/charbelabdallah/bookstore-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"site_url", cfg.Site.URL,
		"log_level", cfg.LogLevel,
	)

	// Email transport: real provider when a key is configured, log-only
	// otherwise so local development works without credentials.
	var mailer email.Mailer
	if cfg.Email.ResendAPIKey != "" {
		mailer = email.NewResendMailer(cfg.Email.ResendAPIKey)
	} else {
		log.Warn("RESEND_API_KEY not set, emails will be logged instead of sent")
		mailer = &email.LogMailer{Log: log}
	}

	renderer := email.NewRenderer(cfg.Site.URL)
	limiter := ratelimit.New()

	// Initialize services
	orderService := service.NewOrderService(limiter, mailer, renderer, cfg.Email, log)
	contactService := service.NewContactService(limiter, mailer, renderer, cfg.Email, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	contactHandler := handlers.NewContactHandler(contactService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration: only the storefront origins may call the API
	// from a browser.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Site.AllowedOrigins,
		AllowedMethods:   []string{"POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SecurityHeaders)
		r.Use(middleware.OriginCheck(cfg.Site.AllowedOrigins, log))

		r.Post("/order", orderHandler.SubmitOrder)
		r.Post("/contact", contactHandler.SubmitMessage)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
