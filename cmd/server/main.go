package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event-registrations/internal/config"
	"event-registrations/internal/database"
	"event-registrations/internal/handlers"
	"event-registrations/internal/middleware"
	"event-registrations/internal/monitoring"
	"event-registrations/internal/repositories"
	"event-registrations/internal/services"
	"event-registrations/web/templates"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	if err := db.RunMigrations(os.Stdout); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Cart snapshots live in Redis
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal("Invalid REDIS_URL:", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db.DB)
	orderRepo := repositories.NewOrderRepository(db.DB)
	cartStore := repositories.NewCartStore(rdb, cfg.Redis.CartTTL)

	var groups services.GroupDirectory
	if cfg.Registrations.GroupsEnabled {
		groups = repositories.NewGroupRepository(db.DB)
	} else {
		log.Println("Group provisioning disabled")
	}

	// Initialize services
	notifier := services.NewWelcomeNotifier(services.ResendConfig{
		APIKey:     cfg.Resend.APIKey,
		FromEmail:  cfg.Resend.FromEmail,
		FromName:   cfg.Resend.FromName,
		AdminEmail: cfg.Resend.AdminEmail,
		SiteName:   cfg.Registrations.SiteName,
		LoginURL:   cfg.Registrations.LoginURL,
	})
	provisioner := services.NewRegistrationProvisioner(userRepo, groups, notifier, cfg.Registrations.Debug)
	checkoutService := services.NewRegistrationCheckoutService(cartStore, orderRepo, provisioner)

	tmpl, err := templates.Parse()
	if err != nil {
		log.Fatal("Failed to parse templates:", err)
	}

	// Initialize handlers
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, orderRepo, cartStore, tmpl)
	healthHandler := handlers.NewHealthHandler(map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error { return db.Healthy(ctx, 2*time.Second) },
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}, 3*time.Second)

	sessionStore := middleware.NewCookieStore(cfg.Session.Secret, cfg.Session.MaxAge, cfg.IsProduction())
	sessionMiddleware := middleware.NewSessionMiddleware(sessionStore)

	// Initialize router
	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(middleware.SecureHeaders)
	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	r.Method(http.MethodGet, "/healthz", healthHandler)
	if cfg.Metrics.Enabled {
		r.Method(http.MethodGet, "/metrics", monitoring.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware.CartSession)
		checkoutHandler.Routes(r)
	})

	r.Route("/admin", func(r chi.Router) {
		if cfg.Admin.Password != "" {
			r.Use(chimiddleware.BasicAuth("admin", map[string]string{cfg.Admin.User: cfg.Admin.Password}))
		} else {
			log.Println("Warning: ADMIN_PASSWORD not set, admin routes are unprotected")
		}
		checkoutHandler.AdminRoutes(r)
	})

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-stop
	log.Println("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
		return
	}
	log.Println("Server shut down gracefully")
}
