package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"database/sql"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/trackly-app/trackly/internal/config"
	"github.com/trackly-app/trackly/internal/handler"
	"github.com/trackly-app/trackly/internal/integrations/rates"
	"github.com/trackly-app/trackly/internal/middleware"
	"github.com/trackly-app/trackly/internal/repository"
	"github.com/trackly-app/trackly/internal/service"
	"github.com/trackly-app/trackly/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, logger, cfg, sender)
	ratesClient := rates.NewClient(cfg, logger)
	h := handler.NewHandler(svc, ratesClient)

	// Rate limiters (15-minute windows, per client IP)
	authLimiter := middleware.NewRateLimiter(10, 15*time.Minute, "Too many auth attempts. Try later.")
	apiLimiter := middleware.NewRateLimiter(300, 15*time.Minute, "Too many requests from this IP, please try again later.")

	// Setup router
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	api := r.PathPrefix("/api").Subrouter()

	// Public user routes
	users := api.PathPrefix("/users").Subrouter()
	users.Handle("/register", authLimiter.Middleware(http.HandlerFunc(h.Register))).Methods("POST")
	users.Handle("/login", authLimiter.Middleware(http.HandlerFunc(h.Login))).Methods("POST")
	users.Handle("/me", middleware.AuthMiddleware(cfg)(http.HandlerFunc(h.Me))).Methods("GET")

	// Protected expense routes
	expenses := api.PathPrefix("/expenses").Subrouter()
	expenses.Use(middleware.AuthMiddleware(cfg))
	expenses.HandleFunc("/add", h.AddExpense).Methods("POST")
	expenses.HandleFunc("/get/{id}", h.GetExpense).Methods("GET")
	expenses.HandleFunc("/getall", h.GetAllExpenses).Methods("GET")
	expenses.HandleFunc("/update/{id}", h.UpdateExpense).Methods("PUT")
	expenses.HandleFunc("/delete/{id}", h.DeleteExpense).Methods("DELETE")
	expenses.HandleFunc("/total", h.TotalExpense).Methods("GET")

	// Protected task routes
	tasks := api.PathPrefix("/tasks").Subrouter()
	tasks.Use(middleware.AuthMiddleware(cfg))
	tasks.HandleFunc("/add", h.AddTask).Methods("POST")
	tasks.HandleFunc("/get/{id}", h.GetTask).Methods("GET")
	tasks.HandleFunc("/getall", h.GetAllTasks).Methods("GET")
	tasks.HandleFunc("/update/{id}", h.UpdateTask).Methods("PUT")
	tasks.HandleFunc("/delete/{id}", h.DeleteTask).Methods("DELETE")
	tasks.HandleFunc("/toggle/{id}", h.ToggleTask).Methods("PUT")
	tasks.HandleFunc("/totalProductivity", h.TotalProductivity).Methods("GET")
	tasks.HandleFunc("/taskcompletedcount", h.TaskCompletedCount).Methods("GET")

	// Protected aggregate routes behind the api limiter
	dashboard := api.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(apiLimiter.Middleware, middleware.AuthMiddleware(cfg))
	dashboard.HandleFunc("", h.Dashboard).Methods("GET")

	analytics := api.PathPrefix("/analytics").Subrouter()
	analytics.Use(apiLimiter.Middleware, middleware.AuthMiddleware(cfg))
	analytics.HandleFunc("", h.Analytics).Methods("GET")

	fx := api.PathPrefix("/rates").Subrouter()
	fx.Use(middleware.AuthMiddleware(cfg))
	fx.HandleFunc("", h.Rates).Methods("GET")

	// CORS and request logging
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With"}),
		handlers.AllowCredentials(),
	)(r)
	root := handlers.CombinedLoggingHandler(logger.Writer(), corsHandler)

	// Weekly digest job
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.DigestCron, svc.SendWeeklyDigests); err != nil {
		logger.Fatalf("Failed to schedule weekly digest: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      root,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Shutdown error: %v", err)
	}
}
