package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"beebalanced/internal/db"
	"beebalanced/internal/handlers"
	mw "beebalanced/internal/middleware"
	"beebalanced/internal/reminder"
	"beebalanced/internal/retention"
)

func mustGetenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	// Day boundaries are resolved in one fixed timezone regardless of where
	// the host runs.
	tzName := mustGetenv("APP_TIMEZONE", "America/New_York")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		slog.Error("invalid APP_TIMEZONE", slog.String("tz", tzName), slog.Any("err", err))
		os.Exit(1)
	}

	port := mustGetenv("PORT", "8080")

	dbConn, err := sqlx.Open("pgx", databaseURL)
	if err != nil {
		slog.Error("failed to open db", slog.Any("err", err))
		os.Exit(1)
	}
	dbConn.SetMaxOpenConns(10)
	dbConn.SetConnMaxLifetime(2 * time.Hour)
	if err = dbConn.Ping(); err != nil {
		slog.Error("failed to ping db", slog.Any("err", err))
		os.Exit(1)
	}
	if err := db.RunMigrations(dbConn); err != nil {
		slog.Error("failed migrations", slog.Any("err", err))
		os.Exit(1)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		slog.Error("failed to build zap logger", slog.Any("err", err))
		os.Exit(1)
	}
	defer zapLogger.Sync()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.ZapRequestLogger(zapLogger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(dbConn, []byte(jwtSecret))
	userHandler := handlers.NewUserHandler(dbConn)
	surveyHandler := handlers.NewSurveyHandler(dbConn, loc)
	homeHandler := handlers.NewHomeHandler(dbConn, loc)
	gardenHandler := handlers.NewGardenHandler(dbConn)
	adminHandler := handlers.NewAdminHandler(dbConn, loc)
	authMW := mw.NewAuthMiddleware([]byte(jwtSecret))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/signup", authHandler.Signup)
		api.Post("/auth/login", authHandler.Login)
		api.Get("/survey/questions", surveyHandler.Questions)
		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			pr.Get("/me", userHandler.GetMe)
			pr.Post("/me/unsubscribe", userHandler.Unsubscribe)
			pr.Post("/me/resubscribe", userHandler.Resubscribe)
			pr.Get("/survey/status", surveyHandler.Status)
			pr.Post("/survey/submit", surveyHandler.Submit)
			pr.Get("/home", homeHandler.Home)
			pr.Get("/trends", homeHandler.Trends)
			pr.Get("/garden", gardenHandler.List)
			pr.Get("/garden/catalog", gardenHandler.Catalog)
			pr.Post("/garden/flowers", gardenHandler.Buy)
			pr.Get("/admin/overview", adminHandler.Overview)
		})
	})

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	go retention.NewSweeper(dbConn).Run(bgCtx)

	if apiKey := os.Getenv("KNOCK_API_KEY"); apiKey != "" {
		sched := reminder.NewScheduler(dbConn, reminder.NewKnockClient(apiKey), loc)
		go sched.Run(bgCtx)
	} else {
		slog.Warn("KNOCK_API_KEY not set; reminder emails disabled")
	}

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		slog.Info("server starting", slog.String("addr", ":"+port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.Any("err", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown initiated")
	stopBackground()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	slog.Info("server stopped")
}
