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
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bookshop/bookshop-go/internal/config"
	"github.com/bookshop/bookshop-go/internal/handler"
	"github.com/bookshop/bookshop-go/internal/metrics"
	"github.com/bookshop/bookshop-go/internal/middleware"
	"github.com/bookshop/bookshop-go/internal/repository"
	"github.com/bookshop/bookshop-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := repository.RunMigrations(db); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	bookService := service.NewBookService(bookRepo)
	reviewService := service.NewReviewService(reviewRepo, bookRepo)

	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	requireAuth := middleware.Auth(cfg.JWTSecret, userRepo)

	r := chi.NewRouter()
	r.Use(middleware.Recover)
	r.Use(middleware.Logger)
	r.Use(collector.Middleware)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Bookshop API running"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/auth/register", authHandler.HandleRegister)
			r.Post("/auth/login", authHandler.HandleLogin)
		})

		r.Get("/books", bookHandler.HandleList)
		r.Get("/books/isbn/{isbn}", bookHandler.HandleGetByISBN)
		r.Get("/books/author/{author}", bookHandler.HandleSearchByAuthor)
		r.Get("/books/title/{title}", bookHandler.HandleSearchByTitle)
		r.Get("/books/{bookID}/reviews", reviewHandler.HandleListForBook)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/auth/me", authHandler.HandleMe)
			r.Post("/books/{bookID}/reviews", reviewHandler.HandleSubmit)
			r.Delete("/reviews/{id}", reviewHandler.HandleDelete)
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
