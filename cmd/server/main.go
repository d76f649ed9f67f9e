// @title           sitepulse Analytics API
// @version         1.0
// @description     Privacy-first, cookie-less web analytics collection and aggregation API.
// @host            localhost:8080
// @schemes         http https
// @BasePath        /
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sitepulse/internal/analytics"
	"sitepulse/internal/api"
	"sitepulse/internal/config"
	"sitepulse/internal/database"
	"sitepulse/internal/geo"
	"sitepulse/internal/ratelimit"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	_ "sitepulse/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Cannot load configuration: %v", err)
	}

	logger := newLogger(cfg.Log.Level)

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		log.Fatalf("Cannot connect to the database: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Cannot ping the database: %v", err)
	}
	logger.Info("connected to database")

	store := database.NewStore(dbpool)

	var resolver geo.Resolver = geo.Disabled{}
	if cfg.Geo.Enabled {
		resolver = geo.NewHTTPResolver(cfg.Geo.BaseURL, cfg.Geo.Timeout)
		logger.Info("geo lookup enabled", "base_url", cfg.Geo.BaseURL)
	}

	service := analytics.NewService(store, resolver)
	server := api.NewServer(cfg, store, service, logger)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(api.RequestIDMiddleware)
	r.Use(api.LoggingMiddleware(logger))
	r.Use(api.MetricsMiddleware)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("sitepulse is running. API docs at /swagger/index.html"))
	})

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/analytics/tracker.js", server.TrackerHandler)

	collect := http.Handler(http.HandlerFunc(server.CollectHandler))
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter := ratelimit.New(rdb, cfg.RateLimit.PerMinute, time.Minute)
		collect = limiter.Middleware(collect)
		logger.Info("rate limiting enabled", "per_minute", cfg.RateLimit.PerMinute)
	}
	r.Method(http.MethodPost, "/api/analytics/collect", collect)
	r.Options("/api/analytics/collect", server.CollectPreflightHandler)

	// Read side lives on its own subrouter: the dashboard may be hosted on
	// a different origin than the collector.
	r.Route("/api/analytics", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))
		r.Get("/pageviews", server.PageviewsHandler)
		r.Get("/top-pages", server.TopPagesHandler)
		r.Get("/sessions/stats", server.SessionStatsHandler)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Cannot start the server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}
