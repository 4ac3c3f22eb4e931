package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/roberrrrrr/App-Activo-Entrena/internal/auth"
	"github.com/roberrrrrr/App-Activo-Entrena/internal/config"
	"github.com/roberrrrrr/App-Activo-Entrena/internal/health"
	"github.com/roberrrrrr/App-Activo-Entrena/internal/middleware"
	"github.com/roberrrrrr/App-Activo-Entrena/internal/store"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	if cfg.PostgresDSN == "" {
		logger.Fatal("POSTGRES_DSN is required")
	}
	ctx := context.Background()

	// ── PostgreSQL ────────────────────────────────────────────
	if err := store.Migrate(cfg.PostgresDSN); err != nil {
		logger.Fatalf("postgres migrate: %v", err)
	}
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatalf("postgres connect: %v", err)
	}
	defer pool.Close()
	users := store.NewPostgresStore(pool)

	// ── Handlers ─────────────────────────────────────────────
	authService := auth.NewService(users, cfg.LookupTimeout)
	authHandler := auth.NewHandler(authService, logger)
	healthHandler := health.NewHandler(users, logger)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Liveness probe
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Backend Activo Entrena está funcionando","status":"ok"}`))
	})

	r.Get("/api/health", healthHandler.Check)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Infof("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
}
