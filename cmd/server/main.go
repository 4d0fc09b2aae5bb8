package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkarimov/user-account-service/config"
	"github.com/dkarimov/user-account-service/internal/email"
	"github.com/dkarimov/user-account-service/internal/health"
	"github.com/dkarimov/user-account-service/internal/infrastructure/postgres"
	"github.com/dkarimov/user-account-service/internal/infrastructure/sqlite"
	ctxlog "github.com/dkarimov/user-account-service/internal/log"
	"github.com/dkarimov/user-account-service/internal/metrics"
	"github.com/dkarimov/user-account-service/internal/password"
	"github.com/dkarimov/user-account-service/internal/repository"
	"github.com/dkarimov/user-account-service/internal/sweeper"
	"github.com/dkarimov/user-account-service/internal/token"
	httptransport "github.com/dkarimov/user-account-service/internal/transport/http"
	"github.com/dkarimov/user-account-service/internal/transport/http/handler"
	"github.com/dkarimov/user-account-service/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		userRepo  repository.UserRepository
		tokenRepo repository.ResetTokenRepository
		pinger    health.Pinger
	)
	switch cfg.StoreDriver {
	case "sqlite":
		store, err := sqlite.NewStore(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("sqlite: %v", err)
		}
		defer store.Close()
		if err := store.ApplyMigrations(); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		userRepo = store.Users()
		tokenRepo = store.ResetTokens()
		pinger = store
	default:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()
		if err := postgres.ApplyMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		userRepo = postgres.NewUserRepository(pool)
		tokenRepo = postgres.NewResetTokenRepository(pool)
		pinger = pool
	}

	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	issuer := token.NewIssuer(tokenRepo, []byte(cfg.JWTSecret))
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, issuer, sender, cfg.ResetLinkBase)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	userUsecase := usecase.NewUserUsecase(userRepo, hasher)
	userHandler := handler.NewUserHandler(userUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pinger, logger, prometheus.DefaultRegisterer)

	tokenSweeper, err := sweeper.New(tokenRepo, logger, cfg.TokenSweepCron)
	if err != nil {
		log.Fatalf("sweeper: %v", err)
	}
	go tokenSweeper.Start(ctx)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, userHandler, httptransport.RouterConfig{
			JWTKey:        []byte(cfg.JWTSecret),
			AuthRateRPS:   cfg.AuthRateRPS,
			AuthRateBurst: cfg.AuthRateBurst,
		}),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
