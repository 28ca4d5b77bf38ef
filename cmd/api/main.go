package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/gcare-service/internal/cache"
	"github.com/Dan9191/gcare-service/internal/config"
	"github.com/Dan9191/gcare-service/internal/engine"
	"github.com/Dan9191/gcare-service/internal/handler"
	"github.com/Dan9191/gcare-service/internal/repository"
	"github.com/Dan9191/gcare-service/internal/scheduler"
	"github.com/Dan9191/gcare-service/internal/service"
	"github.com/Dan9191/gcare-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	sealKey, err := cfg.SealKeyBytes()
	if err != nil {
		logger.Fatalf("Invalid seal key: %v", err)
	}

	// Initialize database
	db, err := sqlx.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Optional report cache
	var reportCache service.ReportCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("Redis unavailable, report cache disabled: %v", err)
		} else {
			reportCache = cache.NewReportCache(rdb, cfg.CacheTTL, logger)
			logger.Infof("Report cache enabled: %s", cfg.RedisAddr)
		}
	}

	// Initialize layers
	repo := repository.NewRepository(db, sealKey)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, reportCache, mailer, engine.NewRegistry(), logger, cfg)
	h := handler.NewHandler(svc, logger)
	r := handler.NewRouter(h, cfg, logger)

	// Scheduled review of stored assessments
	if cfg.ReviewEnabled {
		sched := scheduler.NewScheduler(svc, logger)
		if err := sched.Start(cfg.ReviewSchedule); err != nil {
			logger.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
