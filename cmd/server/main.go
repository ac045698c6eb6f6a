package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/adapter/handler"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/adapter/scheduler"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/adapter/storage"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/profile"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/service"
)

type config struct {
	httpAddr  string
	mysqlDSN  string
	redisAddr string
	cronSpec  string
	cronTZ    string
	env       string
}

func loadConfig() config {
	return config{
		httpAddr:  envOr("HTTP_ADDR", ":8080"),
		mysqlDSN:  envOr("MYSQL_DSN", "root:root@tcp(localhost:3306)/diamondsistem?parseTime=true"),
		redisAddr: envOr("REDIS_ADDR", "localhost:6379"),
		cronSpec:  envOr("ASSIGN_CRON", "0 2 * * *"),
		cronTZ:    envOr("ASSIGN_TZ", "America/New_York"),
		env:       envOr("APP_ENV", "development"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := loadConfig()

	var zapLogger *zap.Logger
	var err error
	if cfg.env == "production" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.mysqlDSN)
	if err != nil {
		logger.Fatalw("failed to connect mysql", "error", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Fatalw("failed to ping mysql", "error", err)
	}
	logger.Infow("connected to mysql")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatalw("failed to connect redis", "error", err)
	}
	logger.Infow("connected to redis")

	// Adapters
	ledger := storage.NewMySQLLedger(db)
	store := storage.NewMySQLStore(db)
	locker := storage.NewRedisLocker(rdb)

	// Services
	catalog := profile.Default()
	demandService := service.NewDemandService(catalog, store)
	allocationService := service.NewAllocationService(ledger, store, store, store, store, demandService, logger)
	runner := service.NewAssignmentRunner(store, allocationService, locker, logger)
	alertService := service.NewAlertService(ledger, store, store)

	// Daily auto-assignment trigger
	daily, err := scheduler.NewDaily(runner, cfg.cronSpec, cfg.cronTZ, logger)
	if err != nil {
		logger.Fatalw("failed to configure scheduler", "error", err)
	}
	daily.Start()
	logger.Infow("auto-assignment job scheduled", "spec", cfg.cronSpec, "tz", cfg.cronTZ)

	// HTTP server
	httpHandler := handler.NewHTTPHandler(demandService, allocationService, runner, alertService, store, store)
	mux := http.NewServeMux()
	httpHandler.Register(mux)

	httpServer := &http.Server{
		Addr:    cfg.httpAddr,
		Handler: mux,
	}

	go func() {
		logger.Infow("HTTP server listening", "addr", cfg.httpAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Errorw("HTTP server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infow("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Infow("HTTP server stopped")

	daily.Stop()
	logger.Infow("scheduler stopped")

	rdb.Close()
	db.Close()
	logger.Infow("connections closed")
}
