package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/pkg/logging"
)

func main() {

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	// --------------------------------------------------
	// Redis (opcional)
	// --------------------------------------------------
	var rdb *redis.Client
	if cfg.CacheEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, catalog cache disabled", "addr", cfg.RedisAddr, "error", err)
			_ = rdb.Close()
			rdb = nil
		}
		cancel()
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// --------------------------------------------------
	// Metrics
	// --------------------------------------------------
	var registry *prometheus.Registry
	if cfg.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	dispatcher := audit.NewDispatcher(audit.New(db), logger)
	defer dispatcher.Close()

	r := gin.Default()

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Logger:   logger,
		Redis:    rdb,
		Audit:    dispatcher,
		Registry: registry,
	})

	logger.Info("server running", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Error("failed to start server", "error", err)
	}
}
