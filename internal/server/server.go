// Package server boots the portal: config, database, cache, storage,
// queue workers, event listeners, and finally the HTTP listener.
package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/dto"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/jobs"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/routes"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/config"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/cache"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/database"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/event"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/logger"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/metrics"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/middleware"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/queue"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/reqid"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/router"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/storage"
)

const queueWorkers = 5

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	// Redis is optional: cache and queue degrade to in-process behaviour.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, falling back to direct queries", "error", err)
	}

	storage.Connect()

	if uri := config.Get("LOG_MONGO_URI", ""); uri != "" {
		db := config.Get("LOG_MONGO_DB", "pharmacy")
		col := config.Get("LOG_MONGO_COLLECTION", "logs")
		if err := logger.AttachMongo(uri, db, col); err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		}
	}

	jobs.RegisterAll()
	queue.UseDB(database.DB)
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, queueWorkers)
	registerListeners()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           buildHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("portal listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// buildHandler assembles the global middleware stack and mounts the API.
//
// Order (outermost to innermost): metrics for accurate total latency,
// recovery before anything can panic the goroutine, request id before
// the logger reads it, then CORS and the rate limiter.
func buildHandler() http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	routes.RegisterAPI(r)

	return r.Handler()
}

func registerListeners() {
	event.Listen("order.created", func(payload interface{}) {
		order, ok := payload.(dto.OrderDto)
		if !ok {
			return
		}
		logger.Info("order placed",
			"order_id", order.OrderID,
			"user_id", order.UserID,
			"total", order.TotalAmount,
			"items", len(order.OrderItems),
		)
	})
}
