package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"tableserve/internal/config"
	"tableserve/internal/database"
	"tableserve/internal/events"
	"tableserve/internal/httpx"
	"tableserve/internal/menu"
	"tableserve/internal/order"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "order-api").Logger()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()
	if err := database.Bootstrap(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}
	log.Info().Msg("connected to postgres")

	// Idempotency guard and event stream are optional: either can be
	// disabled by leaving its address unset.
	var idem order.IdempotencyStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		idem = order.NewRedisIdempotency(rdb)
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis idempotency enabled")
	}
	var producer order.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		p := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer p.Close()
		producer = p
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("kafka events enabled")
	}

	orderSvc := order.NewService(order.NewPGRepo(pool), producer, idem, cfg.PrepTime, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(log))
	menu.NewHandler(menu.NewPGRepo(pool), log).Register(r)
	order.NewHandler(orderSvc, log).Register(r)
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("order-api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
