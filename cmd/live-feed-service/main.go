package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	feedcache "github.com/radieske/casino-platform-poc/internal/live-feed-service/cache"
	feedhttp "github.com/radieske/casino-platform-poc/internal/live-feed-service/http"
	feedrepo "github.com/radieske/casino-platform-poc/internal/live-feed-service/repo"
	"github.com/radieske/casino-platform-poc/internal/live-feed-service/ws"
	sharedcache "github.com/radieske/casino-platform-poc/internal/shared/cache"
	"github.com/radieske/casino-platform-poc/internal/shared/config"
	"github.com/radieske/casino-platform-poc/internal/shared/db"
	"github.com/radieske/casino-platform-poc/internal/shared/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// Postgres para leitura do histórico
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	log.Info("postgres connected")

	// Redis para cache do feed e Pub/Sub das liquidações
	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("redis connected")

	// Hub WebSocket alimentado pelo Pub/Sub do game-history-worker
	hub := ws.NewHub(func(r *http.Request) bool { return true })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ws.StartRedisSubscriber(ctx, redisClient, cfg.RedisPubSubChannel, hub)

	api := &feedhttp.API{
		ReadRepo: &feedrepo.ReadRepo{DB: pg},
		Cache:    feedcache.New(redisClient),
	}

	// ==== MUX PÚBLICO: REST + /ws
	appMux := http.NewServeMux()
	appMux.Handle("/", api.Router())
	appMux.HandleFunc("/ws", hub.HandleWS)

	// ==== MUX DE MÉTRICAS (/healthz, /metrics)
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		hctx, hcancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer hcancel()
		if err := pg.PingContext(hctx); err != nil {
			http.Error(w, "pg", http.StatusServiceUnavailable)
			return
		}
		if err := redisClient.Ping(hctx).Err(); err != nil {
			http.Error(w, "redis", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	go func() {
		addr := ":" + cfg.MetricsPort
		log.Info("metrics/health listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, metricsMux); err != nil {
			log.Fatal("metrics server error", zap.Error(err))
		}
	}()

	addr := ":" + cfg.HTTPPort
	log.Info("live feed listening", zap.String("addr", addr), zap.String("paths", "/v1/feed,/ws"))
	if err := http.ListenAndServe(addr, appMux); err != nil {
		log.Fatal("public server error", zap.Error(err))
	}
}
