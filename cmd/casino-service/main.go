package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	chttp "github.com/radieske/casino-platform-poc/internal/casino-service/http"
	"github.com/radieske/casino-platform-poc/internal/casino-service/lifecycle"
	"github.com/radieske/casino-platform-poc/internal/casino-service/oracle"
	kpub "github.com/radieske/casino-platform-poc/internal/casino-service/producer"
	"github.com/radieske/casino-platform-poc/internal/casino-service/repo"
	"github.com/radieske/casino-platform-poc/internal/shared/config"
	"github.com/radieske/casino-platform-poc/internal/shared/db"
	"github.com/radieske/casino-platform-poc/internal/shared/logger"
)

// user_id da carteira que guarda o bankroll da casa
const houseVaultUser = "house_vault"

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	// Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	// Kafka writers (bet_requested e bet_settled)
	brokers := strings.Split(cfg.KafkaBrokers, ",")
	requestedWriter := kafkago.NewWriter(kafkago.WriterConfig{
		Brokers:  brokers,
		Topic:    cfg.TopicBetRequested,
		Balancer: &kafkago.LeastBytes{},
	})
	defer requestedWriter.Close()
	settledWriter := kafkago.NewWriter(kafkago.WriterConfig{
		Brokers:  brokers,
		Topic:    cfg.TopicBetSettled,
		Balancer: &kafkago.LeastBytes{},
	})
	defer settledWriter.Close()

	// deps
	edge := lifecycle.HouseEdgeConfig{
		SlotsRTPBps:     uint16(cfg.SlotsRTPBps),
		RouletteRTPBps:  uint16(cfg.RouletteRTPBps),
		AviatorRTPBps:   uint16(cfg.AviatorRTPBps),
		BlackjackRTPBps: uint16(cfg.BlackjackRTPBps),
		PlatformFeeBps:  uint16(cfg.PlatformFeeBps),
		MinBetCents:     cfg.MinBetCents,
		MaxBetCents:     cfg.MaxBetCents,
	}
	store := repo.NewPostgres(pg, edge, houseVaultUser)
	if err := store.EnsureHouse(context.Background(), "casino-service"); err != nil {
		log.Fatal("ensure house", zap.Error(err))
	}

	beacon := oracle.New(cfg.BeaconURL)
	lc := lifecycle.New(log, store, beacon)
	publ := kpub.NewKafkaPublisher(requestedWriter, settledWriter)

	// HTTP público
	api := chttp.NewServer(log, lc, store, rdb, publ, cfg.LeaderboardKey)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pg.PingContext(r.Context()); err != nil {
			http.Error(w, "pg", http.StatusServiceUnavailable)
			return
		}
		if err := rdb.Ping(r.Context()).Err(); err != nil {
			http.Error(w, "redis", http.StatusServiceUnavailable)
			return
		}
		if _, err := beacon.CurrentSlot(r.Context()); err != nil {
			http.Error(w, "beacon", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	go func() {
		addr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("metrics/health", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, metricsMux)
	}()

	log.Info("casino-service listening", zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
