package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/radieske/casino-platform-poc/internal/beacon-simulator/beacon"
	"github.com/radieske/casino-platform-poc/internal/shared/config"
	"github.com/radieske/casino-platform-poc/internal/shared/logger"
)

var (
	// Métricas Prometheus do beacon
	beaconSlot = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "beacon_current_slot",
		Help: "Slot corrente do beacon",
	})
	commitmentsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beacon_commitments_created_total",
		Help: "Total de compromissos criados",
	})
	revealsServed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beacon_reveals_served_total",
		Help: "Total de reveals entregues",
	})
)

type commitmentResp struct {
	Ref        string `json:"ref"`
	CommitSlot uint64 `json:"commit_slot"`
	Digest     string `json:"digest"`
}

type revealResp struct {
	Value string `json:"value"`
	Slot  uint64 `json:"slot"`
}

type slotResp struct {
	Slot uint64 `json:"slot"`
}

type server struct {
	log *zap.Logger
	b   *beacon.Beacon
}

// createCommitment gera um compromisso novo ancorado no slot corrente
func (s *server) createCommitment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	c, err := s.b.Commit()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	commitmentsCreated.Inc()
	s.log.Info("commitment created", zap.String("ref", c.Ref), zap.Uint64("commit_slot", c.CommitSlot))
	writeJSON(w, commitmentResp{Ref: c.Ref, CommitSlot: c.CommitSlot, Digest: c.Digest})
}

// commitmentRoutes atende GET /commitments/{ref} e GET /commitments/{ref}/reveal
func (s *server) commitmentRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/commitments/")
	if rest == "" {
		http.Error(w, "ref required", http.StatusBadRequest)
		return
	}

	if ref, ok := strings.CutSuffix(rest, "/reveal"); ok {
		value, slot, err := s.b.Reveal(ref)
		switch err {
		case nil:
		case beacon.ErrNotFound:
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		case beacon.ErrNotReady:
			http.Error(w, err.Error(), http.StatusConflict)
			return
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		revealsServed.Inc()
		writeJSON(w, revealResp{Value: hex.EncodeToString(value[:]), Slot: slot})
		return
	}

	c, err := s.b.Lookup(rest)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, commitmentResp{Ref: c.Ref, CommitSlot: c.CommitSlot, Digest: c.Digest})
}

func (s *server) currentSlot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, slotResp{Slot: s.b.Slot()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	prometheus.MustRegister(beaconSlot, commitmentsCreated, revealsServed)

	b := beacon.New()
	s := &server{log: log, b: b}

	// Avança o slot num ritmo fixo, emulando o relógio da rede
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.BeaconSlotMs) * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			beaconSlot.Set(float64(b.Advance()))
		}
	}()

	// ==== MUX PÚBLICO: /commitments, /slot
	appMux := http.NewServeMux()
	appMux.HandleFunc("/commitments", s.createCommitment)
	appMux.HandleFunc("/commitments/", s.commitmentRoutes)
	appMux.HandleFunc("/slot", s.currentSlot)

	// ==== MUX DE MÉTRICAS (/healthz, /metrics)
	metricsMux := http.NewServeMux()
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	metricsMux.Handle("/metrics", promhttp.Handler())

	// Servidor de métricas em goroutine
	go func() {
		metricsAddr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("beacon simulator (metrics) running",
			zap.String("addr", metricsAddr),
			zap.String("paths", "/healthz,/metrics"),
		)
		if err := http.ListenAndServe(metricsAddr, metricsMux); err != nil {
			log.Fatal("metrics server error", zap.Error(err))
		}
	}()

	// Servidor público do beacon
	publicAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	log.Info("beacon simulator (public) running",
		zap.String("addr", publicAddr),
		zap.String("paths", "/commitments,/slot"),
	)
	if err := http.ListenAndServe(publicAddr, appMux); err != nil {
		log.Fatal("public server error", zap.Error(err))
	}
}
