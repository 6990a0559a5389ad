package main

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"go.uber.org/zap"

	"github.com/radieske/casino-platform-poc/internal/shared/config"
	"github.com/radieske/casino-platform-poc/internal/shared/logger"
)

func rp(to string) *httputil.ReverseProxy {
	u, _ := url.Parse(to)
	return httputil.NewSingleHostReverseProxy(u)
}

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	// targets
	casinoURL := os.Getenv("CASINO_URL")
	if casinoURL == "" {
		casinoURL = "http://localhost:8083"
	}
	walletURL := os.Getenv("WALLET_URL")
	if walletURL == "" {
		walletURL = "http://localhost:8082"
	}
	feedURL := os.Getenv("FEED_URL")
	if feedURL == "" {
		feedURL = "http://localhost:8085"
	}
	beaconURL := os.Getenv("BEACON_URL")
	if beaconURL == "" {
		beaconURL = "http://localhost:8084"
	}
	casino := rp(casinoURL)
	wallet := rp(walletURL)
	feed := rp(feedURL)
	beacon := rp(beaconURL)

	mux := http.NewServeMux()

	// casino (ex.: /api/casino/* -> casino-service)
	mux.Handle("/api/casino/", http.StripPrefix("/api/casino", casino))

	// wallet (ex.: /api/wallet/* -> wallet-service)
	mux.Handle("/api/wallet/", http.StripPrefix("/api/wallet", wallet))

	// feed (ex.: /api/feed/* -> live-feed-service)
	mux.Handle("/api/feed/", http.StripPrefix("/api/feed", feed))

	// beacon (ex.: /api/beacon/* -> beacon-simulator; clientes criam commitments por aqui)
	mux.Handle("/api/beacon/", http.StripPrefix("/api/beacon", beacon))

	addr := ":" + cfg.HTTPPort
	log.Info("api-gateway listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, withCORS(mux)); err != nil && err != http.ErrServerClosed {
		log.Fatal("gateway failed", zap.Error(err))
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}
