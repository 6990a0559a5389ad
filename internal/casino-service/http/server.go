package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/casino-platform-poc/internal/casino-service/dto"
	"github.com/radieske/casino-platform-poc/internal/casino-service/engine"
	"github.com/radieske/casino-platform-poc/internal/casino-service/lifecycle"
	"github.com/radieske/casino-platform-poc/pkg/contracts/events"
)

// Publisher é o produtor de eventos do ciclo de aposta.
type Publisher interface {
	PublishBetRequested(context.Context, events.BetRequested) error
	PublishBetSettled(context.Context, events.BetSettled) error
}

// Server expõe o ciclo de aposta via HTTP.
type Server struct {
	log   *zap.Logger
	lc    *lifecycle.Lifecycle
	store lifecycle.Store
	rdb   *redis.Client
	publ  Publisher

	leaderboardKey string
}

func NewServer(log *zap.Logger, lc *lifecycle.Lifecycle, store lifecycle.Store, rdb *redis.Client, publ Publisher, leaderboardKey string) *Server {
	return &Server{log: log, lc: lc, store: store, rdb: rdb, publ: publ, leaderboardKey: leaderboardKey}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/casino/bets", s.requestBet)      // POST
	mux.HandleFunc("/casino/bets/", s.roundSubroutes) // GET /casino/bets/{id} | POST /casino/bets/{id}/settle
	mux.HandleFunc("/casino/stats", s.getStats)       // GET ?userId=...
	mux.HandleFunc("/casino/house", s.getHouse)       // GET
	mux.HandleFunc("/casino/leaderboard", s.getLeaderboard)
	return mux
}

func (s *Server) requestBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.RequestBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.Game == "" || req.BetCents <= 0 || req.CommitmentRef == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	round, err := s.lc.RequestBet(r.Context(), lifecycle.BetRequest{
		UserID:        req.UserID,
		Game:          engine.Game(req.Game),
		BetCents:      req.BetCents,
		CommitmentRef: req.CommitmentRef,
		RouletteBet:   engine.RouletteBet(req.BetType),
		Numbers:       req.Numbers,
	})
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	// evento best-effort; a aposta já está efetivada
	_ = s.publ.PublishBetRequested(r.Context(), events.BetRequested{
		RoundID:       round.ID,
		UserID:        round.UserID,
		Game:          string(round.Game),
		BetCents:      round.BetCents,
		CommitmentRef: round.CommitmentRef,
		CommitSlot:    round.CommitSlot,
	})

	writeJSON(w, toRoundResponse(round))
}

func (s *Server) roundSubroutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/casino/bets/")
	if rest == "" {
		http.Error(w, "roundId required", http.StatusBadRequest)
		return
	}

	if strings.HasSuffix(rest, "/settle") {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.settleBet(w, r, strings.TrimSuffix(rest, "/settle"))
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	round, err := s.store.Round(r.Context(), rest)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	writeJSON(w, toRoundResponse(round))
}

func (s *Server) settleBet(w http.ResponseWriter, r *http.Request, roundID string) {
	var req dto.SettleBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.CommitmentRef == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	round, err := s.lc.SettleBet(r.Context(), roundID, req.CommitmentRef)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	_ = s.publ.PublishBetSettled(r.Context(), events.BetSettled{
		RoundID:     round.ID,
		UserID:      round.UserID,
		Game:        string(round.Game),
		BetCents:    round.BetCents,
		PayoutCents: round.PayoutCents,
		Won:         round.PayoutCents > 0,
		Outcome:     outcomeLabel(round),
	})

	writeJSON(w, toRoundResponse(round))
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId required", http.StatusBadRequest)
		return
	}
	st, err := s.store.Stats(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, dto.StatsResponse{
		UserID:         userID,
		TotalBetCents:  st.TotalBetCents,
		TotalWonCents:  st.TotalWonCents,
		TotalLostCents: st.TotalLostCents,
		LoyaltyPoints:  st.LoyaltyPoints,
		GamesPlayed:    st.GamesPlayed,
	})
}

func (s *Server) getHouse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	house, err := s.store.House(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, dto.HouseResponse{
		TotalGamesPlayed: house.TotalGamesPlayed,
		TotalVolumeCents: house.TotalVolumeCents,
		TotalPayoutCents: house.TotalPayoutCents,
		IsActive:         house.IsActive,
		SlotsRTPBps:      house.Edge.SlotsRTPBps,
		RouletteRTPBps:   house.Edge.RouletteRTPBps,
		PlatformFeeBps:   house.Edge.PlatformFeeBps,
	})
}

// getLeaderboard lê o ranking de lealdade mantido pelo game-history-worker.
func (s *Server) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries, err := s.rdb.ZRevRangeWithScores(r.Context(), s.leaderboardKey, 0, 9).Result()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]dto.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		userID, _ := e.Member.(string)
		out = append(out, dto.LeaderboardEntry{UserID: userID, Score: e.Score})
	}
	writeJSON(w, out)
}

// writeLifecycleError mapeia a taxonomia do ciclo para status HTTP.
func writeLifecycleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrHouseInactive),
		errors.Is(err, lifecycle.ErrVaultInsufficient):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, lifecycle.ErrInvalidBetAmount),
		errors.Is(err, lifecycle.ErrInvalidBetShape),
		errors.Is(err, lifecycle.ErrUnsupportedGame):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, lifecycle.ErrRoundNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, lifecycle.ErrCommitment),
		errors.Is(err, lifecycle.ErrRoundState),
		errors.Is(err, lifecycle.ErrInsufficientFunds):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toRoundResponse(r lifecycle.Round) dto.RoundResponse {
	resp := dto.RoundResponse{
		RoundID:       r.ID,
		UserID:        r.UserID,
		Game:          string(r.Game),
		BetCents:      r.BetCents,
		CommitmentRef: r.CommitmentRef,
		CommitSlot:    r.CommitSlot,
		Phase:         string(r.Phase),
		PayoutCents:   r.PayoutCents,
	}
	if r.Payload.Slots != nil && r.Payload.Slots.Reels != nil {
		resp.Reels = r.Payload.Slots.Reels[:]
	}
	if r.Payload.Roulette != nil {
		resp.BetType = string(r.Payload.Roulette.Bet)
		resp.Numbers = r.Payload.Roulette.Numbers
		resp.WinningNumber = r.Payload.Roulette.WinningNumber
	}
	return resp
}

// outcomeLabel resume o resultado para o evento ("7-7-7" ou "17").
func outcomeLabel(r lifecycle.Round) string {
	if r.Payload.Slots != nil && r.Payload.Slots.Reels != nil {
		reels := r.Payload.Slots.Reels
		return fmt.Sprintf("%d-%d-%d", reels[0], reels[1], reels[2])
	}
	if r.Payload.Roulette != nil && r.Payload.Roulette.WinningNumber != nil {
		return strconv.Itoa(int(*r.Payload.Roulette.WinningNumber))
	}
	return ""
}

// writeJSON serializa e envia resposta JSON
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
