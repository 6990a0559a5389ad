package lifecycle

import (
	"time"

	"github.com/radieske/casino-platform-poc/internal/casino-service/engine"
)

// Phase é a fase da rodada. A única transição legal é REQUESTED -> SETTLED.
type Phase string

const (
	PhaseRequested Phase = "REQUESTED"
	PhaseSettled   Phase = "SETTLED"
)

// Round é o registro de uma aposta do escrow até o settle.
// Criada pelo RequestBet, mutada exatamente uma vez pelo SettleBet.
type Round struct {
	ID            string
	UserID        string
	Game          engine.Game
	BetCents      int64
	CommitmentRef string
	CommitSlot    uint64
	Phase         Phase
	Payload       Payload
	PayoutCents   int64
	IsComplete    bool
	CreatedAt     time.Time
	SettledAt     time.Time
}

// HouseEdgeConfig guarda o RTP alvo por jogo e a taxa da plataforma, em
// basis points (denominador 10000). Definida na inicialização; sem mutador
// em tempo de execução.
type HouseEdgeConfig struct {
	SlotsRTPBps     uint16
	RouletteRTPBps  uint16
	AviatorRTPBps   uint16
	BlackjackRTPBps uint16
	PlatformFeeBps  uint16
	MinBetCents     int64
	MaxBetCents     int64
}

// RTPFor devolve o RTP configurado para o jogo.
func (c HouseEdgeConfig) RTPFor(g engine.Game) (uint16, bool) {
	switch g {
	case engine.Slots:
		return c.SlotsRTPBps, true
	case engine.Roulette:
		return c.RouletteRTPBps, true
	case engine.Aviator:
		return c.AviatorRTPBps, true
	case engine.Blackjack:
		return c.BlackjackRTPBps, true
	}
	return 0, false
}

// HouseState é o agregado singleton da casa. Contadores nunca decrescem.
type HouseState struct {
	Authority        string
	VaultID          string
	TotalGamesPlayed uint64
	TotalVolumeCents int64
	TotalPayoutCents int64
	Edge             HouseEdgeConfig
	IsActive         bool
}

// UserStats é o agregado por usuário, criado no primeiro bet.
type UserStats struct {
	UserID         string
	TotalBetCents  int64
	TotalWonCents  int64
	TotalLostCents int64
	LoyaltyPoints  int64
	GamesPlayed    int64
}

// SettleEffects é o conjunto de mutações de um settle, aplicado como uma
// unidade atômica pelo Store: ou tudo entra, ou nada entra.
type SettleEffects struct {
	Round        Round // estado final da rodada (SETTLED, payload de resultado)
	WonCents     int64 // crédito vault -> usuário (0 quando perdeu)
	LostCents    int64 // stake contabilizado como perda (0 quando ganhou)
	LoyaltyDelta int64
}
