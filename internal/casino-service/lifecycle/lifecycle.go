package lifecycle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/casino-platform-poc/internal/casino-service/engine"
)

// Lifecycle orquestra as duas fases da aposta: RequestBet coloca o stake em
// escrow amarrado a um compromisso do beacon; SettleBet (chamada independente,
// possivelmente muito depois) valida o reveal, deriva o resultado e paga.
// O intervalo entre as fases é só a rodada REQUESTED persistida; não existe
// task bloqueada esperando o reveal.
type Lifecycle struct {
	log    *zap.Logger
	store  Store
	beacon RandomnessSource
}

func New(log *zap.Logger, store Store, beacon RandomnessSource) *Lifecycle {
	return &Lifecycle{log: log, store: store, beacon: beacon}
}

// BetRequest são os parâmetros de entrada do RequestBet.
type BetRequest struct {
	UserID        string
	Game          engine.Game
	BetCents      int64
	CommitmentRef string

	// Somente roleta
	RouletteBet engine.RouletteBet
	Numbers     []uint8
}

// RequestBet valida a aposta, debita o stake para o vault e cria a rodada em
// REQUESTED amarrada ao compromisso. O compromisso precisa referenciar o slot
// imediatamente anterior ao atual: mais velho que isso a aleatoriedade já foi
// (ou está prestes a ser) revelada.
func (l *Lifecycle) RequestBet(ctx context.Context, req BetRequest) (Round, error) {
	house, err := l.store.House(ctx)
	if err != nil {
		return Round{}, err
	}
	if !house.IsActive {
		return Round{}, ErrHouseInactive
	}

	payload, err := l.validateRequest(house, req)
	if err != nil {
		return Round{}, err
	}

	com, err := l.beacon.Commitment(ctx, req.CommitmentRef)
	if err != nil {
		return Round{}, fmt.Errorf("%w: %v", ErrCommitment, err)
	}
	now, err := l.beacon.CurrentSlot(ctx)
	if err != nil {
		return Round{}, fmt.Errorf("%w: %v", ErrCommitment, err)
	}
	if now == 0 || com.CommitSlot != now-1 {
		return Round{}, fmt.Errorf("%w: commit slot %d, current slot %d", ErrCommitment, com.CommitSlot, now)
	}

	round := Round{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		Game:          req.Game,
		BetCents:      req.BetCents,
		CommitmentRef: req.CommitmentRef,
		CommitSlot:    com.CommitSlot,
		Phase:         PhaseRequested,
		Payload:       payload,
		CreatedAt:     time.Now().UTC(),
	}

	if err := l.store.ApplyRequest(ctx, round); err != nil {
		return Round{}, err
	}

	l.log.Info("bet requested",
		zap.String("round_id", round.ID),
		zap.String("user_id", round.UserID),
		zap.String("game", string(round.Game)),
		zap.Int64("bet_cents", round.BetCents),
		zap.Uint64("commit_slot", round.CommitSlot),
	)
	return round, nil
}

// validateRequest cobre limites de valor e o formato dos parâmetros por jogo,
// e monta o payload da fase REQUESTED.
func (l *Lifecycle) validateRequest(house HouseState, req BetRequest) (Payload, error) {
	if !req.Game.Valid() {
		return Payload{}, ErrUnsupportedGame
	}
	switch req.Game {
	case engine.Slots, engine.Roulette:
	default:
		// aviator/blackjack: tipos declarados, sem caminho de settle no ciclo
		return Payload{}, ErrUnsupportedGame
	}

	if req.BetCents < house.Edge.MinBetCents || req.BetCents > house.Edge.MaxBetCents {
		return Payload{}, fmt.Errorf("%w: %d fora de [%d,%d]",
			ErrInvalidBetAmount, req.BetCents, house.Edge.MinBetCents, house.Edge.MaxBetCents)
	}

	if req.Game == engine.Roulette {
		if !engine.ValidRouletteBet(req.RouletteBet) || !engine.ValidRouletteNumbers(req.RouletteBet, req.Numbers) {
			return Payload{}, ErrInvalidBetShape
		}
		return Payload{
			Game:     engine.Roulette,
			Roulette: &RoulettePayload{Bet: req.RouletteBet, Numbers: req.Numbers},
		}, nil
	}

	// slots: payload vazio, preenchido no settle
	return Payload{Game: engine.Slots, Slots: &SlotsPayload{}}, nil
}

// SettleBet valida o reveal contra o compromisso guardado na rodada, deriva o
// resultado, aplica o corte de RTP e efetiva a transição REQUESTED -> SETTLED.
// Chamar numa rodada fora de REQUESTED falha sem efeito algum.
func (l *Lifecycle) SettleBet(ctx context.Context, roundID, commitmentRef string) (Round, error) {
	round, err := l.store.Round(ctx, roundID)
	if err != nil {
		return Round{}, err
	}
	if round.Phase != PhaseRequested {
		return Round{}, ErrRoundState
	}
	if round.CommitmentRef != commitmentRef {
		return Round{}, fmt.Errorf("%w: commitment ref mismatch", ErrCommitment)
	}

	com, err := l.beacon.Commitment(ctx, commitmentRef)
	if err != nil {
		return Round{}, fmt.Errorf("%w: %v", ErrCommitment, err)
	}
	if com.CommitSlot != round.CommitSlot {
		return Round{}, fmt.Errorf("%w: commit slot %d, expected %d", ErrCommitment, com.CommitSlot, round.CommitSlot)
	}
	now, err := l.beacon.CurrentSlot(ctx)
	if err != nil {
		return Round{}, fmt.Errorf("%w: %v", ErrCommitment, err)
	}
	if now <= round.CommitSlot {
		return Round{}, fmt.Errorf("%w: reveal não aconteceu (slot %d <= commit %d)", ErrCommitment, now, round.CommitSlot)
	}

	value, err := l.beacon.Reveal(ctx, commitmentRef, now)
	if err != nil {
		return Round{}, fmt.Errorf("%w: %v", ErrCommitment, err)
	}
	sum := sha256.Sum256(value[:])
	if hex.EncodeToString(sum[:]) != com.Digest {
		return Round{}, fmt.Errorf("%w: reveal não corresponde ao digest publicado", ErrCommitment)
	}

	house, err := l.store.House(ctx)
	if err != nil {
		return Round{}, err
	}

	settled, err := l.resolve(round, engine.Revealed(value), house.Edge)
	if err != nil {
		return Round{}, err
	}

	eff := SettleEffects{Round: settled}
	if settled.PayoutCents > 0 {
		eff.WonCents = settled.PayoutCents
		eff.LoyaltyDelta = round.BetCents / 100
	} else {
		eff.LostCents = round.BetCents
	}

	if err := l.store.ApplySettle(ctx, eff); err != nil {
		return Round{}, err
	}

	l.log.Info("bet settled",
		zap.String("round_id", settled.ID),
		zap.String("user_id", settled.UserID),
		zap.String("game", string(settled.Game)),
		zap.Int64("payout_cents", settled.PayoutCents),
	)
	return settled, nil
}

// resolve deriva o resultado e o pagamento final da rodada, na ordem fixa:
// resultado -> pagamento bruto pelas odds justas -> corte de RTP com floor.
func (l *Lifecycle) resolve(round Round, revealed engine.Revealed, edge HouseEdgeConfig) (Round, error) {
	rtp, ok := edge.RTPFor(round.Game)
	if !ok {
		return Round{}, ErrUnsupportedGame
	}

	var raw int64
	switch round.Game {
	case engine.Slots:
		out := engine.DeriveSlots(revealed)
		raw = engine.SlotsRawPayout(out, round.BetCents)
		reels := out.Reels
		round.Payload = Payload{Game: engine.Slots, Slots: &SlotsPayload{Reels: &reels}}

	case engine.Roulette:
		if round.Payload.Roulette == nil || !engine.ValidRouletteBet(round.Payload.Roulette.Bet) {
			return Round{}, ErrCorruptPayload
		}
		desc := round.Payload.Roulette
		out := engine.DeriveRoulette(revealed)
		raw = engine.RouletteRawPayout(desc.Bet, desc.Numbers, out.WinningNumber, round.BetCents)
		win := out.WinningNumber
		round.Payload = Payload{
			Game:     engine.Roulette,
			Roulette: &RoulettePayload{Bet: desc.Bet, Numbers: desc.Numbers, WinningNumber: &win},
		}

	default:
		return Round{}, ErrUnsupportedGame
	}

	round.PayoutCents = engine.ApplyReturn(raw, rtp)
	round.Phase = PhaseSettled
	round.IsComplete = true
	round.SettledAt = time.Now().UTC()
	return round, nil
}
