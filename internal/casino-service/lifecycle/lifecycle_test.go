package lifecycle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/radieske/casino-platform-poc/internal/casino-service/engine"
)

// fakeStore aplica os efeitos em memória com as mesmas garantias de fase que a
// implementação Postgres dá sob lock.
type fakeStore struct {
	house    HouseState
	rounds   map[string]Round
	open     map[string]string // userID -> roundID em REQUESTED
	stats    map[string]UserStats
	balances map[string]int64 // userID -> saldo; vault em balances[vaultID]
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		house: HouseState{
			Authority: "authority-1",
			VaultID:   "house_vault",
			IsActive:  true,
			Edge: HouseEdgeConfig{
				SlotsRTPBps:     9500,
				RouletteRTPBps:  9730,
				AviatorRTPBps:   9600,
				BlackjackRTPBps: 9950,
				PlatformFeeBps:  200,
				MinBetCents:     1000,
				MaxBetCents:     1000000,
			},
		},
		rounds:   map[string]Round{},
		open:     map[string]string{},
		stats:    map[string]UserStats{},
		balances: map[string]int64{},
	}
}

func (s *fakeStore) House(context.Context) (HouseState, error) { return s.house, nil }

func (s *fakeStore) Round(_ context.Context, id string) (Round, error) {
	r, ok := s.rounds[id]
	if !ok {
		return Round{}, ErrRoundNotFound
	}
	return r, nil
}

func (s *fakeStore) Stats(_ context.Context, userID string) (UserStats, error) {
	return s.stats[userID], nil
}

func (s *fakeStore) ApplyRequest(_ context.Context, r Round) error {
	if _, exists := s.open[r.UserID]; exists {
		return ErrRoundState
	}
	if s.balances[r.UserID] < r.BetCents {
		return ErrInsufficientFunds
	}
	s.balances[r.UserID] -= r.BetCents
	s.balances[s.house.VaultID] += r.BetCents
	s.rounds[r.ID] = r
	s.open[r.UserID] = r.ID
	s.house.TotalGamesPlayed++
	s.house.TotalVolumeCents += r.BetCents
	st := s.stats[r.UserID]
	st.UserID = r.UserID
	st.TotalBetCents += r.BetCents
	st.GamesPlayed++
	s.stats[r.UserID] = st
	return nil
}

func (s *fakeStore) ApplySettle(_ context.Context, eff SettleEffects) error {
	cur, ok := s.rounds[eff.Round.ID]
	if !ok || cur.Phase != PhaseRequested {
		return ErrRoundState
	}
	s.rounds[eff.Round.ID] = eff.Round
	delete(s.open, eff.Round.UserID)
	s.house.TotalPayoutCents += eff.WonCents
	st := s.stats[eff.Round.UserID]
	st.TotalWonCents += eff.WonCents
	st.TotalLostCents += eff.LostCents
	st.LoyaltyPoints += eff.LoyaltyDelta
	s.stats[eff.Round.UserID] = st
	if eff.WonCents > 0 {
		s.balances[s.house.VaultID] -= eff.WonCents
		s.balances[eff.Round.UserID] += eff.WonCents
	}
	return nil
}

// fakeBeacon controla slot e valor revelado por compromisso. notReady simula
// o oráculo que ainda não publicou o valor mesmo com o slot avançado;
// tampered faz o reveal devolver um valor que não bate com o digest.
type fakeBeacon struct {
	slot     uint64
	notReady bool
	tampered bool
	commits  map[string]Commitment
	values   map[string][32]byte
}

func newFakeBeacon(slot uint64) *fakeBeacon {
	return &fakeBeacon{slot: slot, commits: map[string]Commitment{}, values: map[string][32]byte{}}
}

func (b *fakeBeacon) commit(ref string, slot uint64, value [32]byte) {
	b.commits[ref] = Commitment{Ref: ref, CommitSlot: slot}
	b.values[ref] = value
}

func (b *fakeBeacon) Commitment(_ context.Context, ref string) (Commitment, error) {
	c, ok := b.commits[ref]
	if !ok {
		return Commitment{}, errors.New("unknown commitment")
	}
	// digest sempre derivado do valor corrente, como o beacon real faz
	value := b.values[ref]
	sum := sha256.Sum256(value[:])
	c.Digest = hex.EncodeToString(sum[:])
	return c, nil
}

func (b *fakeBeacon) Reveal(_ context.Context, ref string, currentSlot uint64) ([32]byte, error) {
	c, ok := b.commits[ref]
	if !ok {
		return [32]byte{}, errors.New("unknown commitment")
	}
	if b.notReady || currentSlot <= c.CommitSlot {
		return [32]byte{}, ErrRevealNotReady
	}
	value := b.values[ref]
	if b.tampered {
		value[0] ^= 0xFF
	}
	return value, nil
}

func (b *fakeBeacon) CurrentSlot(context.Context) (uint64, error) { return b.slot, nil }

func fixture(t *testing.T) (*Lifecycle, *fakeStore, *fakeBeacon) {
	t.Helper()
	store := newFakeStore()
	store.balances["alice"] = 1_000_000
	beacon := newFakeBeacon(100)
	beacon.commit("com-1", 99, [32]byte{})
	return New(zap.NewNop(), store, beacon), store, beacon
}

func slotsRequest(bet int64) BetRequest {
	return BetRequest{UserID: "alice", Game: engine.Slots, BetCents: bet, CommitmentRef: "com-1"}
}

func TestRequestBetEscrowsStake(t *testing.T) {
	lc, store, _ := fixture(t)

	round, err := lc.RequestBet(context.Background(), slotsRequest(10000))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if round.Phase != PhaseRequested {
		t.Fatalf("phase = %s, want REQUESTED", round.Phase)
	}
	if round.CommitSlot != 99 {
		t.Fatalf("commit slot = %d, want 99", round.CommitSlot)
	}
	if store.balances["alice"] != 990000 {
		t.Fatalf("saldo do usuário = %d, want 990000", store.balances["alice"])
	}
	if store.balances["house_vault"] != 10000 {
		t.Fatalf("saldo do vault = %d, want 10000", store.balances["house_vault"])
	}
	if store.house.TotalGamesPlayed != 1 || store.house.TotalVolumeCents != 10000 {
		t.Fatalf("contadores da casa = (%d, %d)", store.house.TotalGamesPlayed, store.house.TotalVolumeCents)
	}
	st := store.stats["alice"]
	if st.TotalBetCents != 10000 || st.GamesPlayed != 1 {
		t.Fatalf("stats do usuário = %+v", st)
	}
}

func TestRequestBetHouseInactive(t *testing.T) {
	lc, store, _ := fixture(t)
	store.house.IsActive = false

	_, err := lc.RequestBet(context.Background(), slotsRequest(10000))
	if !errors.Is(err, ErrHouseInactive) {
		t.Fatalf("err = %v, want ErrHouseInactive", err)
	}
	if store.balances["alice"] != 1_000_000 {
		t.Fatal("saldo não deveria mudar em erro")
	}
}

func TestRequestBetAmountBounds(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
		wantOK bool
	}{
		{"mínimo aceito", 1000, true},
		{"máximo aceito", 1000000, true},
		{"abaixo do mínimo", 999, false},
		{"acima do máximo", 1000001, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lc, store, _ := fixture(t)
			store.balances["alice"] = 2_000_000
			_, err := lc.RequestBet(context.Background(), slotsRequest(tc.amount))
			if tc.wantOK && err != nil {
				t.Fatalf("err = %v, want nil", err)
			}
			if !tc.wantOK && !errors.Is(err, ErrInvalidBetAmount) {
				t.Fatalf("err = %v, want ErrInvalidBetAmount", err)
			}
		})
	}
}

func TestRequestBetRouletteShape(t *testing.T) {
	cases := []struct {
		bet     engine.RouletteBet
		numbers []uint8
		wantOK  bool
	}{
		{engine.Straight, []uint8{17}, true},
		{engine.Straight, []uint8{17, 18}, false},
		{engine.Split, []uint8{17, 18}, true},
		{engine.Split, []uint8{17}, false},
		{engine.Street, []uint8{1, 2, 3}, true},
		{engine.Corner, []uint8{1, 2, 4, 5}, true},
		{engine.Corner, []uint8{1, 2, 4}, false},
		{engine.Line, []uint8{1, 2, 3, 4, 5, 6}, true},
		{engine.Column, []uint8{1, 4, 7, 10, 13, 16, 19, 22, 25, 28, 31, 34}, true},
		{engine.Dozen, []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, true},
		{engine.Dozen, []uint8{1, 2, 3}, false},
		{engine.Red, nil, true},
		{engine.Red, []uint8{1}, false},
		{engine.High, nil, true},
	}
	for _, tc := range cases {
		t.Run(string(tc.bet), func(t *testing.T) {
			lc, _, _ := fixture(t)
			req := BetRequest{
				UserID: "alice", Game: engine.Roulette, BetCents: 5000,
				CommitmentRef: "com-1", RouletteBet: tc.bet, Numbers: tc.numbers,
			}
			_, err := lc.RequestBet(context.Background(), req)
			if tc.wantOK && err != nil {
				t.Fatalf("err = %v, want nil", err)
			}
			if !tc.wantOK && !errors.Is(err, ErrInvalidBetShape) {
				t.Fatalf("err = %v, want ErrInvalidBetShape", err)
			}
		})
	}
}

func TestRequestBetCommitmentFreshness(t *testing.T) {
	lc, store, beacon := fixture(t)
	beacon.commit("stale", 97, [32]byte{})   // dois slots atrás
	beacon.commit("future", 100, [32]byte{}) // slot atual

	for _, ref := range []string{"stale", "future", "unknown"} {
		req := slotsRequest(10000)
		req.CommitmentRef = ref
		_, err := lc.RequestBet(context.Background(), req)
		if !errors.Is(err, ErrCommitment) {
			t.Fatalf("ref %s: err = %v, want ErrCommitment", ref, err)
		}
	}
	if store.balances["alice"] != 1_000_000 {
		t.Fatal("nenhum débito deveria acontecer em erro de commitment")
	}
}

func TestRequestBetRejectsUnsupportedGames(t *testing.T) {
	lc, _, _ := fixture(t)
	for _, g := range []engine.Game{engine.Aviator, engine.Blackjack, engine.Game("poker")} {
		req := slotsRequest(10000)
		req.Game = g
		if _, err := lc.RequestBet(context.Background(), req); !errors.Is(err, ErrUnsupportedGame) {
			t.Fatalf("game %s: err = %v, want ErrUnsupportedGame", g, err)
		}
	}
}

func TestRequestBetSecondOpenRoundRejected(t *testing.T) {
	lc, _, beacon := fixture(t)
	if _, err := lc.RequestBet(context.Background(), slotsRequest(10000)); err != nil {
		t.Fatalf("primeira: %v", err)
	}
	beacon.commit("com-2", 99, [32]byte{})
	req := slotsRequest(10000)
	req.CommitmentRef = "com-2"
	if _, err := lc.RequestBet(context.Background(), req); !errors.Is(err, ErrRoundState) {
		t.Fatalf("segunda: err = %v, want ErrRoundState", err)
	}
}

// Exemplo ponta a ponta A: 777 no slots com RTP 9500 bps.
func TestSettleBetSlotsJackpot(t *testing.T) {
	lc, store, beacon := fixture(t)
	beacon.values["com-1"] = [32]byte{7, 107, 207} // lanes 7-7-7

	round, err := lc.RequestBet(context.Background(), slotsRequest(10000))
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	beacon.slot = 101 // reveal disponível
	settled, err := lc.SettleBet(context.Background(), round.ID, "com-1")
	if err != nil {
		t.Fatalf("settle: %v", err)
	}

	// raw 10.000 * 200 = 2.000.000 -> floor(2.000.000 * 0,95) = 1.900.000
	if settled.PayoutCents != 1900000 {
		t.Fatalf("payout = %d, want 1900000", settled.PayoutCents)
	}
	if settled.Phase != PhaseSettled || !settled.IsComplete {
		t.Fatalf("rodada não finalizada: %+v", settled)
	}
	if settled.Payload.Slots == nil || settled.Payload.Slots.Reels == nil || *settled.Payload.Slots.Reels != [3]uint8{7, 7, 7} {
		t.Fatalf("payload de resultado = %+v", settled.Payload)
	}
	if store.balances["alice"] != 1_000_000-10000+1900000 {
		t.Fatalf("saldo final = %d", store.balances["alice"])
	}
	st := store.stats["alice"]
	if st.TotalWonCents != 1900000 || st.TotalLostCents != 0 {
		t.Fatalf("stats = %+v", st)
	}
	if st.LoyaltyPoints != 100 { // floor(10000/100)
		t.Fatalf("loyalty = %d, want 100", st.LoyaltyPoints)
	}
	if store.house.TotalPayoutCents != 1900000 {
		t.Fatalf("payout agregado da casa = %d", store.house.TotalPayoutCents)
	}
}

// Exemplo ponta a ponta B: straight no 17 com RTP 9730 bps.
func TestSettleBetRouletteStraightWin(t *testing.T) {
	lc, store, beacon := fixture(t)
	beacon.values["com-1"] = [32]byte{54} // 54 % 37 = 17

	req := BetRequest{
		UserID: "alice", Game: engine.Roulette, BetCents: 5000,
		CommitmentRef: "com-1", RouletteBet: engine.Straight, Numbers: []uint8{17},
	}
	round, err := lc.RequestBet(context.Background(), req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	beacon.slot = 101
	settled, err := lc.SettleBet(context.Background(), round.ID, "com-1")
	if err != nil {
		t.Fatalf("settle: %v", err)
	}

	// raw 5.000 * 35 = 175.000 -> floor(175.000 * 0,973) = 170.275
	if settled.PayoutCents != 170275 {
		t.Fatalf("payout = %d, want 170275", settled.PayoutCents)
	}
	if settled.Payload.Roulette == nil || settled.Payload.Roulette.WinningNumber == nil || *settled.Payload.Roulette.WinningNumber != 17 {
		t.Fatalf("payload de resultado = %+v", settled.Payload)
	}
	if store.balances["alice"] != 1_000_000-5000+170275 {
		t.Fatalf("saldo final = %d", store.balances["alice"])
	}
}

func TestSettleBetLosingRoulette(t *testing.T) {
	lc, store, beacon := fixture(t)
	beacon.values["com-1"] = [32]byte{54} // vencedor 17

	req := BetRequest{
		UserID: "alice", Game: engine.Roulette, BetCents: 5000,
		CommitmentRef: "com-1", RouletteBet: engine.Straight, Numbers: []uint8{18},
	}
	round, _ := lc.RequestBet(context.Background(), req)

	beacon.slot = 101
	settled, err := lc.SettleBet(context.Background(), round.ID, "com-1")
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if settled.PayoutCents != 0 {
		t.Fatalf("payout = %d, want 0", settled.PayoutCents)
	}
	st := store.stats["alice"]
	if st.TotalLostCents != 5000 || st.TotalWonCents != 0 || st.LoyaltyPoints != 0 {
		t.Fatalf("stats = %+v", st)
	}
	if store.balances["alice"] != 995000 {
		t.Fatalf("saldo = %d, stake perdido fica no vault", store.balances["alice"])
	}
}

func TestSettleBetBeforeReveal(t *testing.T) {
	lc, _, beacon := fixture(t)
	round, _ := lc.RequestBet(context.Background(), slotsRequest(10000))

	// slot avançou mas o oráculo ainda não publicou o valor
	beacon.slot = 101
	beacon.notReady = true
	if _, err := lc.SettleBet(context.Background(), round.ID, "com-1"); !errors.Is(err, ErrCommitment) {
		t.Fatalf("err = %v, want ErrCommitment", err)
	}
}

func TestSettleBetRevealDigestMismatch(t *testing.T) {
	lc, store, beacon := fixture(t)
	beacon.values["com-1"] = [32]byte{7, 107, 207}
	round, _ := lc.RequestBet(context.Background(), slotsRequest(10000))

	// o oráculo devolve um valor diferente do comprometido
	beacon.slot = 101
	beacon.tampered = true
	if _, err := lc.SettleBet(context.Background(), round.ID, "com-1"); !errors.Is(err, ErrCommitment) {
		t.Fatalf("err = %v, want ErrCommitment", err)
	}
	if store.balances["alice"] != 990000 {
		t.Fatalf("saldo = %d, nenhum pagamento pode sair de um reveal adulterado", store.balances["alice"])
	}
	got, _ := store.Round(context.Background(), round.ID)
	if got.Phase != PhaseRequested {
		t.Fatalf("fase = %s, rodada deveria continuar REQUESTED", got.Phase)
	}
}

func TestSettleBetCommitmentRefMismatch(t *testing.T) {
	lc, _, beacon := fixture(t)
	round, _ := lc.RequestBet(context.Background(), slotsRequest(10000))
	beacon.slot = 101
	beacon.commit("other", 99, [32]byte{})

	if _, err := lc.SettleBet(context.Background(), round.ID, "other"); !errors.Is(err, ErrCommitment) {
		t.Fatalf("err = %v, want ErrCommitment", err)
	}
}

func TestSettleBetTwiceFailsWithoutEffect(t *testing.T) {
	lc, store, beacon := fixture(t)
	beacon.values["com-1"] = [32]byte{7, 107, 207}
	round, _ := lc.RequestBet(context.Background(), slotsRequest(10000))

	beacon.slot = 101
	if _, err := lc.SettleBet(context.Background(), round.ID, "com-1"); err != nil {
		t.Fatalf("primeiro settle: %v", err)
	}

	balance := store.balances["alice"]
	stats := store.stats["alice"]
	housePayouts := store.house.TotalPayoutCents

	if _, err := lc.SettleBet(context.Background(), round.ID, "com-1"); !errors.Is(err, ErrRoundState) {
		t.Fatalf("segundo settle: err = %v, want ErrRoundState", err)
	}
	if store.balances["alice"] != balance || store.stats["alice"] != stats || store.house.TotalPayoutCents != housePayouts {
		t.Fatal("segundo settle não pode ter efeito")
	}
}

func TestSettleBetUnknownRound(t *testing.T) {
	lc, _, _ := fixture(t)
	if _, err := lc.SettleBet(context.Background(), "nope", "com-1"); !errors.Is(err, ErrRoundNotFound) {
		t.Fatalf("err = %v, want ErrRoundNotFound", err)
	}
}

func TestRequestBetInsufficientFunds(t *testing.T) {
	lc, store, _ := fixture(t)
	store.balances["alice"] = 500
	if _, err := lc.RequestBet(context.Background(), slotsRequest(10000)); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
}
