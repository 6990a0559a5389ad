package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/casino-platform-poc/pkg/contracts/events"
)

type fakeStore struct {
	inserted []events.BetSettled
	fail     bool
}

func (f *fakeStore) InsertSettlement(_ context.Context, e events.BetSettled) error {
	if f.fail {
		return errors.New("db down")
	}
	f.inserted = append(f.inserted, e)
	return nil
}

type fakeRanker struct {
	points map[string]int64
}

func (f *fakeRanker) Add(_ context.Context, userID string, points int64) error {
	if f.points == nil {
		f.points = map[string]int64{}
	}
	f.points[userID] += points
	return nil
}

type fakeDLQ struct {
	msgs []kafka.Message
}

func (f *fakeDLQ) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func newProcessor(store *fakeStore, rank *fakeRanker, dlq *fakeDLQ) *Processor {
	return &Processor{
		Log:  zap.NewNop(),
		Repo: store,
		Rank: rank,
		DLQ:  dlq,
	}
}

func settled(won bool) events.BetSettled {
	return events.BetSettled{
		RoundID:     "r-1",
		UserID:      "alice",
		Game:        "slots",
		BetCents:    10000,
		PayoutCents: 19000,
		Won:         won,
		Outcome:     "7-7-7",
		TsUnixMs:    1700000000000,
	}
}

func TestProcessPersistsAndRanks(t *testing.T) {
	store := &fakeStore{}
	rank := &fakeRanker{}
	dlq := &fakeDLQ{}
	p := newProcessor(store, rank, dlq)

	var broadcast *events.BetSettled
	p.OnAfterPersist = func(ev events.BetSettled) { broadcast = &ev }

	b, _ := json.Marshal(settled(true))
	p.Process(context.Background(), []byte("r-1"), b)

	if len(store.inserted) != 1 {
		t.Fatalf("inserted = %d, want 1", len(store.inserted))
	}
	if rank.points["alice"] != 100 {
		t.Fatalf("pontos = %d, want 100", rank.points["alice"])
	}
	if broadcast == nil || broadcast.RoundID != "r-1" {
		t.Fatalf("broadcast não disparado: %+v", broadcast)
	}
	if len(dlq.msgs) != 0 {
		t.Fatalf("dlq inesperada: %d", len(dlq.msgs))
	}
}

func TestProcessLossSkipsRanking(t *testing.T) {
	store := &fakeStore{}
	rank := &fakeRanker{}
	p := newProcessor(store, rank, nil)

	ev := settled(false)
	ev.PayoutCents = 0
	b, _ := json.Marshal(ev)
	p.Process(context.Background(), []byte("r-1"), b)

	if len(store.inserted) != 1 {
		t.Fatalf("inserted = %d, want 1", len(store.inserted))
	}
	if rank.points["alice"] != 0 {
		t.Fatalf("derrota não pontua, got %d", rank.points["alice"])
	}
}

func TestProcessBadPayloadGoesToDLQ(t *testing.T) {
	store := &fakeStore{}
	dlq := &fakeDLQ{}
	p := newProcessor(store, &fakeRanker{}, dlq)

	var stage string
	p.OnError = func(s string) { stage = s }

	p.Process(context.Background(), []byte("k"), []byte("{not json"))

	if len(store.inserted) != 0 {
		t.Fatalf("payload inválido não persiste")
	}
	if len(dlq.msgs) != 1 {
		t.Fatalf("dlq = %d, want 1", len(dlq.msgs))
	}
	if stage != "decode" {
		t.Fatalf("stage = %q, want decode", stage)
	}
}

func TestProcessDBFailureGoesToDLQ(t *testing.T) {
	store := &fakeStore{fail: true}
	dlq := &fakeDLQ{}
	p := newProcessor(store, &fakeRanker{}, dlq)

	b, _ := json.Marshal(settled(true))
	p.Process(context.Background(), []byte("r-1"), b)

	if len(dlq.msgs) != 1 {
		t.Fatalf("dlq = %d, want 1", len(dlq.msgs))
	}
}
