package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/casino-platform-poc/pkg/contracts/events"
)

// HistoryStore persiste rodadas liquidadas
type HistoryStore interface {
	InsertSettlement(ctx context.Context, e events.BetSettled) error
}

// Ranker acumula pontos de lealdade no ranking
type Ranker interface {
	Add(ctx context.Context, userID string, points int64) error
}

// messageReader abstrai o *kafka.Reader para os testes
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// dlqWriter abstrai o writer de DLQ
type dlqWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Processor consome eventos bet_settled, persiste o histórico, atualiza o
// ranking de lealdade e repassa para o Pub/Sub do feed ao vivo.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Processor struct {
	Log    *zap.Logger
	Reader messageReader
	Repo   HistoryStore
	Rank   Ranker
	DLQ    dlqWriter // opcional

	OnConsumed func()       // métricas (counter++)
	OnPersist  func()       // métricas
	OnError    func(string) // métricas por fase

	// Chamado após persistência com sucesso (broadcast para o feed)
	OnAfterPersist func(ev events.BetSettled)
}

// Run inicia o loop principal de consumo e processamento das mensagens Kafka
func (p *Processor) Run(ctx context.Context) error {
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed() // callback de métrica: mensagem consumida
		}

		p.Process(ctx, m.Key, m.Value)
	}
}

// Process trata uma mensagem já lida. Falhas de decode ou persistência vão
// para a DLQ em vez de travar a partição.
func (p *Processor) Process(ctx context.Context, key, value []byte) {
	var ev events.BetSettled
	if err := json.Unmarshal(value, &ev); err != nil {
		p.Log.Warn("invalid message", zap.Error(err))
		if p.OnError != nil {
			p.OnError("decode")
		}
		p.toDLQ(ctx, key, value)
		return
	}

	// Persiste a rodada liquidada no histórico
	if err := p.Repo.InsertSettlement(ctx, ev); err != nil {
		p.Log.Warn("db insert failed", zap.Error(err), zap.String("round_id", ev.RoundID))
		if p.OnError != nil {
			p.OnError("db_insert")
		}
		p.toDLQ(ctx, key, value)
		return
	}

	// Pontos de lealdade só em vitória, 1 ponto por real apostado
	if ev.Won {
		if err := p.Rank.Add(ctx, ev.UserID, ev.BetCents/100); err != nil {
			p.Log.Warn("leaderboard update failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("leaderboard")
			}
			// histórico já está gravado; não vai pra DLQ
		}
	}

	if p.OnPersist != nil {
		p.OnPersist() // callback de métrica: persistência concluída
	}
	if p.OnAfterPersist != nil {
		p.OnAfterPersist(ev)
	}
}

func (p *Processor) toDLQ(ctx context.Context, key, value []byte) {
	if p.DLQ == nil {
		return
	}
	if err := p.DLQ.WriteMessages(ctx, kafka.Message{Key: key, Value: value, Time: time.Now()}); err != nil {
		p.Log.Error("dlq write failed", zap.Error(err))
		if p.OnError != nil {
			p.OnError("dlq")
		}
	}
}
