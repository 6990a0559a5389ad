package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/casino-platform-poc/pkg/contracts/events"
)

// KafkaPublisher publica os eventos do ciclo de aposta em tópicos separados.
type KafkaPublisher struct {
	Requested *kafka.Writer
	Settled   *kafka.Writer
}

func NewKafkaPublisher(requested, settled *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Requested: requested, Settled: settled}
}

func (p *KafkaPublisher) PublishBetRequested(ctx context.Context, e events.BetRequested) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.Requested.WriteMessages(ctx, kafka.Message{Key: []byte(e.RoundID), Value: b})
}

func (p *KafkaPublisher) PublishBetSettled(ctx context.Context, e events.BetSettled) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.Settled.WriteMessages(ctx, kafka.Message{Key: []byte(e.RoundID), Value: b})
}
