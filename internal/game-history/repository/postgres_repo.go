package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/radieske/casino-platform-poc/pkg/contracts/events"
)

// PostgresRepo persiste o histórico de rodadas liquidadas
// DB: conexão com o banco de dados
type PostgresRepo struct {
	DB *sql.DB
}

// NewPostgresRepo retorna uma instância de repositório Postgres
func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// InsertSettlement grava uma rodada liquidada no histórico
// ON CONFLICT protege contra reentrega do Kafka (at-least-once)
func (r *PostgresRepo) InsertSettlement(ctx context.Context, e events.BetSettled) error {
	const q = `
		INSERT INTO game_history
		  (round_id, user_id, game, bet_cents, payout_cents, won, outcome, settled_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (round_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, q,
		e.RoundID, e.UserID, e.Game, e.BetCents, e.PayoutCents, e.Won, e.Outcome,
		time.UnixMilli(e.TsUnixMs).UTC(),
	)
	return err
}
