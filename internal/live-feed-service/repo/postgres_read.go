package repo

import (
	"context"
	"database/sql"

	"github.com/radieske/casino-platform-poc/internal/live-feed-service/dto"
)

type ReadRepo struct {
	DB *sql.DB
}

// ListRecent retorna as últimas liquidações, mais recentes primeiro
func (r *ReadRepo) ListRecent(ctx context.Context, limit int) ([]dto.Settlement, error) {
	const q = `
		SELECT round_id, user_id, game, bet_cents, payout_cents, won, outcome,
		       to_char(settled_at, 'YYYY-MM-DD"T"HH24:MI:SSZ')
		FROM game_history
		ORDER BY settled_at DESC
		LIMIT $1;
	`
	return r.scan(r.DB.QueryContext(ctx, q, limit))
}

// ListRecentByGame retorna as últimas liquidações de um jogo
func (r *ReadRepo) ListRecentByGame(ctx context.Context, game string, limit int) ([]dto.Settlement, error) {
	const q = `
		SELECT round_id, user_id, game, bet_cents, payout_cents, won, outcome,
		       to_char(settled_at, 'YYYY-MM-DD"T"HH24:MI:SSZ')
		FROM game_history
		WHERE game = $1
		ORDER BY settled_at DESC
		LIMIT $2;
	`
	return r.scan(r.DB.QueryContext(ctx, q, game, limit))
}

func (r *ReadRepo) scan(rows *sql.Rows, err error) ([]dto.Settlement, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []dto.Settlement
	for rows.Next() {
		var s dto.Settlement
		if err := rows.Scan(&s.RoundID, &s.UserID, &s.Game, &s.BetCents, &s.PayoutCents, &s.Won, &s.Outcome, &s.SettledAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
