package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/radieske/casino-platform-poc/internal/casino-service/engine"
	"github.com/radieske/casino-platform-poc/internal/casino-service/lifecycle"
)

// Postgres implementa lifecycle.Store. Cada Apply* roda numa única transação
// com lock pessimista (FOR UPDATE) nas linhas de carteira e de rodada: ou toda
// a mutação + transferência entra, ou nada entra. As tabelas de carteira são
// as mesmas do wallet-service (banco compartilhado), o que é o que torna o
// débito/crédito atômico com a atualização de estado do cassino.
type Postgres struct {
	db    *sql.DB
	edge  lifecycle.HouseEdgeConfig
	vault string // user_id da carteira do vault da casa
}

func NewPostgres(db *sql.DB, edge lifecycle.HouseEdgeConfig, vault string) *Postgres {
	return &Postgres{db: db, edge: edge, vault: vault}
}

// EnsureHouse cria o singleton da casa (e a carteira do vault) se ainda não
// existirem. Idempotente; chamado na subida do serviço.
func (p *Postgres) EnsureHouse(ctx context.Context, authority string) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO house_state (id, authority, vault_user_id, total_games_played, total_volume_cents, total_payout_cents, is_active)
		VALUES (1, $1, $2, 0, 0, 0, TRUE)
		ON CONFLICT (id) DO NOTHING`, authority, p.vault); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO wallets (id, user_id, balance_cents, version)
		VALUES ($1, $1, 0, 1)
		ON CONFLICT (user_id) DO NOTHING`, p.vault); err != nil {
		return err
	}
	return tx.Commit()
}

// House carrega o singleton; o HouseEdgeConfig vem da configuração de
// inicialização, não do banco (sem mutador em runtime).
func (p *Postgres) House(ctx context.Context) (lifecycle.HouseState, error) {
	var h lifecycle.HouseState
	err := p.db.QueryRowContext(ctx, `
		SELECT authority, vault_user_id, total_games_played, total_volume_cents, total_payout_cents, is_active
		FROM house_state WHERE id=1`).
		Scan(&h.Authority, &h.VaultID, &h.TotalGamesPlayed, &h.TotalVolumeCents, &h.TotalPayoutCents, &h.IsActive)
	if err != nil {
		return lifecycle.HouseState{}, fmt.Errorf("load house state: %w", err)
	}
	h.Edge = p.edge
	return h, nil
}

// Round busca uma rodada pelo id.
func (p *Postgres) Round(ctx context.Context, roundID string) (lifecycle.Round, error) {
	var row roundRow
	err := p.db.QueryRowContext(ctx, `
		SELECT id, user_id, game, bet_cents, commitment_ref, commit_slot, phase, payload, payout_cents, is_complete, created_at, settled_at
		FROM game_rounds WHERE id=$1`, roundID).
		Scan(&row.ID, &row.UserID, &row.Game, &row.BetCents, &row.CommitmentRef, &row.CommitSlot,
			&row.Phase, &row.Payload, &row.PayoutCents, &row.IsComplete, &row.CreatedAt, &row.SettledAt)
	if err == sql.ErrNoRows {
		return lifecycle.Round{}, lifecycle.ErrRoundNotFound
	}
	if err != nil {
		return lifecycle.Round{}, err
	}
	return toRound(row)
}

// Stats busca o agregado do usuário; agregado zerado quando nunca apostou.
func (p *Postgres) Stats(ctx context.Context, userID string) (lifecycle.UserStats, error) {
	st := lifecycle.UserStats{UserID: userID}
	err := p.db.QueryRowContext(ctx, `
		SELECT total_bet_cents, total_won_cents, total_lost_cents, loyalty_points, games_played
		FROM user_stats WHERE user_id=$1`, userID).
		Scan(&st.TotalBetCents, &st.TotalWonCents, &st.TotalLostCents, &st.LoyaltyPoints, &st.GamesPlayed)
	if err == sql.ErrNoRows {
		return st, nil
	}
	if err != nil {
		return lifecycle.UserStats{}, err
	}
	return st, nil
}

// ApplyRequest efetiva o escrow: débito usuário -> vault, rodada REQUESTED,
// contadores da casa e do usuário, tudo na mesma transação.
func (p *Postgres) ApplyRequest(ctx context.Context, r lifecycle.Round) error {
	payload, err := r.Payload.Encode()
	if err != nil {
		return err
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var balance int64
	err = tx.QueryRowContext(ctx,
		`SELECT balance_cents FROM wallets WHERE user_id=$1 FOR UPDATE`, r.UserID).Scan(&balance)
	if err == sql.ErrNoRows {
		return lifecycle.ErrInsufficientFunds
	}
	if err != nil {
		return err
	}

	// uma rodada em aberto por usuário. A checagem só roda depois do lock da
	// carteira, que serializa os requests concorrentes do mesmo usuário; antes
	// do lock ela enxergaria um snapshot sem o insert de quem chegou primeiro.
	var open string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM game_rounds WHERE user_id=$1 AND phase='REQUESTED' FOR UPDATE`, r.UserID).Scan(&open)
	if err == nil {
		return lifecycle.ErrRoundState
	}
	if err != sql.ErrNoRows {
		return err
	}

	if balance < r.BetCents {
		return lifecycle.ErrInsufficientFunds
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE wallets SET balance_cents = balance_cents - $1, version = version + 1 WHERE user_id=$2`,
		r.BetCents, r.UserID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE wallets SET balance_cents = balance_cents + $1, version = version + 1 WHERE user_id=$2`,
		r.BetCents, p.vault); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO wallet_ledger (wallet_id, operation_type, amount_cents, description)
		SELECT id, 'ESCROW', $1, $2 FROM wallets WHERE user_id=$3`,
		r.BetCents, "bet:"+r.ID, r.UserID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO game_rounds (id, user_id, game, bet_cents, commitment_ref, commit_slot, phase, payload, payout_cents, is_complete, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,'REQUESTED',$7,0,FALSE,$8)`,
		r.ID, r.UserID, string(r.Game), r.BetCents, r.CommitmentRef, int64(r.CommitSlot), payload, r.CreatedAt); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE house_state SET total_games_played = total_games_played + 1,
		                       total_volume_cents = total_volume_cents + $1
		WHERE id=1`, r.BetCents); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO user_stats (user_id, total_bet_cents, total_won_cents, total_lost_cents, loyalty_points, games_played)
		VALUES ($1, $2, 0, 0, 0, 1)
		ON CONFLICT (user_id) DO UPDATE SET
		  total_bet_cents = user_stats.total_bet_cents + EXCLUDED.total_bet_cents,
		  games_played    = user_stats.games_played + 1`,
		r.UserID, r.BetCents); err != nil {
		return err
	}

	return tx.Commit()
}

// ApplySettle efetiva a transição REQUESTED -> SETTLED. A checagem de fase
// vale sob FOR UPDATE: settle duplo falha aqui mesmo em chamadas concorrentes.
func (p *Postgres) ApplySettle(ctx context.Context, eff lifecycle.SettleEffects) error {
	r := eff.Round
	payload, err := r.Payload.Encode()
	if err != nil {
		return err
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var phase string
	err = tx.QueryRowContext(ctx,
		`SELECT phase FROM game_rounds WHERE id=$1 FOR UPDATE`, r.ID).Scan(&phase)
	if err == sql.ErrNoRows {
		return lifecycle.ErrRoundNotFound
	}
	if err != nil {
		return err
	}
	if phase != string(lifecycle.PhaseRequested) {
		return lifecycle.ErrRoundState
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE game_rounds SET phase='SETTLED', payload=$1, payout_cents=$2, is_complete=TRUE, settled_at=$3
		WHERE id=$4`, payload, r.PayoutCents, r.SettledAt, r.ID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE house_state SET total_payout_cents = total_payout_cents + $1 WHERE id=1`,
		eff.WonCents); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE user_stats SET
		  total_won_cents  = total_won_cents + $1,
		  total_lost_cents = total_lost_cents + $2,
		  loyalty_points   = loyalty_points + $3
		WHERE user_id=$4`,
		eff.WonCents, eff.LostCents, eff.LoyaltyDelta, r.UserID); err != nil {
		return err
	}

	if eff.WonCents > 0 {
		var vaultBalance int64
		if err = tx.QueryRowContext(ctx,
			`SELECT balance_cents FROM wallets WHERE user_id=$1 FOR UPDATE`, p.vault).Scan(&vaultBalance); err != nil {
			return err
		}
		if vaultBalance < eff.WonCents {
			return lifecycle.ErrVaultInsufficient
		}
		if _, err = tx.ExecContext(ctx,
			`UPDATE wallets SET balance_cents = balance_cents - $1, version = version + 1 WHERE user_id=$2`,
			eff.WonCents, p.vault); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`UPDATE wallets SET balance_cents = balance_cents + $1, version = version + 1 WHERE user_id=$2`,
			eff.WonCents, r.UserID); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO wallet_ledger (wallet_id, operation_type, amount_cents, description)
			SELECT id, 'PAYOUT', $1, $2 FROM wallets WHERE user_id=$3`,
			eff.WonCents, "payout:"+r.ID, r.UserID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// toRound converte a linha persistida, validando o payload etiquetado.
func toRound(row roundRow) (lifecycle.Round, error) {
	game := engine.Game(row.Game)
	payload, err := lifecycle.DecodePayload(row.Payload, game)
	if err != nil {
		return lifecycle.Round{}, err
	}
	r := lifecycle.Round{
		ID:            row.ID,
		UserID:        row.UserID,
		Game:          game,
		BetCents:      row.BetCents,
		CommitmentRef: row.CommitmentRef,
		CommitSlot:    uint64(row.CommitSlot),
		Phase:         lifecycle.Phase(row.Phase),
		Payload:       payload,
		PayoutCents:   row.PayoutCents,
		IsComplete:    row.IsComplete,
		CreatedAt:     row.CreatedAt,
	}
	if row.SettledAt != nil {
		r.SettledAt = *row.SettledAt
	}
	return r, nil
}
