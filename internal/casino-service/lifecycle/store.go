package lifecycle

import "context"

// Store define a persistência que o ciclo de aposta exige. Cada Apply* é uma
// transação: todas as mutações e transferências de fundos da chamada entram
// juntas ou nenhuma entra. A implementação deve revalidar os invariantes de
// fase sob lock (o ciclo valida antes, mas a checagem que vale é a atômica).
type Store interface {
	// House carrega o singleton da casa.
	House(ctx context.Context) (HouseState, error)

	// Round busca uma rodada pelo id. ErrRoundNotFound quando não existe.
	Round(ctx context.Context, roundID string) (Round, error)

	// Stats busca o agregado do usuário. Agregado zerado quando nunca apostou.
	Stats(ctx context.Context, userID string) (UserStats, error)

	// ApplyRequest efetiva um RequestBet: debita o stake do usuário para o
	// vault, insere a rodada em REQUESTED e incrementa os contadores da casa
	// e do usuário. ErrInsufficientFunds sem saldo; ErrRoundState quando o
	// usuário já tem rodada em aberto.
	ApplyRequest(ctx context.Context, round Round) error

	// ApplySettle efetiva um SettleBet: grava a rodada SETTLED, atualiza os
	// agregados e credita o prêmio quando positivo. ErrRoundState quando a
	// rodada não está mais em REQUESTED (bloqueia settle duplo).
	ApplySettle(ctx context.Context, eff SettleEffects) error
}

// Commitment é a informação pública de um compromisso do beacon, consultável
// antes do reveal.
type Commitment struct {
	Ref        string
	CommitSlot uint64
	Digest     string // sha256 do seed, em hex
}

// RandomnessSource é o contrato com o beacon externo de commit-reveal.
// O núcleo não simula a geração de aleatoriedade do beacon; só consome.
type RandomnessSource interface {
	// Commitment consulta os dados do compromisso. Disponível antes do reveal.
	Commitment(ctx context.Context, ref string) (Commitment, error)

	// Reveal devolve o valor de 32 bytes. ErrRevealNotReady enquanto
	// currentSlot não passou do slot de commit.
	Reveal(ctx context.Context, ref string, currentSlot uint64) ([32]byte, error)

	// CurrentSlot devolve o contador de slot do beacon (monotônico).
	CurrentSlot(ctx context.Context) (uint64, error)
}
