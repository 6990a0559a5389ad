package lifecycle

import "errors"

// Taxonomia de erros do ciclo de aposta. Qualquer erro aborta a operação
// inteira: nenhuma mutação de estado ou transferência parcial é mantida.
var (
	ErrHouseInactive     = errors.New("house is not active")
	ErrInvalidBetAmount  = errors.New("bet amount out of configured bounds")
	ErrInvalidBetShape   = errors.New("bet numbers do not match bet type")
	ErrUnsupportedGame   = errors.New("game type has no settlement path")
	ErrCommitment        = errors.New("commitment validation failed")
	ErrRoundState        = errors.New("round not in expected phase")
	ErrRoundNotFound     = errors.New("round not found")
	ErrCorruptPayload    = errors.New("unrecognized game payload")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrVaultInsufficient = errors.New("house vault cannot cover payout")

	// Retornado pelo beacon enquanto o slot atual não passou do commit.
	ErrRevealNotReady = errors.New("reveal not ready")
)
