package dto

// WalletResponse representa a carteira e saldo do usuário
type WalletResponse struct {
	UserID       string `json:"userId"`
	WalletID     string `json:"walletId"`
	BalanceCents int64  `json:"balance_cents"`
}

// DepositRequest é o payload do POST /wallet/deposit
type DepositRequest struct {
	UserID      string `json:"userId"`
	AmountCents int64  `json:"amount_cents"`
	ExternalRef string `json:"externalRef"`
}

// LedgerEntry é um lançamento do extrato da carteira
type LedgerEntry struct {
	OperationType string `json:"operation_type"` // CREDIT | ESCROW | PAYOUT
	AmountCents   int64  `json:"amount_cents"`
	Description   string `json:"description"`
	RelatedRound  string `json:"related_round_id,omitempty"`
	CreatedAt     string `json:"created_at"`
}
