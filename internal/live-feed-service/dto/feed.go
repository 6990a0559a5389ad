package dto

// Settlement é uma rodada liquidada exposta pela API do feed
type Settlement struct {
	RoundID     string `json:"round_id"`
	UserID      string `json:"user_id"`
	Game        string `json:"game"`
	BetCents    int64  `json:"bet_cents"`
	PayoutCents int64  `json:"payout_cents"`
	Won         bool   `json:"won"`
	Outcome     string `json:"outcome"`
	SettledAt   string `json:"settled_at"`
}
