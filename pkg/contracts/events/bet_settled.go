package events

// Evento publicado no tópico "bet_settled" após o settle de uma rodada.
// Outcome carrega o resultado bruto por jogo (reels ou número vencedor).
type BetSettled struct {
	RoundID     string `json:"round_id"`
	UserID      string `json:"user_id"`
	Game        string `json:"game"`
	BetCents    int64  `json:"bet_cents"`
	PayoutCents int64  `json:"payout_cents"` // já com o corte de RTP aplicado
	Won         bool   `json:"won"`
	Outcome     string `json:"outcome"` // ex: "7-7-7" ou "17"
	TsUnixMs    int64  `json:"ts_unix_ms"`
}
