package events

// Evento publicado no tópico "bet_requested" quando a aposta entra em escrow.
type BetRequested struct {
	RoundID       string `json:"round_id"`
	UserID        string `json:"user_id"`
	Game          string `json:"game"` // "slots" | "roulette"
	BetCents      int64  `json:"bet_cents"`
	CommitmentRef string `json:"commitment_ref"`
	CommitSlot    uint64 `json:"commit_slot"`
	TsUnixMs      int64  `json:"ts_unix_ms"`
}
