package dto

// RequestBetRequest é o payload do POST /casino/bets.
// Para roleta, betType e numbers descrevem a aposta; para slots ficam vazios.
type RequestBetRequest struct {
	UserID        string  `json:"userId"`
	Game          string  `json:"game"` // "slots" | "roulette"
	BetCents      int64   `json:"bet_cents"`
	CommitmentRef string  `json:"commitment_ref"`
	BetType       string  `json:"bet_type,omitempty"`
	Numbers       []uint8 `json:"numbers,omitempty"`
}

// SettleBetRequest é o payload do POST /casino/bets/{id}/settle.
type SettleBetRequest struct {
	CommitmentRef string `json:"commitment_ref"`
}
