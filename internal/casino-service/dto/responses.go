package dto

// RoundResponse espelha a rodada para a API pública.
type RoundResponse struct {
	RoundID       string  `json:"roundId"`
	UserID        string  `json:"userId"`
	Game          string  `json:"game"`
	BetCents      int64   `json:"bet_cents"`
	CommitmentRef string  `json:"commitment_ref"`
	CommitSlot    uint64  `json:"commit_slot"`
	Phase         string  `json:"phase"` // REQUESTED | SETTLED
	PayoutCents   int64   `json:"payout_cents"`
	Reels         []uint8 `json:"reels,omitempty"`
	BetType       string  `json:"bet_type,omitempty"`
	Numbers       []uint8 `json:"numbers,omitempty"`
	WinningNumber *uint8  `json:"winning_number,omitempty"`
}

// HouseResponse expõe o agregado da casa.
type HouseResponse struct {
	TotalGamesPlayed uint64 `json:"total_games_played"`
	TotalVolumeCents int64  `json:"total_volume_cents"`
	TotalPayoutCents int64  `json:"total_payout_cents"`
	IsActive         bool   `json:"is_active"`
	SlotsRTPBps      uint16 `json:"slots_rtp_bps"`
	RouletteRTPBps   uint16 `json:"roulette_rtp_bps"`
	PlatformFeeBps   uint16 `json:"platform_fee_bps"`
}

// StatsResponse expõe o agregado do usuário.
type StatsResponse struct {
	UserID         string `json:"userId"`
	TotalBetCents  int64  `json:"total_bet_cents"`
	TotalWonCents  int64  `json:"total_won_cents"`
	TotalLostCents int64  `json:"total_lost_cents"`
	LoyaltyPoints  int64  `json:"loyalty_points"`
	GamesPlayed    int64  `json:"games_played"`
}

// LeaderboardEntry é uma posição do ranking de pontos de lealdade.
type LeaderboardEntry struct {
	UserID string  `json:"userId"`
	Score  float64 `json:"score"`
}
