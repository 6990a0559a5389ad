package repo

import "time"

// roundRow é a rodada como persistida no Postgres. Payload fica em JSON
// etiquetado por jogo (coluna jsonb).
type roundRow struct {
	ID            string
	UserID        string
	Game          string
	BetCents      int64
	CommitmentRef string
	CommitSlot    int64
	Phase         string
	Payload       []byte
	PayoutCents   int64
	IsComplete    bool
	CreatedAt     time.Time
	SettledAt     *time.Time
}
