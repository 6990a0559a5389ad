package topics

const (
	// Bets (ciclo request -> settle)
	BetRequested = "bet_requested"
	BetSettled   = "bet_settled"

	// DLQs
	BetRequestedDLQ = "bet_requested_dlq"
	BetSettledDLQ   = "bet_settled_dlq"
)
