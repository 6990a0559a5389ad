package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// Game: opcional; vazio inscreve no feed completo
type ClientMsg struct {
	Type string `json:"type"` // subscribe | unsubscribe | ping
	Game string `json:"game"` // "slots" | "roulette" | "" (todos)
}

// SettlementUpdate representa uma liquidação enviada para clientes WebSocket
type SettlementUpdate struct {
	Game    string      `json:"game"`
	Payload interface{} `json:"payload"`
}
