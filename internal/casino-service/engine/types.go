package engine

// Game identifica o tipo de jogo suportado pela casa.
type Game string

const (
	Slots     Game = "slots"
	Roulette  Game = "roulette"
	Aviator   Game = "aviator"   // derivação definida, settle ainda não ligado ao ciclo
	Blackjack Game = "blackjack" // idem
)

// Valid informa se o tipo de jogo é reconhecido.
func (g Game) Valid() bool {
	switch g {
	case Slots, Roulette, Aviator, Blackjack:
		return true
	}
	return false
}

// Revealed é o valor de 32 bytes revelado pelo beacon de aleatoriedade.
type Revealed [32]byte

// SlotsOutcome são as três lanes do caça-níquel, cada uma com símbolo em [0,9].
type SlotsOutcome struct {
	Reels [3]uint8 `json:"reels"`
}

// RouletteOutcome é o número vencedor da roleta europeia, em [0,36].
type RouletteOutcome struct {
	WinningNumber uint8 `json:"winning_number"`
}

// AviatorOutcome é o multiplicador de crash em centésimos (ponto fixo).
// 100 = 1.00x, 9999 = 99.99x.
type AviatorOutcome struct {
	CrashHundredths uint32 `json:"crash_hundredths"`
}

// BlackjackOutcome são as quatro cartas iniciais (valores 1-13).
type BlackjackOutcome struct {
	Cards [4]uint8 `json:"cards"`
}
