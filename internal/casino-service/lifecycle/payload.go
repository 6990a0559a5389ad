package lifecycle

import (
	"encoding/json"

	"github.com/radieske/casino-platform-poc/internal/casino-service/engine"
)

// Payload é a variante etiquetada que carrega os dados específicos de cada
// jogo dentro da rodada: o descritor da aposta na fase REQUESTED e o resultado
// após o settle (que sobrescreve o descritor). A etiqueta Game precisa bater
// com o jogo da rodada; divergência é tratada como payload corrompido.
type Payload struct {
	Game     engine.Game      `json:"game"`
	Slots    *SlotsPayload    `json:"slots,omitempty"`
	Roulette *RoulettePayload `json:"roulette,omitempty"`
}

// SlotsPayload fica vazio na fase REQUESTED e recebe as lanes no settle.
type SlotsPayload struct {
	Reels *[3]uint8 `json:"reels,omitempty"`
}

// RoulettePayload guarda o descritor da aposta desde o request; o número
// vencedor é preenchido no settle.
type RoulettePayload struct {
	Bet           engine.RouletteBet `json:"bet"`
	Numbers       []uint8            `json:"numbers,omitempty"`
	WinningNumber *uint8             `json:"winning_number,omitempty"`
}

// Encode serializa o payload para persistência.
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// DecodePayload desserializa e valida o payload contra o jogo da rodada.
// Etiqueta divergente ou variante ausente -> ErrCorruptPayload.
func DecodePayload(raw []byte, game engine.Game) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, ErrCorruptPayload
	}
	if p.Game != game {
		return Payload{}, ErrCorruptPayload
	}
	switch game {
	case engine.Slots:
		if p.Roulette != nil {
			return Payload{}, ErrCorruptPayload
		}
	case engine.Roulette:
		if p.Roulette == nil || !engine.ValidRouletteBet(p.Roulette.Bet) {
			return Payload{}, ErrCorruptPayload
		}
	default:
		return Payload{}, ErrCorruptPayload
	}
	return p, nil
}
