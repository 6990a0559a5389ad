package lifecycle

import (
	"errors"
	"testing"

	"github.com/radieske/casino-platform-poc/internal/casino-service/engine"
)

func TestPayloadRoundTrip(t *testing.T) {
	win := uint8(17)
	p := Payload{
		Game: engine.Roulette,
		Roulette: &RoulettePayload{
			Bet:           engine.Straight,
			Numbers:       []uint8{17},
			WinningNumber: &win,
		},
	}
	raw, err := p.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodePayload(raw, engine.Roulette)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Roulette == nil || got.Roulette.Bet != engine.Straight || *got.Roulette.WinningNumber != 17 {
		t.Fatalf("payload = %+v", got)
	}
}

func TestDecodePayloadCorrupt(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
		game engine.Game
	}{
		{"json inválido", []byte("{"), engine.Slots},
		{"etiqueta divergente", []byte(`{"game":"slots"}`), engine.Roulette},
		{"etiqueta desconhecida", []byte(`{"game":"poker"}`), engine.Game("poker")},
		{"roleta sem descritor", []byte(`{"game":"roulette"}`), engine.Roulette},
		{"roleta com aposta inválida", []byte(`{"game":"roulette","roulette":{"bet":"banana"}}`), engine.Roulette},
		{"slots com variante errada", []byte(`{"game":"slots","roulette":{"bet":"red"}}`), engine.Slots},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodePayload(tc.raw, tc.game); !errors.Is(err, ErrCorruptPayload) {
				t.Fatalf("err = %v, want ErrCorruptPayload", err)
			}
		})
	}
}
