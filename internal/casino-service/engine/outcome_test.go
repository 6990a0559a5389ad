package engine

import "testing"

func revealedFrom(bytes ...byte) Revealed {
	var r Revealed
	copy(r[:], bytes)
	return r
}

func TestDeriveSlotsUsesFirstThreeBytes(t *testing.T) {
	cases := []struct {
		name string
		in   Revealed
		want [3]uint8
	}{
		{"zeros", revealedFrom(0, 0, 0), [3]uint8{0, 0, 0}},
		{"mod10", revealedFrom(17, 29, 255), [3]uint8{7, 9, 5}},
		{"triple seven", revealedFrom(7, 107, 207), [3]uint8{7, 7, 7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveSlots(tc.in)
			if got.Reels != tc.want {
				t.Fatalf("reels = %v, want %v", got.Reels, tc.want)
			}
		})
	}
}

func TestDeriveSlotsRange(t *testing.T) {
	// toda lane fica em [0,9] para qualquer byte
	for b := 0; b < 256; b++ {
		out := DeriveSlots(revealedFrom(byte(b), byte(b), byte(b)))
		for i, v := range out.Reels {
			if v > 9 {
				t.Fatalf("byte %d: lane %d = %d fora de [0,9]", b, i, v)
			}
		}
	}
}

func TestDeriveRoulette(t *testing.T) {
	cases := []struct {
		in   byte
		want uint8
	}{
		{0, 0}, {36, 36}, {37, 0}, {54, 17}, {255, 33},
	}
	for _, tc := range cases {
		got := DeriveRoulette(revealedFrom(tc.in))
		if got.WinningNumber != tc.want {
			t.Errorf("byte %d: winning = %d, want %d", tc.in, got.WinningNumber, tc.want)
		}
	}
}

func TestDeriveAviatorFixedPoint(t *testing.T) {
	// u32 little-endian = 0 -> 1.00x
	if got := DeriveAviator(revealedFrom(0, 0, 0, 0)); got.CrashHundredths != 100 {
		t.Fatalf("crash = %d, want 100", got.CrashHundredths)
	}
	// u32 = 9899 -> teto de 99.99x
	if got := DeriveAviator(revealedFrom(0xAB, 0x26, 0, 0)); got.CrashHundredths != 9999 {
		t.Fatalf("crash = %d, want 9999", got.CrashHundredths)
	}
	// u32 = 9900 -> volta para 1.00x
	if got := DeriveAviator(revealedFrom(0xAC, 0x26, 0, 0)); got.CrashHundredths != 100 {
		t.Fatalf("crash = %d, want 100", got.CrashHundredths)
	}
}

func TestDeriveBlackjackCards(t *testing.T) {
	out := DeriveBlackjack(revealedFrom(0, 12, 13, 255))
	want := [4]uint8{1, 13, 1, 9} // 255 % 13 = 8 -> carta 9
	if out.Cards != want {
		t.Fatalf("cards = %v, want %v", out.Cards, want)
	}
	for i, c := range out.Cards {
		if c < 1 || c > 13 {
			t.Fatalf("carta %d = %d fora de [1,13]", i, c)
		}
	}
}

func TestDerivationIsDeterministic(t *testing.T) {
	r := revealedFrom(201, 33, 7, 99, 250)
	if DeriveSlots(r) != DeriveSlots(r) {
		t.Fatal("slots: mesma entrada, resultados diferentes")
	}
	if DeriveRoulette(r) != DeriveRoulette(r) {
		t.Fatal("roulette: mesma entrada, resultados diferentes")
	}
}
