package engine

import "testing"

func TestValidRouletteNumbersExactCounts(t *testing.T) {
	cases := []struct {
		bet  RouletteBet
		want int
	}{
		{Straight, 1}, {Split, 2}, {Street, 3}, {Corner, 4},
		{Line, 6}, {Column, 12}, {Dozen, 12},
	}
	for _, tc := range cases {
		t.Run(string(tc.bet), func(t *testing.T) {
			nums := make([]uint8, tc.want)
			for i := range nums {
				nums[i] = uint8(i + 1)
			}
			if !ValidRouletteNumbers(tc.bet, nums) {
				t.Fatalf("%d números deveriam ser aceitos", tc.want)
			}
			// um a menos e um a mais são rejeitados
			if ValidRouletteNumbers(tc.bet, nums[:tc.want-1]) {
				t.Fatalf("%d números deveriam ser rejeitados", tc.want-1)
			}
			if ValidRouletteNumbers(tc.bet, append(append([]uint8{}, nums...), 20)) {
				t.Fatalf("%d números deveriam ser rejeitados", tc.want+1)
			}
		})
	}
}

func TestValidRouletteNumbersCategoriesTakeNone(t *testing.T) {
	for _, bet := range []RouletteBet{Red, Black, Even, Odd, Low, High} {
		if !ValidRouletteNumbers(bet, nil) {
			t.Errorf("%s sem números deveria ser aceito", bet)
		}
		if ValidRouletteNumbers(bet, []uint8{5}) {
			t.Errorf("%s com números deveria ser rejeitado", bet)
		}
	}
}

func TestValidRouletteNumbersRange(t *testing.T) {
	if ValidRouletteNumbers(Straight, []uint8{37}) {
		t.Fatal("número 37 deveria ser rejeitado")
	}
	if !ValidRouletteNumbers(Straight, []uint8{36}) {
		t.Fatal("número 36 deveria ser aceito")
	}
	if ValidRouletteNumbers(RouletteBet("banana"), []uint8{1}) {
		t.Fatal("tipo de aposta desconhecido deveria ser rejeitado")
	}
}

func TestRouletteCoversCanonicalSets(t *testing.T) {
	reds := []uint8{1, 3, 5, 7, 9, 12, 14, 16, 18, 19, 21, 23, 25, 27, 30, 32, 34, 36}
	inRed := make(map[uint8]bool, len(reds))
	for _, n := range reds {
		inRed[n] = true
	}

	for n := uint8(0); n <= 36; n++ {
		if got := RouletteCovers(Red, nil, n); got != inRed[n] {
			t.Errorf("red cobre %d = %v, want %v", n, got, inRed[n])
		}
		wantBlack := n != 0 && !inRed[n]
		if got := RouletteCovers(Black, nil, n); got != wantBlack {
			t.Errorf("black cobre %d = %v, want %v", n, got, wantBlack)
		}
		wantEven := n != 0 && n%2 == 0
		if got := RouletteCovers(Even, nil, n); got != wantEven {
			t.Errorf("even cobre %d = %v, want %v", n, got, wantEven)
		}
		if got := RouletteCovers(Odd, nil, n); got != (n%2 == 1) {
			t.Errorf("odd cobre %d = %v", n, got)
		}
		if got := RouletteCovers(Low, nil, n); got != (n >= 1 && n <= 18) {
			t.Errorf("low cobre %d = %v", n, got)
		}
		if got := RouletteCovers(High, nil, n); got != (n >= 19) {
			t.Errorf("high cobre %d = %v", n, got)
		}
	}

	// straight cobre exatamente o próprio número
	for n := uint8(0); n <= 36; n++ {
		if got := RouletteCovers(Straight, []uint8{17}, n); got != (n == 17) {
			t.Errorf("straight 17 cobre %d = %v", n, got)
		}
	}
}
