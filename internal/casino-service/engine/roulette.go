package engine

// RouletteBet identifica o tipo de aposta na roleta.
type RouletteBet string

const (
	Straight RouletteBet = "straight" // 1 número
	Split    RouletteBet = "split"    // 2 números adjacentes
	Street   RouletteBet = "street"   // 3 números em linha
	Corner   RouletteBet = "corner"   // 4 números em quadrado
	Line     RouletteBet = "line"     // 6 números em duas linhas
	Column   RouletteBet = "column"   // 12 números de uma coluna
	Dozen    RouletteBet = "dozen"    // 12 números (1-12, 13-24, 25-36)
	Red      RouletteBet = "red"
	Black    RouletteBet = "black"
	Even     RouletteBet = "even"
	Odd      RouletteBet = "odd"
	Low      RouletteBet = "low"  // 1-18
	High     RouletteBet = "high" // 19-36
)

// requiredNumbers devolve quantos números explícitos cada tipo de aposta exige.
// Apostas de categoria (red/black/even/odd/low/high) não levam números.
var requiredNumbers = map[RouletteBet]int{
	Straight: 1,
	Split:    2,
	Street:   3,
	Corner:   4,
	Line:     6,
	Column:   12,
	Dozen:    12,
	Red:      0,
	Black:    0,
	Even:     0,
	Odd:      0,
	Low:      0,
	High:     0,
}

// ValidRouletteBet informa se o tipo de aposta é reconhecido.
func ValidRouletteBet(b RouletteBet) bool {
	_, ok := requiredNumbers[b]
	return ok
}

// ValidRouletteNumbers valida o formato dos números contra o tipo de aposta:
// a quantidade deve bater exatamente e todos os números devem estar em [0,36].
func ValidRouletteNumbers(b RouletteBet, numbers []uint8) bool {
	want, ok := requiredNumbers[b]
	if !ok || len(numbers) != want {
		return false
	}
	for _, n := range numbers {
		if n > 36 {
			return false
		}
	}
	return true
}

// RouletteCovers informa se o número vencedor está coberto pela aposta.
// Para apostas com números explícitos basta a pertinência; para categorias
// aplica a tabela canônica (zero nunca é coberto por categoria).
func RouletteCovers(b RouletteBet, numbers []uint8, winning uint8) bool {
	switch b {
	case Straight, Split, Street, Corner, Line, Column, Dozen:
		for _, n := range numbers {
			if n == winning {
				return true
			}
		}
		return false
	case Red:
		return rouletteRed[winning]
	case Black:
		return winning != 0 && !rouletteRed[winning]
	case Even:
		return winning != 0 && winning%2 == 0
	case Odd:
		return winning%2 == 1
	case Low:
		return winning >= 1 && winning <= 18
	case High:
		return winning >= 19 && winning <= 36
	}
	return false
}
