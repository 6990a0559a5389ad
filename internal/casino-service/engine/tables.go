package engine

// Paytable do slots: símbolo -> multiplicador por quantidade de lanes iguais.
// Coluna 0 nunca é usada (menos de 2 lanes iguais não paga), coluna 1 = 2-de-3,
// coluna 2 = 3-de-3. Símbolo 0 nunca paga.
var slotsPaytable = [10][3]int64{
	{0, 0, 0},        // símbolo 0
	{2, 5, 10},       // símbolo 1
	{3, 8, 15},       // símbolo 2
	{5, 12, 25},      // símbolo 3
	{8, 20, 50},      // símbolo 4
	{12, 30, 75},     // símbolo 5
	{20, 50, 100},    // símbolo 6
	{30, 75, 200},    // símbolo 7
	{50, 125, 500},   // símbolo 8
	{100, 250, 1000}, // símbolo 9
}

// Razões de pagamento da roleta (lucro sobre a aposta, sem devolução de stake).
var rouletteRatios = map[RouletteBet]int64{
	Straight: 35,
	Split:    17,
	Street:   11,
	Corner:   8,
	Line:     5,
	Column:   2,
	Dozen:    2,
	Red:      1,
	Black:    1,
	Even:     1,
	Odd:      1,
	Low:      1,
	High:     1,
}

// Números vermelhos da roleta europeia. Zero não é vermelho nem preto.
var rouletteRed = map[uint8]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}
