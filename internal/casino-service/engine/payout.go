package engine

// SlotsRawPayout calcula o pagamento bruto (antes do corte de RTP) do slots.
// 3 lanes iguais pagam a coluna 3 da paytable, exatamente 2 iguais pagam a
// coluna 2 do símbolo repetido, menos que isso não paga. Símbolo 0 nunca paga.
func SlotsRawPayout(out SlotsOutcome, betCents int64) int64 {
	r := out.Reels

	var symbol uint8
	var tier int
	switch {
	case r[0] == r[1] && r[1] == r[2]:
		symbol, tier = r[0], 2
	case r[0] == r[1] || r[0] == r[2]:
		symbol, tier = r[0], 1
	case r[1] == r[2]:
		symbol, tier = r[1], 1
	default:
		return 0
	}

	if symbol == 0 {
		return 0
	}
	return betCents * slotsPaytable[symbol][tier]
}

// RouletteRawPayout calcula o pagamento bruto da roleta: razão de lucro do
// tipo de aposta aplicada sobre o stake, somente se o número vencedor estiver
// coberto. Convenção: o valor é lucro puro, sem devolução do stake.
func RouletteRawPayout(bet RouletteBet, numbers []uint8, winning uint8, betCents int64) int64 {
	if !RouletteCovers(bet, numbers, winning) {
		return 0
	}
	return betCents * rouletteRatios[bet]
}

// ApplyReturn aplica o corte de RTP sobre o pagamento bruto:
// floor(raw * rtpBps / 10000), em aritmética inteira. O corte reduz apenas a
// magnitude do prêmio; a probabilidade de ganhar não muda.
func ApplyReturn(rawCents int64, rtpBps uint16) int64 {
	if rawCents <= 0 {
		return 0
	}
	return rawCents * int64(rtpBps) / 10000
}
