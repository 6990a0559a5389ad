package engine

import "encoding/binary"

// Derivação de resultado a partir do valor revelado pelo beacon.
// Funções puras e totais: qualquer entrada de 32 bytes produz resultado.
//
// A redução byte % N não é perfeitamente uniforme (para N=10 as classes 0-5
// recebem um acerto extra por byte; para N=37, as classes 0-33). O viés é
// intencional e preservado para manter compatibilidade de resultados.

// DeriveSlots produz as três lanes consumindo os três primeiros bytes.
func DeriveSlots(r Revealed) SlotsOutcome {
	var out SlotsOutcome
	for i := 0; i < 3; i++ {
		out.Reels[i] = r[i] % 10
	}
	return out
}

// DeriveRoulette produz o número vencedor a partir do primeiro byte.
func DeriveRoulette(r Revealed) RouletteOutcome {
	return RouletteOutcome{WinningNumber: r[0] % 37}
}

// DeriveAviator produz o multiplicador de crash em centésimos, ponto fixo:
// 100 + (u32 % 9900) cobre 1.00x até 99.99x sem aritmética de float.
func DeriveAviator(r Revealed) AviatorOutcome {
	v := binary.LittleEndian.Uint32(r[0:4])
	return AviatorOutcome{CrashHundredths: 100 + v%9900}
}

// DeriveBlackjack produz as quatro cartas iniciais, valores em [1,13].
func DeriveBlackjack(r Revealed) BlackjackOutcome {
	var out BlackjackOutcome
	for i := 0; i < 4; i++ {
		out.Cards[i] = r[i]%13 + 1
	}
	return out
}
