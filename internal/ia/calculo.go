package ia

import "time"

// ItemAtualizacao é uma linha do detalhamento do cálculo.
type ItemAtualizacao struct {
	Rotulo string  `json:"rotulo"`
	Valor  float64 `json:"valor"`
}

// Atualizacao é o resultado do cálculo de atualização monetária.
type Atualizacao struct {
	ValorOriginal   float64           `json:"valorOriginal"`
	ValorAtualizado float64           `json:"valorAtualizado"`
	Juros           float64           `json:"juros"`
	IndiceUsado     string            `json:"indiceUsado"`
	Detalhamento    []ItemAtualizacao `json:"detalhamento"`
}

// CalcularAtualizacao atualiza um valor monetário desde dataInicio até ref.
//
// Fórmula aproximada, não é consulta real ao índice: anos decorridos são a
// diferença simples de ano-calendário; a correção aplica fator 1 + anos*0,05
// sobre o principal; os juros são 1% ao mês sobre o principal corrigido por
// 12*max(1, anos) meses. O detalhamento tem sempre três linhas: principal,
// correção e juros.
func CalcularAtualizacao(valor float64, dataInicio time.Time, indice string, ref time.Time) Atualizacao {
	anos := ref.Year() - dataInicio.Year()
	if anos < 0 {
		anos = 0
	}

	correcao := valor * float64(anos) * 0.05
	principalCorrigido := valor + correcao

	mesesDeJuros := anos
	if mesesDeJuros < 1 {
		mesesDeJuros = 1
	}
	juros := principalCorrigido * 0.01 * 12 * float64(mesesDeJuros)

	return Atualizacao{
		ValorOriginal:   valor,
		ValorAtualizado: principalCorrigido + juros,
		Juros:           juros,
		IndiceUsado:     indice,
		Detalhamento: []ItemAtualizacao{
			{Rotulo: "Valor principal", Valor: valor},
			{Rotulo: "Correção monetária", Valor: correcao},
			{Rotulo: "Juros", Valor: juros},
		},
	}
}
