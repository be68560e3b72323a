package ia

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func data(ano int) time.Time {
	return time.Date(ano, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func TestCalcularAtualizacao(t *testing.T) {
	t.Run("dois anos decorridos", func(t *testing.T) {
		// 10.000 desde 2022, referência 2024: correção 10%, principal
		// corrigido 11.000, juros 1% a.m. por 24 meses = 2.640
		res := CalcularAtualizacao(10000, data(2022), "IGPM", data(2024))

		assert.Equal(t, 10000.0, res.ValorOriginal)
		assert.InDelta(t, 2640.0, res.Juros, 0.001)
		assert.InDelta(t, 13640.0, res.ValorAtualizado, 0.001)
		assert.Equal(t, "IGPM", res.IndiceUsado)

		require.Len(t, res.Detalhamento, 3)
		assert.Equal(t, "Valor principal", res.Detalhamento[0].Rotulo)
		assert.InDelta(t, 10000.0, res.Detalhamento[0].Valor, 0.001)
		assert.Equal(t, "Correção monetária", res.Detalhamento[1].Rotulo)
		assert.InDelta(t, 1000.0, res.Detalhamento[1].Valor, 0.001)
		assert.Equal(t, "Juros", res.Detalhamento[2].Rotulo)
		assert.InDelta(t, 2640.0, res.Detalhamento[2].Valor, 0.001)
	})

	t.Run("mesmo ano aplica piso de doze meses de juros", func(t *testing.T) {
		res := CalcularAtualizacao(1000, data(2024), "INPC", data(2024))

		// zero anos: sem correção, mas juros de 12 meses sobre o principal
		assert.InDelta(t, 0.0, res.Detalhamento[1].Valor, 0.001)
		assert.InDelta(t, 120.0, res.Juros, 0.001)
		assert.InDelta(t, 1120.0, res.ValorAtualizado, 0.001)
	})

	t.Run("data futura não gera anos negativos", func(t *testing.T) {
		res := CalcularAtualizacao(1000, data(2030), "IGPM", data(2024))

		assert.InDelta(t, 0.0, res.Detalhamento[1].Valor, 0.001)
		assert.InDelta(t, 120.0, res.Juros, 0.001)
	})

	t.Run("detalhamento fecha com o total", func(t *testing.T) {
		res := CalcularAtualizacao(5500.50, data(2019), "IPCA", data(2024))

		soma := 0.0
		for _, item := range res.Detalhamento {
			soma += item.Valor
		}
		assert.InDelta(t, res.ValorAtualizado, soma, 0.001)
	})
}
