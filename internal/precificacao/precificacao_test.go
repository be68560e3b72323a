package precificacao

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarifa(t *testing.T) {
	casos := []struct {
		nome         string
		complexidade string
		esperado     float64
	}{
		{"baixa", ComplexidadeBaixa, 2.00},
		{"media", ComplexidadeMedia, 4.00},
		{"alta", ComplexidadeAlta, 6.00},
		{"desconhecida cai na intermediária", "Altíssima", 4.00},
		{"vazia cai na intermediária", "", 4.00},
	}

	for _, tc := range casos {
		t.Run(tc.nome, func(t *testing.T) {
			assert.Equal(t, tc.esperado, Tarifa(tc.complexidade))
		})
	}
}

func TestComplexidadeValida(t *testing.T) {
	assert.True(t, ComplexidadeValida(ComplexidadeBaixa))
	assert.True(t, ComplexidadeValida(ComplexidadeMedia))
	assert.True(t, ComplexidadeValida(ComplexidadeAlta))
	assert.False(t, ComplexidadeValida("media")) // sensível a maiúsculas
	assert.False(t, ComplexidadeValida(""))
}
