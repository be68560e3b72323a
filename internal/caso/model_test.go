package caso

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/socialjuris/api-juridica/internal/erros"
)

func TestValidarNovoCaso(t *testing.T) {
	assert.NoError(t, ValidarNovoCaso("Título", "Descrição", "Direito Civil", "São Paulo", "SP"))

	assert.ErrorIs(t, ValidarNovoCaso("", "Descrição", "Direito Civil", "São Paulo", "SP"), erros.ErrValidacao)
	assert.ErrorIs(t, ValidarNovoCaso("Título", "   ", "Direito Civil", "São Paulo", "SP"), erros.ErrValidacao)
	assert.ErrorIs(t, ValidarNovoCaso("Título", "Descrição", "Direito Civil", "São Paulo", ""), erros.ErrValidacao)
}

func TestPodeSerAceito(t *testing.T) {
	adv := uint(7)

	t.Run("aberto sem advogado", func(t *testing.T) {
		c := Caso{Status: StatusAberto}
		assert.NoError(t, c.PodeSerAceito())
	})

	t.Run("já ativo", func(t *testing.T) {
		c := Caso{Status: StatusAtivo, AdvogadoID: &adv}
		assert.ErrorIs(t, c.PodeSerAceito(), erros.ErrCasoJaAtribuido)
	})

	t.Run("aberto com advogado residual", func(t *testing.T) {
		c := Caso{Status: StatusAberto, AdvogadoID: &adv}
		assert.ErrorIs(t, c.PodeSerAceito(), erros.ErrCasoJaAtribuido)
	})
}

func TestPodeSerEncerrado(t *testing.T) {
	assert.NoError(t, (&Caso{Status: StatusAtivo}).PodeSerEncerrado())
	assert.ErrorIs(t, (&Caso{Status: StatusEncerrado}).PodeSerEncerrado(), erros.ErrCasoEncerrado)
	assert.ErrorIs(t, (&Caso{Status: StatusAberto}).PodeSerEncerrado(), erros.ErrValidacao)
}

func TestParticipante(t *testing.T) {
	adv := uint(2)
	c := Caso{ClienteID: 1, AdvogadoID: &adv}

	assert.True(t, c.Participante(1))
	assert.True(t, c.Participante(2))
	assert.False(t, c.Participante(3))

	semAdvogado := Caso{ClienteID: 1}
	assert.False(t, semAdvogado.Participante(2))
}
