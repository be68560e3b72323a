package usuario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/auth"
	"github.com/socialjuris/api-juridica/internal/erros"
)

func TestPodeAceitarCasos(t *testing.T) {
	t.Run("advogado verificado", func(t *testing.T) {
		u := Usuario{Perfil: auth.PerfilAdvogado, Verificado: true}
		assert.NoError(t, u.PodeAceitarCasos())
	})

	t.Run("advogado não verificado", func(t *testing.T) {
		u := Usuario{Perfil: auth.PerfilAdvogado}
		assert.ErrorIs(t, u.PodeAceitarCasos(), erros.ErrNaoVerificado)
	})

	t.Run("cliente nunca aceita", func(t *testing.T) {
		u := Usuario{Perfil: auth.PerfilCliente, Verificado: true}
		assert.ErrorIs(t, u.PodeAceitarCasos(), erros.ErrValidacao)
	})
}

func TestPerfilValido(t *testing.T) {
	assert.True(t, PerfilValido(auth.PerfilCliente))
	assert.True(t, PerfilValido(auth.PerfilAdvogado))
	assert.False(t, PerfilValido(auth.PerfilAdmin)) // admin não se auto-registra
	assert.False(t, PerfilValido("juiz"))
	assert.False(t, PerfilValido(""))
}

func TestMontarResumoUsuarioDTO(t *testing.T) {
	u := Usuario{
		Model:      gorm.Model{ID: 3},
		Nome:       "Dra. Ana",
		Email:      "ana@exemplo.com",
		Perfil:     auth.PerfilAdvogado,
		OAB:        "SP123456",
		Verificado: true,
		Saldo:      12,
		IsPremium:  true,
	}
	status := []string{"Ativo", "Encerrado", "Ativo", "Aberto", "Encerrado"}

	dto := MontarResumoUsuarioDTO(u, status, 4)

	assert.Equal(t, uint(3), dto.ID)
	assert.Equal(t, 2, dto.CasosAtivos)
	assert.Equal(t, 2, dto.CasosEncerrados)
	assert.Equal(t, 4, dto.NotificacoesNaoLidas)
	assert.Equal(t, 12, dto.Saldo)
	assert.True(t, dto.IsPremium)
}
