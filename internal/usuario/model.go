package usuario

import (
	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/auth"
	"github.com/socialjuris/api-juridica/internal/erros"
)

// Usuario é a identidade única da plataforma. Os três perfis compartilham o
// mesmo shape; os campos OAB, Saldo e Verificado só têm significado para
// advogados.
type Usuario struct {
	gorm.Model
	Nome       string `json:"nome"`
	Email      string `json:"email" gorm:"uniqueIndex"`
	Senha      string `json:"-"`
	Perfil     string `json:"perfil" gorm:"size:20;index"`
	Verificado bool   `json:"verificado"`
	OAB        string `json:"oab,omitempty" gorm:"size:20"`
	Telefone   string `json:"telefone"`
	Bio        string `json:"bio" gorm:"type:text"`
	Foto       string `json:"foto"`
	Saldo      int    `json:"saldo" gorm:"not null;default:0"`
	IsPremium  bool   `json:"isPremium" gorm:"not null;default:false"`
}

// EhAdvogado informa se o usuário é advogado.
func (u *Usuario) EhAdvogado() bool {
	return u.Perfil == auth.PerfilAdvogado
}

// PodeAceitarCasos valida as precondições de aceite que dependem só do usuário.
func (u *Usuario) PodeAceitarCasos() error {
	if !u.EhAdvogado() {
		return erros.ErrValidacao
	}
	if !u.Verificado {
		return erros.ErrNaoVerificado
	}
	return nil
}

// PerfilValido aceita apenas os perfis auto-registráveis; admin é criado
// fora do fluxo público.
func PerfilValido(perfil string) bool {
	return perfil == auth.PerfilCliente || perfil == auth.PerfilAdvogado
}
