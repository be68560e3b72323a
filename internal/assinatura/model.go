package assinatura

import (
	"time"

	"gorm.io/gorm"
)

// Assinatura registra cada período premium de um usuário. A cobrança é
// simulada; o registro existe para auditoria de concessão/revogação.
type Assinatura struct {
	gorm.Model
	UsuarioID uint       `gorm:"not null;index" json:"usuarioId"`
	Plano     string     `gorm:"size:50;not null;default:'premium-mensal'" json:"plano"`
	Inicio    time.Time  `gorm:"not null" json:"inicio"`
	Fim       *time.Time `json:"fim,omitempty"`
	Ativa     bool       `gorm:"not null;default:true;index" json:"ativa"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Assinatura{})
}
