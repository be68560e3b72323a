package notificacao

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipos de notificação
const (
	TipoInfo    = "info"
	TipoSucesso = "sucesso"
	TipoAlerta  = "alerta"
)

// Notificacao pertence a exatamente um usuário. Nunca é apagada; a única
// mutação permitida é lida false→true.
type Notificacao struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UsuarioID uint      `gorm:"not null;index" json:"usuarioId"`
	Titulo    string    `gorm:"not null" json:"titulo"`
	Mensagem  string    `gorm:"type:text" json:"mensagem"`
	Lida      bool      `gorm:"not null;default:false" json:"lida"`
	Tipo      string    `gorm:"size:20;not null;default:'info'" json:"tipo"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n *Notificacao) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Notificacao{})
}
