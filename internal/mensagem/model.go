package mensagem

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipos de mensagem
const (
	TipoTexto   = "texto"
	TipoImagem  = "imagem"
	TipoArquivo = "arquivo"
	TipoSistema = "sistema"
)

// AutorSistema é o ID reservado para mensagens geradas pela plataforma.
const AutorSistema uint = 0

// Mensagem pertence a exatamente um caso; a coleção é append-only e a ordem
// cronológica é dada pelo timestamp de inserção.
type Mensagem struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	CasoID     uint      `gorm:"not null;index" json:"casoId"`
	AutorID    uint      `gorm:"not null" json:"autorId"` // 0 se for do sistema
	Conteudo   string    `gorm:"type:text;not null" json:"conteudo"`
	Tipo       string    `gorm:"size:20;not null;default:'texto'" json:"tipo"`
	ArquivoURL string    `json:"arquivoUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (m *Mensagem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// TipoValido informa se o tipo é um dos reconhecidos.
func TipoValido(tipo string) bool {
	switch tipo {
	case TipoTexto, TipoImagem, TipoArquivo, TipoSistema:
		return true
	}
	return false
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Mensagem{})
}
