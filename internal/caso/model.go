package caso

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/erros"
	"github.com/socialjuris/api-juridica/internal/mensagem"
)

// Estados do ciclo de vida. As transições são monotônicas:
// Aberto → Ativo → Encerrado, sem regressão.
const (
	StatusAberto    = "Aberto"
	StatusAtivo     = "Ativo"
	StatusEncerrado = "Encerrado"
)

// Caso é a demanda jurídica publicada por um cliente.
type Caso struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	ClienteID  uint  `gorm:"not null;index" json:"clienteId"`
	AdvogadoID *uint `gorm:"index" json:"advogadoId,omitempty"` // atribuído uma única vez, no aceite

	Titulo       string  `gorm:"not null" json:"titulo"`
	Descricao    string  `gorm:"type:text;not null" json:"descricao"`
	Area         string  `gorm:"size:100;not null" json:"area"`
	Status       string  `gorm:"size:20;not null;default:'Aberto';index" json:"status"`
	Cidade       string  `gorm:"size:100" json:"cidade"`
	UF           string  `gorm:"size:2" json:"uf"`
	Valor        float64 `gorm:"not null;default:0" json:"valor"` // taxa de publicação cobrada do cliente
	Complexidade string  `gorm:"size:20;not null" json:"complexidade"`
	Pago         bool    `gorm:"not null;default:false" json:"pago"`

	// Avaliação registrada apenas no encerramento
	AvaliacaoNota       *int   `json:"avaliacaoNota,omitempty"`
	AvaliacaoComentario string `gorm:"type:text" json:"avaliacaoComentario,omitempty"`

	Mensagens []mensagem.Mensagem `gorm:"foreignKey:CasoID" json:"mensagens,omitempty"`
}

// ValidarNovoCaso confere os campos obrigatórios da criação.
func ValidarNovoCaso(titulo, descricao, area, cidade, uf string) error {
	for _, campo := range []string{titulo, descricao, area, cidade, uf} {
		if strings.TrimSpace(campo) == "" {
			return erros.ErrValidacao
		}
	}
	return nil
}

// PodeSerAceito confere a precondição de estado do aceite.
func (c *Caso) PodeSerAceito() error {
	if c.Status != StatusAberto || c.AdvogadoID != nil {
		return erros.ErrCasoJaAtribuido
	}
	return nil
}

// PodeSerEncerrado confere a precondição de estado do encerramento.
func (c *Caso) PodeSerEncerrado() error {
	switch c.Status {
	case StatusAtivo:
		return nil
	case StatusEncerrado:
		return erros.ErrCasoEncerrado
	default:
		return erros.ErrValidacao
	}
}

// Participante informa se o usuário é o cliente ou o advogado do caso.
func (c *Caso) Participante(usuarioID uint) bool {
	return c.ClienteID == usuarioID || (c.AdvogadoID != nil && *c.AdvogadoID == usuarioID)
}
