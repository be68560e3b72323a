package caso

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/erros"
	"github.com/socialjuris/api-juridica/internal/juris"
	"github.com/socialjuris/api-juridica/internal/mensagem"
	"github.com/socialjuris/api-juridica/internal/notificacao"
	"github.com/socialjuris/api-juridica/internal/usuario"
)

type Repository interface {
	CriarComPagamento(db *gorm.DB, c *Caso) error
	BuscarPorID(db *gorm.DB, id uint) (*Caso, error)
	ListarTodos(db *gorm.DB) ([]Caso, error)
	ListarAbertos(db *gorm.DB) ([]Caso, error)
	ListarPorCliente(db *gorm.DB, clienteID uint) ([]Caso, error)
	ListarPorAdvogado(db *gorm.DB, advogadoID uint) ([]Caso, error)
	// Aceitar executa débito-e-atribuição exatamente-uma-vez, em uma única
	// transação. Retorna o caso atualizado e a notificação criada para o
	// cliente.
	Aceitar(db *gorm.DB, casoID uint, advogado *usuario.Usuario) (*Caso, *notificacao.Notificacao, error)
	Encerrar(db *gorm.DB, casoID uint, nota int, comentario string) (*Caso, error)
	ResumoDoCaso(db *gorm.DB, id uint) (*mensagem.ResumoCaso, error)
}

type repositoryImpl struct {
	juris juris.Repository
}

func NewRepository() Repository {
	return &repositoryImpl{juris: juris.NewRepository()}
}

// CriarComPagamento grava o caso e a mensagem de sistema que registra a
// confirmação da taxa, na mesma transação. O pagamento é simulado: uma vez
// confirmado pelo cliente, sempre sucede.
func (r *repositoryImpl) CriarComPagamento(db *gorm.DB, c *Caso) error {
	return db.Transaction(func(tx *gorm.DB) error {
		c.Status = StatusAberto
		c.Pago = true
		if err := tx.Create(c).Error; err != nil {
			return err
		}

		m := mensagem.Mensagem{
			CasoID:   c.ID,
			AutorID:  mensagem.AutorSistema,
			Tipo:     mensagem.TipoSistema,
			Conteudo: fmt.Sprintf("Pagamento confirmado: taxa de publicação de R$ %.2f.", c.Valor),
		}
		return tx.Create(&m).Error
	})
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Caso, error) {
	var c Caso
	err := db.Preload("Mensagens", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.ErrNaoEncontrado
		}
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Caso, error) {
	var list []Caso
	err := db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarAbertos(db *gorm.DB) ([]Caso, error) {
	var list []Caso
	err := db.Where("status = ?", StatusAberto).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorCliente(db *gorm.DB, clienteID uint) ([]Caso, error) {
	var list []Caso
	err := db.Where("cliente_id = ?", clienteID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorAdvogado(db *gorm.DB, advogadoID uint) ([]Caso, error) {
	var list []Caso
	err := db.Where("advogado_id = ?", advogadoID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// Aceitar atribui o caso e debita os Juris do advogado na mesma transação.
// A atribuição é um UPDATE condicional em status/advogado_id: se outra
// tentativa chegou antes, RowsAffected é zero e nada é debitado.
func (r *repositoryImpl) Aceitar(db *gorm.DB, casoID uint, advogado *usuario.Usuario) (*Caso, *notificacao.Notificacao, error) {
	var n notificacao.Notificacao

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Caso{}).
			Where("id = ? AND status = ? AND advogado_id IS NULL", casoID, StatusAberto).
			Updates(map[string]interface{}{
				"advogado_id": advogado.ID,
				"status":      StatusAtivo,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var existente Caso
			if err := tx.First(&existente, casoID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return erros.ErrNaoEncontrado
				}
				return err
			}
			if err := existente.PodeSerAceito(); err != nil {
				return err
			}
			return erros.ErrCasoJaAtribuido
		}

		descricao := fmt.Sprintf("Aceite do caso #%d", casoID)
		if err := r.juris.Debitar(tx, advogado.ID, juris.CustoAceite, descricao); err != nil {
			return err
		}

		m := mensagem.Mensagem{
			CasoID:   casoID,
			AutorID:  mensagem.AutorSistema,
			Tipo:     mensagem.TipoSistema,
			Conteudo: fmt.Sprintf("O advogado %s aceitou o caso.", advogado.Nome),
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		var atualizado Caso
		if err := tx.First(&atualizado, casoID).Error; err != nil {
			return err
		}
		n = notificacao.Notificacao{
			UsuarioID: atualizado.ClienteID,
			Titulo:    "Caso aceito",
			Mensagem:  fmt.Sprintf("O advogado %s aceitou o seu caso \"%s\".", advogado.Nome, atualizado.Titulo),
			Tipo:      notificacao.TipoSucesso,
		}
		return tx.Create(&n).Error
	})
	if err != nil {
		return nil, nil, err
	}

	atualizado, err := r.BuscarPorID(db, casoID)
	if err != nil {
		return nil, nil, err
	}
	return atualizado, &n, nil
}

// Encerrar é a transição terminal Ativo→Encerrado com registro da avaliação.
func (r *repositoryImpl) Encerrar(db *gorm.DB, casoID uint, nota int, comentario string) (*Caso, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Caso{}).
			Where("id = ? AND status = ?", casoID, StatusAtivo).
			Updates(map[string]interface{}{
				"status":               StatusEncerrado,
				"avaliacao_nota":       nota,
				"avaliacao_comentario": comentario,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var existente Caso
			if err := tx.First(&existente, casoID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return erros.ErrNaoEncontrado
				}
				return err
			}
			return existente.PodeSerEncerrado()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.BuscarPorID(db, casoID)
}

// ResumoDoCaso implementa mensagem.CasoBuscador.
func (r *repositoryImpl) ResumoDoCaso(db *gorm.DB, id uint) (*mensagem.ResumoCaso, error) {
	var c Caso
	if err := db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.ErrNaoEncontrado
		}
		return nil, err
	}
	return &mensagem.ResumoCaso{
		ID:         c.ID,
		ClienteID:  c.ClienteID,
		AdvogadoID: c.AdvogadoID,
		Status:     c.Status,
	}, nil
}
