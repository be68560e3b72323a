package juris

import (
	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/erros"
	"github.com/socialjuris/api-juridica/internal/usuario"
)

type Repository interface {
	// Creditar soma Juris ao saldo do advogado e anexa a transação. Compra é
	// incondicional para valores não negativos.
	Creditar(db *gorm.DB, advogadoID uint, valor int, descricao string) error
	// Debitar subtrai Juris com guarda saldo >= custo. Deve ser chamado
	// dentro da transação do chamador quando fizer parte de uma operação
	// composta (aceite de caso).
	Debitar(db *gorm.DB, advogadoID uint, custo int, descricao string) error
	Extrato(db *gorm.DB, advogadoID uint) ([]TransacaoJuris, error)
	SaldoAtual(db *gorm.DB, advogadoID uint) (int, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Creditar(db *gorm.DB, advogadoID uint, valor int, descricao string) error {
	if valor < 0 {
		return erros.ErrValidacao
	}

	res := db.Model(&usuario.Usuario{}).
		Where("id = ? AND perfil = ?", advogadoID, "advogado").
		Update("saldo", gorm.Expr("saldo + ?", valor))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return erros.ErrNaoEncontrado
	}

	return db.Create(&TransacaoJuris{
		AdvogadoID: advogadoID,
		Valor:      valor,
		Tipo:       TipoCompra,
		Descricao:  descricao,
	}).Error
}

func (r *repositoryImpl) Debitar(db *gorm.DB, advogadoID uint, custo int, descricao string) error {
	if custo <= 0 {
		return erros.ErrValidacao
	}

	// Guarda de saldo no próprio UPDATE: nunca gera saldo negativo, mesmo
	// sob tentativas concorrentes.
	res := db.Model(&usuario.Usuario{}).
		Where("id = ? AND perfil = ? AND saldo >= ?", advogadoID, "advogado", custo).
		Update("saldo", gorm.Expr("saldo - ?", custo))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return erros.ErrSaldoInsuficiente
	}

	return db.Create(&TransacaoJuris{
		AdvogadoID: advogadoID,
		Valor:      -custo,
		Tipo:       TipoDebito,
		Descricao:  descricao,
	}).Error
}

func (r *repositoryImpl) Extrato(db *gorm.DB, advogadoID uint) ([]TransacaoJuris, error) {
	var list []TransacaoJuris
	err := db.Where("advogado_id = ?", advogadoID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) SaldoAtual(db *gorm.DB, advogadoID uint) (int, error) {
	var u usuario.Usuario
	if err := db.First(&u, advogadoID).Error; err != nil {
		return 0, err
	}
	return u.Saldo, nil
}
