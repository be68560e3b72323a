package notificacao

import (
	"errors"

	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/erros"
)

type Repository interface {
	Criar(db *gorm.DB, n *Notificacao) error
	ListarPorUsuario(db *gorm.DB, usuarioID uint) ([]Notificacao, error)
	ContarNaoLidas(db *gorm.DB, usuarioID uint) (int64, error)
	MarcarComoLida(db *gorm.DB, id string, usuarioID uint) error
	MarcarTodasComoLidas(db *gorm.DB, usuarioID uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, n *Notificacao) error {
	return db.Create(n).Error
}

func (r *repositoryImpl) ListarPorUsuario(db *gorm.DB, usuarioID uint) ([]Notificacao, error) {
	var list []Notificacao
	err := db.Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ContarNaoLidas(db *gorm.DB, usuarioID uint) (int64, error) {
	var total int64
	err := db.Model(&Notificacao{}).
		Where("usuario_id = ? AND lida = false", usuarioID).
		Count(&total).Error
	return total, err
}

// MarcarComoLida é idempotente: marcar uma notificação já lida não é erro.
func (r *repositoryImpl) MarcarComoLida(db *gorm.DB, id string, usuarioID uint) error {
	var n Notificacao
	if err := db.Where("id = ? AND usuario_id = ?", id, usuarioID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return erros.ErrNaoEncontrado
		}
		return err
	}
	if n.Lida {
		return nil
	}
	return db.Model(&n).Update("lida", true).Error
}

func (r *repositoryImpl) MarcarTodasComoLidas(db *gorm.DB, usuarioID uint) error {
	return db.Model(&Notificacao{}).
		Where("usuario_id = ? AND lida = false", usuarioID).
		Update("lida", true).Error
}
