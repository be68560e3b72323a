package assinatura

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, a *Assinatura) error
	EncerrarAtivas(db *gorm.DB, usuarioID uint) error
	ListarPorUsuario(db *gorm.DB, usuarioID uint) ([]Assinatura, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, a *Assinatura) error {
	if a.Inicio.IsZero() {
		a.Inicio = time.Now()
	}
	a.Ativa = true
	return db.Create(a).Error
}

// EncerrarAtivas fecha os registros ativos do usuário (revogação do premium).
func (r *repositoryImpl) EncerrarAtivas(db *gorm.DB, usuarioID uint) error {
	now := time.Now()
	return db.Model(&Assinatura{}).
		Where("usuario_id = ? AND ativa = true", usuarioID).
		Updates(map[string]interface{}{"ativa": false, "fim": &now}).Error
}

func (r *repositoryImpl) ListarPorUsuario(db *gorm.DB, usuarioID uint) ([]Assinatura, error) {
	var list []Assinatura
	err := db.Where("usuario_id = ?", usuarioID).Order("created_at DESC").Find(&list).Error
	return list, err
}
