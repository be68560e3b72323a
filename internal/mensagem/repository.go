package mensagem

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, m *Mensagem) error
	ListarPorCaso(db *gorm.DB, casoID uint) ([]Mensagem, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, m *Mensagem) error {
	return db.Create(m).Error
}

func (r *repositoryImpl) ListarPorCaso(db *gorm.DB, casoID uint) ([]Mensagem, error) {
	var list []Mensagem
	err := db.Where("caso_id = ?", casoID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}
