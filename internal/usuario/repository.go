package usuario

import (
	"errors"

	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/erros"
)

type Repository interface {
	Salvar(db *gorm.DB, u *Usuario) error
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	ListarTodos(db *gorm.DB) ([]Usuario, error)
	ListarAdvogados(db *gorm.DB) ([]Usuario, error)
	Atualizar(db *gorm.DB, id uint, novosDados *Usuario) error
	DefinirPremium(db *gorm.DB, id uint, premium bool) error
	Verificar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.ErrNaoEncontrado
		}
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	if err := db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.ErrNaoEncontrado
		}
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Usuario, error) {
	var usuarios []Usuario
	err := db.Order("id").Find(&usuarios).Error
	return usuarios, err
}

func (r *repositoryImpl) ListarAdvogados(db *gorm.DB) ([]Usuario, error) {
	var usuarios []Usuario
	err := db.Where("perfil = ?", "advogado").Order("id").Find(&usuarios).Error
	return usuarios, err
}

// Atualizar só toca campos de perfil editáveis; email e perfil são imutáveis.
func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *Usuario) error {
	var existente Usuario
	if err := db.First(&existente, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return erros.ErrNaoEncontrado
		}
		return err
	}

	existente.Nome = novosDados.Nome
	existente.Telefone = novosDados.Telefone
	existente.Bio = novosDados.Bio
	existente.Foto = novosDados.Foto
	if existente.EhAdvogado() {
		existente.OAB = novosDados.OAB
	}

	return db.Save(&existente).Error
}

func (r *repositoryImpl) DefinirPremium(db *gorm.DB, id uint, premium bool) error {
	res := db.Model(&Usuario{}).Where("id = ?", id).Update("is_premium", premium)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return erros.ErrNaoEncontrado
	}
	return nil
}

// Verificar é a transição irreversível false→true do advogado.
func (r *repositoryImpl) Verificar(db *gorm.DB, id uint) error {
	res := db.Model(&Usuario{}).
		Where("id = ? AND perfil = ?", id, "advogado").
		Update("verificado", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return erros.ErrNaoEncontrado
	}
	return nil
}
