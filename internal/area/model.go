package area

import "gorm.io/gorm"

// Area é uma categoria jurídica do catálogo da plataforma.
type Area struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Nome  string `gorm:"size:100;uniqueIndex;not null" json:"nome"`
	Ativo bool   `gorm:"not null;default:true" json:"ativo"`
}

var padrao = []string{
	"Direito Civil",
	"Direito Penal",
	"Direito Trabalhista",
	"Direito de Família",
	"Direito do Consumidor",
	"Direito Previdenciário",
	"Direito Tributário",
	"Direito Empresarial",
	"Direito Geral",
}

// Migrate cria a tabela e semeia o catálogo padrão.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Area{}); err != nil {
		return err
	}
	for _, nome := range padrao {
		if err := db.Where("nome = ?", nome).FirstOrCreate(&Area{Nome: nome, Ativo: true}).Error; err != nil {
			return err
		}
	}
	return nil
}
