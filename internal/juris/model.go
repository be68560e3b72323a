// Package juris implementa a economia de créditos que destrava o aceite de
// casos pelos advogados.
package juris

import (
	"time"

	"gorm.io/gorm"
)

// CustoAceite é o custo fixo, em Juris, para aceitar um caso.
const CustoAceite = 5

// Tipos de movimentação do extrato
const (
	TipoCompra = "compra"
	TipoDebito = "debito"
)

// TransacaoJuris é uma linha do extrato, sempre anexada e nunca alterada.
// O saldo corrente vive na linha do advogado; o extrato é a trilha de
// auditoria de cada movimento.
type TransacaoJuris struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AdvogadoID uint      `gorm:"not null;index" json:"advogadoId"`
	Valor      int       `gorm:"not null" json:"valor"` // positivo = crédito, negativo = débito
	Tipo       string    `gorm:"size:20;not null;index" json:"tipo"`
	Descricao  string    `gorm:"size:255" json:"descricao"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&TransacaoJuris{})
}
