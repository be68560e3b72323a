// Package precificacao mapeia a complexidade do caso para a taxa de publicação.
package precificacao

// Níveis de complexidade reconhecidos
const (
	ComplexidadeBaixa = "Baixa"
	ComplexidadeMedia = "Média"
	ComplexidadeAlta  = "Alta"
)

// Tarifa retorna a taxa de publicação em reais para a complexidade informada.
// Valores desconhecidos caem na taxa intermediária.
func Tarifa(complexidade string) float64 {
	switch complexidade {
	case ComplexidadeBaixa:
		return 2.00
	case ComplexidadeMedia:
		return 4.00
	case ComplexidadeAlta:
		return 6.00
	default:
		return 4.00
	}
}

// ComplexidadeValida informa se o valor é um dos três níveis reconhecidos.
func ComplexidadeValida(complexidade string) bool {
	switch complexidade {
	case ComplexidadeBaixa, ComplexidadeMedia, ComplexidadeAlta:
		return true
	}
	return false
}
