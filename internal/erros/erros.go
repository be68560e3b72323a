// Package erros define os erros de negócio compartilhados pela API.
package erros

import "errors"

var (
	// ErrValidacao indica entrada ausente ou malformada. Recuperável, sem mudança de estado.
	ErrValidacao = errors.New("dados inválidos")

	// ErrCredenciais indica login/senha inválidos ou conta não confirmada.
	ErrCredenciais = errors.New("credenciais inválidas")

	// ErrSaldoInsuficiente indica que o advogado não tem Juris suficientes para aceitar o caso.
	ErrSaldoInsuficiente = errors.New("saldo de Juris insuficiente")

	// ErrCasoJaAtribuido indica que o caso já saiu do estado Aberto (corrida entre advogados).
	ErrCasoJaAtribuido = errors.New("caso já atribuído a outro advogado")

	// ErrCasoEncerrado indica tentativa de operar sobre um caso já encerrado.
	ErrCasoEncerrado = errors.New("caso encerrado")

	// ErrNaoVerificado indica que o advogado ainda não foi verificado pelo admin.
	ErrNaoVerificado = errors.New("advogado não verificado")

	// ErrNaoEncontrado indica registro inexistente.
	ErrNaoEncontrado = errors.New("registro não encontrado")
)
