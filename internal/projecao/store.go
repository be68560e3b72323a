// Package projecao mantém projeções em memória das coleções da plataforma,
// atualizadas a partir do feed de alterações. O evento não carrega o diff da
// linha, então cada evento dispara a releitura completa da coleção afetada.
package projecao

import (
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/caso"
	"github.com/socialjuris/api-juridica/internal/notificacao"
	"github.com/socialjuris/api-juridica/internal/realtime"
	"github.com/socialjuris/api-juridica/internal/usuario"
)

// Tabelas projetadas
const (
	TabelaUsuarios     = "usuarios"
	TabelaCasos        = "casos"
	TabelaNotificacoes = "notificacoes"
)

// Store guarda o último snapshot conhecido de cada coleção. Releituras
// concorrentes podem terminar fora de ordem; o contador de geração garante
// que um resultado atrasado nunca sobrescreve um mais novo.
type Store struct {
	BuscarUsuarios     func() ([]usuario.Usuario, error)
	BuscarCasos        func() ([]caso.Caso, error)
	BuscarNotificacoes func() ([]notificacao.Notificacao, error)

	mu           sync.RWMutex
	usuarios     []usuario.Usuario
	casos        []caso.Caso
	notificacoes []notificacao.Notificacao
	geracoes     map[string]uint64
}

// NewStore cria o store com buscas no banco e o inscreve no hub.
func NewStore(db *gorm.DB, hub *realtime.Hub) *Store {
	s := &Store{
		BuscarUsuarios: func() ([]usuario.Usuario, error) {
			var list []usuario.Usuario
			err := db.Order("id ASC").Find(&list).Error
			return list, err
		},
		BuscarCasos: func() ([]caso.Caso, error) {
			var list []caso.Caso
			err := db.Order("created_at DESC").Find(&list).Error
			return list, err
		},
		BuscarNotificacoes: func() ([]notificacao.Notificacao, error) {
			var list []notificacao.Notificacao
			err := db.Order("created_at DESC").Find(&list).Error
			return list, err
		},
		geracoes: make(map[string]uint64),
	}
	if hub != nil {
		hub.AoPublicar(s.AoEvento)
	}
	return s
}

// CarregarTudo faz a carga inicial das três coleções.
func (s *Store) CarregarTudo() {
	for _, tabela := range []string{TabelaUsuarios, TabelaCasos, TabelaNotificacoes} {
		geracao := s.proximaGeracao(tabela)
		s.recarregar(tabela, geracao)
	}
}

// AoEvento reage a um evento do feed recarregando a coleção da tabela. A
// geração é marcada antes de a busca começar, de forma síncrona, para que a
// ordem de chegada dos eventos defina qual releitura vence.
func (s *Store) AoEvento(ev realtime.Evento) {
	switch ev.Tabela {
	case TabelaUsuarios, TabelaCasos, TabelaNotificacoes:
		geracao := s.proximaGeracao(ev.Tabela)
		go s.recarregar(ev.Tabela, geracao)
	}
}

func (s *Store) proximaGeracao(tabela string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.geracoes[tabela]++
	return s.geracoes[tabela]
}

// recarregar relê a coleção inteira e grava o resultado se a geração ainda
// for a corrente; resultados atrasados são descartados.
func (s *Store) recarregar(tabela string, geracao uint64) {
	switch tabela {
	case TabelaUsuarios:
		list, err := s.BuscarUsuarios()
		if err != nil {
			logrus.WithError(err).WithField("tabela", tabela).Warn("falha ao recarregar projeção")
			return
		}
		s.mu.Lock()
		if geracao == s.geracoes[tabela] {
			s.usuarios = list
		}
		s.mu.Unlock()

	case TabelaCasos:
		list, err := s.BuscarCasos()
		if err != nil {
			logrus.WithError(err).WithField("tabela", tabela).Warn("falha ao recarregar projeção")
			return
		}
		s.mu.Lock()
		if geracao == s.geracoes[tabela] {
			s.casos = list
		}
		s.mu.Unlock()

	case TabelaNotificacoes:
		list, err := s.BuscarNotificacoes()
		if err != nil {
			logrus.WithError(err).WithField("tabela", tabela).Warn("falha ao recarregar projeção")
			return
		}
		s.mu.Lock()
		if geracao == s.geracoes[tabela] {
			s.notificacoes = list
		}
		s.mu.Unlock()
	}
}

// Usuarios devolve uma cópia do snapshot atual.
func (s *Store) Usuarios() []usuario.Usuario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]usuario.Usuario, len(s.usuarios))
	copy(out, s.usuarios)
	return out
}

// Casos devolve uma cópia do snapshot atual.
func (s *Store) Casos() []caso.Caso {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]caso.Caso, len(s.casos))
	copy(out, s.casos)
	return out
}

// Notificacoes devolve uma cópia do snapshot atual.
func (s *Store) Notificacoes() []notificacao.Notificacao {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]notificacao.Notificacao, len(s.notificacoes))
	copy(out, s.notificacoes)
	return out
}
