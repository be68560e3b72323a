// Package realtime implementa o feed de alterações por tabela da plataforma.
// Cada escrita confirmada publica um evento {tabela, acao, id}; o evento não
// carrega o diff da linha; consumidores devem refazer a busca da coleção.
// Entrega é ao-menos-uma-vez por escrita enquanto a conexão existir.
package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Publicador é o que as camadas de domínio enxergam do feed.
type Publicador interface {
	Publicar(tabela, acao, id string)
}

// Evento é a unidade publicada no feed.
type Evento struct {
	Topico string `json:"topico"`
	Tabela string `json:"tabela"`
	Acao   string `json:"acao"`
	ID     string `json:"id"`
}

// Ações publicadas
const (
	AcaoInsert = "INSERT"
	AcaoUpdate = "UPDATE"
)

// mensagem de controle enviada pelo cliente
type comando struct {
	Evento string `json:"evento"` // "inscrever" | "desinscrever" | "heartbeat"
	Topico string `json:"topico"` // ex.: "realtime:casos"
}

type assinante struct {
	conn    *websocket.Conn
	envio   chan Evento
	topicos map[string]bool
	mu      sync.Mutex
}

// Hub mantém os assinantes websocket e os observadores locais.
type Hub struct {
	mu           sync.RWMutex
	assinantes   map[*assinante]bool
	observadores []func(Evento)
	upgrader     websocket.Upgrader
}

// NewHub cria um hub vazio.
func NewHub() *Hub {
	return &Hub{
		assinantes: make(map[*assinante]bool),
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
	}
}

// Topico monta o nome do tópico de uma tabela.
func Topico(tabela string) string {
	return "realtime:" + tabela
}

// AoPublicar registra um observador em processo (usado pela projeção local).
func (h *Hub) AoPublicar(fn func(Evento)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observadores = append(h.observadores, fn)
}

// Publicar fan-out do evento para assinantes do tópico e observadores locais.
// Falhas de entrega são registradas e não interrompem a operação de origem.
func (h *Hub) Publicar(tabela, acao, id string) {
	ev := Evento{Topico: Topico(tabela), Tabela: tabela, Acao: acao, ID: id}

	h.mu.RLock()
	obs := make([]func(Evento), len(h.observadores))
	copy(obs, h.observadores)
	// o envio acontece sob o RLock: o fechamento do canal só ocorre sob o
	// Lock exclusivo, então nunca escrevemos em canal fechado
	for a := range h.assinantes {
		a.mu.Lock()
		inscrito := a.topicos[ev.Topico]
		a.mu.Unlock()
		if !inscrito {
			continue
		}
		select {
		case a.envio <- ev:
		default:
			logrus.WithField("topico", ev.Topico).Warn("assinante lento, evento descartado")
		}
	}
	h.mu.RUnlock()

	for _, fn := range obs {
		fn(ev)
	}
}

// ServeHTTP trata GET /ws e mantém a conexão do assinante.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("falha no upgrade websocket")
		return
	}

	a := &assinante{
		conn:    conn,
		envio:   make(chan Evento, 32),
		topicos: make(map[string]bool),
	}

	h.mu.Lock()
	h.assinantes[a] = true
	h.mu.Unlock()

	go h.bombearEscrita(a)
	h.lerComandos(a)
}

func (h *Hub) bombearEscrita(a *assinante) {
	for ev := range a.envio {
		if err := a.conn.WriteJSON(ev); err != nil {
			return
		}
	}
}

func (h *Hub) lerComandos(a *assinante) {
	defer func() {
		h.mu.Lock()
		delete(h.assinantes, a)
		close(a.envio)
		h.mu.Unlock()
		a.conn.Close()
	}()

	for {
		var cmd comando
		if err := a.conn.ReadJSON(&cmd); err != nil {
			return
		}
		switch cmd.Evento {
		case "inscrever":
			a.mu.Lock()
			a.topicos[cmd.Topico] = true
			a.mu.Unlock()
		case "desinscrever":
			a.mu.Lock()
			delete(a.topicos, cmd.Topico)
			a.mu.Unlock()
		case "heartbeat":
			// mantém a conexão viva; nenhuma resposta necessária
		}
	}
}
