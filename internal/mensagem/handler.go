package mensagem

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/auth"
	"github.com/socialjuris/api-juridica/internal/erros"
	"github.com/socialjuris/api-juridica/internal/notificacao"
	"github.com/socialjuris/api-juridica/internal/realtime"
)

// ResumoCaso é o recorte do caso de que este pacote precisa para autorizar
// e rotear mensagens, sem importar o pacote caso.
type ResumoCaso struct {
	ID         uint
	ClienteID  uint
	AdvogadoID *uint
	Status     string
}

// CasoBuscador é implementado pelo repositório de casos.
type CasoBuscador interface {
	ResumoDoCaso(db *gorm.DB, id uint) (*ResumoCaso, error)
}

// Handler encapsula DB, repository e colaboradores
type Handler struct {
	DB           *gorm.DB
	Repository   Repository
	Casos        CasoBuscador
	Notificacoes notificacao.Repository
	Feed         realtime.Publicador
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, casos CasoBuscador, feed realtime.Publicador) *Handler {
	return &Handler{
		DB:           db,
		Repository:   NewRepository(),
		Casos:        casos,
		Notificacoes: notificacao.NewRepository(),
		Feed:         feed,
	}
}

type enviarMensagemRequest struct {
	Conteudo   string `json:"conteudo"`
	Tipo       string `json:"tipo"`
	ArquivoURL string `json:"arquivoUrl"`
}

// Enviar trata POST /casos/{id}/mensagens. Permitido em casos Abertos e
// Ativos; casos encerrados não recebem mais mensagens.
func (h *Handler) Enviar(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)

	casoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de caso inválido", http.StatusBadRequest)
		return
	}

	var req enviarMensagemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Conteudo) == "" {
		http.Error(w, "o campo 'conteudo' é obrigatório", http.StatusUnprocessableEntity)
		return
	}
	if req.Tipo == "" {
		req.Tipo = TipoTexto
	}
	if !TipoValido(req.Tipo) || req.Tipo == TipoSistema {
		http.Error(w, "tipo de mensagem inválido", http.StatusUnprocessableEntity)
		return
	}

	c, err := h.Casos.ResumoDoCaso(h.DB, uint(casoID))
	if err != nil {
		if errors.Is(err, erros.ErrNaoEncontrado) {
			http.Error(w, "caso não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar caso", http.StatusInternalServerError)
		return
	}

	// Só participantes do caso conversam nele
	participante := c.ClienteID == usuarioID || (c.AdvogadoID != nil && *c.AdvogadoID == usuarioID)
	if !participante {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	if c.Status == "Encerrado" {
		http.Error(w, "caso encerrado não recebe mensagens", http.StatusUnprocessableEntity)
		return
	}

	m := Mensagem{
		CasoID:     uint(casoID),
		AutorID:    usuarioID,
		Conteudo:   req.Conteudo,
		Tipo:       req.Tipo,
		ArquivoURL: req.ArquivoURL,
	}
	if err := h.Repository.Criar(h.DB, &m); err != nil {
		http.Error(w, "erro ao enviar mensagem", http.StatusInternalServerError)
		return
	}

	// Notifica o outro participante; sem advogado atribuído não há destinatário
	if destinatario, ok := outroParticipante(c, usuarioID); ok {
		n := notificacao.Notificacao{
			UsuarioID: destinatario,
			Titulo:    "Nova mensagem",
			Mensagem:  fmt.Sprintf("Você recebeu uma nova mensagem no caso #%d", casoID),
			Tipo:      notificacao.TipoInfo,
		}
		if err := h.Notificacoes.Criar(h.DB, &n); err == nil && h.Feed != nil {
			h.Feed.Publicar("notificacoes", realtime.AcaoInsert, n.ID)
		}
	}

	if h.Feed != nil {
		h.Feed.Publicar("mensagens", realtime.AcaoInsert, m.ID)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(m)
}

// ListarPorCaso trata GET /casos/{id}/mensagens
func (h *Handler) ListarPorCaso(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)
	perfil := auth.PerfilDo(r)

	casoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de caso inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Casos.ResumoDoCaso(h.DB, uint(casoID))
	if err != nil {
		if errors.Is(err, erros.ErrNaoEncontrado) {
			http.Error(w, "caso não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar caso", http.StatusInternalServerError)
		return
	}

	participante := c.ClienteID == usuarioID || (c.AdvogadoID != nil && *c.AdvogadoID == usuarioID)
	if !participante && perfil != auth.PerfilAdmin {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	list, err := h.Repository.ListarPorCaso(h.DB, uint(casoID))
	if err != nil {
		http.Error(w, "erro ao listar mensagens", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

func outroParticipante(c *ResumoCaso, autor uint) (uint, bool) {
	if autor == c.ClienteID {
		if c.AdvogadoID == nil {
			return 0, false
		}
		return *c.AdvogadoID, true
	}
	return c.ClienteID, true
}
