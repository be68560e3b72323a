package notificacao

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/auth"
	"github.com/socialjuris/api-juridica/internal/erros"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Listar trata GET /notificacoes (sempre do usuário autenticado)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)

	list, err := h.Repository.ListarPorUsuario(h.DB, usuarioID)
	if err != nil {
		http.Error(w, "erro ao listar notificações", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ContarNaoLidas trata GET /notificacoes/nao-lidas
func (h *Handler) ContarNaoLidas(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)

	total, err := h.Repository.ContarNaoLidas(h.DB, usuarioID)
	if err != nil {
		http.Error(w, "erro ao contar notificações", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{"naoLidas": total})
}

// MarcarComoLida trata PATCH /notificacoes/{id}/lida
func (h *Handler) MarcarComoLida(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)
	id := mux.Vars(r)["id"]

	if err := h.Repository.MarcarComoLida(h.DB, id, usuarioID); err != nil {
		if errors.Is(err, erros.ErrNaoEncontrado) {
			http.Error(w, "notificação não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao marcar notificação", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarcarTodasComoLidas trata POST /notificacoes/marcar-todas
func (h *Handler) MarcarTodasComoLidas(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)

	if err := h.Repository.MarcarTodasComoLidas(h.DB, usuarioID); err != nil {
		http.Error(w, "erro ao marcar notificações", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
