package juris

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/auth"
	"github.com/socialjuris/api-juridica/internal/erros"
	"github.com/socialjuris/api-juridica/internal/realtime"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Feed       realtime.Publicador
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, feed realtime.Publicador) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Feed:       feed,
	}
}

type comprarRequest struct {
	Quantidade int `json:"quantidade"`
}

// Comprar trata POST /juris/comprar. O faturamento é simulado: confirmada a
// intenção, o crédito sempre acontece.
func (h *Handler) Comprar(w http.ResponseWriter, r *http.Request) {
	advogadoID := auth.UsuarioDo(r)

	var req comprarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Quantidade <= 0 {
		http.Error(w, "a quantidade deve ser positiva", http.StatusUnprocessableEntity)
		return
	}

	descricao := fmt.Sprintf("Compra de %d Juris", req.Quantidade)
	if err := h.Repository.Creditar(h.DB, advogadoID, req.Quantidade, descricao); err != nil {
		if errors.Is(err, erros.ErrNaoEncontrado) {
			http.Error(w, "apenas advogados possuem saldo de Juris", http.StatusForbidden)
			return
		}
		http.Error(w, "erro ao creditar Juris", http.StatusInternalServerError)
		return
	}

	if h.Feed != nil {
		h.Feed.Publicar("usuarios", realtime.AcaoUpdate, fmt.Sprint(advogadoID))
	}

	saldo, err := h.Repository.SaldoAtual(h.DB, advogadoID)
	if err != nil {
		http.Error(w, "erro ao consultar saldo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{"saldo": saldo})
}

// Saldo trata GET /juris/saldo
func (h *Handler) Saldo(w http.ResponseWriter, r *http.Request) {
	advogadoID := auth.UsuarioDo(r)

	saldo, err := h.Repository.SaldoAtual(h.DB, advogadoID)
	if err != nil {
		http.Error(w, "erro ao consultar saldo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{"saldo": saldo})
}

// Extrato trata GET /juris/extrato
func (h *Handler) Extrato(w http.ResponseWriter, r *http.Request) {
	advogadoID := auth.UsuarioDo(r)

	list, err := h.Repository.Extrato(h.DB, advogadoID)
	if err != nil {
		http.Error(w, "erro ao consultar extrato", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
