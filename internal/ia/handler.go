package ia

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// Handler expõe as rotas de triagem e ferramentas de análise
type Handler struct {
	Cliente *Cliente
	// Agora permite fixar o relógio nos testes
	Agora func() time.Time
}

// NewHandler cria um novo handler de IA
func NewHandler(cliente *Cliente) *Handler {
	return &Handler{Cliente: cliente, Agora: time.Now}
}

type classificarRequest struct {
	Descricao string `json:"descricao"`
}

// Classificar trata POST /ia/classificar
func (h *Handler) Classificar(w http.ResponseWriter, r *http.Request) {
	var req classificarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	res := h.Cliente.Classificar(r.Context(), req.Descricao)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}

type analiseRequest struct {
	Texto string `json:"texto"`
}

// AnalisarParteContraria trata POST /ia/analise-parte-contraria
func (h *Handler) AnalisarParteContraria(w http.ResponseWriter, r *http.Request) {
	var req analiseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(AnalisarParteContraria(req.Texto))
}

type atualizacaoRequest struct {
	Valor      float64 `json:"valor"`
	DataInicio string  `json:"dataInicio"` // "2006-01-02" ou RFC3339
	Indice     string  `json:"indice"`
}

// CalcularAtualizacao trata POST /ia/atualizacao-monetaria
func (h *Handler) CalcularAtualizacao(w http.ResponseWriter, r *http.Request) {
	var req atualizacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Valor <= 0 {
		http.Error(w, "o campo 'valor' deve ser positivo", http.StatusBadRequest)
		return
	}

	inicio, err := time.Parse("2006-01-02", req.DataInicio)
	if err != nil {
		inicio, err = time.Parse(time.RFC3339, req.DataInicio)
	}
	if err != nil {
		http.Error(w, "data de início inválida", http.StatusBadRequest)
		return
	}

	indice := strings.TrimSpace(req.Indice)
	if indice == "" {
		indice = "IGPM"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(CalcularAtualizacao(req.Valor, inicio, indice, h.Agora()))
}
