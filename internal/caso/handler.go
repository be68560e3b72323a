package caso

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/auth"
	"github.com/socialjuris/api-juridica/internal/erros"
	"github.com/socialjuris/api-juridica/internal/ia"
	"github.com/socialjuris/api-juridica/internal/precificacao"
	"github.com/socialjuris/api-juridica/internal/realtime"
	"github.com/socialjuris/api-juridica/internal/usuario"
)

// Handler encapsula DB, repositories e colaboradores
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Usuarios   usuario.Repository
	IA         *ia.Cliente
	Feed       realtime.Publicador
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, iaCliente *ia.Cliente, feed realtime.Publicador) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Usuarios:   usuario.NewRepository(),
		IA:         iaCliente,
		Feed:       feed,
	}
}

func responderErro(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, erros.ErrValidacao):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, erros.ErrSaldoInsuficiente):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.Is(err, erros.ErrCasoJaAtribuido):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, erros.ErrCasoEncerrado):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, erros.ErrNaoVerificado):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, erros.ErrNaoEncontrado):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "erro interno", http.StatusInternalServerError)
	}
}

// Criar trata POST /casos. Só clientes publicam casos. Quando título, área ou
// complexidade não vêm preenchidos, a triagem por IA completa a partir da
// descrição (com fallback determinístico se o serviço falhar).
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	clienteID := auth.UsuarioDo(r)
	if auth.PerfilDo(r) != auth.PerfilCliente {
		http.Error(w, "apenas clientes publicam casos", http.StatusForbidden)
		return
	}

	var req criarCasoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	if (req.Titulo == "" || req.Area == "" || req.Complexidade == "") && req.Descricao != "" && h.IA != nil {
		triagem := h.IA.Classificar(r.Context(), req.Descricao)
		if req.Titulo == "" {
			req.Titulo = triagem.Titulo
		}
		if req.Area == "" {
			req.Area = triagem.Area
		}
		if req.Complexidade == "" {
			req.Complexidade = triagem.Complexidade
		}
	}

	if err := ValidarNovoCaso(req.Titulo, req.Descricao, req.Area, req.Cidade, req.UF); err != nil {
		responderErro(w, err)
		return
	}
	if !precificacao.ComplexidadeValida(req.Complexidade) {
		responderErro(w, erros.ErrValidacao)
		return
	}

	c := Caso{
		ClienteID:    clienteID,
		Titulo:       req.Titulo,
		Descricao:    req.Descricao,
		Area:         req.Area,
		Cidade:       req.Cidade,
		UF:           req.UF,
		Complexidade: req.Complexidade,
		Valor:        precificacao.Tarifa(req.Complexidade),
	}

	if err := h.Repository.CriarComPagamento(h.DB, &c); err != nil {
		http.Error(w, "erro ao criar caso", http.StatusInternalServerError)
		return
	}

	if h.Feed != nil {
		h.Feed.Publicar("casos", realtime.AcaoInsert, fmt.Sprint(c.ID))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Aceitar trata POST /casos/{id}/aceitar. Advogado verificado, saldo mínimo
// de Juris; débito e atribuição acontecem juntos ou não acontecem.
func (h *Handler) Aceitar(w http.ResponseWriter, r *http.Request) {
	advogadoID := auth.UsuarioDo(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de caso inválido", http.StatusBadRequest)
		return
	}

	advogado, err := h.Usuarios.BuscarPorID(h.DB, advogadoID)
	if err != nil {
		responderErro(w, err)
		return
	}
	if err := advogado.PodeAceitarCasos(); err != nil {
		responderErro(w, err)
		return
	}

	c, n, err := h.Repository.Aceitar(h.DB, uint(id), advogado)
	if err != nil {
		responderErro(w, err)
		return
	}

	if h.Feed != nil {
		h.Feed.Publicar("casos", realtime.AcaoUpdate, fmt.Sprint(c.ID))
		h.Feed.Publicar("usuarios", realtime.AcaoUpdate, fmt.Sprint(advogadoID))
		h.Feed.Publicar("notificacoes", realtime.AcaoInsert, n.ID)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Encerrar trata POST /casos/{id}/encerrar. Exige caso Ativo e registra a
// avaliação; não há estorno de Juris.
func (h *Handler) Encerrar(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de caso inválido", http.StatusBadRequest)
		return
	}

	var req encerrarCasoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Nota < 1 || req.Nota > 5 {
		http.Error(w, "a nota deve estar entre 1 e 5", http.StatusUnprocessableEntity)
		return
	}

	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		responderErro(w, err)
		return
	}
	if !existente.Participante(usuarioID) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	c, err := h.Repository.Encerrar(h.DB, uint(id), req.Nota, req.Comentario)
	if err != nil {
		responderErro(w, err)
		return
	}

	if h.Feed != nil {
		h.Feed.Publicar("casos", realtime.AcaoUpdate, fmt.Sprint(c.ID))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Listar trata GET /casos. Admin vê todos; cliente vê os seus; advogado vê os
// abertos do mercado mais os que já aceitou.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)

	var (
		list []Caso
		err  error
	)
	switch auth.PerfilDo(r) {
	case auth.PerfilAdmin:
		list, err = h.Repository.ListarTodos(h.DB)
	case auth.PerfilCliente:
		list, err = h.Repository.ListarPorCliente(h.DB, usuarioID)
	case auth.PerfilAdvogado:
		var abertos, meus []Caso
		abertos, err = h.Repository.ListarAbertos(h.DB)
		if err == nil {
			meus, err = h.Repository.ListarPorAdvogado(h.DB, usuarioID)
		}
		list = append(abertos, meus...)
	default:
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	if err != nil {
		http.Error(w, "erro ao listar casos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID trata GET /casos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)
	perfil := auth.PerfilDo(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de caso inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		responderErro(w, err)
		return
	}

	// Casos abertos são visíveis a advogados (vitrine); os demais só a
	// participantes e admin
	if !c.Participante(usuarioID) && perfil != auth.PerfilAdmin {
		if !(c.Status == StatusAberto && perfil == auth.PerfilAdvogado) {
			http.Error(w, "acesso negado", http.StatusForbidden)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}
