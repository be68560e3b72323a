package usuario

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/assinatura"
	"github.com/socialjuris/api-juridica/internal/auth"
	"github.com/socialjuris/api-juridica/internal/erros"
	"github.com/socialjuris/api-juridica/internal/notificacao"
	"github.com/socialjuris/api-juridica/internal/realtime"
	"github.com/socialjuris/api-juridica/internal/utils"
)

// request DTOs
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type registrarRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Perfil   string `json:"perfil"`
	OAB      string `json:"oab"`
	Telefone string `json:"telefone"`
}

type atualizarRequest struct {
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Bio      string `json:"bio"`
	Foto     string `json:"foto"`
	OAB      string `json:"oab"`
}

// Handler encapsula DB, repository e colaboradores
type Handler struct {
	DB           *gorm.DB
	Repository   Repository
	Notificacoes notificacao.Repository
	Assinaturas  assinatura.Repository
	Feed         realtime.Publicador
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, feed realtime.Publicador) *Handler {
	return &Handler{
		DB:           db,
		Repository:   NewRepository(),
		Notificacoes: notificacao.NewRepository(),
		Assinaturas:  assinatura.NewRepository(),
		Feed:         feed,
	}
}

// Registrar cadastra novo usuário (rota pública). Clientes nascem
// verificados; advogados aguardam a verificação do admin.
func (h *Handler) Registrar(w http.ResponseWriter, r *http.Request) {
	var req registrarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Nome) == "" || strings.TrimSpace(req.Email) == "" || len(req.Senha) < 6 {
		http.Error(w, "nome, email e senha (mínimo 6 caracteres) são obrigatórios", http.StatusUnprocessableEntity)
		return
	}
	if !PerfilValido(req.Perfil) {
		http.Error(w, "perfil inválido", http.StatusUnprocessableEntity)
		return
	}
	if req.Perfil == auth.PerfilAdvogado && strings.TrimSpace(req.OAB) == "" {
		http.Error(w, "advogados devem informar o registro OAB", http.StatusUnprocessableEntity)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Nome:       req.Nome,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Senha:      hash,
		Perfil:     req.Perfil,
		Verificado: req.Perfil == auth.PerfilCliente,
		OAB:        req.OAB,
		Telefone:   req.Telefone,
	}

	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		http.Error(w, "erro ao salvar usuário", http.StatusInternalServerError)
		return
	}

	// Avisa a operação que há um advogado aguardando verificação
	if u.EhAdvogado() {
		go notificacao.EnviarWebhookAlerta(
			"Novo advogado aguardando verificação",
			fmt.Sprintf("%s (OAB %s) se cadastrou e aguarda verificação.", u.Nome, u.OAB),
		)
	}

	if h.Feed != nil {
		h.Feed.Publicar("usuarios", realtime.AcaoInsert, fmt.Sprint(u.ID))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}

// Login gera access + refresh token para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorEmail(h.DB, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		http.Error(w, erros.ErrCredenciais.Error(), http.StatusUnauthorized)
		return
	}
	if !utils.VerificarSenha(u.Senha, req.Senha) {
		http.Error(w, erros.ErrCredenciais.Error(), http.StatusUnauthorized)
		return
	}

	token, err := auth.IssueTokensOnLogin(h.DB, w, u.ID, u.Perfil)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"token": token, "usuario": u})
}

type recuperarSenhaRequest struct {
	Email string `json:"email"`
}

// RecuperarSenha gera uma senha temporária para o email informado. A resposta
// é sempre 204 para não revelar quais emails existem na base; o envio real da
// senha fica a cargo do canal configurado (webhook operacional).
func (h *Handler) RecuperarSenha(w http.ResponseWriter, r *http.Request) {
	var req recuperarSenhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorEmail(h.DB, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	temporaria, err := utils.GerarSenhaTemporaria()
	if err != nil {
		http.Error(w, "erro ao gerar senha temporária", http.StatusInternalServerError)
		return
	}
	hash, err := utils.HashSenha(temporaria)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u.Senha = hash
	if err := h.Repository.Salvar(h.DB, u); err != nil {
		http.Error(w, "erro ao redefinir senha", http.StatusInternalServerError)
		return
	}

	go notificacao.EnviarWebhookAlerta(
		"Senha temporária emitida",
		fmt.Sprintf("Usuário %s solicitou recuperação de senha.", u.Email),
	)

	w.WriteHeader(http.StatusNoContent)
}

// Me retorna o usuário logado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Repository.BuscarPorID(h.DB, auth.UsuarioDo(r))
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

// Listar retorna todos (admin) ou apenas o próprio registro
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)

	if auth.PerfilDo(r) == auth.PerfilAdmin {
		usuarios, err := h.Repository.ListarTodos(h.DB)
		if err != nil {
			http.Error(w, "erro ao listar usuários", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(usuarios)
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, usuarioID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode([]Usuario{*u})
}

// ListarAdvogados é a vitrine de advogados do marketplace.
func (h *Handler) ListarAdvogados(w http.ResponseWriter, r *http.Request) {
	advogados, err := h.Repository.ListarAdvogados(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar advogados", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(advogados)
}

// BuscarPorID retorna um usuário pelo ID. Perfis de advogado são públicos
// para usuários autenticados (vitrine do marketplace); os demais, só o
// próprio ou admin.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)
	perfil := auth.PerfilDo(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}

	if !u.EhAdvogado() && uint(id) != usuarioID && perfil != auth.PerfilAdmin {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

// Atualizar altera dados de perfil; email e perfil são imutáveis
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)
	perfil := auth.PerfilDo(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if uint(id) != usuarioID && perfil != auth.PerfilAdmin {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req atualizarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	dados := Usuario{Nome: req.Nome, Telefone: req.Telefone, Bio: req.Bio, Foto: req.Foto, OAB: req.OAB}
	if err := h.Repository.Atualizar(h.DB, uint(id), &dados); err != nil {
		if errors.Is(err, erros.ErrNaoEncontrado) {
			http.Error(w, "usuário não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao atualizar usuário", http.StatusInternalServerError)
		return
	}

	if h.Feed != nil {
		h.Feed.Publicar("usuarios", realtime.AcaoUpdate, fmt.Sprint(id))
	}

	u, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

// Resumo constrói o DTO do painel do usuário
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)

	idParam := usuarioID
	if auth.PerfilDo(r) == auth.PerfilAdmin {
		if idStr := mux.Vars(r)["id"]; idStr != "" {
			if i, err := strconv.Atoi(idStr); err == nil {
				idParam = uint(i)
			}
		}
	}

	u, err := h.Repository.BuscarPorID(h.DB, idParam)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}

	var statusCasos []string
	_ = h.DB.Table("casos").
		Where("cliente_id = ? OR advogado_id = ?", u.ID, u.ID).
		Pluck("status", &statusCasos).Error

	naoLidas, _ := h.Notificacoes.ContarNaoLidas(h.DB, u.ID)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(MontarResumoUsuarioDTO(*u, statusCasos, int(naoLidas)))
}

// AssinarPremium trata POST /premium/assinar. Cobrança simulada: a assinatura
// sempre sucede e fica ativa até revogação explícita.
func (h *Handler) AssinarPremium(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UsuarioDo(r)

	u, err := h.Repository.BuscarPorID(h.DB, usuarioID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	if !u.EhAdvogado() {
		http.Error(w, "o plano premium é exclusivo para advogados", http.StatusForbidden)
		return
	}

	if err := h.Repository.DefinirPremium(h.DB, usuarioID, true); err != nil {
		http.Error(w, "erro ao ativar premium", http.StatusInternalServerError)
		return
	}
	_ = h.Assinaturas.Criar(h.DB, &assinatura.Assinatura{UsuarioID: usuarioID})

	n := notificacao.Notificacao{
		UsuarioID: usuarioID,
		Titulo:    "Bem-vindo ao Premium",
		Mensagem:  "Sua assinatura premium está ativa. Aproveite as ferramentas exclusivas.",
		Tipo:      notificacao.TipoSucesso,
	}
	if err := h.Notificacoes.Criar(h.DB, &n); err == nil && h.Feed != nil {
		h.Feed.Publicar("notificacoes", realtime.AcaoInsert, n.ID)
	}

	if h.Feed != nil {
		h.Feed.Publicar("usuarios", realtime.AcaoUpdate, fmt.Sprint(usuarioID))
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("assinatura premium ativada"))
}

// MinhasAssinaturas lista o histórico premium do usuário logado
func (h *Handler) MinhasAssinaturas(w http.ResponseWriter, r *http.Request) {
	list, err := h.Assinaturas.ListarPorUsuario(h.DB, auth.UsuarioDo(r))
	if err != nil {
		http.Error(w, "erro ao listar assinaturas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

type definirPremiumRequest struct {
	Premium bool `json:"premium"`
}

// DefinirPremium é o override do admin, sem notificação
func (h *Handler) DefinirPremium(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req definirPremiumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.DefinirPremium(h.DB, uint(id), req.Premium); err != nil {
		if errors.Is(err, erros.ErrNaoEncontrado) {
			http.Error(w, "usuário não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao atualizar premium", http.StatusInternalServerError)
		return
	}
	if req.Premium {
		_ = h.Assinaturas.Criar(h.DB, &assinatura.Assinatura{UsuarioID: uint(id)})
	} else {
		_ = h.Assinaturas.EncerrarAtivas(h.DB, uint(id))
	}

	if h.Feed != nil {
		h.Feed.Publicar("usuarios", realtime.AcaoUpdate, fmt.Sprint(id))
	}

	w.WriteHeader(http.StatusNoContent)
}

// VerificarAdvogado trata PATCH /usuarios/{id}/verificar (admin).
// Transição irreversível false→true, com notificação ao advogado.
func (h *Handler) VerificarAdvogado(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	if !u.EhAdvogado() {
		http.Error(w, "apenas advogados passam por verificação", http.StatusUnprocessableEntity)
		return
	}
	if u.Verificado {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.Repository.Verificar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao verificar advogado", http.StatusInternalServerError)
		return
	}

	n := notificacao.Notificacao{
		UsuarioID: uint(id),
		Titulo:    "Cadastro verificado",
		Mensagem:  "Seu registro profissional foi verificado. Você já pode aceitar casos.",
		Tipo:      notificacao.TipoSucesso,
	}
	if err := h.Notificacoes.Criar(h.DB, &n); err == nil && h.Feed != nil {
		h.Feed.Publicar("notificacoes", realtime.AcaoInsert, n.ID)
	}

	if h.Feed != nil {
		h.Feed.Publicar("usuarios", realtime.AcaoUpdate, fmt.Sprint(id))
	}

	w.WriteHeader(http.StatusNoContent)
}

// RejeitarAdvogado trata POST /usuarios/{id}/rejeitar (admin). Não persiste
// estado: só avisa o advogado para corrigir o cadastro e tentar de novo.
func (h *Handler) RejeitarAdvogado(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	if !u.EhAdvogado() || u.Verificado {
		http.Error(w, "usuário não está aguardando verificação", http.StatusUnprocessableEntity)
		return
	}

	n := notificacao.Notificacao{
		UsuarioID: uint(id),
		Titulo:    "Verificação não aprovada",
		Mensagem:  "Não foi possível verificar seu registro. Revise os dados do cadastro e tente novamente.",
		Tipo:      notificacao.TipoAlerta,
	}
	if err := h.Notificacoes.Criar(h.DB, &n); err == nil && h.Feed != nil {
		h.Feed.Publicar("notificacoes", realtime.AcaoInsert, n.ID)
	}

	w.WriteHeader(http.StatusNoContent)
}
