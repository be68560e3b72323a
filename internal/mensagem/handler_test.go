package mensagem

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/auth"
	"github.com/socialjuris/api-juridica/internal/erros"
	"github.com/socialjuris/api-juridica/internal/notificacao"
)

type fakeCasos struct {
	resumos map[uint]*ResumoCaso
}

func (f *fakeCasos) ResumoDoCaso(db *gorm.DB, id uint) (*ResumoCaso, error) {
	c, ok := f.resumos[id]
	if !ok {
		return nil, erros.ErrNaoEncontrado
	}
	return c, nil
}

type fakeRepo struct {
	criadas []Mensagem
}

func (f *fakeRepo) Criar(db *gorm.DB, m *Mensagem) error {
	m.ID = "m-fake"
	f.criadas = append(f.criadas, *m)
	return nil
}

func (f *fakeRepo) ListarPorCaso(db *gorm.DB, casoID uint) ([]Mensagem, error) {
	var out []Mensagem
	for _, m := range f.criadas {
		if m.CasoID == casoID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeNotificacoes struct {
	criadas []notificacao.Notificacao
}

func (f *fakeNotificacoes) Criar(db *gorm.DB, n *notificacao.Notificacao) error {
	n.ID = "n-fake"
	f.criadas = append(f.criadas, *n)
	return nil
}
func (f *fakeNotificacoes) ListarPorUsuario(db *gorm.DB, id uint) ([]notificacao.Notificacao, error) {
	return nil, nil
}
func (f *fakeNotificacoes) ContarNaoLidas(db *gorm.DB, id uint) (int64, error) { return 0, nil }
func (f *fakeNotificacoes) MarcarComoLida(db *gorm.DB, id string, usuarioID uint) error {
	return nil
}
func (f *fakeNotificacoes) MarcarTodasComoLidas(db *gorm.DB, usuarioID uint) error { return nil }

type fakeFeed struct {
	eventos []string
}

func (f *fakeFeed) Publicar(tabela, acao, id string) {
	f.eventos = append(f.eventos, tabela+":"+acao)
}

func comAutenticacao(r *http.Request, usuarioID uint, perfil string) *http.Request {
	ctx := context.WithValue(r.Context(), auth.CtxUserID, usuarioID)
	ctx = context.WithValue(ctx, auth.CtxPerfil, perfil)
	return r.WithContext(ctx)
}

func requisicaoEnvio(casoID string, usuarioID uint, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/casos/"+casoID+"/mensagens", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": casoID})
	return comAutenticacao(req, usuarioID, auth.PerfilCliente)
}

func TestEnviar(t *testing.T) {
	adv := uint(2)

	montar := func(resumo *ResumoCaso) (*Handler, *fakeRepo, *fakeNotificacoes, *fakeFeed) {
		repo := &fakeRepo{}
		notifs := &fakeNotificacoes{}
		feed := &fakeFeed{}
		h := &Handler{
			Repository:   repo,
			Casos:        &fakeCasos{resumos: map[uint]*ResumoCaso{resumo.ID: resumo}},
			Notificacoes: notifs,
			Feed:         feed,
		}
		return h, repo, notifs, feed
	}

	t.Run("mensagem em caso ativo notifica o outro participante", func(t *testing.T) {
		h, repo, notifs, feed := montar(&ResumoCaso{ID: 10, ClienteID: 1, AdvogadoID: &adv, Status: "Ativo"})
		rec := httptest.NewRecorder()

		h.Enviar(rec, requisicaoEnvio("10", 1, `{"conteudo": "Bom dia, doutora"}`))

		require.Equal(t, http.StatusCreated, rec.Code)

		var m Mensagem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
		assert.Equal(t, TipoTexto, m.Tipo) // tipo padrão
		assert.Equal(t, uint(1), m.AutorID)

		require.Len(t, repo.criadas, 1)
		require.Len(t, notifs.criadas, 1)
		assert.Equal(t, adv, notifs.criadas[0].UsuarioID)
		assert.Contains(t, feed.eventos, "mensagens:INSERT")
		assert.Contains(t, feed.eventos, "notificacoes:INSERT")
	})

	t.Run("sem advogado atribuído não há destinatário", func(t *testing.T) {
		h, repo, notifs, feed := montar(&ResumoCaso{ID: 10, ClienteID: 1, Status: "Aberto"})
		rec := httptest.NewRecorder()

		h.Enviar(rec, requisicaoEnvio("10", 1, `{"conteudo": "Alguém pode me ajudar?"}`))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, repo.criadas, 1)
		assert.Empty(t, notifs.criadas)
		assert.NotContains(t, feed.eventos, "notificacoes:INSERT")
	})

	t.Run("caso encerrado não recebe mensagens", func(t *testing.T) {
		h, repo, _, _ := montar(&ResumoCaso{ID: 10, ClienteID: 1, AdvogadoID: &adv, Status: "Encerrado"})
		rec := httptest.NewRecorder()

		h.Enviar(rec, requisicaoEnvio("10", 1, `{"conteudo": "Mais uma dúvida"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Empty(t, repo.criadas)
	})

	t.Run("terceiro não participa da conversa", func(t *testing.T) {
		h, _, _, _ := montar(&ResumoCaso{ID: 10, ClienteID: 1, AdvogadoID: &adv, Status: "Ativo"})
		rec := httptest.NewRecorder()

		h.Enviar(rec, requisicaoEnvio("10", 9, `{"conteudo": "Oi"}`))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("tipo sistema é reservado à plataforma", func(t *testing.T) {
		h, repo, _, _ := montar(&ResumoCaso{ID: 10, ClienteID: 1, AdvogadoID: &adv, Status: "Ativo"})
		rec := httptest.NewRecorder()

		h.Enviar(rec, requisicaoEnvio("10", 1, `{"conteudo": "x", "tipo": "sistema"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Empty(t, repo.criadas)
	})

	t.Run("conteúdo em branco é rejeitado", func(t *testing.T) {
		h, repo, _, _ := montar(&ResumoCaso{ID: 10, ClienteID: 1, Status: "Aberto"})
		rec := httptest.NewRecorder()

		h.Enviar(rec, requisicaoEnvio("10", 1, `{"conteudo": "   "}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Empty(t, repo.criadas)
	})
}

func TestListarPorCaso(t *testing.T) {
	adv := uint(2)
	resumo := &ResumoCaso{ID: 10, ClienteID: 1, AdvogadoID: &adv, Status: "Ativo"}
	repo := &fakeRepo{criadas: []Mensagem{{ID: "a", CasoID: 10, Conteudo: "oi"}}}
	h := &Handler{
		Repository:   repo,
		Casos:        &fakeCasos{resumos: map[uint]*ResumoCaso{10: resumo}},
		Notificacoes: &fakeNotificacoes{},
	}

	requisicao := func(usuarioID uint, perfil string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/casos/10/mensagens", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "10"})
		return comAutenticacao(req, usuarioID, perfil)
	}

	t.Run("participante lista", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ListarPorCaso(rec, requisicao(1, auth.PerfilCliente))

		require.Equal(t, http.StatusOK, rec.Code)

		var list []Mensagem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		assert.Len(t, list, 1)
	})

	t.Run("admin lista sem participar", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ListarPorCaso(rec, requisicao(99, auth.PerfilAdmin))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("terceiro não lista", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ListarPorCaso(rec, requisicao(9, auth.PerfilCliente))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
