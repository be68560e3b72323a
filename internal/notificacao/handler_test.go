package notificacao

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/auth"
	"github.com/socialjuris/api-juridica/internal/erros"
)

// fakeRepo replica em memória a semântica do repositório, inclusive a
// idempotência de marcar como lida.
type fakeRepo struct {
	notificacoes map[string]*Notificacao
	marcacoes    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{notificacoes: make(map[string]*Notificacao)}
}

func (f *fakeRepo) Criar(db *gorm.DB, n *Notificacao) error {
	f.notificacoes[n.ID] = n
	return nil
}

func (f *fakeRepo) ListarPorUsuario(db *gorm.DB, usuarioID uint) ([]Notificacao, error) {
	var out []Notificacao
	for _, n := range f.notificacoes {
		if n.UsuarioID == usuarioID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeRepo) ContarNaoLidas(db *gorm.DB, usuarioID uint) (int64, error) {
	var total int64
	for _, n := range f.notificacoes {
		if n.UsuarioID == usuarioID && !n.Lida {
			total++
		}
	}
	return total, nil
}

func (f *fakeRepo) MarcarComoLida(db *gorm.DB, id string, usuarioID uint) error {
	n, ok := f.notificacoes[id]
	if !ok || n.UsuarioID != usuarioID {
		return erros.ErrNaoEncontrado
	}
	if n.Lida {
		return nil
	}
	n.Lida = true
	f.marcacoes++
	return nil
}

func (f *fakeRepo) MarcarTodasComoLidas(db *gorm.DB, usuarioID uint) error {
	for _, n := range f.notificacoes {
		if n.UsuarioID == usuarioID {
			n.Lida = true
		}
	}
	return nil
}

func requisicaoUsuario(metodo, alvo string, usuarioID uint, vars map[string]string) *http.Request {
	req := httptest.NewRequest(metodo, alvo, nil)
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	ctx := context.WithValue(req.Context(), auth.CtxUserID, usuarioID)
	return req.WithContext(ctx)
}

func TestMarcarComoLida(t *testing.T) {
	t.Run("marcar duas vezes não é erro", func(t *testing.T) {
		repo := newFakeRepo()
		repo.notificacoes["n-1"] = &Notificacao{ID: "n-1", UsuarioID: 1}
		h := &Handler{Repository: repo}

		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			h.MarcarComoLida(rec, requisicaoUsuario(http.MethodPatch, "/notificacoes/n-1/lida", 1, map[string]string{"id": "n-1"}))
			assert.Equal(t, http.StatusNoContent, rec.Code)
		}

		assert.True(t, repo.notificacoes["n-1"].Lida)
		assert.Equal(t, 1, repo.marcacoes) // a segunda chamada não reescreve
	})

	t.Run("notificação de outro usuário não é alcançável", func(t *testing.T) {
		repo := newFakeRepo()
		repo.notificacoes["n-1"] = &Notificacao{ID: "n-1", UsuarioID: 2}
		h := &Handler{Repository: repo}
		rec := httptest.NewRecorder()

		h.MarcarComoLida(rec, requisicaoUsuario(http.MethodPatch, "/notificacoes/n-1/lida", 1, map[string]string{"id": "n-1"}))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, repo.notificacoes["n-1"].Lida)
	})
}

func TestContarNaoLidas(t *testing.T) {
	repo := newFakeRepo()
	repo.notificacoes["n-1"] = &Notificacao{ID: "n-1", UsuarioID: 1}
	repo.notificacoes["n-2"] = &Notificacao{ID: "n-2", UsuarioID: 1, Lida: true}
	repo.notificacoes["n-3"] = &Notificacao{ID: "n-3", UsuarioID: 2}
	h := &Handler{Repository: repo}

	rec := httptest.NewRecorder()
	h.ContarNaoLidas(rec, requisicaoUsuario(http.MethodGet, "/notificacoes/nao-lidas", 1, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"naoLidas": 1}`, rec.Body.String())
}

func TestMarcarTodasComoLidas(t *testing.T) {
	repo := newFakeRepo()
	repo.notificacoes["n-1"] = &Notificacao{ID: "n-1", UsuarioID: 1}
	repo.notificacoes["n-2"] = &Notificacao{ID: "n-2", UsuarioID: 1}
	repo.notificacoes["n-3"] = &Notificacao{ID: "n-3", UsuarioID: 2}
	h := &Handler{Repository: repo}

	rec := httptest.NewRecorder()
	h.MarcarTodasComoLidas(rec, requisicaoUsuario(http.MethodPost, "/notificacoes/marcar-todas", 1, nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, repo.notificacoes["n-1"].Lida)
	assert.True(t, repo.notificacoes["n-2"].Lida)
	assert.False(t, repo.notificacoes["n-3"].Lida) // só as do usuário
}
