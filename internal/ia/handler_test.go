package ia

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerCalcularAtualizacao(t *testing.T) {
	h := NewHandler(&Cliente{HTTPClient: &http.Client{}})
	h.Agora = func() time.Time { return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC) }

	t.Run("calcula com índice padrão", func(t *testing.T) {
		body := `{"valor": 10000, "dataInicio": "2022-01-01"}`
		req := httptest.NewRequest(http.MethodPost, "/ia/atualizacao-monetaria", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.CalcularAtualizacao(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var res Atualizacao
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "IGPM", res.IndiceUsado)
		assert.InDelta(t, 13640.0, res.ValorAtualizado, 0.001)
		assert.Len(t, res.Detalhamento, 3)
	})

	t.Run("valor não positivo é rejeitado", func(t *testing.T) {
		body := `{"valor": 0, "dataInicio": "2022-01-01"}`
		req := httptest.NewRequest(http.MethodPost, "/ia/atualizacao-monetaria", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.CalcularAtualizacao(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("data inválida é rejeitada", func(t *testing.T) {
		body := `{"valor": 100, "dataInicio": "01/01/2022"}`
		req := httptest.NewRequest(http.MethodPost, "/ia/atualizacao-monetaria", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.CalcularAtualizacao(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
