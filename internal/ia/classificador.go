// Package ia integra o serviço de classificação/análise jurídica por IA generativa.
// Toda falha do serviço é absorvida localmente: os chamadores recebem sempre
// um resultado válido (fallback determinístico), nunca um erro.
package ia

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/socialjuris/api-juridica/internal/precificacao"
)

// Classificacao é o resultado da triagem de um relato livre do cliente.
type Classificacao struct {
	Area         string `json:"area"`
	Titulo       string `json:"titulo"`
	Resumo       string `json:"resumo"`
	Complexidade string `json:"complexidade"`
}

// Cliente fala com a API generativa configurada via IA_API_URL / IA_API_KEY.
type Cliente struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

// NewCliente monta o cliente a partir das variáveis de ambiente.
func NewCliente() *Cliente {
	return &Cliente{
		URL:        os.Getenv("IA_API_URL"),
		APIKey:     os.Getenv("IA_API_KEY"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

const promptClassificacao = `Você é um triador jurídico. Dado o relato de um cliente, responda SOMENTE um JSON ` +
	`com os campos "area", "titulo", "resumo" e "complexidade" (Baixa, Média ou Alta). Relato: `

// Classificar envia o relato à IA e retorna área, título, resumo e complexidade.
// Qualquer falha (credencial ausente, timeout, resposta malformada) resulta no
// fallback determinístico, nunca em erro para o chamador.
func (c *Cliente) Classificar(ctx context.Context, descricao string) Classificacao {
	if c.URL == "" || c.APIKey == "" {
		return FallbackClassificacao(descricao)
	}

	corpo := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": promptClassificacao + descricao}}},
		},
	}
	payload, err := json.Marshal(corpo)
	if err != nil {
		return FallbackClassificacao(descricao)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return FallbackClassificacao(descricao)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("classificação IA indisponível, usando fallback")
		return FallbackClassificacao(descricao)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.StatusCode).Warn("classificação IA recusada, usando fallback")
		return FallbackClassificacao(descricao)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return FallbackClassificacao(descricao)
	}

	// O texto gerado vem embutido na resposta; extração leniente com gjson.
	texto := gjson.GetBytes(body, "candidates.0.content.parts.0.text").String()
	if texto == "" {
		return FallbackClassificacao(descricao)
	}

	res := Classificacao{
		Area:         gjson.Get(texto, "area").String(),
		Titulo:       gjson.Get(texto, "titulo").String(),
		Resumo:       gjson.Get(texto, "resumo").String(),
		Complexidade: gjson.Get(texto, "complexidade").String(),
	}
	if res.Area == "" || res.Titulo == "" || res.Resumo == "" || !precificacao.ComplexidadeValida(res.Complexidade) {
		return FallbackClassificacao(descricao)
	}
	return res
}

// FallbackClassificacao é o resultado fixo usado quando o serviço falha.
// É um resultado terminal válido, não um erro.
func FallbackClassificacao(descricao string) Classificacao {
	return Classificacao{
		Area:         "Direito Geral",
		Titulo:       "Nova Questão Jurídica",
		Resumo:       resumir(descricao, 100),
		Complexidade: precificacao.ComplexidadeMedia,
	}
}

func resumir(texto string, limite int) string {
	r := []rune(texto)
	if len(r) <= limite {
		return texto
	}
	return string(r[:limite]) + "…"
}
