package notificacao

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
)

// EnviarWebhookAlerta repassa um alerta operacional para o webhook externo
// configurado em WEBHOOK_ALERTA_URL. Melhor esforço: falha só gera log.
func EnviarWebhookAlerta(titulo, mensagem string) {
	url := os.Getenv("WEBHOOK_ALERTA_URL")
	if url == "" {
		return
	}

	payload := map[string]string{
		"titulo":   titulo,
		"mensagem": mensagem,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		logrus.WithError(err).Warn("erro ao enviar webhook de alerta")
		return
	}
	defer resp.Body.Close()
}
