// Package notifier emite o sinal "dados de vendas mudaram" para a camada de
// tempo real, externa a esta API.
package notifier

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-manager-api/internal/config"
	"github.com/vfg2006/order-manager-api/internal/usecases/selling"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type changedPayload struct {
	Event  string `json:"event"`
	SaleID string `json:"sale_id"`
	SentAt string `json:"sent_at"`
}

// WebhookNotifier entrega o sinal por POST no webhook configurado.
// Sem URL configurada, a emissão vira apenas uma linha de log.
type WebhookNotifier struct {
	httpClient *http.Client
	url        string
}

func NewWebhookNotifier(cfg *config.Config) selling.ChangeNotifier {
	return &WebhookNotifier{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		url: cfg.Notifier.WebhookURL,
	}
}

func (n *WebhookNotifier) NotifySalesChanged(ctx context.Context, saleID string) error {
	if n.url == "" {
		logrus.WithField("sale_id", saleID).Debug("Notificação de mudança de vendas sem webhook configurado")
		return nil
	}

	payload := changedPayload{
		Event:  "sales_changed",
		SaleID: saleID,
		SentAt: time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao serializar notificação: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("erro ao montar requisição de notificação: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao entregar notificação: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook de notificação respondeu %s", resp.Status)
	}

	return nil
}
