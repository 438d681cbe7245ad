package handler

import (
	"github.com/rs/zerolog"
	"net/http"
	"time"
)

type Webhook struct {
	invalidator CacheInvalidator
	logger      zerolog.Logger
}

type CacheInvalidator interface {
	InvalidateAll()
	InvalidateOrder(number int)
	HandleChangeEvent(eventType string, payload any)
}

func NewWebhook(i CacheInvalidator, l zerolog.Logger) *Webhook {
	return &Webhook{
		invalidator: i,
		logger:      l,
	}
}

// OrderUpdated обрабатывает вебхук N8N об изменении заказа и сбрасывает
// его кэш. Если номер заказа не читается как число, сбрасываются все
// срезы списка: устаревший заказ может оставаться в любом из них.
func (h *Webhook) OrderUpdated(w http.ResponseWriter, r *http.Request) {
	req := OrderUpdatedRequest{}
	if err := readJSONBody(&req, r); err != nil {
		badRequest(w)

		return
	}

	h.logger.Info().
		Str("order", string(req.OrderNumber)).
		Str("type", req.ChangeType).
		Msg("получен вебхук об изменении заказа")

	if number, ok := req.OrderNumber.Int(); ok {
		h.invalidator.InvalidateOrder(number)
	} else {
		h.invalidator.InvalidateAll()
	}

	responseAsJSON(w, WebhookResponse{Success: true, Message: "cache invalidated"}, http.StatusOK)
}

// DataChanged обрабатывает вебхук N8N об изменении данных. Неизвестные
// типы событий игнорируются, ответ в любом случае успешный.
func (h *Webhook) DataChanged(w http.ResponseWriter, r *http.Request) {
	req := DataChangedRequest{}
	if err := readJSONBody(&req, r); err != nil {
		badRequest(w)

		return
	}

	h.logger.Info().Str("type", req.ChangeType).Msg("получен вебхук об изменении данных")

	h.invalidator.HandleChangeEvent(req.ChangeType, req.Data)

	responseAsJSON(w, WebhookResponse{Success: true, Message: "webhook processed"}, http.StatusOK)
}

// Health отвечает на проверку доступности со стороны N8N.
func (h *Webhook) Health(w http.ResponseWriter, _ *http.Request) {
	resp := struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		Service   string    `json:"service"`
	}{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   "backoffice n8n webhook",
	}
	responseAsJSON(w, resp, http.StatusOK)
}
