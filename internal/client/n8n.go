package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/dodoman/backoffice/internal/entity"
	"github.com/imroc/req/v3"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// N8N выполняет запросы к API сервиса автоматизации N8N, который отдает
// список заказов интернет-магазина.
type N8N struct {
	req *req.Client
	url string
}

func NewN8N(url, apiKey string, timeout time.Duration) *N8N {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := req.C().SetTimeout(timeout)
	if apiKey != "" {
		c.SetCommonBearerAuthToken(apiKey)
	}

	return &N8N{
		req: c,
		url: url,
	}
}

// FetchAll загружает полный список заказов. Корректный JSON с пустым
// массивом означает отсутствие заказов; ошибка сети, не-2xx код, пустое
// тело, HTML вместо JSON и нечитаемый JSON возвращаются ошибкой, чтобы
// вызывающий мог отличить "нет заказов" от "N8N недоступен".
func (c *N8N) FetchAll(ctx context.Context) ([]entity.RawOrder, error) {
	resp, err := c.req.R().
		SetContext(ctx).
		Get(c.url)
	if err != nil {
		return nil, err
	}

	if resp.IsErrorState() {
		return nil, fmt.Errorf("server responded with status code %d", resp.StatusCode)
	}

	body := strings.TrimSpace(resp.String())
	if body == "" {
		return nil, errors.New("empty response body")
	}

	// N8N при сбое workflow может отдать HTML-страницу с кодом 200.
	if strings.Contains(resp.GetContentType(), "text/html") || strings.HasPrefix(body, "<") {
		return nil, fmt.Errorf("response is not JSON, content type %q", resp.GetContentType())
	}

	var orders []entity.RawOrder
	if err := json.Unmarshal([]byte(body), &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	return orders, nil
}
