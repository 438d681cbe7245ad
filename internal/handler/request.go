package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/dodoman/backoffice/internal/entity"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	queryDateFormat  = "2006-01-02"
	defaultPage      = 1
	defaultPageSize  = 20
	defaultWindowDay = 30
)

type OrderListRequest struct {
	StartDate     time.Time `validate:"omitempty,notfuture"`
	EndDate       time.Time `validate:"omitempty,notfuture,gtefield=StartDate"`
	OrderNumber   int       `validate:"omitempty,min=1"`
	CustomerName  string    `validate:"omitempty,max=100"`
	PaymentMethod string    `validate:"omitempty,max=50"`
	PaymentStatus string    `validate:"omitempty,max=50"`
	Page          int       `validate:"min=1"`
	PageSize      int       `validate:"min=1,max=100"`
}

type OrderUpdatedRequest struct {
	OrderNumber OrderNumber `json:"orderNumber"`
	ChangeType  string      `json:"changeType"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type OrderNumber string

// UnmarshalJSON принимает номер заказа и числом, и строкой: N8N присылает
// оба варианта в зависимости от workflow.
func (n *OrderNumber) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		*n = OrderNumber(v)
	case float64:
		*n = OrderNumber(strconv.FormatFloat(v, 'f', -1, 64))
	case nil:
		*n = ""
	default:
		return fmt.Errorf("unexpected order number type %T", raw)
	}

	return nil
}

func (n OrderNumber) Int() (int, bool) {
	number, err := strconv.Atoi(string(n))

	return number, err == nil
}

type DataChangedRequest struct {
	ChangeType string          `json:"changeType"`
	Data       json.RawMessage `json:"data"`
	Timestamp  time.Time       `json:"timestamp"`
}

type Validator interface {
	Struct(ctx context.Context, s any) error
	Var(ctx context.Context, field any, tag string) error
}

// parseOrderListRequest разбирает query-параметры листинга. Номер страницы
// и размер страницы получают значения по умолчанию; нечитаемые числа и
// даты возвращаются ошибкой.
func parseOrderListRequest(r *http.Request) (OrderListRequest, error) {
	q := r.URL.Query()
	req := OrderListRequest{
		CustomerName:  q.Get("customerName"),
		PaymentMethod: q.Get("paymentMethod"),
		PaymentStatus: q.Get("paymentStatus"),
		Page:          defaultPage,
		PageSize:      defaultPageSize,
	}

	var err error
	if req.StartDate, err = parseDateParam(q, "startDate"); err != nil {
		return req, err
	}
	if req.EndDate, err = parseDateParam(q, "endDate"); err != nil {
		return req, err
	}
	if req.OrderNumber, err = parseIntParam(q, "orderNumber", 0); err != nil {
		return req, err
	}
	if req.Page, err = parseIntParam(q, "page", defaultPage); err != nil {
		return req, err
	}
	if req.PageSize, err = parseIntParam(q, "pageSize", defaultPageSize); err != nil {
		return req, err
	}

	return req, nil
}

func parseDateParam(q url.Values, name string) (time.Time, error) {
	v := q.Get(name)
	if v == "" {
		return time.Time{}, nil
	}

	return time.Parse(queryDateFormat, v)
}

func parseIntParam(q url.Values, name string, def int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}

	return strconv.Atoi(v)
}

// Filter преобразует параметры запроса в фильтр сервиса. Если обе границы
// периода не заданы, подставляется окно за последние 30 дней.
func (req OrderListRequest) Filter(now time.Time) entity.Filter {
	f := entity.Filter{
		Customer: req.CustomerName,
		Method:   req.PaymentMethod,
		Status:   req.PaymentStatus,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	if req.OrderNumber != 0 {
		number := req.OrderNumber
		f.Number = &number
	}

	switch {
	case req.StartDate.IsZero() && req.EndDate.IsZero():
		start := now.AddDate(0, 0, -defaultWindowDay)
		f.StartDate = &start
		end := now
		f.EndDate = &end
	default:
		if !req.StartDate.IsZero() {
			start := req.StartDate
			f.StartDate = &start
		}
		if !req.EndDate.IsZero() {
			end := req.EndDate
			f.EndDate = &end
		}
	}

	return f
}

func readJSONBody(v any, r *http.Request) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}
