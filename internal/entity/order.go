package entity

import (
	"strings"
	"time"
)

type RawOrder struct {
	RowNumber int    `json:"row_number"`
	Number    int    `json:"id"`
	Date      string `json:"date"`
	Customer  string `json:"name"`
	Method    string `json:"method"`
	Status    string `json:"status"`
}

type Order struct {
	Number        int           `json:"number"`
	Date          time.Time     `json:"date"`
	Customer      string        `json:"customerName"`
	Method        string        `json:"paymentMethod"`
	RawStatus     string        `json:"-"`
	Status        PaymentStatus `json:"paymentStatus"`
	StatusDisplay string        `json:"paymentStatusDisplay"`
	StatusClass   string        `json:"paymentStatusClass"`
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSuccess   PaymentStatus = "SUCCESS"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

var statusMap = map[string]PaymentStatus{
	"pending":   PaymentStatusPending,
	"success":   PaymentStatusSuccess,
	"failed":    PaymentStatusFailed,
	"refunded":  PaymentStatusRefunded,
	"cancelled": PaymentStatusCancelled,
}

var statusDisplayNames = map[string]map[PaymentStatus]string{
	"en": {
		PaymentStatusPending:   "Pending",
		PaymentStatusSuccess:   "Paid",
		PaymentStatusFailed:    "Failed",
		PaymentStatusRefunded:  "Refunded",
		PaymentStatusCancelled: "Cancelled",
	},
	"zh-TW": {
		PaymentStatusPending:   "待付款",
		PaymentStatusSuccess:   "已付款",
		PaymentStatusFailed:    "付款失敗",
		PaymentStatusRefunded:  "已退款",
		PaymentStatusCancelled: "已取消",
	},
}

// ParsePaymentStatus приводит текстовый статус оплаты из ответа N8N к enum.
// Неизвестные значения считаются PaymentStatusPending.
func ParsePaymentStatus(s string) PaymentStatus {
	if status, ok := statusMap[strings.ToLower(strings.TrimSpace(s))]; ok {
		return status
	}

	return PaymentStatusPending
}

func (s PaymentStatus) DisplayName(locale string) string {
	names, ok := statusDisplayNames[locale]
	if !ok {
		names = statusDisplayNames["en"]
	}

	if name, ok := names[s]; ok {
		return name
	}

	return "Unknown"
}

func (s PaymentStatus) CSSClass() string {
	switch s {
	case PaymentStatusPending:
		return "badge bg-warning"
	case PaymentStatusSuccess:
		return "badge bg-success"
	case PaymentStatusFailed:
		return "badge bg-danger"
	case PaymentStatusRefunded:
		return "badge bg-info"
	case PaymentStatusCancelled:
		return "badge bg-secondary"
	}

	return "badge bg-light"
}

// OrderFromRaw строит отображаемый заказ из записи N8N. Если дата заказа
// не распознается, в Date остается нулевое значение time.Time.
func OrderFromRaw(r RawOrder, locale string) Order {
	date, _ := ParseOrderDate(r.Date)
	status := ParsePaymentStatus(r.Status)

	return Order{
		Number:        r.Number,
		Date:          date,
		Customer:      r.Customer,
		Method:        FormatPaymentMethod(r.Method),
		RawStatus:     r.Status,
		Status:        status,
		StatusDisplay: status.DisplayName(locale),
		StatusClass:   status.CSSClass(),
	}
}

var orderDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ParseOrderDate разбирает дату заказа. N8N отдает дату текстом без
// фиксированного формата, поэтому перебираются известные варианты.
func ParseOrderDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func FormatPaymentMethod(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "credit card":
		return "Credit Card"
	case "bank transfer":
		return "Bank Transfer"
	}

	return method
}
