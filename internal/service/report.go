package service

import (
	"context"
	"github.com/dodoman/backoffice/internal/entity"
	"github.com/rs/zerolog"
	"strconv"
	"strings"
	"time"
)

const (
	csvHeader     = "Order Number,Order Date,Customer Name,Payment Method,Payment Status"
	csvDateFormat = "2006-01-02 15:04"
)

type Report struct {
	orders OrderProvider
	logger zerolog.Logger
	now    func() time.Time
}

type OrderProvider interface {
	FilteredOrders(ctx context.Context, f entity.Filter) ([]entity.Order, error)
}

func NewReport(o OrderProvider, l zerolog.Logger) *Report {
	return &Report{
		orders: o,
		logger: l,
		now:    time.Now,
	}
}

// ExportCSV выгружает полный отфильтрованный набор заказов без постраничного
// среза. Все поля экранируются кавычками; нераспознанная дата выгружается
// пустым полем.
func (s *Report) ExportCSV(ctx context.Context, f entity.Filter) ([]byte, error) {
	orders, err := s.orders.FilteredOrders(ctx, f)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(csvHeader + "\n")
	for _, o := range orders {
		date := ""
		if !o.Date.IsZero() {
			date = o.Date.Format(csvDateFormat)
		}

		fields := []string{strconv.Itoa(o.Number), date, o.Customer, o.Method, o.StatusDisplay}
		for i, field := range fields {
			fields[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		}
		b.WriteString(strings.Join(fields, ",") + "\n")
	}

	s.logger.Debug().Int("orders", len(orders)).Msg("сформирована CSV-выгрузка")

	return []byte(b.String()), nil
}

// DashboardSummary собирает сводку для главной страницы: итоги по статусам,
// заказы за сегодня, доля успешных оплат и распределение по способам оплаты.
func (s *Report) DashboardSummary(ctx context.Context) (entity.DashboardSummary, error) {
	orders, err := s.orders.FilteredOrders(ctx, entity.Filter{})
	if err != nil {
		return entity.DashboardSummary{}, err
	}

	summary := Summarize(orders)

	today := startOfDay(s.now())
	todayCount := 0
	for _, o := range orders {
		if !o.Date.IsZero() && startOfDay(o.Date).Equal(today) {
			todayCount++
		}
	}

	rate := 0.0
	if summary.Total > 0 {
		rate = float64(summary.Successful) / float64(summary.Total) * 100
	}

	return entity.DashboardSummary{
		TotalOrders:      summary.Total,
		TodayOrders:      todayCount,
		PendingOrders:    summary.Pending,
		SuccessfulOrders: summary.Successful,
		SuccessRate:      rate,
		PaymentMethods:   GroupByMethod(orders),
	}, nil
}
