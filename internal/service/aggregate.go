package service

import "github.com/dodoman/backoffice/internal/entity"

// Summarize считает итоги по нормализованным статусам оплаты за один проход.
// Каждый заказ попадает ровно в одну корзину, сумма корзин равна Total.
func Summarize(orders []entity.Order) entity.Summary {
	s := entity.Summary{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case entity.PaymentStatusPending:
			s.Pending++
		case entity.PaymentStatusSuccess:
			s.Successful++
		case entity.PaymentStatusFailed:
			s.Failed++
		case entity.PaymentStatusRefunded:
			s.Refunded++
		case entity.PaymentStatusCancelled:
			s.Cancelled++
		}
	}

	return s
}

// GroupByStatus группирует заказы по статусу оплаты в порядке первого
// появления статуса в списке.
func GroupByStatus(orders []entity.Order) []entity.StatusCount {
	index := map[entity.PaymentStatus]int{}
	groups := make([]entity.StatusCount, 0)
	for _, o := range orders {
		i, ok := index[o.Status]
		if !ok {
			i = len(groups)
			index[o.Status] = i
			groups = append(groups, entity.StatusCount{
				Status:      o.Status,
				DisplayName: o.StatusDisplay,
			})
		}
		groups[i].Count++
	}

	return groups
}

// GroupByMethod группирует заказы по способу оплаты в порядке первого
// появления. Доля считается от общего числа заказов; при пустом списке
// доли равны нулю.
func GroupByMethod(orders []entity.Order) []entity.MethodSummary {
	index := map[string]int{}
	groups := make([]entity.MethodSummary, 0)
	for _, o := range orders {
		i, ok := index[o.Method]
		if !ok {
			i = len(groups)
			index[o.Method] = i
			groups = append(groups, entity.MethodSummary{Method: o.Method})
		}
		groups[i].Count++
	}

	if total := len(orders); total > 0 {
		for i := range groups {
			groups[i].Percentage = float64(groups[i].Count) / float64(total) * 100
		}
	}

	return groups
}
