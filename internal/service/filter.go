package service

import (
	"github.com/dodoman/backoffice/internal/entity"
	"strings"
	"time"
)

// ApplyFilter применяет фильтр к списку заказов. Условия объединяются по И,
// порядок заказов сохраняется. Даты сравниваются с точностью до дня, обе
// границы включаются; заказ с нечитаемой датой отбрасывается, если задана
// хотя бы одна граница периода.
func ApplyFilter(orders []entity.RawOrder, f entity.Filter) []entity.RawOrder {
	filtered := make([]entity.RawOrder, 0, len(orders))
	for _, o := range orders {
		if matchesFilter(o, f) {
			filtered = append(filtered, o)
		}
	}

	return filtered
}

func matchesFilter(o entity.RawOrder, f entity.Filter) bool {
	if f.Number != nil && o.Number != *f.Number {
		return false
	}

	if f.Customer != "" && !strings.Contains(strings.ToLower(o.Customer), strings.ToLower(f.Customer)) {
		return false
	}

	if f.Method != "" && !strings.EqualFold(o.Method, f.Method) {
		return false
	}

	// Статус сравнивается с исходной строкой N8N, не с нормализованным enum.
	if f.Status != "" && !strings.EqualFold(o.Status, f.Status) {
		return false
	}

	if f.StartDate != nil || f.EndDate != nil {
		date, ok := entity.ParseOrderDate(o.Date)
		if !ok {
			return false
		}

		day := startOfDay(date)
		if f.StartDate != nil && day.Before(startOfDay(*f.StartDate)) {
			return false
		}
		if f.EndDate != nil && day.After(startOfDay(*f.EndDate)) {
			return false
		}
	}

	return true
}

// startOfDay приводит время к началу его календарного дня в UTC. Даты
// заказов разбираются в UTC, а границы периода строятся от локального
// времени сервера, поэтому сравнивать можно только календарные дни,
// приведенные к одной зоне.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
