package service

import (
	"github.com/rs/zerolog"
	"strconv"
	"strings"
)

// Invalidation сбрасывает записи кэша заказов по уведомлениям N8N об
// изменении данных. Ошибок не возвращает: сбой сброса означает лишь, что
// срез переживет до конца часового интервала.
type Invalidation struct {
	cache  InvalidationCache
	logger zerolog.Logger
}

type InvalidationCache interface {
	Remove(key string)
	RemoveByPrefix(prefix string)
	Exists(key string) bool
}

var changeEvents = map[string]struct{}{
	"order.created":          {},
	"order.updated":          {},
	"order.status.changed":   {},
	"payment.status.changed": {},
}

func NewInvalidation(c InvalidationCache, l zerolog.Logger) *Invalidation {
	return &Invalidation{
		cache:  c,
		logger: l,
	}
}

// InvalidateAll удаляет все кэшированные срезы списка заказов.
func (s *Invalidation) InvalidateAll() {
	s.cache.RemoveByPrefix(allOrdersKeyPrefix)
	s.logger.Info().Msg("кэш списков заказов сброшен")
}

// InvalidateOrder удаляет запись отдельного заказа и все срезы списка:
// устаревший заказ может оставаться в кэшированных списках.
func (s *Invalidation) InvalidateOrder(number int) {
	key := orderKeyPrefix + strconv.Itoa(number)
	if s.cache.Exists(key) {
		s.cache.Remove(key)
	}

	s.InvalidateAll()
	s.logger.Info().Int("order", number).Msg("кэш заказа сброшен")
}

// HandleChangeEvent обрабатывает уведомление N8N об изменении данных.
// Известные типы событий приводят к полному сбросу кэша списков,
// неизвестные игнорируются.
func (s *Invalidation) HandleChangeEvent(eventType string, payload any) {
	if _, ok := changeEvents[strings.ToLower(eventType)]; !ok {
		s.logger.Debug().Str("type", eventType).Msg("необрабатываемый тип события")

		return
	}

	s.InvalidateAll()
}
