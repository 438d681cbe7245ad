package worker

import (
	"context"
	"github.com/dodoman/backoffice/internal/entity"
	"github.com/rs/zerolog"
	"sync"
	"time"
)

// HealthChecker периодически проверяет доступность API N8N запросом списка
// заказов. Результат только логируется; содержимое заказов не используется,
// поэтому сбой запроса здесь безопасно игнорируется.
type HealthChecker struct {
	client   Pinger
	interval time.Duration
	wg       *sync.WaitGroup
	logger   zerolog.Logger
}

type Pinger interface {
	FetchAll(ctx context.Context) ([]entity.RawOrder, error)
}

func NewHealthChecker(c Pinger, interval time.Duration, wg *sync.WaitGroup, l zerolog.Logger) *HealthChecker {
	return &HealthChecker{
		client:   c,
		interval: interval,
		wg:       wg,
		logger:   l,
	}
}

func (c *HealthChecker) Do(ctx context.Context) {
	c.wg.Add(1)

	go c.run(ctx)
}

func (c *HealthChecker) run(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (c *HealthChecker) check(ctx context.Context) {
	orders, err := c.client.FetchAll(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("проверка доступности N8N не прошла")

		return
	}

	c.logger.Info().Int("orders", len(orders)).Msg("N8N отвечает")
}
