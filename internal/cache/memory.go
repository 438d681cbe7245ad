package cache

import (
	gocache "github.com/patrickmn/go-cache"
	"strings"
	"time"
)

const (
	DefaultTTL      = 30 * time.Minute
	cleanupInterval = 10 * time.Minute
)

// Memory хранит записи в памяти процесса с абсолютным сроком жизни каждой
// записи. Безопасен для конкурентного доступа; при конкурентных Set по
// одному ключу остается последняя запись.
type Memory struct {
	store *gocache.Cache
}

func NewMemory(defaultTTL time.Duration) *Memory {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}

	return &Memory{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (c *Memory) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set сохраняет значение, перезаписывая существующую запись. При ttl <= 0
// используется срок жизни по умолчанию.
func (c *Memory) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}

	c.store.Set(key, value, ttl)
}

func (c *Memory) Remove(key string) {
	c.store.Delete(key)
}

// RemoveByPrefix удаляет все записи с ключами, начинающимися с prefix.
// Перебирает все ключи, O(n) — приемлемо при небольшом числе записей
// (часовые срезы списка заказов и отдельные заказы).
func (c *Memory) RemoveByPrefix(prefix string) {
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}
}

func (c *Memory) Exists(key string) bool {
	_, ok := c.store.Get(key)

	return ok
}
