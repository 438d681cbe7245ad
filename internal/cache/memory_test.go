package cache

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestMemory_GetSet(t *testing.T) {
	c := NewMemory(time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok, "промах для отсутствующего ключа")

	c.Set("key", "value", time.Minute)
	v, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	c.Set("key", "other", time.Minute)
	v, _ = c.Get("key")
	assert.Equal(t, "other", v, "повторный Set перезаписывает значение")
}

func TestMemory_Expiration(t *testing.T) {
	c := NewMemory(time.Minute)

	c.Set("key", "value", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("key")
	assert.False(t, ok, "запись не возвращается после истечения срока жизни")
}

func TestMemory_Remove(t *testing.T) {
	c := NewMemory(time.Minute)

	c.Set("key", "value", time.Minute)
	c.Remove("key")

	assert.False(t, c.Exists("key"))

	c.Remove("missing") // удаление отсутствующего ключа не ошибка
}

func TestMemory_RemoveByPrefix(t *testing.T) {
	c := NewMemory(time.Minute)

	c.Set("all_orders_2024-01-15-10", "a", time.Minute)
	c.Set("all_orders_2024-01-15-11", "b", time.Minute)
	c.Set("order_42", "c", time.Minute)

	c.RemoveByPrefix("all_orders_")

	assert.False(t, c.Exists("all_orders_2024-01-15-10"))
	assert.False(t, c.Exists("all_orders_2024-01-15-11"))
	assert.True(t, c.Exists("order_42"), "записи без префикса сохраняются")
}

func TestMemory_Exists(t *testing.T) {
	c := NewMemory(time.Minute)

	assert.False(t, c.Exists("key"))

	c.Set("key", "value", time.Minute)
	assert.True(t, c.Exists("key"))
}
