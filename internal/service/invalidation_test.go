package service

import (
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"testing"
)

type InvalidationCacheMock struct {
	mock.Mock
}

func (m *InvalidationCacheMock) Remove(key string) {
	m.Called(key)
}

func (m *InvalidationCacheMock) RemoveByPrefix(prefix string) {
	m.Called(prefix)
}

func (m *InvalidationCacheMock) Exists(key string) bool {
	args := m.Called(key)

	return args.Bool(0)
}

func TestInvalidation_InvalidateAll(t *testing.T) {
	store := &InvalidationCacheMock{}
	store.On("RemoveByPrefix", "all_orders_").Once()
	service := NewInvalidation(store, zerolog.Nop())

	service.InvalidateAll()

	store.AssertExpectations(t)
}

func TestInvalidation_InvalidateOrder(t *testing.T) {
	store := &InvalidationCacheMock{}
	store.On("Exists", "order_42").Return(true).Once()
	store.On("Remove", "order_42").Once()
	store.On("RemoveByPrefix", "all_orders_").Once()
	service := NewInvalidation(store, zerolog.Nop())

	service.InvalidateOrder(42)

	store.AssertExpectations(t)
}

func TestInvalidation_InvalidateMissingOrder(t *testing.T) {
	store := &InvalidationCacheMock{}
	store.On("Exists", "order_42").Return(false).Once()
	store.On("RemoveByPrefix", "all_orders_").Once()
	service := NewInvalidation(store, zerolog.Nop())

	service.InvalidateOrder(42)

	store.AssertNotCalled(t, "Remove", "order_42")
	store.AssertExpectations(t)
}

func TestInvalidation_HandleChangeEvent(t *testing.T) {
	tests := []struct {
		name       string
		eventType  string
		invalidate bool
	}{
		{
			name:       "создание заказа",
			eventType:  "order.created",
			invalidate: true,
		},
		{
			name:       "изменение заказа",
			eventType:  "order.updated",
			invalidate: true,
		},
		{
			name:       "изменение статуса заказа",
			eventType:  "order.status.changed",
			invalidate: true,
		},
		{
			name:       "изменение статуса оплаты",
			eventType:  "payment.status.changed",
			invalidate: true,
		},
		{
			name:       "тип события в другом регистре",
			eventType:  "Order.Updated",
			invalidate: true,
		},
		{
			name:       "неизвестный тип события игнорируется",
			eventType:  "subscriber.created",
			invalidate: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &InvalidationCacheMock{}
			if tt.invalidate {
				store.On("RemoveByPrefix", "all_orders_").Once()
			}
			service := NewInvalidation(store, zerolog.Nop())

			service.HandleChangeEvent(tt.eventType, nil)

			if !tt.invalidate {
				store.AssertNotCalled(t, "RemoveByPrefix", "all_orders_")
			}
			store.AssertExpectations(t)
		})
	}
}
