package service

import (
	"context"
	"errors"
	"github.com/dodoman/backoffice/internal/cache"
	"github.com/dodoman/backoffice/internal/entity"
	inerr "github.com/dodoman/backoffice/internal/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"strconv"
	"testing"
	"time"
)

type FetcherMock struct {
	mock.Mock
}

func (m *FetcherMock) FetchAll(_ context.Context) ([]entity.RawOrder, error) {
	args := m.Called()

	return args.Get(0).([]entity.RawOrder), args.Error(1)
}

func newTestOrder(f Fetcher, c Cache) *Order {
	return &Order{
		client: f,
		cache:  c,
		locale: "en",
		logger: zerolog.Nop(),
		now: func() time.Time {
			return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
		},
	}
}

func rawOrders(count int) []entity.RawOrder {
	orders := make([]entity.RawOrder, count)
	for i := range orders {
		orders[i] = entity.RawOrder{
			Number:   i + 1,
			Date:     "2024-01-10",
			Customer: "Customer " + strconv.Itoa(i+1),
			Method:   "credit card",
			Status:   "success",
		}
	}

	return orders
}

func TestOrder_QueryPagination(t *testing.T) {
	var (
		ctx     = context.Background()
		fetcher = &FetcherMock{}
		store   = cache.NewMemory(cache.DefaultTTL)
	)

	fetcher.On("FetchAll").Return(rawOrders(45), nil).Once()
	service := newTestOrder(fetcher, store)

	list, err := service.Query(ctx, entity.Filter{Page: 2, PageSize: 20})
	require.NoError(t, err)

	assert.Len(t, list.Orders, 20, "вторая страница содержит ровно 20 заказов")
	assert.Equal(t, 21, list.Orders[0].Number, "срез начинается с 21-го заказа")
	assert.Equal(t, 40, list.Orders[19].Number, "срез заканчивается 40-м заказом")
	assert.Equal(t, 45, list.Pagination.TotalItems, "в метаданных полный размер набора")
	assert.Equal(t, 3, list.Pagination.TotalPages())
	assert.Equal(t, 45, list.Summary.Total, "итоги считаются по полному набору, не по странице")
	fetcher.AssertExpectations(t)
}

func TestOrder_QueryLastPage(t *testing.T) {
	var (
		fetcher = &FetcherMock{}
		store   = cache.NewMemory(cache.DefaultTTL)
	)

	fetcher.On("FetchAll").Return(rawOrders(45), nil).Once()
	service := newTestOrder(fetcher, store)

	list, err := service.Query(context.Background(), entity.Filter{Page: 3, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, list.Orders, 5, "последняя страница короче")

	list, err = service.Query(context.Background(), entity.Filter{Page: 4, PageSize: 20})
	require.NoError(t, err)
	assert.Empty(t, list.Orders, "страница за пределами набора пуста")
}

func TestOrder_QueryUsesCacheWithinHourBucket(t *testing.T) {
	var (
		ctx     = context.Background()
		fetcher = &FetcherMock{}
		store   = cache.NewMemory(cache.DefaultTTL)
	)

	fetcher.On("FetchAll").Return(rawOrders(3), nil).Once()
	service := newTestOrder(fetcher, store)

	_, err := service.Query(ctx, entity.Filter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	_, err = service.Query(ctx, entity.Filter{Page: 1, PageSize: 20})
	require.NoError(t, err)

	fetcher.AssertNumberOfCalls(t, "FetchAll", 1)
}

func TestOrder_QueryRefetchesAfterInvalidation(t *testing.T) {
	var (
		ctx          = context.Background()
		fetcher      = &FetcherMock{}
		store        = cache.NewMemory(cache.DefaultTTL)
		invalidation = NewInvalidation(store, zerolog.Nop())
	)

	fetcher.On("FetchAll").Return(rawOrders(3), nil).Twice()
	service := newTestOrder(fetcher, store)

	_, err := service.Query(ctx, entity.Filter{Page: 1, PageSize: 20})
	require.NoError(t, err)

	invalidation.InvalidateAll()

	_, err = service.Query(ctx, entity.Filter{Page: 1, PageSize: 20})
	require.NoError(t, err)

	fetcher.AssertExpectations(t)
}

func TestOrder_QueryFetchError(t *testing.T) {
	var (
		fetcher = &FetcherMock{}
		store   = cache.NewMemory(cache.DefaultTTL)
	)

	fetcher.On("FetchAll").Return([]entity.RawOrder{}, errors.New("connection refused")).Once()
	service := newTestOrder(fetcher, store)

	_, err := service.Query(context.Background(), entity.Filter{Page: 1, PageSize: 20})
	assert.ErrorIs(t, err, inerr.ErrUpstreamUnavailable, "сбой N8N не маскируется пустым списком")
	fetcher.AssertExpectations(t)
}

func TestOrder_GetByNumber(t *testing.T) {
	var (
		ctx     = context.Background()
		fetcher = &FetcherMock{}
		store   = cache.NewMemory(cache.DefaultTTL)
	)

	fetcher.On("FetchAll").Return(rawOrders(3), nil).Once()
	service := newTestOrder(fetcher, store)

	order, err := service.GetByNumber(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, order.Number)
	assert.True(t, store.Exists("order_2"), "найденный заказ кэшируется отдельной записью")

	_, err = service.GetByNumber(ctx, 99)
	assert.ErrorIs(t, err, inerr.ErrOrderNotFound)
}

func TestOrder_Search(t *testing.T) {
	var (
		ctx     = context.Background()
		fetcher = &FetcherMock{}
		store   = cache.NewMemory(cache.DefaultTTL)
		orders  = []entity.RawOrder{
			{Number: 12, Customer: "Ann Lee", Status: "success"},
			{Number: 120, Customer: "Bob Chen", Status: "pending"},
			{Number: 99, Customer: "Annabel Wu", Status: "pending"},
		}
	)

	fetcher.On("FetchAll").Return(orders, nil).Once()
	service := newTestOrder(fetcher, store)

	res, err := service.Search(ctx, "ann")
	require.NoError(t, err)

	numbers := make([]int, 0, len(res))
	for _, o := range res {
		numbers = append(numbers, o.Number)
	}
	assert.Equal(t, []int{12, 99}, numbers, "поиск по имени без учета регистра, порядок исходный")
}

func TestOrder_SearchLimit(t *testing.T) {
	var (
		fetcher = &FetcherMock{}
		store   = cache.NewMemory(cache.DefaultTTL)
	)

	fetcher.On("FetchAll").Return(rawOrders(60), nil).Once()
	service := newTestOrder(fetcher, store)

	res, err := service.Search(context.Background(), "customer")
	require.NoError(t, err)
	assert.Len(t, res, 50, "поиск возвращает не больше 50 результатов")
}

func TestOrder_SuggestNumbers(t *testing.T) {
	var (
		ctx     = context.Background()
		fetcher = &FetcherMock{}
		store   = cache.NewMemory(cache.DefaultTTL)
		orders  = []entity.RawOrder{
			{Number: 12},
			{Number: 120},
			{Number: 99},
		}
	)

	fetcher.On("FetchAll").Return(orders, nil).Once()
	service := newTestOrder(fetcher, store)

	numbers, err := service.SuggestNumbers(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, []int{12, 120}, numbers, "подсказки по вхождению в десятичную запись")

	numbers, err = service.SuggestNumbers(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, numbers, "нечисловая строка дает пустой список без запроса к N8N")
}

func TestOrder_Summary(t *testing.T) {
	var (
		fetcher = &FetcherMock{}
		store   = cache.NewMemory(cache.DefaultTTL)
		orders  = []entity.RawOrder{
			{Number: 1, Date: "2024-01-01", Status: "success"},
			{Number: 2, Date: "2024-01-15", Status: "pending"},
			{Number: 3, Date: "N/A", Status: "success"},
		}
	)

	fetcher.On("FetchAll").Return(orders, nil).Once()
	service := newTestOrder(fetcher, store)

	summary, err := service.Summary(context.Background(), datePtr(2024, 1, 10), nil)
	require.NoError(t, err)
	assert.Equal(t, entity.Summary{Total: 1, Pending: 1}, summary, "в период попадает только заказ с читаемой датой")
}

func TestOrder_StatusCountsAndMethods(t *testing.T) {
	var (
		fetcher = &FetcherMock{}
		store   = cache.NewMemory(cache.DefaultTTL)
		orders  = []entity.RawOrder{
			{Number: 1, Method: "credit card", Status: "success"},
			{Number: 2, Method: "bank transfer", Status: "pending"},
			{Number: 3, Method: "credit card", Status: "success"},
		}
	)

	fetcher.On("FetchAll").Return(orders, nil).Once()
	service := newTestOrder(fetcher, store)

	counts, err := service.StatusCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.StatusCount{
		{Status: entity.PaymentStatusSuccess, Count: 2, DisplayName: "Paid"},
		{Status: entity.PaymentStatusPending, Count: 1, DisplayName: "Pending"},
	}, counts)

	methods, err := service.PaymentMethodSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.MethodSummary{
		{Method: "Credit Card", Count: 2, Percentage: float64(2) / float64(3) * 100},
		{Method: "Bank Transfer", Count: 1, Percentage: float64(1) / float64(3) * 100},
	}, methods)
}
