package service

import (
	"context"
	"fmt"
	"github.com/dodoman/backoffice/internal/entity"
	inerr "github.com/dodoman/backoffice/internal/errors"
	"github.com/rs/zerolog"
	"strconv"
	"strings"
	"time"
)

const (
	allOrdersKeyPrefix = "all_orders_"
	orderKeyPrefix     = "order_"
	snapshotKeyBucket  = "2006-01-02-15"
	snapshotTTL        = 30 * time.Minute
	searchLimit        = 50
	suggestLimit       = 10
)

type Order struct {
	client Fetcher
	cache  Cache
	locale string
	logger zerolog.Logger
	now    func() time.Time
}

type Fetcher interface {
	FetchAll(ctx context.Context) ([]entity.RawOrder, error)
}

type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}

func NewOrder(c Fetcher, cache Cache, locale string, l zerolog.Logger) *Order {
	return &Order{
		client: c,
		cache:  cache,
		locale: locale,
		logger: l,
		now:    time.Now,
	}
}

// Query выполняет основной конвейер листинга: полный список заказов из кэша
// или N8N, фильтрация, преобразование, итоги по полному отфильтрованному
// набору и постраничный срез.
func (s *Order) Query(ctx context.Context, f entity.Filter) (entity.OrderList, error) {
	orders, err := s.FilteredOrders(ctx, f)
	if err != nil {
		return entity.OrderList{}, err
	}

	return entity.OrderList{
		Orders: paginate(orders, f.Page, f.PageSize),
		Pagination: entity.Pagination{
			Page:       f.Page,
			PageSize:   f.PageSize,
			TotalItems: len(orders),
		},
		Summary: Summarize(orders),
	}, nil
}

// FilteredOrders возвращает полный отфильтрованный набор заказов без
// постраничного среза. Все операции чтения идут через этот единственный
// путь: кэшированный срез, затем фильтрация на стороне сервиса.
func (s *Order) FilteredOrders(ctx context.Context, f entity.Filter) ([]entity.Order, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return s.transform(ApplyFilter(snapshot, f)), nil
}

// GetByNumber возвращает заказ по номеру, O(n) по полному списку. Найденный
// заказ кэшируется отдельной записью, чтобы вебхук мог точечно ее сбросить.
func (s *Order) GetByNumber(ctx context.Context, number int) (entity.Order, error) {
	key := orderKeyPrefix + strconv.Itoa(number)
	if cached, ok := s.cache.Get(key); ok {
		if order, ok := cached.(entity.Order); ok {
			return order, nil
		}
	}

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return entity.Order{}, err
	}

	for _, r := range snapshot {
		if r.Number == number {
			order := entity.OrderFromRaw(r, s.locale)
			s.cache.Set(key, order, snapshotTTL)

			return order, nil
		}
	}

	return entity.Order{}, inerr.ErrOrderNotFound
}

// Summary считает итоги по заказам за период без постраничного среза.
func (s *Order) Summary(ctx context.Context, start, end *time.Time) (entity.Summary, error) {
	orders, err := s.FilteredOrders(ctx, entity.Filter{StartDate: start, EndDate: end})
	if err != nil {
		return entity.Summary{}, err
	}

	return Summarize(orders), nil
}

// StatusCounts возвращает распределение заказов по статусам оплаты.
func (s *Order) StatusCounts(ctx context.Context) ([]entity.StatusCount, error) {
	orders, err := s.FilteredOrders(ctx, entity.Filter{})
	if err != nil {
		return nil, err
	}

	return GroupByStatus(orders), nil
}

// PaymentMethodSummary возвращает распределение заказов по способам оплаты
// с долей каждого способа.
func (s *Order) PaymentMethodSummary(ctx context.Context) ([]entity.MethodSummary, error) {
	orders, err := s.FilteredOrders(ctx, entity.Filter{})
	if err != nil {
		return nil, err
	}

	return GroupByMethod(orders), nil
}

// Search ищет заказы по вхождению строки в номер заказа или имя покупателя
// без учета регистра. Возвращает не больше 50 результатов в исходном порядке.
func (s *Order) Search(ctx context.Context, term string) ([]entity.Order, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	results := make([]entity.Order, 0)
	for _, r := range snapshot {
		if len(results) == searchLimit {
			break
		}

		if strings.Contains(strconv.Itoa(r.Number), term) ||
			strings.Contains(strings.ToLower(r.Customer), term) {
			results = append(results, entity.OrderFromRaw(r, s.locale))
		}
	}

	return results, nil
}

// SuggestNumbers возвращает до 10 номеров заказов, десятичная запись которых
// содержит partial. Если partial не является числом, возвращает пустой список.
func (s *Order) SuggestNumbers(ctx context.Context, partial string) ([]int, error) {
	partial = strings.TrimSpace(partial)
	if _, err := strconv.Atoi(partial); err != nil {
		return []int{}, nil
	}

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	numbers := make([]int, 0, suggestLimit)
	for _, r := range snapshot {
		if len(numbers) == suggestLimit {
			break
		}

		if strings.Contains(strconv.Itoa(r.Number), partial) {
			numbers = append(numbers, r.Number)
		}
	}

	return numbers, nil
}

// snapshot возвращает полный список заказов из кэша по ключу текущего
// часового интервала; при промахе загружает список из N8N и кэширует на
// 30 минут. Ключ с часовым интервалом ограничивает устаревание данных
// часом даже без явного сброса кэша.
func (s *Order) snapshot(ctx context.Context) ([]entity.RawOrder, error) {
	key := allOrdersKeyPrefix + s.now().Format(snapshotKeyBucket)
	if cached, ok := s.cache.Get(key); ok {
		if orders, ok := cached.([]entity.RawOrder); ok {
			s.logger.Debug().Str("key", key).Msg("список заказов получен из кэша")

			return orders, nil
		}
	}

	orders, err := s.client.FetchAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("не удалось получить заказы из N8N")

		return nil, fmt.Errorf("%w: %v", inerr.ErrUpstreamUnavailable, err)
	}

	s.cache.Set(key, orders, snapshotTTL)

	return orders, nil
}

func (s *Order) transform(raw []entity.RawOrder) []entity.Order {
	orders := make([]entity.Order, len(raw))
	for i, r := range raw {
		orders[i] = entity.OrderFromRaw(r, s.locale)
	}

	return orders
}

func paginate(orders []entity.Order, page, size int) []entity.Order {
	skip := (page - 1) * size
	if skip < 0 || skip >= len(orders) {
		return []entity.Order{}
	}

	end := skip + size
	if end > len(orders) {
		end = len(orders)
	}

	return orders[skip:end]
}
