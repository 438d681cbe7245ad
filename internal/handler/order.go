package handler

import (
	"context"
	"errors"
	"github.com/dodoman/backoffice/internal/entity"
	inerr "github.com/dodoman/backoffice/internal/errors"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"net/http"
	"strconv"
	"time"
)

type Order struct {
	processor OrderProcessor
	validator Validator
	logger    zerolog.Logger
}

type OrderProcessor interface {
	Query(ctx context.Context, f entity.Filter) (entity.OrderList, error)
	GetByNumber(ctx context.Context, number int) (entity.Order, error)
	Search(ctx context.Context, term string) ([]entity.Order, error)
	SuggestNumbers(ctx context.Context, partial string) ([]int, error)
}

func NewOrder(p OrderProcessor, v Validator, l zerolog.Logger) *Order {
	return &Order{
		processor: p,
		validator: v,
		logger:    l,
	}
}

// List возвращает страницу заказов по фильтрам из query-параметров вместе
// с метаданными пагинации и итогами по полному отфильтрованному набору.
// Если границы периода не заданы, берется окно за последние 30 дней.
func (h *Order) List(w http.ResponseWriter, r *http.Request) {
	req, err := parseOrderListRequest(r)
	if err != nil {
		badRequest(w)

		return
	}

	if err := h.validator.Struct(r.Context(), &req); err != nil {
		badRequest(w)

		return
	}

	list, err := h.processor.Query(r.Context(), req.Filter(time.Now()))
	if err != nil {
		h.logger.Error().Err(err).Msg("не удалось загрузить заказы")
		serverError(w)

		return
	}

	resp := struct {
		Orders     []entity.Order    `json:"orders"`
		Pagination paginationPayload `json:"pagination"`
		Summary    entity.Summary    `json:"summary"`
	}{
		Orders: list.Orders,
		Pagination: paginationPayload{
			Page:       list.Pagination.Page,
			PageSize:   list.Pagination.PageSize,
			TotalItems: list.Pagination.TotalItems,
			TotalPages: list.Pagination.TotalPages(),
		},
		Summary: list.Summary,
	}
	responseAsJSON(w, resp, http.StatusOK)
}

// Get возвращает заказ по номеру. Если заказа нет, возвращает ответ
// с кодом 404.
func (h *Order) Get(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number < 1 {
		badRequest(w)

		return
	}

	order, err := h.processor.GetByNumber(r.Context(), number)
	if errors.Is(err, inerr.ErrOrderNotFound) {
		notFound(w)

		return
	} else if err != nil {
		h.logger.Error().Err(err).Int("order", number).Msg("не удалось загрузить заказ")
		serverError(w)

		return
	}

	responseAsJSON(w, order, http.StatusOK)
}

// Search ищет заказы по номеру или имени покупателя, не больше 50 результатов.
func (h *Order) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if err := h.validator.Var(r.Context(), term, "required,max=100"); err != nil {
		badRequest(w)

		return
	}

	orders, err := h.processor.Search(r.Context(), term)
	if err != nil {
		h.logger.Error().Err(err).Msg("не удалось выполнить поиск заказов")
		serverError(w)

		return
	}

	responseAsJSON(w, orders, http.StatusOK)
}

// Suggest возвращает до 10 номеров заказов, содержащих введенную строку.
// Для нечисловой строки возвращает пустой список.
func (h *Order) Suggest(w http.ResponseWriter, r *http.Request) {
	numbers, err := h.processor.SuggestNumbers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error().Err(err).Msg("не удалось получить подсказки номеров заказов")
		serverError(w)

		return
	}

	responseAsJSON(w, numbers, http.StatusOK)
}
