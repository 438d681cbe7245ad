package handler

import (
	"context"
	"github.com/dodoman/backoffice/internal/entity"
	"github.com/rs/zerolog"
	"net/http"
	"time"
)

type Report struct {
	exporter  ReportProcessor
	stats     StatsProvider
	validator Validator
	logger    zerolog.Logger
}

type ReportProcessor interface {
	ExportCSV(ctx context.Context, f entity.Filter) ([]byte, error)
	DashboardSummary(ctx context.Context) (entity.DashboardSummary, error)
}

type StatsProvider interface {
	StatusCounts(ctx context.Context) ([]entity.StatusCount, error)
	PaymentMethodSummary(ctx context.Context) ([]entity.MethodSummary, error)
}

func NewReport(e ReportProcessor, s StatsProvider, v Validator, l zerolog.Logger) *Report {
	return &Report{
		exporter:  e,
		stats:     s,
		validator: v,
		logger:    l,
	}
}

// Export выгружает отфильтрованный список заказов в CSV-файл. Фильтры
// принимаются те же, что и в листинге; постраничный срез не применяется.
func (h *Report) Export(w http.ResponseWriter, r *http.Request) {
	req, err := parseOrderListRequest(r)
	if err != nil {
		badRequest(w)

		return
	}

	if err := h.validator.Struct(r.Context(), &req); err != nil {
		badRequest(w)

		return
	}

	data, err := h.exporter.ExportCSV(r.Context(), req.Filter(time.Now()))
	if err != nil {
		h.logger.Error().Err(err).Msg("не удалось сформировать CSV-выгрузку")
		serverError(w)

		return
	}

	filename := "Orders_" + time.Now().Format("20060102_150405") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error().Err(err).Msg("не удалось записать CSV-выгрузку в ответ")
	}
}

// DashboardSummary возвращает сводку для главной страницы.
func (h *Report) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.exporter.DashboardSummary(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("не удалось собрать сводку")
		serverError(w)

		return
	}

	responseAsJSON(w, summary, http.StatusOK)
}

// StatusCounts возвращает распределение заказов по статусам оплаты.
func (h *Report) StatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.stats.StatusCounts(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("не удалось получить распределение по статусам")
		serverError(w)

		return
	}

	responseAsJSON(w, counts, http.StatusOK)
}

// PaymentMethods возвращает распределение заказов по способам оплаты.
func (h *Report) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	summary, err := h.stats.PaymentMethodSummary(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("не удалось получить распределение по способам оплаты")
		serverError(w)

		return
	}

	responseAsJSON(w, summary, http.StatusOK)
}
