package main

import (
	"context"
	"errors"
	"github.com/dodoman/backoffice/internal/cache"
	"github.com/dodoman/backoffice/internal/client"
	"github.com/dodoman/backoffice/internal/config"
	"github.com/dodoman/backoffice/internal/handler"
	"github.com/dodoman/backoffice/internal/service"
	"github.com/dodoman/backoffice/internal/validator"
	"github.com/dodoman/backoffice/internal/worker"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	v10validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"net/http"
	"os"
	"sync"
)

func main() {
	if err := Execute(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Send()
	}
}

func Execute() error {
	cfg, err := config.NewBuilder().LoadDotEnv().LoadFlags().LoadEnv().Build()
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	validationEngine := v10validator.New()
	if err := validationEngine.RegisterValidation("notfuture", validator.NotFuture); err != nil {
		return err
	}

	var (
		ctx, cancel = context.WithCancel(context.Background())
		r           = chi.NewRouter()
		v           = validator.New(validationEngine)
		wg          = &sync.WaitGroup{}
		store       = cache.NewMemory(cfg.CacheTTL())
		nc          = client.NewN8N(cfg.OrdersAPIURL(), cfg.APIKey(), cfg.HTTPTimeout())
		qs          = service.NewOrder(nc, store, cfg.Locale(), logger.With().Str("component", "orders").Logger())
		is          = service.NewInvalidation(store, logger.With().Str("component", "invalidation").Logger())
		rs          = service.NewReport(qs, logger.With().Str("component", "report").Logger())
		hc          = worker.NewHealthChecker(nc, cfg.HealthCheckInterval(), wg, logger.With().Str("component", "health").Logger())
		oh          = handler.NewOrder(qs, v, logger.With().Str("component", "handler").Logger())
		rh          = handler.NewReport(rs, qs, v, logger.With().Str("component", "handler").Logger())
		wh          = handler.NewWebhook(is, logger.With().Str("component", "webhook").Logger())
	)

	defer func() {
		cancel()
		wg.Wait()
	}()

	if cfg.HealthCheckEnabled() {
		hc.Do(ctx)
	}

	r.Use(chimiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", oh.List)
			r.Get("/export", rh.Export)
			r.Get("/search", oh.Search)
			r.Get("/suggest", oh.Suggest)
			r.Get("/{number}", oh.Get)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/summary", rh.DashboardSummary)
			r.Get("/status-counts", rh.StatusCounts)
			r.Get("/payment-methods", rh.PaymentMethods)
		})

		r.Route("/webhook", func(r chi.Router) {
			r.Post("/order-updated", wh.OrderUpdated)
			r.Post("/data-changed", wh.DataChanged)
			r.Get("/health", wh.Health)
		})
	})

	return http.ListenAndServe(cfg.ServerAddress(), r)
}
