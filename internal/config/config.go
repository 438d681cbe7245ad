package config

import (
	"flag"
	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
	"os"
	"time"
)

type Config interface {
	ServerAddress() string
	OrdersAPIURL() string
	APIKey() string
	HTTPTimeout() time.Duration
	CacheTTL() time.Duration
	HealthCheckInterval() time.Duration
	HealthCheckEnabled() bool
	Locale() string
}

type Builder struct {
	parameters *parameters
	arguments  []string
	err        error
}

type parameters struct {
	ServerAddress       string        `env:"RUN_ADDRESS"`
	OrdersAPIURL        string        `env:"N8N_ORDERS_API_URL"`
	APIKey              string        `env:"N8N_API_KEY"`
	HTTPTimeout         time.Duration `env:"N8N_TIMEOUT"`
	CacheTTL            time.Duration `env:"CACHE_TTL"`
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL"`
	HealthCheckEnabled  bool          `env:"HEALTH_CHECK_ENABLED"`
	Locale              string        `env:"LOCALE"`
}

const (
	defaultServerAddress       = "localhost:8080"
	defaultHTTPTimeout         = 30 * time.Second
	defaultCacheTTL            = 30 * time.Minute
	defaultHealthCheckInterval = 60 * time.Minute
	defaultLocale              = "en"
)

func NewBuilder() *Builder {
	return &Builder{
		parameters: &parameters{
			ServerAddress:       defaultServerAddress,
			HTTPTimeout:         defaultHTTPTimeout,
			CacheTTL:            defaultCacheTTL,
			HealthCheckInterval: defaultHealthCheckInterval,
			HealthCheckEnabled:  true,
			Locale:              defaultLocale,
		},
		arguments: os.Args[1:],
	}
}

// LoadDotEnv подгружает переменные окружения из файла .env, если он есть.
// Отсутствие файла не считается ошибкой.
func (b *Builder) LoadDotEnv() *Builder {
	_ = godotenv.Load()

	return b
}

func (b *Builder) LoadEnv() *Builder {
	if err := env.Parse(b.parameters); err != nil && b.err == nil {
		b.err = err
	}

	return b
}

func (b *Builder) LoadFlags() *Builder {
	flags := flag.NewFlagSet("backoffice", flag.ContinueOnError)
	flags.StringVar(&b.parameters.ServerAddress, "a", b.parameters.ServerAddress, "адрес и порт запуска HTTP-сервера")
	flags.StringVar(&b.parameters.OrdersAPIURL, "o", b.parameters.OrdersAPIURL, "URL API заказов N8N")
	flags.StringVar(&b.parameters.Locale, "l", b.parameters.Locale, "локаль отображения статусов оплаты")
	if err := flags.Parse(b.arguments); err != nil && b.err == nil {
		b.err = err
	}

	return b
}

func (b *Builder) Build() (Config, error) {
	return b, b.err
}

func (b *Builder) ServerAddress() string {
	return b.parameters.ServerAddress
}

func (b *Builder) OrdersAPIURL() string {
	return b.parameters.OrdersAPIURL
}

func (b *Builder) APIKey() string {
	return b.parameters.APIKey
}

func (b *Builder) HTTPTimeout() time.Duration {
	return b.parameters.HTTPTimeout
}

func (b *Builder) CacheTTL() time.Duration {
	return b.parameters.CacheTTL
}

func (b *Builder) HealthCheckInterval() time.Duration {
	return b.parameters.HealthCheckInterval
}

func (b *Builder) HealthCheckEnabled() bool {
	return b.parameters.HealthCheckEnabled
}

func (b *Builder) Locale() string {
	return b.parameters.Locale
}
