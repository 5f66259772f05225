package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	CatalogAddress  string
	PaymentsAddress string
	KafkaBrokers    []string
	PaymentTopic    string
	ConsumerGroup   string
	Currency        string
	DefaultPageSize int
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultPaymentTopic    = "payment.succeeded"
	defaultConsumerGroup   = "orders-service"
	defaultCurrency        = "mxn"
	defaultPageSize        = 10
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		CatalogAddress:  getString(lookup, "CATALOG_SERVICE_ADDRESS", ""),
		PaymentsAddress: getString(lookup, "PAYMENTS_SERVICE_ADDRESS", ""),
		PaymentTopic:    getString(lookup, "PAYMENT_EVENTS_TOPIC", defaultPaymentTopic),
		ConsumerGroup:   getString(lookup, "CONSUMER_GROUP", defaultConsumerGroup),
		Currency:        getString(lookup, "CURRENCY", defaultCurrency),
		DefaultPageSize: getInt(lookup, "DEFAULT_PAGE_SIZE", defaultPageSize),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	brokersCSV := getString(lookup, "KAFKA_BROKERS", "")

	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.CatalogAddress, "catalog", cfg.CatalogAddress, "Product catalog service base URL")
	fs.StringVar(&cfg.PaymentsAddress, "payments", cfg.PaymentsAddress, "Payment provider service base URL")
	fs.StringVar(&brokersCSV, "brokers", brokersCSV, "Kafka brokers, comma separated")
	fs.StringVar(&cfg.PaymentTopic, "payment-topic", cfg.PaymentTopic, "Payment succeeded event topic")
	fs.StringVar(&cfg.ConsumerGroup, "consumer-group", cfg.ConsumerGroup, "Kafka consumer group id")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "Currency for payment sessions")
	fs.IntVar(&cfg.DefaultPageSize, "page-size", cfg.DefaultPageSize, "Default page size for order listings")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.KafkaBrokers = splitBrokers(brokersCSV)

	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = defaultPageSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.CatalogAddress == "" {
		return nil, fmt.Errorf("catalog service address must be provided")
	}

	if cfg.PaymentsAddress == "" {
		return nil, fmt.Errorf("payments service address must be provided")
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("kafka brokers must be provided")
	}

	return cfg, nil
}

func splitBrokers(csv string) []string {
	var brokers []string
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
