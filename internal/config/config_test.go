package config

import (
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func requiredEnv() map[string]string {
	return map[string]string{
		"DATABASE_URI":             "postgres://localhost/orders",
		"CATALOG_SERVICE_ADDRESS":  "http://catalog.local",
		"PAYMENTS_SERVICE_ADDRESS": "http://payments.local",
		"KAFKA_BROKERS":            "broker-1:9092,broker-2:9092",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(requiredEnv()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != ":8080" {
		t.Errorf("expected default run address, got %s", cfg.RunAddress)
	}
	if cfg.PaymentTopic != "payment.succeeded" {
		t.Errorf("expected default payment topic, got %s", cfg.PaymentTopic)
	}
	if cfg.ConsumerGroup != "orders-service" {
		t.Errorf("expected default consumer group, got %s", cfg.ConsumerGroup)
	}
	if cfg.Currency != "mxn" {
		t.Errorf("expected default currency, got %s", cfg.Currency)
	}
	if cfg.DefaultPageSize != 10 {
		t.Errorf("expected default page size 10, got %d", cfg.DefaultPageSize)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected default shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "broker-1:9092" || cfg.KafkaBrokers[1] != "broker-2:9092" {
		t.Errorf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	env := requiredEnv()
	env["RUN_ADDRESS"] = ":9090"
	env["PAYMENT_EVENTS_TOPIC"] = "payments.events"
	env["CURRENCY"] = "usd"
	env["DEFAULT_PAGE_SIZE"] = "25"
	env["SHUTDOWN_TIMEOUT"] = "3s"

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != ":9090" {
		t.Errorf("expected env run address, got %s", cfg.RunAddress)
	}
	if cfg.PaymentTopic != "payments.events" {
		t.Errorf("expected env payment topic, got %s", cfg.PaymentTopic)
	}
	if cfg.Currency != "usd" {
		t.Errorf("expected env currency, got %s", cfg.Currency)
	}
	if cfg.DefaultPageSize != 25 {
		t.Errorf("expected env page size, got %d", cfg.DefaultPageSize)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected env shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	env := requiredEnv()
	env["RUN_ADDRESS"] = ":9090"

	args := []string{
		"-a", ":7070",
		"-brokers", "broker-3:9092",
		"-currency", "eur",
		"-page-size", "5",
		"-shutdown-timeout", "2s",
	}

	cfg, err := load(args, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != ":7070" {
		t.Errorf("expected flag run address, got %s", cfg.RunAddress)
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "broker-3:9092" {
		t.Errorf("expected flag brokers, got %v", cfg.KafkaBrokers)
	}
	if cfg.Currency != "eur" {
		t.Errorf("expected flag currency, got %s", cfg.Currency)
	}
	if cfg.DefaultPageSize != 5 {
		t.Errorf("expected flag page size, got %d", cfg.DefaultPageSize)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Errorf("expected flag shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadRequiredValues(t *testing.T) {
	cases := []struct {
		name string
		drop string
	}{
		{"database uri", "DATABASE_URI"},
		{"catalog address", "CATALOG_SERVICE_ADDRESS"},
		{"payments address", "PAYMENTS_SERVICE_ADDRESS"},
		{"kafka brokers", "KAFKA_BROKERS"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := requiredEnv()
			delete(env, tc.drop)
			if _, err := load(nil, lookupFrom(env)); err == nil {
				t.Fatalf("expected error when %s missing", tc.drop)
			}
		})
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	env := requiredEnv()
	env["DEFAULT_PAGE_SIZE"] = "not-a-number"
	env["SHUTDOWN_TIMEOUT"] = "soon"

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultPageSize != 10 {
		t.Errorf("expected fallback page size, got %d", cfg.DefaultPageSize)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected fallback shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadParseError(t *testing.T) {
	if _, err := load([]string{"-page-size", "abc"}, lookupFrom(requiredEnv())); err == nil {
		t.Fatal("expected flag parse error")
	}
}

func TestSplitBrokers(t *testing.T) {
	brokers := splitBrokers(" broker-1:9092 , ,broker-2:9092,")
	if len(brokers) != 2 || brokers[0] != "broker-1:9092" || brokers[1] != "broker-2:9092" {
		t.Fatalf("unexpected brokers: %v", brokers)
	}
	if got := splitBrokers(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}
