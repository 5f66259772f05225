package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/storekit/orders/internal/adapter/catalog"
	"github.com/storekit/orders/internal/adapter/payments"
	"github.com/storekit/orders/internal/app"
	"github.com/storekit/orders/internal/config"
	"github.com/storekit/orders/internal/domain/repository"
	"github.com/storekit/orders/internal/storage/postgres"
	"github.com/storekit/orders/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		CatalogAddress:  "http://localhost",
		PaymentsAddress: "http://localhost",
		KafkaBrokers:    []string{"localhost:9092"},
		PaymentTopic:    "payment.succeeded",
		ConsumerGroup:   "orders-service",
		Currency:        "mxn",
		DefaultPageSize: 10,
		ShutdownTimeout: time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orderRepo := test.NewOrderRepositoryStub()
	catalogStub := &test.CatalogStub{}
	paymentsStub := &test.PaymentsStub{}

	var facade *app.OrdersFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(catalog.Client(catalogStub)),
			fx.Replace(payments.Client(paymentsStub)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected orders facade instance")
	}
}
