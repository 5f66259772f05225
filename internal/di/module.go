package di

import (
	"go.uber.org/fx"

	"github.com/storekit/orders/internal/adapter/catalog"
	"github.com/storekit/orders/internal/adapter/payments"
	"github.com/storekit/orders/internal/app"
	"github.com/storekit/orders/internal/config"
	"github.com/storekit/orders/internal/logger"
	"github.com/storekit/orders/internal/server/http/handlers"
	"github.com/storekit/orders/internal/server/http/router"
	"github.com/storekit/orders/internal/storage/postgres"
	"github.com/storekit/orders/internal/usecase"
	"github.com/storekit/orders/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		catalog.Module,
		payments.Module,
		usecase.Module,
		fx.Provide(
			func(client catalog.Client) usecase.ProductValidator { return client },
			func(client payments.Client) usecase.PaymentInitiator { return client },
			func(f *app.OrdersFacade) handlers.OrdersFacade { return f },
			func(f *app.OrdersFacade) worker.PaymentFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
