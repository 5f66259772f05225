package usecase

import (
	"go.uber.org/fx"

	"github.com/storekit/orders/internal/config"
	"github.com/storekit/orders/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(newOrderUseCase)

type orderParams struct {
	fx.In

	Orders   repository.OrderRepository
	Catalog  ProductValidator
	Payments PaymentInitiator
	Config   *config.Config
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Catalog, p.Payments, p.Config.Currency)
}
