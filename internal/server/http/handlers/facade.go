package handlers

import (
	"context"

	"github.com/storekit/orders/internal/domain/model"
	"github.com/storekit/orders/internal/usecase"
)

// OrdersFacade encapsulates order operations exposed via HTTP.
type OrdersFacade interface {
	CreateOrder(ctx context.Context, items []usecase.LineRequest) (*model.Order, *model.PaymentSession, error)
	Orders(ctx context.Context, status *model.OrderStatus, page, limit int) (*model.OrderPage, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	ChangeOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
}
