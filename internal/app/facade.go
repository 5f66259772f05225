package app

import (
	"context"

	"github.com/storekit/orders/internal/domain/model"
	"github.com/storekit/orders/internal/usecase"
)

// OrdersFacade aggregates order operations consumed by the HTTP handlers
// and the payment event consumer.
type OrdersFacade struct {
	orders *usecase.OrderUseCase
}

// NewOrdersFacade constructs OrdersFacade.
func NewOrdersFacade(orders *usecase.OrderUseCase) *OrdersFacade {
	return &OrdersFacade{orders: orders}
}

func (f *OrdersFacade) CreateOrder(ctx context.Context, items []usecase.LineRequest) (*model.Order, *model.PaymentSession, error) {
	return f.orders.Create(ctx, items)
}

func (f *OrdersFacade) Orders(ctx context.Context, status *model.OrderStatus, page, limit int) (*model.OrderPage, error) {
	return f.orders.List(ctx, status, page, limit)
}

func (f *OrdersFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Find(ctx, id)
}

func (f *OrdersFacade) ChangeOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	return f.orders.ChangeStatus(ctx, id, status)
}

func (f *OrdersFacade) OrderPaid(ctx context.Context, orderID, chargeRef, receiptURL string) error {
	return f.orders.ReconcilePayment(ctx, orderID, chargeRef, receiptURL)
}
