package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/storekit/orders/internal/domain/errors"
	"github.com/storekit/orders/internal/domain/model"
	"github.com/storekit/orders/internal/domain/repository"
)

// ProductValidator confirms product ids against the remote catalog and
// returns the authoritative price/name snapshot.
type ProductValidator interface {
	Validate(ctx context.Context, ids []string) ([]model.Product, error)
}

// PaymentInitiator opens checkout sessions with the payment provider.
type PaymentInitiator interface {
	CreateSession(ctx context.Context, req model.PaymentSessionRequest) (*model.PaymentSession, error)
}

// OrderUseCase encapsulates order orchestration: creation against the
// catalog, the status lifecycle, and payment reconciliation.
type OrderUseCase struct {
	orders   repository.OrderRepository
	catalog  ProductValidator
	payments PaymentInitiator
	currency string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, catalog ProductValidator, payments PaymentInitiator, currency string) *OrderUseCase {
	return &OrderUseCase{orders: orders, catalog: catalog, payments: payments, currency: currency}
}

// Create validates requested items against the catalog, prices them,
// persists the aggregate and opens a payment session. Validation and pricing
// failures abort before anything is written. A payment session failure is
// returned as an error while the persisted order stays in place unpaid.
func (u *OrderUseCase) Create(ctx context.Context, items []LineRequest) (*model.Order, *model.PaymentSession, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	products, err := u.catalog.Validate(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("validate products: %w", err)
	}

	lines, totalAmount, totalItems, err := PriceLines(items, products)
	if err != nil {
		return nil, nil, err
	}

	order, err := u.orders.Create(ctx, lines, totalAmount, totalItems)
	if err != nil {
		return nil, nil, err
	}

	session, err := u.payments.CreateSession(ctx, model.PaymentSessionRequest{
		OrderID:  order.ID,
		Currency: u.currency,
		Items:    sessionItems(order.Lines),
	})
	if err != nil {
		return order, nil, fmt.Errorf("create payment session: %w", err)
	}

	return order, session, nil
}

// Find returns the aggregate with line names refreshed from the catalog.
// Prices are never re-fetched; only the display name is decorated.
func (u *OrderUseCase) Find(ctx context.Context, id string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(order.Lines) == 0 {
		return order, nil
	}

	ids := make([]string, 0, len(order.Lines))
	for _, line := range order.Lines {
		ids = append(ids, line.ProductID)
	}

	products, err := u.catalog.Validate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("validate products: %w", err)
	}

	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	for i := range order.Lines {
		name, ok := names[order.Lines[i].ProductID]
		if !ok {
			return nil, fmt.Errorf("product %s missing from catalog response: %w", order.Lines[i].ProductID, domainErrors.ErrProductValidation)
		}
		order.Lines[i].Name = name
	}

	return order, nil
}

// List returns one page of orders, optionally filtered by status.
func (u *OrderUseCase) List(ctx context.Context, status *model.OrderStatus, page, limit int) (*model.OrderPage, error) {
	return u.orders.ListByStatus(ctx, status, page, limit)
}

// ChangeStatus moves the order to the requested status. A request for the
// current status is an idempotent no-op that leaves the store untouched.
func (u *OrderUseCase) ChangeStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}
	return u.orders.UpdateStatus(ctx, id, status)
}

// ReconcilePayment applies a payment-succeeded notification. Safe under
// at-least-once delivery: a redelivered notification for an already-paid
// order resolves successfully without a second receipt.
func (u *OrderUseCase) ReconcilePayment(ctx context.Context, orderID, chargeRef, receiptURL string) error {
	_, err := u.orders.MarkPaid(ctx, orderID, chargeRef, receiptURL)
	return err
}

func sessionItems(lines []model.OrderLine) []model.PaymentSessionItem {
	items := make([]model.PaymentSessionItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.PaymentSessionItem{
			Name:     line.Name,
			Price:    line.UnitPrice,
			Quantity: line.Quantity,
		})
	}
	return items
}
