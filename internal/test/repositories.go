package test

import (
	"context"

	domainErrors "github.com/storekit/orders/internal/domain/errors"
	"github.com/storekit/orders/internal/domain/model"
)

// MarkPaidCall stores information about MarkPaid invocations.
type MarkPaidCall struct {
	OrderID    string
	ChargeRef  string
	ReceiptURL string
}

// StatusUpdateCall stores information about UpdateStatus invocations.
type StatusUpdateCall struct {
	OrderID string
	Status  model.OrderStatus
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, []model.OrderLine, float64, int) (*model.Order, error)
	GetByIDFn      func(context.Context, string) (*model.Order, error)
	ListFn         func(context.Context, *model.OrderStatus, int, int) (*model.OrderPage, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) (*model.Order, error)
	MarkPaidFn     func(context.Context, string, string, string) (bool, error)

	Orders        map[string]*model.Order
	CreateCalls   int
	UpdateCalls   []StatusUpdateCall
	MarkPaidCalls []MarkPaidCall
}

// NewOrderRepositoryStub constructs stub repository with initialized map.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
}

// Create tracks invocations and stores the created aggregate.
func (s *OrderRepositoryStub) Create(ctx context.Context, lines []model.OrderLine, totalAmount float64, totalItems int) (*model.Order, error) {
	s.CreateCalls++
	if s.CreateFn != nil {
		return s.CreateFn(ctx, lines, totalAmount, totalItems)
	}
	order := &model.Order{
		ID:          "order-1",
		Status:      model.OrderStatusPending,
		TotalAmount: totalAmount,
		TotalItems:  totalItems,
		Lines:       lines,
	}
	if s.Orders != nil {
		s.Orders[order.ID] = order
	}
	return order, nil
}

// GetByID returns matched order either via override or stored map.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if order, ok := s.Orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByStatus returns a page built from the stored map or the override.
func (s *OrderRepositoryStub) ListByStatus(ctx context.Context, status *model.OrderStatus, page, limit int) (*model.OrderPage, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, status, page, limit)
	}
	var items []model.Order
	for _, order := range s.Orders {
		if status != nil && order.Status != *status {
			continue
		}
		items = append(items, *order)
	}
	total := len(items)
	return &model.OrderPage{Items: items, Total: total, Page: page, LastPage: (total + limit - 1) / limit}, nil
}

// UpdateStatus records update invocations.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	s.UpdateCalls = append(s.UpdateCalls, StatusUpdateCall{OrderID: id, Status: status})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.Status = status
	copied := *order
	return &copied, nil
}

// MarkPaid applies the conditional paid guard against the stored map.
func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, id, chargeRef, receiptURL string) (bool, error) {
	s.MarkPaidCalls = append(s.MarkPaidCalls, MarkPaidCall{OrderID: id, ChargeRef: chargeRef, ReceiptURL: receiptURL})
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, id, chargeRef, receiptURL)
	}
	order, ok := s.Orders[id]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if order.Paid {
		return false, nil
	}
	order.Paid = true
	order.Status = model.OrderStatusPaid
	ref := chargeRef
	order.ChargeRef = &ref
	order.Receipt = &model.Receipt{ID: 1, ReceiptURL: receiptURL}
	return true, nil
}
