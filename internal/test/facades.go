package test

import (
	"context"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/storekit/orders/internal/domain/model"
	"github.com/storekit/orders/internal/usecase"
)

// OrdersFacadeStub provides controllable behaviour for order endpoints.
type OrdersFacadeStub struct {
	CreateFn       func(context.Context, []usecase.LineRequest) (*model.Order, *model.PaymentSession, error)
	OrdersFn       func(context.Context, *model.OrderStatus, int, int) (*model.OrderPage, error)
	OrderFn        func(context.Context, string) (*model.Order, error)
	ChangeStatusFn func(context.Context, string, model.OrderStatus) (*model.Order, error)
}

// CreateOrder delegates to provided function or returns a default aggregate.
func (s OrdersFacadeStub) CreateOrder(ctx context.Context, items []usecase.LineRequest) (*model.Order, *model.PaymentSession, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, items)
	}
	order := &model.Order{ID: "order-1", Status: model.OrderStatusPending}
	return order, &model.PaymentSession{ID: "sess-1", URL: "https://payments.local/sess-1"}, nil
}

// Orders returns predefined page.
func (s OrdersFacadeStub) Orders(ctx context.Context, status *model.OrderStatus, page, limit int) (*model.OrderPage, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, status, page, limit)
	}
	return &model.OrderPage{Items: []model.Order{{ID: "order-1"}}, Total: 1, Page: page, LastPage: 1}, nil
}

// Order returns predefined order for given id.
func (s OrdersFacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

// ChangeOrderStatus delegates to provided function or echoes the change.
func (s OrdersFacadeStub) ChangeOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if s.ChangeStatusFn != nil {
		return s.ChangeStatusFn(ctx, id, status)
	}
	return &model.Order{ID: id, Status: status}, nil
}

// PaidOrderCall stores information about OrderPaid invocations.
type PaidOrderCall struct {
	OrderID    string
	ChargeRef  string
	ReceiptURL string
}

// PaymentFacadeStub mimics consumer interactions with the orders facade.
type PaymentFacadeStub struct {
	OrderPaidFn func(context.Context, string, string, string) error

	mu    sync.Mutex
	Calls []PaidOrderCall
}

// OrderPaid records reconciliation requests.
func (s *PaymentFacadeStub) OrderPaid(ctx context.Context, orderID, chargeRef, receiptURL string) error {
	s.mu.Lock()
	s.Calls = append(s.Calls, PaidOrderCall{OrderID: orderID, ChargeRef: chargeRef, ReceiptURL: receiptURL})
	s.mu.Unlock()
	if s.OrderPaidFn != nil {
		return s.OrderPaidFn(ctx, orderID, chargeRef, receiptURL)
	}
	return nil
}

// CallCount returns the number of recorded reconciliations.
func (s *PaymentFacadeStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// MessageSourceStub feeds the payment consumer with queued messages.
type MessageSourceStub struct {
	mu        sync.Mutex
	queue     []kafka.Message
	Committed []kafka.Message
	closed    chan struct{}
	closeOnce sync.Once
}

// NewMessageSourceStub constructs a source with the given queued messages.
func NewMessageSourceStub(msgs ...kafka.Message) *MessageSourceStub {
	return &MessageSourceStub{queue: msgs, closed: make(chan struct{})}
}

// FetchMessage pops the next queued message and then blocks until close.
func (s *MessageSourceStub) FetchMessage(ctx context.Context) (kafka.Message, error) {
	s.mu.Lock()
	if len(s.queue) > 0 {
		msg := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		return msg, nil
	}
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case <-s.closed:
		return kafka.Message{}, context.Canceled
	}
}

// CommitMessages records committed offsets.
func (s *MessageSourceStub) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Committed = append(s.Committed, msgs...)
	return nil
}

// CommittedCount returns the number of committed messages.
func (s *MessageSourceStub) CommittedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Committed)
}

// Close unblocks pending fetches.
func (s *MessageSourceStub) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}
