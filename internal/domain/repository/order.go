package repository

import (
	"context"

	"github.com/storekit/orders/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create persists the order with its lines atomically and returns the
	// full aggregate including generated identifiers.
	Create(ctx context.Context, lines []model.OrderLine, totalAmount float64, totalItems int) (*model.Order, error)
	// GetByID returns the aggregate including lines and receipt.
	GetByID(ctx context.Context, id string) (*model.Order, error)
	// ListByStatus returns one 1-indexed page; nil status lists across all
	// statuses.
	ListByStatus(ctx context.Context, status *model.OrderStatus, page, limit int) (*model.OrderPage, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	// MarkPaid atomically sets paid/paid_at/charge_ref, moves the order to
	// PAID and creates the receipt. Reports false when the order was
	// already paid, so redelivered payment events apply at most once.
	MarkPaid(ctx context.Context, id, chargeRef, receiptURL string) (bool, error)
}
