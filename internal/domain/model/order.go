package model

import (
	"time"

	domainErrors "github.com/storekit/orders/internal/domain/errors"
)

// OrderStatus describes order lifecycle state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses enumerates every allowed status value.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ParseOrderStatus validates membership in the enumerated status set.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, s := range OrderStatuses {
		if string(s) == value {
			return s, nil
		}
	}
	return "", domainErrors.ErrInvalidStatus
}

// Order is the aggregate root: lines and the receipt are only ever
// created through operations on the order itself.
type Order struct {
	ID          string
	Status      OrderStatus
	TotalAmount float64
	TotalItems  int
	Paid        bool
	PaidAt      *time.Time
	ChargeRef   *string
	Lines       []OrderLine
	Receipt     *Receipt
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderLine is a priced line item. UnitPrice is snapshotted from the
// catalog at creation time and never refreshed. Name is display data
// sourced from the catalog, not persisted.
type OrderLine struct {
	ID        int64
	ProductID string
	Quantity  int
	UnitPrice float64
	Name      string
}

// Receipt references the payment provider receipt document, 0..1 per order.
type Receipt struct {
	ID         int64
	ReceiptURL string
}

// OrderPage is one page of a status-filtered listing.
type OrderPage struct {
	Items    []Order
	Total    int
	Page     int
	LastPage int
}
