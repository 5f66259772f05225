package dto

import "time"

// OrderItemRequest is one requested line item.
type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest describes order creation payload.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ChangeOrderStatusRequest describes status change payload.
type ChangeOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrdersQuery describes pagination/filter query parameters.
type ListOrdersQuery struct {
	Status string `form:"status"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit"`
}

// OrderLineResponse is a priced line item enriched with the catalog name.
type OrderLineResponse struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name,omitempty"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID          string              `json:"id"`
	Status      string              `json:"status"`
	TotalAmount float64             `json:"totalAmount"`
	TotalItems  int                 `json:"totalItems"`
	Paid        bool                `json:"paid"`
	PaidAt      *time.Time          `json:"paidAt,omitempty"`
	ReceiptURL  string              `json:"receiptUrl,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	Items       []OrderLineResponse `json:"items,omitempty"`
}

// PaymentSessionResponse is the checkout session handle returned on creation.
type PaymentSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateOrderResponse combines the persisted order with its payment session.
type CreateOrderResponse struct {
	Order          OrderResponse          `json:"order"`
	PaymentSession PaymentSessionResponse `json:"paymentSession"`
}

// ListMeta carries pagination metadata.
type ListMeta struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	LastPage int `json:"lastPage"`
}

// OrderListResponse is one page of orders.
type OrderListResponse struct {
	Data []OrderResponse `json:"data"`
	Meta ListMeta        `json:"meta"`
}

// ErrorResponse carries a status classification and human-readable message.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
