package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/storekit/orders/internal/domain/errors"
	"github.com/storekit/orders/internal/domain/model"
	"github.com/storekit/orders/internal/server/http/dto"
)

// writeError maps domain errors onto the transport error shape. Catalog and
// payment provider failures stay in the client-fault class.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Status: http.StatusNotFound, Message: "order not found"})
	case errors.Is(err, domainErrors.ErrInvalidStatus):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Status: http.StatusUnprocessableEntity, Message: "invalid order status"})
	case errors.Is(err, domainErrors.ErrProductValidation),
		errors.Is(err, domainErrors.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: http.StatusBadRequest, Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Status: http.StatusInternalServerError, Message: "internal error"})
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:          order.ID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Paid:        order.Paid,
		PaidAt:      order.PaidAt,
		CreatedAt:   order.CreatedAt,
	}
	if order.Receipt != nil {
		resp.ReceiptURL = order.Receipt.ReceiptURL
	}
	for _, line := range order.Lines {
		resp.Items = append(resp.Items, dto.OrderLineResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
			Name:      line.Name,
		})
	}
	return resp
}
