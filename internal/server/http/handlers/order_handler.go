package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storekit/orders/internal/domain/model"
	"github.com/storekit/orders/internal/server/http/dto"
	"github.com/storekit/orders/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade       OrdersFacade
	defaultLimit int
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrdersFacade, defaultLimit int) *OrderHandler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &OrderHandler{facade: facade, defaultLimit: defaultLimit}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: http.StatusBadRequest, Message: err.Error()})
		return
	}

	items := make([]usecase.LineRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, session, err := h.facade.CreateOrder(c.Request.Context(), items)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateOrderResponse{
		Order:          toOrderResponse(*order),
		PaymentSession: dto.PaymentSessionResponse{ID: session.ID, URL: session.URL},
	})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	var query dto.ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: http.StatusBadRequest, Message: err.Error()})
		return
	}
	if query.Limit <= 0 {
		query.Limit = h.defaultLimit
	}
	if query.Page <= 0 {
		query.Page = 1
	}

	var status *model.OrderStatus
	if query.Status != "" {
		parsed, err := model.ParseOrderStatus(query.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		status = &parsed
	}

	page, err := h.facade.Orders(c.Request.Context(), status, query.Page, query.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	response := dto.OrderListResponse{
		Data: make([]dto.OrderResponse, 0, len(page.Items)),
		Meta: dto.ListMeta{Total: page.Total, Page: page.Page, LastPage: page.LastPage},
	}
	for _, order := range page.Items {
		response.Data = append(response.Data, toOrderResponse(order))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// ChangeStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req dto.ChangeOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: http.StatusBadRequest, Message: err.Error()})
		return
	}

	status, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	order, err := h.facade.ChangeOrderStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}
