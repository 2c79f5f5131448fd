package handler

import (
	purchasingapp "github.com/gescom/backend/internal/application/purchasing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SupplierOrderHandler handles supplier order API endpoints
type SupplierOrderHandler struct {
	BaseHandler
	orderService *purchasingapp.SupplierOrderService
}

// NewSupplierOrderHandler creates a new SupplierOrderHandler
func NewSupplierOrderHandler(orderService *purchasingapp.SupplierOrderService) *SupplierOrderHandler {
	return &SupplierOrderHandler{orderService: orderService}
}

// RegisterRoutes registers supplier order routes on the given group
func (h *SupplierOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/purchasing/supplier-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/stats/summary", h.GetStatusSummary)
		orders.GET("/number/:number", h.GetByNumber)
		orders.GET("/:id", h.GetByID)
		orders.PUT("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)
		orders.PUT("/:id/items", h.ReplaceItems)
		orders.POST("/:id/items", h.AddItem)
		orders.PUT("/:id/items/:item_id", h.UpdateItem)
		orders.DELETE("/:id/items/:item_id", h.RemoveItem)
		orders.POST("/:id/send", h.Send)
		orders.POST("/:id/confirm", h.Confirm)
		orders.POST("/:id/receive", h.Receive)
		orders.POST("/:id/cancel", h.Cancel)
		orders.PUT("/:id/payment-status", h.SetPaymentStatus)
	}
}

// Create creates a new draft supplier order
func (h *SupplierOrderHandler) Create(c *gin.Context) {
	var req purchasingapp.CreateSupplierOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID retrieves a supplier order by ID
func (h *SupplierOrderHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByNumber retrieves a supplier order by document number
func (h *SupplierOrderHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	order, err := h.orderService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// List retrieves supplier orders with filtering and pagination
func (h *SupplierOrderHandler) List(c *gin.Context) {
	var filter purchasingapp.SupplierOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Update applies a sparse update to a draft order
func (h *SupplierOrderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req purchasingapp.UpdateSupplierOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete deletes a supplier order and its items
func (h *SupplierOrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ReplaceItems replaces the entire item list of a draft order
func (h *SupplierOrderHandler) ReplaceItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req purchasingapp.ReplaceSupplierOrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.ReplaceItems(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// AddItem adds a line item to a draft order
func (h *SupplierOrderHandler) AddItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var input purchasingapp.SupplierOrderItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.AddItem(c.Request.Context(), id, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateItem applies a sparse update to a single line item
func (h *SupplierOrderHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req purchasingapp.UpdateSupplierOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// RemoveItem removes a line item from a draft order
func (h *SupplierOrderHandler) RemoveItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	order, err := h.orderService.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Send marks an order as sent to the supplier
func (h *SupplierOrderHandler) Send(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Send(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Confirm records the supplier's confirmation of an order
func (h *SupplierOrderHandler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Receive marks an order's goods as received
func (h *SupplierOrderHandler) Receive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Receive(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel cancels an order with a reason
func (h *SupplierOrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req purchasingapp.CancelSupplierOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// SetPaymentStatus updates the payment tracking status of an order
func (h *SupplierOrderHandler) SetPaymentStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req purchasingapp.SetPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.SetPaymentStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// GetStatusSummary returns supplier order counts by status
func (h *SupplierOrderHandler) GetStatusSummary(c *gin.Context) {
	summary, err := h.orderService.StatusSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
