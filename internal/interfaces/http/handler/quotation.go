package handler

import (
	"time"

	salesapp "github.com/gescom/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuotationHandler handles quotation API endpoints
type QuotationHandler struct {
	BaseHandler
	quotationService *salesapp.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotationService *salesapp.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// RegisterRoutes registers quotation routes on the given group
func (h *QuotationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotations := rg.Group("/sales/quotations")
	{
		quotations.POST("", h.Create)
		quotations.GET("", h.List)
		quotations.GET("/stats/summary", h.GetStatusSummary)
		quotations.POST("/expire-overdue", h.ExpireOverdue)
		quotations.GET("/number/:number", h.GetByNumber)
		quotations.GET("/:id", h.GetByID)
		quotations.PUT("/:id", h.Update)
		quotations.DELETE("/:id", h.Delete)
		quotations.PUT("/:id/items", h.ReplaceItems)
		quotations.POST("/:id/items", h.AddItem)
		quotations.PUT("/:id/items/:item_id", h.UpdateItem)
		quotations.DELETE("/:id/items/:item_id", h.RemoveItem)
		quotations.POST("/:id/send", h.Send)
		quotations.POST("/:id/approve", h.Approve)
		quotations.POST("/:id/reject", h.Reject)
		quotations.POST("/:id/expire", h.Expire)
	}
}

// Create creates a new draft quotation
func (h *QuotationHandler) Create(c *gin.Context) {
	var req salesapp.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quotation, err := h.quotationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, quotation)
}

// GetByID retrieves a quotation by ID
func (h *QuotationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quotation, err := h.quotationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// GetByNumber retrieves a quotation by document number
func (h *QuotationHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Quotation number is required")
		return
	}

	quotation, err := h.quotationService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// List retrieves quotations with filtering and pagination
func (h *QuotationHandler) List(c *gin.Context) {
	var filter salesapp.QuotationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	quotations, total, err := h.quotationService.List(c.Request.Context(), filter)
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

	h.SuccessWithMeta(c, quotations, total, page, pageSize)
}

// Update applies a sparse update to a draft quotation
func (h *QuotationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	var req salesapp.UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quotation, err := h.quotationService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// Delete deletes a quotation and its items
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ReplaceItems replaces the entire item list of a draft quotation
func (h *QuotationHandler) ReplaceItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	var req salesapp.ReplaceQuotationItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quotation, err := h.quotationService.ReplaceItems(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// AddItem adds a line item to a draft quotation
func (h *QuotationHandler) AddItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	var input salesapp.QuotationItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	quotation, err := h.quotationService.AddItem(c.Request.Context(), id, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// UpdateItem applies a sparse update to a single line item
func (h *QuotationHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req salesapp.UpdateQuotationItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quotation, err := h.quotationService.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// RemoveItem removes a line item from a draft quotation
func (h *QuotationHandler) RemoveItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	quotation, err := h.quotationService.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// Send marks a quotation as sent to the client
func (h *QuotationHandler) Send(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quotation, err := h.quotationService.Send(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// Approve marks a sent quotation as approved and opens its receivable
func (h *QuotationHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quotation, err := h.quotationService.Approve(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// Reject marks a sent quotation as rejected with a reason
func (h *QuotationHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	var req salesapp.RejectQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quotation, err := h.quotationService.Reject(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// Expire marks a quotation as expired
func (h *QuotationHandler) Expire(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quotation, err := h.quotationService.Expire(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// ExpireOverdueResponse reports how many quotations were expired by the batch
type ExpireOverdueResponse struct {
	Expired int `json:"expired"`
}

// ExpireOverdue expires every open quotation whose expiry date has passed
func (h *QuotationHandler) ExpireOverdue(c *gin.Context) {
	expired, err := h.quotationService.ExpireOverdue(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ExpireOverdueResponse{Expired: expired})
}

// GetStatusSummary returns quotation counts by status
func (h *QuotationHandler) GetStatusSummary(c *gin.Context) {
	summary, err := h.quotationService.StatusSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
