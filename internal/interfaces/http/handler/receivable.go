package handler

import (
	"time"

	financeapp "github.com/gescom/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceivableHandler handles accounts receivable API endpoints
type ReceivableHandler struct {
	BaseHandler
	receivableService *financeapp.ReceivableService
}

// NewReceivableHandler creates a new ReceivableHandler
func NewReceivableHandler(receivableService *financeapp.ReceivableService) *ReceivableHandler {
	return &ReceivableHandler{receivableService: receivableService}
}

// RegisterRoutes registers receivable routes on the given group
func (h *ReceivableHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receivables := rg.Group("/finance/receivables")
	{
		receivables.POST("", h.Open)
		receivables.GET("", h.List)
		receivables.GET("/stats/summary", h.GetSummary)
		receivables.POST("/mark-overdue", h.MarkOverdue)
		receivables.GET("/document/:number", h.GetBySourceDocument)
		receivables.GET("/:id", h.GetByID)
		receivables.DELETE("/:id", h.Delete)
		receivables.POST("/:id/payments", h.RecordPayment)
		receivables.PUT("/:id/due-date", h.SetDueDate)
	}
}

// Open opens a receivable manually, outside the quotation flow
func (h *ReceivableHandler) Open(c *gin.Context) {
	var req financeapp.OpenReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	receivable, err := h.receivableService.Open(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, receivable)
}

// GetByID retrieves a receivable by ID
func (h *ReceivableHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID format")
		return
	}

	receivable, err := h.receivableService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receivable)
}

// GetBySourceDocument retrieves the receivable opened for a document number
func (h *ReceivableHandler) GetBySourceDocument(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Document number is required")
		return
	}

	receivable, err := h.receivableService.GetBySourceDocument(c.Request.Context(), number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receivable)
}

// List retrieves receivables with filtering and pagination
func (h *ReceivableHandler) List(c *gin.Context) {
	var filter financeapp.ReceivableListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	receivables, total, err := h.receivableService.List(c.Request.Context(), filter)
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

	h.SuccessWithMeta(c, receivables, total, page, pageSize)
}

// RecordPayment applies a payment against the outstanding balance
func (h *ReceivableHandler) RecordPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID format")
		return
	}

	var req financeapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	receivable, err := h.receivableService.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receivable)
}

// SetDueDate sets the collection due date of a receivable
func (h *ReceivableHandler) SetDueDate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID format")
		return
	}

	var req financeapp.SetDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	receivable, err := h.receivableService.SetDueDate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receivable)
}

// Delete removes a receivable
func (h *ReceivableHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID format")
		return
	}

	if err := h.receivableService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkOverdueResponse reports how many receivables were flagged by the batch
type MarkOverdueResponse struct {
	Marked int `json:"marked"`
}

// MarkOverdue flags every unsettled receivable whose due date has passed
func (h *ReceivableHandler) MarkOverdue(c *gin.Context) {
	marked, err := h.receivableService.MarkOverdueBatch(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, MarkOverdueResponse{Marked: marked})
}

// GetSummary returns receivable counts by status and the outstanding total
func (h *ReceivableHandler) GetSummary(c *gin.Context) {
	summary, err := h.receivableService.Summary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
