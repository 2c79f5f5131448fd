package handler

import (
	directoryapp "github.com/gescom/backend/internal/application/directory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransportHandler handles transport company directory API endpoints
type TransportHandler struct {
	BaseHandler
	transportService *directoryapp.TransportService
}

// NewTransportHandler creates a new TransportHandler
func NewTransportHandler(transportService *directoryapp.TransportService) *TransportHandler {
	return &TransportHandler{transportService: transportService}
}

// RegisterRoutes registers transport routes on the given group
func (h *TransportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transports := rg.Group("/directory/transports")
	{
		transports.POST("", h.Create)
		transports.GET("", h.List)
		transports.GET("/code/:code", h.GetByCode)
		transports.GET("/:id", h.GetByID)
		transports.PUT("/:id", h.Update)
		transports.DELETE("/:id", h.Delete)
		transports.POST("/:id/activate", h.Activate)
		transports.POST("/:id/deactivate", h.Deactivate)
	}
}

// Create registers a new transport company
func (h *TransportHandler) Create(c *gin.Context) {
	var req directoryapp.CreateTransportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	transport, err := h.transportService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, transport)
}

// GetByID retrieves a transport company by ID
func (h *TransportHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transport ID format")
		return
	}

	transport, err := h.transportService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transport)
}

// GetByCode retrieves a transport company by directory code
func (h *TransportHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Transport code is required")
		return
	}

	transport, err := h.transportService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transport)
}

// List retrieves transport companies with filtering and pagination
func (h *TransportHandler) List(c *gin.Context) {
	var filter directoryapp.PartyListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	transports, total, err := h.transportService.List(c.Request.Context(), filter)
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

	h.SuccessWithMeta(c, transports, total, page, pageSize)
}

// Update applies a sparse update to a transport company
func (h *TransportHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transport ID format")
		return
	}

	var req directoryapp.UpdateTransportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	transport, err := h.transportService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transport)
}

// Delete removes a transport company from the directory
func (h *TransportHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transport ID format")
		return
	}

	if err := h.transportService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Activate reactivates a deactivated transport company
func (h *TransportHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transport ID format")
		return
	}

	transport, err := h.transportService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transport)
}

// Deactivate deactivates a transport company without removing history
func (h *TransportHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transport ID format")
		return
	}

	transport, err := h.transportService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transport)
}
