package finance

import (
	"time"

	"github.com/gescom/backend/internal/domain/finance"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenReceivableRequest represents a request to open a receivable manually
type OpenReceivableRequest struct {
	SourceDocument string          `json:"source_document" binding:"required,min=1,max=50"`
	ClientID       uuid.UUID       `json:"client_id" binding:"required"`
	ClientName     string          `json:"client_name" binding:"required,min=1,max=200"`
	Total          decimal.Decimal `json:"total" binding:"required"`
	DueDate        *time.Time      `json:"due_date"`
	Notes          string          `json:"notes" binding:"max=1000"`
}

// RecordPaymentRequest represents a payment applied to a receivable
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// SetDueDateRequest sets the collection due date of a receivable
type SetDueDateRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

// ReceivableListFilter represents filter options for the receivable list
type ReceivableListFilter struct {
	Search    string                    `form:"search"`
	ClientID  *uuid.UUID                `form:"client_id"`
	Status    *finance.ReceivableStatus `form:"status"`
	Statuses  []string                  `form:"statuses"`
	DueBefore *time.Time                `form:"due_before"`
	Page      int                       `form:"page" binding:"omitempty,min=1"`
	PageSize  int                       `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string                    `form:"order_by"`
	OrderDir  string                    `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ReceivableResponse represents a receivable in API responses
type ReceivableResponse struct {
	ID             uuid.UUID       `json:"id"`
	SourceDocument string          `json:"source_document"`
	ClientID       uuid.UUID       `json:"client_id"`
	ClientName     string          `json:"client_name"`
	Total          decimal.Decimal `json:"total"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	Balance        decimal.Decimal `json:"balance"`
	Currency       string          `json:"currency"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	Status         string          `json:"status"`
	SettledAt      *time.Time      `json:"settled_at,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CollectionSummary aggregates outstanding amounts across receivables
type CollectionSummary struct {
	Pending     int64           `json:"pending"`
	Partial     int64           `json:"partial"`
	Overdue     int64           `json:"overdue"`
	Settled     int64           `json:"settled"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// ToReceivableResponse converts a Receivable aggregate to a response DTO
func ToReceivableResponse(r *finance.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ID:             r.ID,
		SourceDocument: r.SourceDocument,
		ClientID:       r.ClientID,
		ClientName:     r.ClientName,
		Total:          r.Total,
		PaidAmount:     r.PaidAmount,
		Balance:        r.Balance,
		Currency:       string(valueobject.DefaultCurrency),
		DueDate:        r.DueDate,
		Status:         r.Status.String(),
		SettledAt:      r.SettledAt,
		Notes:          r.Notes,
		Version:        r.Version,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ToReceivableResponses converts a slice of receivables to response DTOs
func ToReceivableResponses(receivables []finance.Receivable) []ReceivableResponse {
	responses := make([]ReceivableResponse, len(receivables))
	for i := range receivables {
		responses[i] = ToReceivableResponse(&receivables[i])
	}
	return responses
}
