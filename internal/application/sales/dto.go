package sales

import (
	"time"

	"github.com/gescom/backend/internal/domain/sales"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddressInput represents a delivery address in requests
type AddressInput struct {
	Street     string `json:"street" binding:"required,min=1,max=300"`
	District   string `json:"district" binding:"max=100"`
	Province   string `json:"province" binding:"max=100"`
	Department string `json:"department" binding:"max=100"`
	Reference  string `json:"reference" binding:"max=300"`
}

// ToValueObject converts the input to an Address value object
func (a *AddressInput) ToValueObject() (valueobject.Address, error) {
	return valueobject.NewAddress(a.Street, a.District, a.Province, a.Department,
		valueobject.WithReference(a.Reference))
}

// AddressResponse represents a delivery address in responses
type AddressResponse struct {
	Street     string `json:"street"`
	District   string `json:"district,omitempty"`
	Province   string `json:"province,omitempty"`
	Department string `json:"department,omitempty"`
	Reference  string `json:"reference,omitempty"`
}

// ToAddressResponse converts an Address value object to a response DTO.
// Returns nil for an empty address.
func ToAddressResponse(addr valueobject.Address) *AddressResponse {
	if addr.IsEmpty() {
		return nil
	}
	return &AddressResponse{
		Street:     addr.Street(),
		District:   addr.District(),
		Province:   addr.Province(),
		Department: addr.Department(),
		Reference:  addr.Reference(),
	}
}

// QuotationItemInput represents a line item in create/replace requests
type QuotationItemInput struct {
	ProductID   *uuid.UUID       `json:"product_id"`
	Code        string           `json:"code" binding:"max=50"`
	ProductName string           `json:"product_name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=500"`
	Unit        string           `json:"unit" binding:"max=20"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

// CreateQuotationRequest represents a request to create a quotation
type CreateQuotationRequest struct {
	ClientID        uuid.UUID            `json:"client_id" binding:"required"`
	ClientName      string               `json:"client_name" binding:"required,min=1,max=200"`
	IssueDate       *time.Time           `json:"issue_date"`
	ExpiryDate      *time.Time           `json:"expiry_date"`
	Items           []QuotationItemInput `json:"items"`
	DeliveryAddress *AddressInput        `json:"delivery_address"`
	PaymentNotes    string               `json:"payment_notes"`
	OrderNotes      string               `json:"order_notes"`
}

// UpdateQuotationRequest represents a sparse update of a draft quotation.
// Only non-nil fields are applied.
type UpdateQuotationRequest struct {
	ClientName      *string       `json:"client_name"`
	ExpiryDate      *time.Time    `json:"expiry_date"`
	DeliveryAddress *AddressInput `json:"delivery_address"`
	PaymentNotes    *string       `json:"payment_notes"`
	OrderNotes      *string       `json:"order_notes"`
}

// ReplaceQuotationItemsRequest replaces the full item list of a draft quotation
type ReplaceQuotationItemsRequest struct {
	Items []QuotationItemInput `json:"items" binding:"required"`
}

// UpdateQuotationItemRequest represents a sparse update of a single line item
type UpdateQuotationItemRequest struct {
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// RejectQuotationRequest carries the client's rejection reason
type RejectQuotationRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// QuotationListFilter represents filter options for the quotation list
type QuotationListFilter struct {
	Search    string                 `form:"search"`
	ClientID  *uuid.UUID             `form:"client_id"`
	Status    *sales.QuotationStatus `form:"status"`
	Statuses  []string               `form:"statuses"`
	StartDate *time.Time             `form:"start_date"`
	EndDate   *time.Time             `form:"end_date"`
	Page      int                    `form:"page" binding:"omitempty,min=1"`
	PageSize  int                    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string                 `form:"order_by"`
	OrderDir  string                 `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// QuotationResponse represents a quotation in API responses
type QuotationResponse struct {
	ID              uuid.UUID               `json:"id"`
	Number          string                  `json:"number"`
	ClientID        uuid.UUID               `json:"client_id"`
	ClientName      string                  `json:"client_name"`
	IssueDate       time.Time               `json:"issue_date"`
	ExpiryDate      *time.Time              `json:"expiry_date,omitempty"`
	Items           []QuotationItemResponse `json:"items"`
	ItemCount       int                     `json:"item_count"`
	Total           decimal.Decimal         `json:"total"`
	Currency        string                  `json:"currency"`
	Status          string                  `json:"status"`
	DeliveryAddress *AddressResponse        `json:"delivery_address,omitempty"`
	PaymentNotes    string                  `json:"payment_notes,omitempty"`
	OrderNotes      string                  `json:"order_notes,omitempty"`
	SentAt          *time.Time              `json:"sent_at,omitempty"`
	ApprovedAt      *time.Time              `json:"approved_at,omitempty"`
	RejectedAt      *time.Time              `json:"rejected_at,omitempty"`
	RejectReason    string                  `json:"reject_reason,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
	Version         int                     `json:"version"`
}

// QuotationListItemResponse represents a quotation in list responses (less detail)
type QuotationListItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	ClientID   uuid.UUID       `json:"client_id"`
	ClientName string          `json:"client_name"`
	IssueDate  time.Time       `json:"issue_date"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
	ItemCount  int             `json:"item_count"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// QuotationItemResponse represents a quotation line item in API responses
type QuotationItemResponse struct {
	ID          uuid.UUID        `json:"id"`
	ProductID   *uuid.UUID       `json:"product_id,omitempty"`
	Code        string           `json:"code,omitempty"`
	ProductName string           `json:"product_name"`
	Description string           `json:"description,omitempty"`
	Unit        string           `json:"unit,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Amount      decimal.Decimal  `json:"amount"`
	TaxRate     *decimal.Decimal `json:"tax_rate,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// QuotationStatusSummary represents counts of quotations by status
type QuotationStatusSummary struct {
	Draft    int64 `json:"draft"`
	Sent     int64 `json:"sent"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Expired  int64 `json:"expired"`
	Total    int64 `json:"total"`
}

// ToQuotationResponse converts a domain Quotation to a response DTO
func ToQuotationResponse(q *sales.Quotation) QuotationResponse {
	items := make([]QuotationItemResponse, len(q.Items))
	for i := range q.Items {
		items[i] = ToQuotationItemResponse(&q.Items[i])
	}

	return QuotationResponse{
		ID:              q.ID,
		Number:          q.Number,
		ClientID:        q.ClientID,
		ClientName:      q.ClientName,
		IssueDate:       q.IssueDate,
		ExpiryDate:      q.ExpiryDate,
		Items:           items,
		ItemCount:       len(q.Items),
		Total:           q.Total,
		Currency:        string(valueobject.DefaultCurrency),
		Status:          string(q.Status),
		DeliveryAddress: ToAddressResponse(q.DeliveryAddress),
		PaymentNotes:    q.PaymentNotes,
		OrderNotes:      q.OrderNotes,
		SentAt:          q.SentAt,
		ApprovedAt:      q.ApprovedAt,
		RejectedAt:      q.RejectedAt,
		RejectReason:    q.RejectReason,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
		Version:         q.Version,
	}
}

// ToQuotationItemResponse converts a domain QuotationItem to a response DTO
func ToQuotationItemResponse(item *sales.QuotationItem) QuotationItemResponse {
	return QuotationItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		Code:        item.Code,
		ProductName: item.ProductName,
		Description: item.Description,
		Unit:        item.Unit,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Amount:      item.Amount,
		TaxRate:     item.TaxRate,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToQuotationListItemResponse converts a domain Quotation to a list item DTO
func ToQuotationListItemResponse(q *sales.Quotation) QuotationListItemResponse {
	return QuotationListItemResponse{
		ID:         q.ID,
		Number:     q.Number,
		ClientID:   q.ClientID,
		ClientName: q.ClientName,
		IssueDate:  q.IssueDate,
		ExpiryDate: q.ExpiryDate,
		ItemCount:  len(q.Items),
		Total:      q.Total,
		Status:     string(q.Status),
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

// ToQuotationListItemResponses converts a slice of domain Quotations to list item DTOs
func ToQuotationListItemResponses(quotations []sales.Quotation) []QuotationListItemResponse {
	responses := make([]QuotationListItemResponse, len(quotations))
	for i := range quotations {
		responses[i] = ToQuotationListItemResponse(&quotations[i])
	}
	return responses
}
