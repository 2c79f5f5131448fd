package purchasing

import (
	"time"

	"github.com/gescom/backend/internal/domain/purchasing"
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

// SupplierOrderItemInput represents a line item in create/replace requests
type SupplierOrderItemInput struct {
	ProductID            *uuid.UUID      `json:"product_id"`
	ProductName          string          `json:"product_name" binding:"required,min=1,max=200"`
	Description          string          `json:"description" binding:"max=500"`
	Unit                 string          `json:"unit" binding:"max=20"`
	Quantity             decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	ExpectedDeliveryDate *time.Time      `json:"expected_delivery_date"`
}

// CreateSupplierOrderRequest represents a request to create a supplier order
type CreateSupplierOrderRequest struct {
	SupplierID      uuid.UUID                `json:"supplier_id" binding:"required"`
	SupplierName    string                   `json:"supplier_name" binding:"required,min=1,max=200"`
	OrderDate       *time.Time               `json:"order_date"`
	DeliveryDate    *time.Time               `json:"delivery_date"`
	Items           []SupplierOrderItemInput `json:"items"`
	DeliveryAddress *AddressInput            `json:"delivery_address"`
	PaymentTerms    string                   `json:"payment_terms"`
	Notes           string                   `json:"notes"`
}

// UpdateSupplierOrderRequest represents a sparse update of a draft order.
// Only non-nil fields are applied.
type UpdateSupplierOrderRequest struct {
	SupplierName    *string       `json:"supplier_name"`
	DeliveryDate    *time.Time    `json:"delivery_date"`
	DeliveryAddress *AddressInput `json:"delivery_address"`
	PaymentTerms    *string       `json:"payment_terms"`
	Notes           *string       `json:"notes"`
}

// ReplaceSupplierOrderItemsRequest replaces the full item list of a draft order
type ReplaceSupplierOrderItemsRequest struct {
	Items []SupplierOrderItemInput `json:"items" binding:"required"`
}

// UpdateSupplierOrderItemRequest represents a sparse update of a single line item
type UpdateSupplierOrderItemRequest struct {
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CancelSupplierOrderRequest carries the cancellation reason
type CancelSupplierOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// SetPaymentStatusRequest updates the payment tracking status of an order
type SetPaymentStatusRequest struct {
	PaymentStatus purchasing.PaymentStatus `json:"payment_status" binding:"required"`
}

// SupplierOrderListFilter represents filter options for the supplier order list
type SupplierOrderListFilter struct {
	Search        string                    `form:"search"`
	SupplierID    *uuid.UUID                `form:"supplier_id"`
	Status        *purchasing.OrderStatus   `form:"status"`
	Statuses      []string                  `form:"statuses"`
	PaymentStatus *purchasing.PaymentStatus `form:"payment_status"`
	StartDate     *time.Time                `form:"start_date"`
	EndDate       *time.Time                `form:"end_date"`
	Page          int                       `form:"page" binding:"omitempty,min=1"`
	PageSize      int                       `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string                    `form:"order_by"`
	OrderDir      string                    `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SupplierOrderResponse represents a supplier order in API responses
type SupplierOrderResponse struct {
	ID              uuid.UUID                   `json:"id"`
	Number          string                      `json:"number"`
	SupplierID      uuid.UUID                   `json:"supplier_id"`
	SupplierName    string                      `json:"supplier_name"`
	OrderDate       time.Time                   `json:"order_date"`
	DeliveryDate    *time.Time                  `json:"delivery_date,omitempty"`
	Items           []SupplierOrderItemResponse `json:"items"`
	ItemCount       int                         `json:"item_count"`
	Total           decimal.Decimal             `json:"total"`
	Currency        string                      `json:"currency"`
	Status          string                      `json:"status"`
	PaymentStatus   string                      `json:"payment_status"`
	PaymentTerms    string                      `json:"payment_terms,omitempty"`
	Notes           string                      `json:"notes,omitempty"`
	DeliveryAddress *AddressResponse            `json:"delivery_address,omitempty"`
	SentAt          *time.Time                  `json:"sent_at,omitempty"`
	ConfirmedAt     *time.Time                  `json:"confirmed_at,omitempty"`
	ReceivedAt      *time.Time                  `json:"received_at,omitempty"`
	CancelledAt     *time.Time                  `json:"cancelled_at,omitempty"`
	CancelReason    string                      `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
	Version         int                         `json:"version"`
}

// SupplierOrderListItemResponse represents a supplier order in list responses
type SupplierOrderListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	OrderDate     time.Time       `json:"order_date"`
	DeliveryDate  *time.Time      `json:"delivery_date,omitempty"`
	ItemCount     int             `json:"item_count"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SupplierOrderItemResponse represents a supplier order line item in API responses
type SupplierOrderItemResponse struct {
	ID                   uuid.UUID       `json:"id"`
	ProductID            *uuid.UUID      `json:"product_id,omitempty"`
	ProductName          string          `json:"product_name"`
	Description          string          `json:"description,omitempty"`
	Unit                 string          `json:"unit,omitempty"`
	Quantity             decimal.Decimal `json:"quantity"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	Amount               decimal.Decimal `json:"amount"`
	ExpectedDeliveryDate *time.Time      `json:"expected_delivery_date,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// SupplierOrderStatusSummary represents counts of supplier orders by status
type SupplierOrderStatusSummary struct {
	Draft     int64 `json:"draft"`
	Sent      int64 `json:"sent"`
	Confirmed int64 `json:"confirmed"`
	Received  int64 `json:"received"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
}

// ToSupplierOrderResponse converts a domain SupplierOrder to a response DTO
func ToSupplierOrderResponse(o *purchasing.SupplierOrder) SupplierOrderResponse {
	items := make([]SupplierOrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToSupplierOrderItemResponse(&o.Items[i])
	}

	return SupplierOrderResponse{
		ID:              o.ID,
		Number:          o.Number,
		SupplierID:      o.SupplierID,
		SupplierName:    o.SupplierName,
		OrderDate:       o.OrderDate,
		DeliveryDate:    o.DeliveryDate,
		Items:           items,
		ItemCount:       len(o.Items),
		Total:           o.Total,
		Currency:        string(valueobject.DefaultCurrency),
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		PaymentTerms:    o.PaymentTerms,
		Notes:           o.Notes,
		DeliveryAddress: ToAddressResponse(o.DeliveryAddress),
		SentAt:          o.SentAt,
		ConfirmedAt:     o.ConfirmedAt,
		ReceivedAt:      o.ReceivedAt,
		CancelledAt:     o.CancelledAt,
		CancelReason:    o.CancelReason,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Version:         o.Version,
	}
}

// ToSupplierOrderItemResponse converts a domain SupplierOrderItem to a response DTO
func ToSupplierOrderItemResponse(item *purchasing.SupplierOrderItem) SupplierOrderItemResponse {
	return SupplierOrderItemResponse{
		ID:                   item.ID,
		ProductID:            item.ProductID,
		ProductName:          item.ProductName,
		Description:          item.Description,
		Unit:                 item.Unit,
		Quantity:             item.Quantity,
		UnitPrice:            item.UnitPrice,
		Amount:               item.Amount,
		ExpectedDeliveryDate: item.ExpectedDeliveryDate,
		CreatedAt:            item.CreatedAt,
		UpdatedAt:            item.UpdatedAt,
	}
}

// ToSupplierOrderListItemResponse converts a domain SupplierOrder to a list item DTO
func ToSupplierOrderListItemResponse(o *purchasing.SupplierOrder) SupplierOrderListItemResponse {
	return SupplierOrderListItemResponse{
		ID:            o.ID,
		Number:        o.Number,
		SupplierID:    o.SupplierID,
		SupplierName:  o.SupplierName,
		OrderDate:     o.OrderDate,
		DeliveryDate:  o.DeliveryDate,
		ItemCount:     len(o.Items),
		Total:         o.Total,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToSupplierOrderListItemResponses converts a slice of domain SupplierOrders to list item DTOs
func ToSupplierOrderListItemResponses(orders []purchasing.SupplierOrder) []SupplierOrderListItemResponse {
	responses := make([]SupplierOrderListItemResponse, len(orders))
	for i := range orders {
		responses[i] = ToSupplierOrderListItemResponse(&orders[i])
	}
	return responses
}
