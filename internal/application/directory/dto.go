package directory

import (
	"time"

	"github.com/gescom/backend/internal/domain/directory"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AddressInput represents a fiscal address in requests
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

// AddressResponse represents a fiscal address in responses
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

// CreateClientRequest represents a request to register a client
type CreateClientRequest struct {
	Code        string        `json:"code" binding:"required,min=1,max=20"`
	Name        string        `json:"name" binding:"required,min=1,max=200"`
	RUC         string        `json:"ruc" binding:"omitempty,len=11"`
	ContactName string        `json:"contact_name" binding:"max=100"`
	Phone       string        `json:"phone" binding:"max=20"`
	Email       string        `json:"email" binding:"omitempty,email"`
	Address     *AddressInput `json:"address"`
	Notes       string        `json:"notes" binding:"max=1000"`
}

// UpdateClientRequest represents a sparse update of a client.
// Fields left nil are not modified.
type UpdateClientRequest struct {
	Name        *string       `json:"name"`
	RUC         *string       `json:"ruc"`
	ContactName *string       `json:"contact_name"`
	Phone       *string       `json:"phone"`
	Email       *string       `json:"email"`
	Address     *AddressInput `json:"address"`
	Notes       *string       `json:"notes"`
}

// CreateSupplierRequest represents a request to register a supplier
type CreateSupplierRequest struct {
	Code         string        `json:"code" binding:"required,min=1,max=20"`
	Name         string        `json:"name" binding:"required,min=1,max=200"`
	RUC          string        `json:"ruc" binding:"omitempty,len=11"`
	ContactName  string        `json:"contact_name" binding:"max=100"`
	Phone        string        `json:"phone" binding:"max=20"`
	Email        string        `json:"email" binding:"omitempty,email"`
	Address      *AddressInput `json:"address"`
	PaymentTerms string        `json:"payment_terms" binding:"max=200"`
	Notes        string        `json:"notes" binding:"max=1000"`
}

// UpdateSupplierRequest represents a sparse update of a supplier
type UpdateSupplierRequest struct {
	Name         *string       `json:"name"`
	RUC          *string       `json:"ruc"`
	ContactName  *string       `json:"contact_name"`
	Phone        *string       `json:"phone"`
	Email        *string       `json:"email"`
	Address      *AddressInput `json:"address"`
	PaymentTerms *string       `json:"payment_terms"`
	Notes        *string       `json:"notes"`
}

// CreateTransportRequest represents a request to register a transport company
type CreateTransportRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=20"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	RUC         string `json:"ruc" binding:"omitempty,len=11"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=20"`
	Coverage    string `json:"coverage" binding:"max=500"`
	Notes       string `json:"notes" binding:"max=1000"`
}

// UpdateTransportRequest represents a sparse update of a transport company
type UpdateTransportRequest struct {
	Name        *string `json:"name"`
	RUC         *string `json:"ruc"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Coverage    *string `json:"coverage"`
	Notes       *string `json:"notes"`
}

// PartyListFilter represents filter options shared by the directory lists
type PartyListFilter struct {
	Search   string  `form:"search"`
	Status   *string `form:"status" binding:"omitempty,oneof=active inactive"`
	RUC      string  `form:"ruc"`
	Page     int     `form:"page" binding:"omitempty,min=1"`
	PageSize int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string  `form:"order_by"`
	OrderDir string  `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID          uuid.UUID        `json:"id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	RUC         string           `json:"ruc,omitempty"`
	ContactName string           `json:"contact_name,omitempty"`
	Phone       string           `json:"phone,omitempty"`
	Email       string           `json:"email,omitempty"`
	Address     *AddressResponse `json:"address,omitempty"`
	Status      string           `json:"status"`
	Notes       string           `json:"notes,omitempty"`
	Version     int              `json:"version"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID           uuid.UUID        `json:"id"`
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	RUC          string           `json:"ruc,omitempty"`
	ContactName  string           `json:"contact_name,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	Email        string           `json:"email,omitempty"`
	Address      *AddressResponse `json:"address,omitempty"`
	PaymentTerms string           `json:"payment_terms,omitempty"`
	Status       string           `json:"status"`
	Notes        string           `json:"notes,omitempty"`
	Version      int              `json:"version"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// TransportResponse represents a transport company in API responses
type TransportResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	RUC         string    `json:"ruc,omitempty"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Coverage    string    `json:"coverage,omitempty"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToClientResponse converts a Client aggregate to a response DTO
func ToClientResponse(c *directory.Client) ClientResponse {
	return ClientResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		RUC:         c.RUC,
		ContactName: c.ContactName,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     ToAddressResponse(c.Address),
		Status:      c.Status.String(),
		Notes:       c.Notes,
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToClientResponses converts a slice of clients to response DTOs
func ToClientResponses(clients []directory.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses
}

// ToSupplierResponse converts a Supplier aggregate to a response DTO
func ToSupplierResponse(s *directory.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:           s.ID,
		Code:         s.Code,
		Name:         s.Name,
		RUC:          s.RUC,
		ContactName:  s.ContactName,
		Phone:        s.Phone,
		Email:        s.Email,
		Address:      ToAddressResponse(s.Address),
		PaymentTerms: s.PaymentTerms,
		Status:       s.Status.String(),
		Notes:        s.Notes,
		Version:      s.Version,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ToSupplierResponses converts a slice of suppliers to response DTOs
func ToSupplierResponses(suppliers []directory.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses
}

// ToTransportResponse converts a Transport aggregate to a response DTO
func ToTransportResponse(tr *directory.Transport) TransportResponse {
	return TransportResponse{
		ID:          tr.ID,
		Code:        tr.Code,
		Name:        tr.Name,
		RUC:         tr.RUC,
		ContactName: tr.ContactName,
		Phone:       tr.Phone,
		Coverage:    tr.Coverage,
		Status:      tr.Status.String(),
		Notes:       tr.Notes,
		Version:     tr.Version,
		CreatedAt:   tr.CreatedAt,
		UpdatedAt:   tr.UpdatedAt,
	}
}

// ToTransportResponses converts a slice of transport companies to response DTOs
func ToTransportResponses(transports []directory.Transport) []TransportResponse {
	responses := make([]TransportResponse, len(transports))
	for i := range transports {
		responses[i] = ToTransportResponse(&transports[i])
	}
	return responses
}
