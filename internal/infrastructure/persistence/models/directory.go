package models

import (
	"github.com/gescom/backend/internal/domain/directory"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
)

// ClientModel is the persistence model for the Client aggregate root.
type ClientModel struct {
	AggregateModel
	Code        string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_client_code"`
	Name        string                `gorm:"type:varchar(200);not null;index"`
	RUC         string                `gorm:"type:varchar(11);index"`
	ContactName string                `gorm:"type:varchar(100)"`
	Phone       string                `gorm:"type:varchar(20)"`
	Email       string                `gorm:"type:varchar(100)"`
	Address     valueobject.Address   `gorm:"type:jsonb"`
	Status      directory.PartyStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes       string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *directory.Client {
	c := &directory.Client{
		Code:        m.Code,
		Name:        m.Name,
		RUC:         m.RUC,
		ContactName: m.ContactName,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		Status:      m.Status,
		Notes:       m.Notes,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *directory.Client) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.RUC = c.RUC
	m.ContactName = c.ContactName
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.Status = c.Status
	m.Notes = c.Notes
}

// ClientModelFromDomain creates a new persistence model from a domain Client entity.
func ClientModelFromDomain(c *directory.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// SupplierModel is the persistence model for the Supplier aggregate root.
type SupplierModel struct {
	AggregateModel
	Code         string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_supplier_code"`
	Name         string                `gorm:"type:varchar(200);not null;index"`
	RUC          string                `gorm:"type:varchar(11);index"`
	ContactName  string                `gorm:"type:varchar(100)"`
	Phone        string                `gorm:"type:varchar(20)"`
	Email        string                `gorm:"type:varchar(100)"`
	Address      valueobject.Address   `gorm:"type:jsonb"`
	PaymentTerms string                `gorm:"type:varchar(200)"`
	Status       directory.PartyStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes        string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *directory.Supplier {
	s := &directory.Supplier{
		Code:         m.Code,
		Name:         m.Name,
		RUC:          m.RUC,
		ContactName:  m.ContactName,
		Phone:        m.Phone,
		Email:        m.Email,
		Address:      m.Address,
		PaymentTerms: m.PaymentTerms,
		Status:       m.Status,
		Notes:        m.Notes,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain Supplier entity.
func (m *SupplierModel) FromDomain(s *directory.Supplier) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Code = s.Code
	m.Name = s.Name
	m.RUC = s.RUC
	m.ContactName = s.ContactName
	m.Phone = s.Phone
	m.Email = s.Email
	m.Address = s.Address
	m.PaymentTerms = s.PaymentTerms
	m.Status = s.Status
	m.Notes = s.Notes
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier entity.
func SupplierModelFromDomain(s *directory.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomain(s)
	return m
}

// TransportModel is the persistence model for the Transport aggregate root.
type TransportModel struct {
	AggregateModel
	Code        string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_transport_code"`
	Name        string                `gorm:"type:varchar(200);not null;index"`
	RUC         string                `gorm:"type:varchar(11);index"`
	ContactName string                `gorm:"type:varchar(100)"`
	Phone       string                `gorm:"type:varchar(20)"`
	Coverage    string                `gorm:"type:varchar(500)"`
	Status      directory.PartyStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes       string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TransportModel) TableName() string {
	return "transports"
}

// ToDomain converts the persistence model to a domain Transport entity.
func (m *TransportModel) ToDomain() *directory.Transport {
	t := &directory.Transport{
		Code:        m.Code,
		Name:        m.Name,
		RUC:         m.RUC,
		ContactName: m.ContactName,
		Phone:       m.Phone,
		Coverage:    m.Coverage,
		Status:      m.Status,
		Notes:       m.Notes,
	}
	m.PopulateAggregateRoot(&t.BaseAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain Transport entity.
func (m *TransportModel) FromDomain(t *directory.Transport) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Code = t.Code
	m.Name = t.Name
	m.RUC = t.RUC
	m.ContactName = t.ContactName
	m.Phone = t.Phone
	m.Coverage = t.Coverage
	m.Status = t.Status
	m.Notes = t.Notes
}

// TransportModelFromDomain creates a new persistence model from a domain Transport entity.
func TransportModelFromDomain(t *directory.Transport) *TransportModel {
	m := &TransportModel{}
	m.FromDomain(t)
	return m
}
