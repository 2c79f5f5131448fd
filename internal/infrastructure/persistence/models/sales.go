package models

import (
	"time"

	"github.com/gescom/backend/internal/domain/sales"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationModel is the persistence model for the Quotation aggregate root.
type QuotationModel struct {
	AggregateModel
	Number          string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_quotation_number"`
	ClientID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	ClientName      string                `gorm:"type:varchar(200);not null"`
	IssueDate       time.Time             `gorm:"not null;index"`
	ExpiryDate      *time.Time            `gorm:"index"`
	Items           []QuotationItemModel  `gorm:"foreignKey:QuotationID;references:ID"`
	Total           decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Status          sales.QuotationStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	DeliveryAddress valueobject.Address   `gorm:"type:jsonb"`
	PaymentNotes    string                `gorm:"type:text"`
	OrderNotes      string                `gorm:"type:text"`
	SentAt          *time.Time            `gorm:"index"`
	ApprovedAt      *time.Time            `gorm:"index"`
	RejectedAt      *time.Time
	RejectReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (QuotationModel) TableName() string {
	return "quotations"
}

// ToDomain converts the persistence model to a domain Quotation entity.
func (m *QuotationModel) ToDomain() *sales.Quotation {
	q := &sales.Quotation{
		Number:          m.Number,
		ClientID:        m.ClientID,
		ClientName:      m.ClientName,
		IssueDate:       m.IssueDate,
		ExpiryDate:      m.ExpiryDate,
		Total:           m.Total,
		Status:          m.Status,
		DeliveryAddress: m.DeliveryAddress,
		PaymentNotes:    m.PaymentNotes,
		OrderNotes:      m.OrderNotes,
		SentAt:          m.SentAt,
		ApprovedAt:      m.ApprovedAt,
		RejectedAt:      m.RejectedAt,
		RejectReason:    m.RejectReason,
		Items:           make([]sales.QuotationItem, len(m.Items)),
	}
	m.PopulateAggregateRoot(&q.BaseAggregateRoot)
	for i, item := range m.Items {
		q.Items[i] = *item.ToDomain()
	}
	return q
}

// FromDomain populates the persistence model from a domain Quotation entity.
func (m *QuotationModel) FromDomain(q *sales.Quotation) {
	m.FromDomainAggregateRoot(q.BaseAggregateRoot)
	m.Number = q.Number
	m.ClientID = q.ClientID
	m.ClientName = q.ClientName
	m.IssueDate = q.IssueDate
	m.ExpiryDate = q.ExpiryDate
	m.Total = q.Total
	m.Status = q.Status
	m.DeliveryAddress = q.DeliveryAddress
	m.PaymentNotes = q.PaymentNotes
	m.OrderNotes = q.OrderNotes
	m.SentAt = q.SentAt
	m.ApprovedAt = q.ApprovedAt
	m.RejectedAt = q.RejectedAt
	m.RejectReason = q.RejectReason
	m.Items = make([]QuotationItemModel, len(q.Items))
	for i, item := range q.Items {
		m.Items[i] = *QuotationItemModelFromDomain(&item)
	}
}

// QuotationModelFromDomain creates a new persistence model from a domain Quotation entity.
func QuotationModelFromDomain(q *sales.Quotation) *QuotationModel {
	m := &QuotationModel{}
	m.FromDomain(q)
	return m
}

// QuotationItemModel is the persistence model for the QuotationItem entity.
type QuotationItemModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key"`
	QuotationID uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID       `gorm:"type:uuid;index"`
	Code        string           `gorm:"type:varchar(50)"`
	ProductName string           `gorm:"type:varchar(200);not null"`
	Description string           `gorm:"type:varchar(500)"`
	Unit        string           `gorm:"type:varchar(20)"`
	Quantity    decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	TaxRate     *decimal.Decimal `gorm:"type:decimal(7,4)"`
	CreatedAt   time.Time        `gorm:"not null"`
	UpdatedAt   time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (QuotationItemModel) TableName() string {
	return "quotation_items"
}

// ToDomain converts the persistence model to a domain QuotationItem entity.
func (m *QuotationItemModel) ToDomain() *sales.QuotationItem {
	return &sales.QuotationItem{
		ID:          m.ID,
		QuotationID: m.QuotationID,
		ProductID:   m.ProductID,
		Code:        m.Code,
		ProductName: m.ProductName,
		Description: m.Description,
		Unit:        m.Unit,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		TaxRate:     m.TaxRate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// QuotationItemModelFromDomain creates a new persistence model from a domain QuotationItem entity.
func QuotationItemModelFromDomain(item *sales.QuotationItem) *QuotationItemModel {
	return &QuotationItemModel{
		ID:          item.ID,
		QuotationID: item.QuotationID,
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
