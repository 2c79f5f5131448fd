package models

import (
	"time"

	"github.com/gescom/backend/internal/domain/purchasing"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierOrderModel is the persistence model for the SupplierOrder aggregate root.
type SupplierOrderModel struct {
	AggregateModel
	Number          string                   `gorm:"type:varchar(50);not null;uniqueIndex:idx_supplier_order_number"`
	SupplierID      uuid.UUID                `gorm:"type:uuid;not null;index"`
	SupplierName    string                   `gorm:"type:varchar(200);not null"`
	OrderDate       time.Time                `gorm:"not null;index"`
	DeliveryDate    *time.Time               `gorm:"index"`
	Items           []SupplierOrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
	Total           decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Status          purchasing.OrderStatus   `gorm:"type:varchar(20);not null;default:'draft';index"`
	PaymentStatus   purchasing.PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid';index"`
	PaymentTerms    string                   `gorm:"type:varchar(200)"`
	Notes           string                   `gorm:"type:text"`
	DeliveryAddress valueobject.Address      `gorm:"type:jsonb"`
	SentAt          *time.Time               `gorm:"index"`
	ConfirmedAt     *time.Time               `gorm:"index"`
	ReceivedAt      *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SupplierOrderModel) TableName() string {
	return "supplier_orders"
}

// ToDomain converts the persistence model to a domain SupplierOrder entity.
func (m *SupplierOrderModel) ToDomain() *purchasing.SupplierOrder {
	o := &purchasing.SupplierOrder{
		Number:          m.Number,
		SupplierID:      m.SupplierID,
		SupplierName:    m.SupplierName,
		OrderDate:       m.OrderDate,
		DeliveryDate:    m.DeliveryDate,
		Total:           m.Total,
		Status:          m.Status,
		PaymentStatus:   m.PaymentStatus,
		PaymentTerms:    m.PaymentTerms,
		Notes:           m.Notes,
		DeliveryAddress: m.DeliveryAddress,
		SentAt:          m.SentAt,
		ConfirmedAt:     m.ConfirmedAt,
		ReceivedAt:      m.ReceivedAt,
		CancelledAt:     m.CancelledAt,
		CancelReason:    m.CancelReason,
		Items:           make([]purchasing.SupplierOrderItem, len(m.Items)),
	}
	m.PopulateAggregateRoot(&o.BaseAggregateRoot)
	for i, item := range m.Items {
		o.Items[i] = *item.ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain SupplierOrder entity.
func (m *SupplierOrderModel) FromDomain(o *purchasing.SupplierOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.Number = o.Number
	m.SupplierID = o.SupplierID
	m.SupplierName = o.SupplierName
	m.OrderDate = o.OrderDate
	m.DeliveryDate = o.DeliveryDate
	m.Total = o.Total
	m.Status = o.Status
	m.PaymentStatus = o.PaymentStatus
	m.PaymentTerms = o.PaymentTerms
	m.Notes = o.Notes
	m.DeliveryAddress = o.DeliveryAddress
	m.SentAt = o.SentAt
	m.ConfirmedAt = o.ConfirmedAt
	m.ReceivedAt = o.ReceivedAt
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
	m.Items = make([]SupplierOrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *SupplierOrderItemModelFromDomain(&item)
	}
}

// SupplierOrderModelFromDomain creates a new persistence model from a domain SupplierOrder entity.
func SupplierOrderModelFromDomain(o *purchasing.SupplierOrder) *SupplierOrderModel {
	m := &SupplierOrderModel{}
	m.FromDomain(o)
	return m
}

// SupplierOrderItemModel is the persistence model for the SupplierOrderItem entity.
type SupplierOrderItemModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID            *uuid.UUID      `gorm:"type:uuid;index"`
	ProductName          string          `gorm:"type:varchar(200);not null"`
	Description          string          `gorm:"type:varchar(500)"`
	Unit                 string          `gorm:"type:varchar(20)"`
	Quantity             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount               decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExpectedDeliveryDate *time.Time
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SupplierOrderItemModel) TableName() string {
	return "supplier_order_items"
}

// ToDomain converts the persistence model to a domain SupplierOrderItem entity.
func (m *SupplierOrderItemModel) ToDomain() *purchasing.SupplierOrderItem {
	return &purchasing.SupplierOrderItem{
		ID:                   m.ID,
		OrderID:              m.OrderID,
		ProductID:            m.ProductID,
		ProductName:          m.ProductName,
		Description:          m.Description,
		Unit:                 m.Unit,
		Quantity:             m.Quantity,
		UnitPrice:            m.UnitPrice,
		Amount:               m.Amount,
		ExpectedDeliveryDate: m.ExpectedDeliveryDate,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// SupplierOrderItemModelFromDomain creates a new persistence model from a domain SupplierOrderItem entity.
func SupplierOrderItemModelFromDomain(item *purchasing.SupplierOrderItem) *SupplierOrderItemModel {
	return &SupplierOrderItemModel{
		ID:                   item.ID,
		OrderID:              item.OrderID,
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
