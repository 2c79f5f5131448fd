package models

import (
	"time"

	"github.com/gescom/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableModel is the persistence model for the Receivable aggregate root.
type ReceivableModel struct {
	AggregateModel
	SourceDocument string                   `gorm:"type:varchar(50);not null;uniqueIndex:idx_receivable_source"`
	ClientID       uuid.UUID                `gorm:"type:uuid;not null;index"`
	ClientName     string                   `gorm:"type:varchar(200);not null"`
	Total          decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	PaidAmount     decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Balance        decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	DueDate        *time.Time               `gorm:"index"`
	Status         finance.ReceivableStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	SettledAt      *time.Time
	Notes          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReceivableModel) TableName() string {
	return "receivables"
}

// ToDomain converts the persistence model to a domain Receivable entity.
func (m *ReceivableModel) ToDomain() *finance.Receivable {
	r := &finance.Receivable{
		SourceDocument: m.SourceDocument,
		ClientID:       m.ClientID,
		ClientName:     m.ClientName,
		Total:          m.Total,
		PaidAmount:     m.PaidAmount,
		Balance:        m.Balance,
		DueDate:        m.DueDate,
		Status:         m.Status,
		SettledAt:      m.SettledAt,
		Notes:          m.Notes,
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain Receivable entity.
func (m *ReceivableModel) FromDomain(r *finance.Receivable) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.SourceDocument = r.SourceDocument
	m.ClientID = r.ClientID
	m.ClientName = r.ClientName
	m.Total = r.Total
	m.PaidAmount = r.PaidAmount
	m.Balance = r.Balance
	m.DueDate = r.DueDate
	m.Status = r.Status
	m.SettledAt = r.SettledAt
	m.Notes = r.Notes
}

// ReceivableModelFromDomain creates a new persistence model from a domain Receivable entity.
func ReceivableModelFromDomain(r *finance.Receivable) *ReceivableModel {
	m := &ReceivableModel{}
	m.FromDomain(r)
	return m
}
