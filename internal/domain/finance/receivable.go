package finance

import (
	"fmt"
	"time"

	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableStatus represents the collection status of a receivable
type ReceivableStatus string

const (
	ReceivableStatusPending ReceivableStatus = "pending"
	ReceivableStatusPartial ReceivableStatus = "partial"
	ReceivableStatusSettled ReceivableStatus = "settled"
	ReceivableStatusOverdue ReceivableStatus = "overdue"
)

// IsValid checks if the status is a valid ReceivableStatus
func (s ReceivableStatus) IsValid() bool {
	switch s {
	case ReceivableStatusPending, ReceivableStatusPartial,
		ReceivableStatusSettled, ReceivableStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of ReceivableStatus
func (s ReceivableStatus) String() string {
	return string(s)
}

// Receivable represents an account receivable opened against a client,
// typically from an approved quotation. Payments are recorded against the
// outstanding balance until it is settled.
type Receivable struct {
	shared.BaseAggregateRoot
	SourceDocument string // originating document number, e.g. Q-202609-001
	ClientID       uuid.UUID
	ClientName     string
	Total          decimal.Decimal
	PaidAmount     decimal.Decimal
	Balance        decimal.Decimal // Total - PaidAmount, always derived
	DueDate        *time.Time
	Status         ReceivableStatus
	SettledAt      *time.Time
	Notes          string
}

// NewReceivable opens a new receivable for the full document total
func NewReceivable(sourceDocument string, clientID uuid.UUID, clientName string, total valueobject.Money) (*Receivable, error) {
	if sourceDocument == "" {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Source document cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	if !total.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Receivable total must be positive")
	}

	return &Receivable{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SourceDocument:    sourceDocument,
		ClientID:          clientID,
		ClientName:        clientName,
		Total:             total.Amount(),
		PaidAmount:        decimal.Zero,
		Balance:           total.Amount(),
		Status:            ReceivableStatusPending,
	}, nil
}

// SetDueDate sets the collection due date
func (r *Receivable) SetDueDate(due time.Time) {
	r.DueDate = &due
	r.UpdatedAt = time.Now()
}

// SetNotes sets free-text collection notes
func (r *Receivable) SetNotes(notes string) {
	r.Notes = notes
	r.UpdatedAt = time.Now()
}

// RecordPayment applies a payment against the outstanding balance.
// The payment cannot exceed the balance; when it covers it exactly the
// receivable is settled.
func (r *Receivable) RecordPayment(amount valueobject.Money) error {
	if r.Status == ReceivableStatusSettled {
		return shared.NewDomainError("ALREADY_SETTLED", "Receivable is already settled")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(r.Balance) {
		return shared.NewDomainError("PAYMENT_EXCEEDS_BALANCE",
			fmt.Sprintf("Payment %s exceeds outstanding balance %s", amount.Amount(), r.Balance))
	}

	now := time.Now()
	r.PaidAmount = r.PaidAmount.Add(amount.Amount())
	r.Balance = r.Total.Sub(r.PaidAmount)
	r.UpdatedAt = now

	if r.Balance.IsZero() {
		r.Status = ReceivableStatusSettled
		r.SettledAt = &now
	} else {
		r.Status = ReceivableStatusPartial
	}

	return nil
}

// MarkOverdue flags the receivable as overdue when its due date has passed.
// Settled receivables are never overdue; paid amounts are preserved.
func (r *Receivable) MarkOverdue(asOf time.Time) error {
	if r.Status == ReceivableStatusSettled {
		return shared.NewDomainError("ALREADY_SETTLED", "Receivable is already settled")
	}
	if r.DueDate == nil || !r.DueDate.Before(asOf) {
		return shared.NewDomainError("NOT_DUE", "Receivable is not past its due date")
	}

	r.Status = ReceivableStatusOverdue
	r.UpdatedAt = time.Now()

	return nil
}

// IsSettled returns true if the balance has been fully collected
func (r *Receivable) IsSettled() bool {
	return r.Status == ReceivableStatusSettled
}

// IsOverdueBy reports whether the receivable is unpaid past its due date at t
func (r *Receivable) IsOverdueBy(t time.Time) bool {
	return !r.IsSettled() && r.DueDate != nil && r.DueDate.Before(t)
}

// GetBalanceMoney returns the outstanding balance as Money
func (r *Receivable) GetBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(r.Balance)
}
