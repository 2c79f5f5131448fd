package sales

import (
	"fmt"
	"regexp"
	"time"

	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationStatus represents the lifecycle status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusApproved QuotationStatus = "approved"
	QuotationStatusRejected QuotationStatus = "rejected"
	QuotationStatusExpired  QuotationStatus = "expired"
)

// IsValid checks if the status is a valid QuotationStatus
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusApproved,
		QuotationStatusRejected, QuotationStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of QuotationStatus
func (s QuotationStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Draft quotations may expire directly when their expiry date passes without
// ever having been sent.
func (s QuotationStatus) CanTransitionTo(target QuotationStatus) bool {
	switch s {
	case QuotationStatusDraft:
		return target == QuotationStatusSent || target == QuotationStatusExpired
	case QuotationStatusSent:
		return target == QuotationStatusApproved ||
			target == QuotationStatusRejected ||
			target == QuotationStatusExpired
	case QuotationStatusApproved, QuotationStatusRejected, QuotationStatusExpired:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true if no further transitions are possible
func (s QuotationStatus) IsTerminal() bool {
	switch s {
	case QuotationStatusApproved, QuotationStatusRejected, QuotationStatusExpired:
		return true
	}
	return false
}

// quotationNumberPattern matches document numbers like Q-202609-001
var quotationNumberPattern = regexp.MustCompile(`^Q-\d{6}-\d{3}$`)

// ValidNumber reports whether a string is a well-formed quotation number
func ValidNumber(number string) bool {
	return quotationNumberPattern.MatchString(number)
}

// QuotationItem represents a line item in a quotation
type QuotationItem struct {
	ID          uuid.UUID
	QuotationID uuid.UUID
	ProductID   *uuid.UUID // nil for free-form lines
	Code        string
	ProductName string
	Description string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal // Quantity * UnitPrice
	TaxRate     *decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewQuotationItem creates a new quotation line item
func NewQuotationItem(quotationID uuid.UUID, productName string, quantity decimal.Decimal, unitPrice valueobject.Money) (*QuotationItem, error) {
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &QuotationItem{
		ID:          uuid.New(),
		QuotationID: quotationID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      quantity.Mul(unitPrice.Amount()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateQuantity updates the quantity and recalculates the line amount
func (i *QuotationItem) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	i.Quantity = quantity
	i.Amount = quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()

	return nil
}

// UpdateUnitPrice updates the unit price and recalculates the line amount
func (i *QuotationItem) UpdateUnitPrice(unitPrice valueobject.Money) error {
	if unitPrice.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	i.UnitPrice = unitPrice.Amount()
	i.Amount = i.Quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()

	return nil
}

// GetAmountMoney returns the line amount as Money
func (i *QuotationItem) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(i.Amount)
}

// Quotation represents a sales quotation aggregate root.
// It manages the lifecycle of a price offer from draft through client response.
type Quotation struct {
	shared.BaseAggregateRoot
	Number          string
	ClientID        uuid.UUID
	ClientName      string // denormalized for listing
	IssueDate       time.Time
	ExpiryDate      *time.Time
	Items           []QuotationItem
	Total           decimal.Decimal // Sum of item amounts, always derived
	Status          QuotationStatus
	DeliveryAddress valueobject.Address
	PaymentNotes    string
	OrderNotes      string
	SentAt          *time.Time
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	RejectReason    string
}

// NewQuotation creates a new draft quotation
func NewQuotation(number string, clientID uuid.UUID, clientName string, issueDate time.Time) (*Quotation, error) {
	if !ValidNumber(number) {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Quotation number must match Q-YYYYMM-NNN")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	return &Quotation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		ClientID:          clientID,
		ClientName:        clientName,
		IssueDate:         issueDate,
		Items:             make([]QuotationItem, 0),
		Total:             decimal.Zero,
		Status:            QuotationStatusDraft,
		DeliveryAddress:   valueobject.EmptyAddress(),
	}, nil
}

// AddItem adds a new line item. Only allowed in draft status.
func (q *Quotation) AddItem(productName string, quantity decimal.Decimal, unitPrice valueobject.Money) (*QuotationItem, error) {
	if q.Status != QuotationStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft quotation")
	}

	item, err := NewQuotationItem(q.ID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	q.Items = append(q.Items, *item)
	q.recalculateTotal()
	q.UpdatedAt = time.Now()

	// pointer into the slice so callers can fill optional line fields
	return &q.Items[len(q.Items)-1], nil
}

// ReplaceItems replaces the whole item list. Line updates from the client
// arrive as a full set; each incoming item is validated and the total is
// recomputed from scratch. Only allowed in draft status.
func (q *Quotation) ReplaceItems(items []QuotationItem) error {
	if q.Status != QuotationStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot replace items of a non-draft quotation")
	}

	now := time.Now()
	replacement := make([]QuotationItem, 0, len(items))
	for _, item := range items {
		if item.ProductName == "" {
			return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
		}
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}

		if item.ID == uuid.Nil {
			item.ID = uuid.New()
			item.CreatedAt = now
		}
		item.QuotationID = q.ID
		item.Amount = item.Quantity.Mul(item.UnitPrice)
		item.UpdatedAt = now
		replacement = append(replacement, item)
	}

	q.Items = replacement
	q.recalculateTotal()
	q.UpdatedAt = now

	return nil
}

// UpdateItemQuantity updates the quantity of an existing item.
// Only allowed in draft status.
func (q *Quotation) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if q.Status != QuotationStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items of a non-draft quotation")
	}

	for idx := range q.Items {
		if q.Items[idx].ID == itemID {
			if err := q.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			q.recalculateTotal()
			q.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Quotation item not found")
}

// UpdateItemPrice updates the unit price of an existing item.
// Only allowed in draft status.
func (q *Quotation) UpdateItemPrice(itemID uuid.UUID, unitPrice valueobject.Money) error {
	if q.Status != QuotationStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items of a non-draft quotation")
	}

	for idx := range q.Items {
		if q.Items[idx].ID == itemID {
			if err := q.Items[idx].UpdateUnitPrice(unitPrice); err != nil {
				return err
			}
			q.recalculateTotal()
			q.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Quotation item not found")
}

// RemoveItem removes an item. Only allowed in draft status.
func (q *Quotation) RemoveItem(itemID uuid.UUID) error {
	if q.Status != QuotationStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft quotation")
	}

	for idx, item := range q.Items {
		if item.ID == itemID {
			q.Items = append(q.Items[:idx], q.Items[idx+1:]...)
			q.recalculateTotal()
			q.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Quotation item not found")
}

// SetExpiryDate sets the expiry date. Must not be before the issue date.
func (q *Quotation) SetExpiryDate(expiry time.Time) error {
	if expiry.Before(q.IssueDate) {
		return shared.NewDomainError("INVALID_EXPIRY", "Expiry date cannot be before issue date")
	}

	q.ExpiryDate = &expiry
	q.UpdatedAt = time.Now()

	return nil
}

// SetDeliveryAddress sets the delivery address
func (q *Quotation) SetDeliveryAddress(addr valueobject.Address) {
	q.DeliveryAddress = addr
	q.UpdatedAt = time.Now()
}

// SetPaymentNotes sets the payment terms free text
func (q *Quotation) SetPaymentNotes(notes string) {
	q.PaymentNotes = notes
	q.UpdatedAt = time.Now()
}

// SetOrderNotes sets the order free text
func (q *Quotation) SetOrderNotes(notes string) {
	q.OrderNotes = notes
	q.UpdatedAt = time.Now()
}

// Send marks the quotation as sent to the client.
// Requires at least one item.
func (q *Quotation) Send() error {
	if !q.Status.CanTransitionTo(QuotationStatusSent) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send quotation in %s status", q.Status))
	}
	if len(q.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot send quotation without items")
	}

	now := time.Now()
	q.Status = QuotationStatusSent
	q.SentAt = &now
	q.UpdatedAt = now

	return nil
}

// Approve marks the quotation as approved by the client
func (q *Quotation) Approve() error {
	if !q.Status.CanTransitionTo(QuotationStatusApproved) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve quotation in %s status", q.Status))
	}

	now := time.Now()
	q.Status = QuotationStatusApproved
	q.ApprovedAt = &now
	q.UpdatedAt = now

	return nil
}

// Reject marks the quotation as rejected by the client
func (q *Quotation) Reject(reason string) error {
	if !q.Status.CanTransitionTo(QuotationStatusRejected) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject quotation in %s status", q.Status))
	}

	now := time.Now()
	q.Status = QuotationStatusRejected
	q.RejectedAt = &now
	q.RejectReason = reason
	q.UpdatedAt = now

	return nil
}

// Expire marks the quotation as expired. Valid from draft and sent.
func (q *Quotation) Expire() error {
	if !q.Status.CanTransitionTo(QuotationStatusExpired) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire quotation in %s status", q.Status))
	}

	q.Status = QuotationStatusExpired
	q.UpdatedAt = time.Now()

	return nil
}

// IsExpiredBy reports whether the quotation's expiry date has passed at t.
// Quotations without an expiry date never expire automatically.
func (q *Quotation) IsExpiredBy(t time.Time) bool {
	return q.ExpiryDate != nil && q.ExpiryDate.Before(t)
}

// recalculateTotal recomputes the quotation total from its items.
// The total is never accepted from input.
func (q *Quotation) recalculateTotal() {
	total := decimal.Zero
	for _, item := range q.Items {
		total = total.Add(item.Amount)
	}
	q.Total = total
}

// GetTotalMoney returns the total as Money
func (q *Quotation) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(q.Total)
}

// ItemCount returns the number of line items
func (q *Quotation) ItemCount() int {
	return len(q.Items)
}

// IsDraft returns true if the quotation is in draft status
func (q *Quotation) IsDraft() bool {
	return q.Status == QuotationStatusDraft
}

// CanModify returns true if items and header fields can still change
func (q *Quotation) CanModify() bool {
	return q.IsDraft()
}

// GetItem returns an item by its ID
func (q *Quotation) GetItem(itemID uuid.UUID) *QuotationItem {
	for idx := range q.Items {
		if q.Items[idx].ID == itemID {
			return &q.Items[idx]
		}
	}
	return nil
}
