package purchasing

import (
	"fmt"
	"regexp"
	"time"

	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle status of a supplier order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusSent      OrderStatus = "sent"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusReceived  OrderStatus = "received"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusSent, OrderStatusConfirmed,
		OrderStatusReceived, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusSent || target == OrderStatusCancelled
	case OrderStatusSent:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusReceived || target == OrderStatusCancelled
	case OrderStatusReceived, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true if no further transitions are possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusReceived || s == OrderStatusCancelled
}

// PaymentStatus tracks how much of the order has been paid to the supplier
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// orderNumberPattern matches document numbers like OP-202609-001
var orderNumberPattern = regexp.MustCompile(`^OP-\d{6}-\d{3}$`)

// ValidNumber reports whether a string is a well-formed supplier order number
func ValidNumber(number string) bool {
	return orderNumberPattern.MatchString(number)
}

// SupplierOrderItem represents a line item in a supplier order
type SupplierOrderItem struct {
	ID                   uuid.UUID
	OrderID              uuid.UUID
	ProductID            *uuid.UUID
	ProductName          string
	Description          string
	Unit                 string
	Quantity             decimal.Decimal
	UnitPrice            decimal.Decimal
	Amount               decimal.Decimal // Quantity * UnitPrice
	ExpectedDeliveryDate *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewSupplierOrderItem creates a new supplier order line item
func NewSupplierOrderItem(orderID uuid.UUID, productName string, quantity decimal.Decimal, unitPrice valueobject.Money) (*SupplierOrderItem, error) {
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
	return &SupplierOrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      quantity.Mul(unitPrice.Amount()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateQuantity updates the quantity and recalculates the line amount
func (i *SupplierOrderItem) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	i.Quantity = quantity
	i.Amount = quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()

	return nil
}

// UpdateUnitPrice updates the unit price and recalculates the line amount
func (i *SupplierOrderItem) UpdateUnitPrice(unitPrice valueobject.Money) error {
	if unitPrice.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	i.UnitPrice = unitPrice.Amount()
	i.Amount = i.Quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()

	return nil
}

// SupplierOrder represents a purchase order placed with a supplier.
// It is the aggregate root for the purchasing context.
type SupplierOrder struct {
	shared.BaseAggregateRoot
	Number          string
	SupplierID      uuid.UUID
	SupplierName    string // denormalized for listing
	OrderDate       time.Time
	DeliveryDate    *time.Time
	Items           []SupplierOrderItem
	Total           decimal.Decimal // Sum of item amounts, always derived
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	PaymentTerms    string
	Notes           string
	DeliveryAddress valueobject.Address
	SentAt          *time.Time
	ConfirmedAt     *time.Time
	ReceivedAt      *time.Time
	CancelledAt     *time.Time
	CancelReason    string
}

// NewSupplierOrder creates a new draft supplier order
func NewSupplierOrder(number string, supplierID uuid.UUID, supplierName string, orderDate time.Time) (*SupplierOrder, error) {
	if !ValidNumber(number) {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Supplier order number must match OP-YYYYMM-NNN")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	return &SupplierOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		OrderDate:         orderDate,
		Items:             make([]SupplierOrderItem, 0),
		Total:             decimal.Zero,
		Status:            OrderStatusDraft,
		PaymentStatus:     PaymentStatusUnpaid,
		DeliveryAddress:   valueobject.EmptyAddress(),
	}, nil
}

// AddItem adds a new line item. Only allowed in draft status.
func (o *SupplierOrder) AddItem(productName string, quantity decimal.Decimal, unitPrice valueobject.Money) (*SupplierOrderItem, error) {
	if o.Status != OrderStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft order")
	}

	item, err := NewSupplierOrderItem(o.ID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	// pointer into the slice so callers can fill optional line fields
	return &o.Items[len(o.Items)-1], nil
}

// ReplaceItems replaces the whole item list with a validated incoming set.
// Only allowed in draft status.
func (o *SupplierOrder) ReplaceItems(items []SupplierOrderItem) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot replace items of a non-draft order")
	}

	now := time.Now()
	replacement := make([]SupplierOrderItem, 0, len(items))
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
		item.OrderID = o.ID
		item.Amount = item.Quantity.Mul(item.UnitPrice)
		item.UpdatedAt = now
		replacement = append(replacement, item)
	}

	o.Items = replacement
	o.recalculateTotal()
	o.UpdatedAt = now

	return nil
}

// UpdateItemQuantity updates the quantity of an existing item.
// Only allowed in draft status.
func (o *SupplierOrder) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items of a non-draft order")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// UpdateItemPrice updates the unit price of an existing item.
// Only allowed in draft status.
func (o *SupplierOrder) UpdateItemPrice(itemID uuid.UUID, unitPrice valueobject.Money) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items of a non-draft order")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateUnitPrice(unitPrice); err != nil {
				return err
			}
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes an item. Only allowed in draft status.
func (o *SupplierOrder) RemoveItem(itemID uuid.UUID) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft order")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// SetDeliveryDate sets the agreed delivery date. Must not precede the order date.
func (o *SupplierOrder) SetDeliveryDate(date time.Time) error {
	if date.Before(o.OrderDate) {
		return shared.NewDomainError("INVALID_DELIVERY_DATE", "Delivery date cannot be before order date")
	}

	o.DeliveryDate = &date
	o.UpdatedAt = time.Now()

	return nil
}

// SetDeliveryAddress sets the delivery address
func (o *SupplierOrder) SetDeliveryAddress(addr valueobject.Address) {
	o.DeliveryAddress = addr
	o.UpdatedAt = time.Now()
}

// SetPaymentTerms sets the agreed payment terms free text
func (o *SupplierOrder) SetPaymentTerms(terms string) {
	o.PaymentTerms = terms
	o.UpdatedAt = time.Now()
}

// SetNotes sets the order free text
func (o *SupplierOrder) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// SetPaymentStatus updates the payment tracking status
func (o *SupplierOrder) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", fmt.Sprintf("Unknown payment status %q", status))
	}

	o.PaymentStatus = status
	o.UpdatedAt = time.Now()

	return nil
}

// Send marks the order as sent to the supplier. Requires at least one item.
func (o *SupplierOrder) Send() error {
	if !o.Status.CanTransitionTo(OrderStatusSent) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot send order without items")
	}

	now := time.Now()
	o.Status = OrderStatusSent
	o.SentAt = &now
	o.UpdatedAt = now

	return nil
}

// Confirm records the supplier's confirmation of the order
func (o *SupplierOrder) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now

	return nil
}

// Receive marks the goods as received
func (o *SupplierOrder) Receive() error {
	if !o.Status.CanTransitionTo(OrderStatusReceived) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusReceived
	o.ReceivedAt = &now
	o.UpdatedAt = now

	return nil
}

// Cancel cancels the order with a reason
func (o *SupplierOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	return nil
}

// recalculateTotal recomputes the order total from its items
func (o *SupplierOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.Total = total
}

// GetTotalMoney returns the total as Money
func (o *SupplierOrder) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(o.Total)
}

// ItemCount returns the number of line items
func (o *SupplierOrder) ItemCount() int {
	return len(o.Items)
}

// IsDraft returns true if the order is in draft status
func (o *SupplierOrder) IsDraft() bool {
	return o.Status == OrderStatusDraft
}

// CanModify returns true if items and header fields can still change
func (o *SupplierOrder) CanModify() bool {
	return o.IsDraft()
}

// GetItem returns an item by its ID
func (o *SupplierOrder) GetItem(itemID uuid.UUID) *SupplierOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}
