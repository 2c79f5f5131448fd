package directory

import (
	"strings"
	"time"

	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
)

// Supplier represents a goods or services provider in the company directory.
// Supplier orders reference suppliers by ID and denormalize the name.
type Supplier struct {
	shared.BaseAggregateRoot
	Code         string
	Name         string
	RUC          string
	ContactName  string
	Phone        string
	Email        string
	Address      valueobject.Address
	PaymentTerms string // default terms proposed on new orders
	Status       PartyStatus
	Notes        string
}

// NewSupplier creates a new active supplier
func NewSupplier(code, name, ruc string) (*Supplier, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if ruc != "" {
		if err := validateRUC(ruc); err != nil {
			return nil, err
		}
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		RUC:               ruc,
		Address:           valueobject.EmptyAddress(),
		Status:            PartyStatusActive,
	}, nil
}

// Update updates the supplier's basic information
func (s *Supplier) Update(name, ruc string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if ruc != "" {
		if err := validateRUC(ruc); err != nil {
			return err
		}
	}

	s.Name = name
	s.RUC = ruc
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetContact sets the supplier's contact information
func (s *Supplier) SetContact(contactName, phone, email string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetAddress sets the supplier's fiscal address
func (s *Supplier) SetAddress(addr valueobject.Address) {
	s.Address = addr
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// SetPaymentTerms sets the default payment terms used for new orders
func (s *Supplier) SetPaymentTerms(terms string) error {
	if len(terms) > 200 {
		return shared.NewDomainError("INVALID_PAYMENT_TERMS", "Payment terms cannot exceed 200 characters")
	}

	s.PaymentTerms = terms
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetNotes sets the supplier's notes
func (s *Supplier) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate activates the supplier
func (s *Supplier) Activate() error {
	if s.Status == PartyStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Supplier is already active")
	}

	s.Status = PartyStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate deactivates the supplier
func (s *Supplier) Deactivate() error {
	if s.Status == PartyStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Supplier is already inactive")
	}

	s.Status = PartyStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsActive returns true if the supplier is active
func (s *Supplier) IsActive() bool {
	return s.Status == PartyStatusActive
}
