package directory

import (
	"strings"
	"time"

	"github.com/gescom/backend/internal/domain/shared"
)

// Transport represents a carrier company used for deliveries
type Transport struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	RUC         string
	ContactName string
	Phone       string
	Coverage    string // routes or regions served, free text
	Status      PartyStatus
	Notes       string
}

// NewTransport creates a new active transport company
func NewTransport(code, name, ruc string) (*Transport, error) {
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

	return &Transport{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		RUC:               ruc,
		Status:            PartyStatusActive,
	}, nil
}

// Update updates the transport company's basic information
func (tr *Transport) Update(name, ruc string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if ruc != "" {
		if err := validateRUC(ruc); err != nil {
			return err
		}
	}

	tr.Name = name
	tr.RUC = ruc
	tr.UpdatedAt = time.Now()
	tr.IncrementVersion()

	return nil
}

// SetContact sets the carrier's contact information
func (tr *Transport) SetContact(contactName, phone string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	tr.ContactName = contactName
	tr.Phone = phone
	tr.UpdatedAt = time.Now()
	tr.IncrementVersion()

	return nil
}

// SetCoverage sets the routes or regions served
func (tr *Transport) SetCoverage(coverage string) {
	tr.Coverage = coverage
	tr.UpdatedAt = time.Now()
	tr.IncrementVersion()
}

// SetNotes sets the carrier's notes
func (tr *Transport) SetNotes(notes string) {
	tr.Notes = notes
	tr.UpdatedAt = time.Now()
	tr.IncrementVersion()
}

// Activate activates the transport company
func (tr *Transport) Activate() error {
	if tr.Status == PartyStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Transport company is already active")
	}

	tr.Status = PartyStatusActive
	tr.UpdatedAt = time.Now()
	tr.IncrementVersion()

	return nil
}

// Deactivate deactivates the transport company
func (tr *Transport) Deactivate() error {
	if tr.Status == PartyStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Transport company is already inactive")
	}

	tr.Status = PartyStatusInactive
	tr.UpdatedAt = time.Now()
	tr.IncrementVersion()

	return nil
}

// IsActive returns true if the transport company is active
func (tr *Transport) IsActive() bool {
	return tr.Status == PartyStatusActive
}
