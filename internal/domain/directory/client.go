package directory

import (
	"strings"
	"time"

	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/domain/shared/valueobject"
)

// PartyStatus represents the directory status shared by clients, suppliers
// and transport companies
type PartyStatus string

const (
	PartyStatusActive   PartyStatus = "active"
	PartyStatusInactive PartyStatus = "inactive"
)

// IsValid checks if the status is a valid PartyStatus
func (s PartyStatus) IsValid() bool {
	return s == PartyStatusActive || s == PartyStatusInactive
}

// String returns the string representation of PartyStatus
func (s PartyStatus) String() string {
	return string(s)
}

// Client represents a customer in the company directory.
// Quotations reference clients by ID and denormalize the name.
type Client struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	RUC         string
	ContactName string
	Phone       string
	Email       string
	Address     valueobject.Address
	Status      PartyStatus
	Notes       string
}

// NewClient creates a new active client
func NewClient(code, name, ruc string) (*Client, error) {
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

	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		RUC:               ruc,
		Address:           valueobject.EmptyAddress(),
		Status:            PartyStatusActive,
	}, nil
}

// Update updates the client's basic information
func (c *Client) Update(name, ruc string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if ruc != "" {
		if err := validateRUC(ruc); err != nil {
			return err
		}
	}

	c.Name = name
	c.RUC = ruc
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContact sets the client's contact information
func (c *Client) SetContact(contactName, phone, email string) error {
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

	c.ContactName = contactName
	c.Phone = phone
	c.Email = email
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetAddress sets the client's fiscal address
func (c *Client) SetAddress(addr valueobject.Address) {
	c.Address = addr
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetNotes sets the client's notes
func (c *Client) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate activates the client
func (c *Client) Activate() error {
	if c.Status == PartyStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Client is already active")
	}

	c.Status = PartyStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the client
func (c *Client) Deactivate() error {
	if c.Status == PartyStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Client is already inactive")
	}

	c.Status = PartyStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the client is active
func (c *Client) IsActive() bool {
	return c.Status == PartyStatusActive
}
