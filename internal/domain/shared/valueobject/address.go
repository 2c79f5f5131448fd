package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing a Peruvian delivery address.
// It is immutable - all operations return new Address instances.
// Fields follow the local administrative division: department > province > district.
type Address struct {
	street     string
	district   string
	province   string
	department string
	reference  string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithReference sets the delivery reference (landmark, floor, etc.)
func WithReference(reference string) AddressOption {
	return func(a *Address) {
		a.reference = strings.TrimSpace(reference)
	}
}

// NewAddress creates a new Address.
// Street is required; district, province, and department are optional but
// validated for length when present.
func NewAddress(street, district, province, department string, opts ...AddressOption) (Address, error) {
	street = strings.TrimSpace(street)
	district = strings.TrimSpace(district)
	province = strings.TrimSpace(province)
	department = strings.TrimSpace(department)

	if street == "" {
		return Address{}, fmt.Errorf("street cannot be empty")
	}
	if len(street) > 300 {
		return Address{}, fmt.Errorf("street cannot exceed 300 characters")
	}
	for field, value := range map[string]string{
		"district":   district,
		"province":   province,
		"department": department,
	} {
		if len(value) > 100 {
			return Address{}, fmt.Errorf("%s cannot exceed 100 characters", field)
		}
	}

	addr := Address{
		street:     street,
		district:   district,
		province:   province,
		department: department,
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if len(addr.reference) > 300 {
		return Address{}, fmt.Errorf("reference cannot exceed 300 characters")
	}

	return addr, nil
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// Street returns the street line
func (a Address) Street() string {
	return a.street
}

// District returns the district
func (a Address) District() string {
	return a.district
}

// Province returns the province
func (a Address) Province() string {
	return a.province
}

// Department returns the department
func (a Address) Department() string {
	return a.department
}

// Reference returns the delivery reference
func (a Address) Reference() string {
	return a.reference
}

// IsEmpty returns true if the address has no street (treated as absent)
func (a Address) IsEmpty() bool {
	return a.street == ""
}

// Equals returns true if both addresses have identical fields
func (a Address) Equals(other Address) bool {
	return a == other
}

// String returns a single-line rendering of the address
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.street, a.district, a.province, a.department} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// addressJSON is the serialized form of Address
type addressJSON struct {
	Street     string `json:"street"`
	District   string `json:"district,omitempty"`
	Province   string `json:"province,omitempty"`
	Department string `json:"department,omitempty"`
	Reference  string `json:"reference,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Street:     a.street,
		District:   a.district,
		Province:   a.province,
		Department: a.department,
		Reference:  a.reference,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	a.street = strings.TrimSpace(v.Street)
	a.district = strings.TrimSpace(v.District)
	a.province = strings.TrimSpace(v.Province)
	a.department = strings.TrimSpace(v.Department)
	a.reference = strings.TrimSpace(v.Reference)
	return nil
}

// Value implements driver.Valuer for database storage (JSON column).
// Empty addresses are stored as NULL.
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = Address{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}
	if len(data) == 0 {
		*a = Address{}
		return nil
	}
	return a.UnmarshalJSON(data)
}
