package enums

import "fmt"

// VendorStatus marks whether a service vendor is usable for new work.
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "Active"
	VendorStatusInactive VendorStatus = "Inactive"
)

var validVendorStatuses = []VendorStatus{
	VendorStatusActive,
	VendorStatusInactive,
}

// String implements fmt.Stringer.
func (v VendorStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VendorStatus.
func (v VendorStatus) IsValid() bool {
	for _, candidate := range validVendorStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVendorStatus converts raw input into a VendorStatus.
func ParseVendorStatus(value string) (VendorStatus, error) {
	for _, candidate := range validVendorStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vendor status %q", value)
}
