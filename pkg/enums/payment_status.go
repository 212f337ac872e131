package enums

import "fmt"

// PaymentStatus tracks collection progress on an invoice.
type PaymentStatus string

const (
	PaymentStatusNotSent   PaymentStatus = "Not Sent"
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusPartial   PaymentStatus = "Partial"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusOverdue   PaymentStatus = "Overdue"
)

var validPaymentStatuses = []PaymentStatus{
	PaymentStatusNotSent,
	PaymentStatusPending,
	PaymentStatusPartial,
	PaymentStatusCompleted,
	PaymentStatusOverdue,
}

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentStatus.
func (p PaymentStatus) IsValid() bool {
	for _, candidate := range validPaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentStatus converts raw input into a PaymentStatus.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	for _, candidate := range validPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment status %q", value)
}
