package enums

import "fmt"

// ReconStatus tracks a reconditioning service appointment.
type ReconStatus string

const (
	ReconStatusScheduled  ReconStatus = "Scheduled"
	ReconStatusInProgress ReconStatus = "In Progress"
	ReconStatusComplete   ReconStatus = "Complete"
	ReconStatusCancelled  ReconStatus = "Cancelled"
)

var validReconStatuses = []ReconStatus{
	ReconStatusScheduled,
	ReconStatusInProgress,
	ReconStatusComplete,
	ReconStatusCancelled,
}

// String implements fmt.Stringer.
func (r ReconStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ReconStatus.
func (r ReconStatus) IsValid() bool {
	for _, candidate := range validReconStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseReconStatus converts raw input into a ReconStatus.
func ParseReconStatus(value string) (ReconStatus, error) {
	for _, candidate := range validReconStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid recon status %q", value)
}
