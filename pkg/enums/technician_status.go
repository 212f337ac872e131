package enums

import "fmt"

// TechnicianStatus tracks shop technician availability.
type TechnicianStatus string

const (
	TechnicianStatusAvailable TechnicianStatus = "Available"
	TechnicianStatusBusy      TechnicianStatus = "Busy"
	TechnicianStatusOff       TechnicianStatus = "Off"
)

var validTechnicianStatuses = []TechnicianStatus{
	TechnicianStatusAvailable,
	TechnicianStatusBusy,
	TechnicianStatusOff,
}

// String implements fmt.Stringer.
func (t TechnicianStatus) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TechnicianStatus.
func (t TechnicianStatus) IsValid() bool {
	for _, candidate := range validTechnicianStatuses {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTechnicianStatus converts raw input into a TechnicianStatus.
func ParseTechnicianStatus(value string) (TechnicianStatus, error) {
	for _, candidate := range validTechnicianStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid technician status %q", value)
}
