package enums

import "fmt"

// LeadStatus classifies how warm a sales lead currently is.
type LeadStatus string

const (
	LeadStatusNew      LeadStatus = "New"
	LeadStatusHot      LeadStatus = "Hot"
	LeadStatusWarm     LeadStatus = "Warm"
	LeadStatusCold     LeadStatus = "Cold"
	LeadStatusFollowUp LeadStatus = "Follow-up"
)

var validLeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusHot,
	LeadStatusWarm,
	LeadStatusCold,
	LeadStatusFollowUp,
}

// String implements fmt.Stringer.
func (l LeadStatus) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LeadStatus.
func (l LeadStatus) IsValid() bool {
	for _, candidate := range validLeadStatuses {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLeadStatus converts raw input into a LeadStatus.
func ParseLeadStatus(value string) (LeadStatus, error) {
	for _, candidate := range validLeadStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lead status %q", value)
}
