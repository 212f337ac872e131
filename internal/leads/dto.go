package leads

import (
	"time"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
)

// Filters describe the inputs supported by the lead list.
type Filters struct {
	Status     *enums.LeadStatus
	AssignedTo string
	Source     string
	Query      string
	BranchID   *int64
}

// LeadList wraps the paginated leads plus the next page cursor.
type LeadList struct {
	Leads      []models.Lead `json:"leads"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// CreateInput carries the fields accepted on lead intake.
type CreateInput struct {
	FirstName          string
	LastName           string
	Email              *string
	Phone              *string
	Source             *string
	Budget             *float64
	TradeIn            bool
	InterestedVehicles []int64
	AssignedTo         *string
	Notes              *string
	BranchID           *int64
}

// UpdateInput carries the patchable lead fields. Nil means "leave as is".
type UpdateInput struct {
	FirstName          *string
	LastName           *string
	Email              *string
	Phone              *string
	Status             *enums.LeadStatus
	LeadScore          *int
	Source             *string
	Budget             *float64
	TradeIn            *bool
	InterestedVehicles []int64
	AssignedTo         *string
	Notes              *string
	BranchID           *int64
}

// ContactInput records one touchpoint with a lead.
type ContactInput struct {
	Type  string
	Notes string
	Date  *time.Time
}

// AppointmentInput schedules a meeting with a lead.
type AppointmentInput struct {
	Date  time.Time
	Type  string
	Notes string
}
