package recon

import (
	"time"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
)

// Filters describe the inputs supported by the appointment list.
type Filters struct {
	Status       *enums.ReconStatus
	VehicleID    *int64
	TechnicianID *int64
}

// AppointmentList wraps the paginated appointments plus the next page cursor.
type AppointmentList struct {
	Appointments []models.ReconAppointment `json:"appointments"`
	NextCursor   string                    `json:"next_cursor,omitempty"`
}

// ScheduleInput books a catalog service for a vehicle. Every
// appointment carries an assigned technician.
type ScheduleInput struct {
	VehicleID    int64
	ServiceType  string
	TechnicianID int64
	StartAt      time.Time
	Cost         *float64
	Notes        *string
}

// UpdateInput carries the patchable appointment fields. Nil means "leave as is".
type UpdateInput struct {
	TechnicianID *int64
	StartAt      *time.Time
	Cost         *float64
	Notes        *string
}

// TechnicianInput carries the fields accepted when registering a technician.
type TechnicianInput struct {
	Name        string
	Specialties []string
	BranchID    *int64
}
