package vehicles

import (
	"time"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
)

// Filters describe the inputs supported by the vehicle list.
type Filters struct {
	Status   *enums.VehicleStatus
	BranchID *int64
	Make     string
	Query    string
	MinPrice *float64
	MaxPrice *float64
}

// VehicleList wraps the paginated vehicles plus the next page cursor.
type VehicleList struct {
	Vehicles   []models.Vehicle `json:"vehicles"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// CreateInput carries the fields accepted on vehicle intake.
type CreateInput struct {
	VIN           string
	Make          string
	Model         string
	Year          int
	Trim          *string
	Mileage       int
	Color         *string
	Price         float64
	Cost          *float64
	MarketValue   *float64
	Condition     *string
	BodyType      *string
	FuelType      *string
	Transmission  *string
	FloorplanRate *float64
	BranchID      *int64
	Description   *string
	Features      []string
	Images        []string
}

// UpdateInput carries the patchable vehicle fields. Nil means "leave as is".
type UpdateInput struct {
	VIN             *string
	Make            *string
	Model           *string
	Year            *int
	Trim            *string
	Mileage         *int
	Color           *string
	Price           *float64
	Cost            *float64
	MarketValue     *float64
	Condition       *string
	BodyType        *string
	FuelType        *string
	Transmission    *string
	Status          *enums.VehicleStatus
	DaysInInventory *int
	FloorplanRate   *float64
	BranchID        *int64
	Description     *string
	Features        []string
	Images          []string
}

// TransferInput requests moving a vehicle to another branch.
type TransferInput struct {
	ToBranchID int64
	Notes      string
}

// TransferReceipt acknowledges an accepted transfer request. Fulfilment is
// handled outside the system; only the acknowledgment is recorded here.
type TransferReceipt struct {
	RequestID    string    `json:"request_id"`
	VehicleID    int64     `json:"vehicle_id"`
	FromBranchID *int64    `json:"from_branch_id,omitempty"`
	ToBranchID   int64     `json:"to_branch_id"`
	Status       string    `json:"status"`
	RequestedAt  time.Time `json:"requested_at"`
}
