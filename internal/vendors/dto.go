package vendors

import (
	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
)

// Filters describe the inputs supported by the vendor list.
type Filters struct {
	Status   *enums.VendorStatus
	Category string
}

// VendorList wraps the paginated vendors plus the next page cursor.
type VendorList struct {
	Vendors    []models.Vendor `json:"vendors"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// CreateInput carries the fields accepted when registering a vendor.
type CreateInput struct {
	Name          string
	Category      string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	Rating        *float64
	Notes         *string
}

// UpdateInput carries the patchable vendor fields. Nil means "leave as is".
type UpdateInput struct {
	Name          *string
	Category      *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	Status        *enums.VendorStatus
	Rating        *float64
	Notes         *string
}
