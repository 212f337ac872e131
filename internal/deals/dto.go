package deals

import (
	"time"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
)

// Filters describe the inputs supported by the deal list.
type Filters struct {
	Status     *enums.DealStatus
	CustomerID *int64
	VehicleID  *int64
	BranchID   *int64
}

// DealList wraps the paginated deals plus the next page cursor.
type DealList struct {
	Deals      []models.Deal `json:"deals"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// CreateInput carries the fields accepted when opening a deal.
type CreateInput struct {
	CustomerID   int64
	VehicleID    int64
	SalePrice    float64
	TradeInValue float64
	DealDate     *time.Time
	Salesperson  *string
	Notes        *string
	BranchID     *int64
}

// UpdateInput carries the patchable deal fields. Nil means "leave as is".
type UpdateInput struct {
	SalePrice    *float64
	TradeInValue *float64
	Status       *enums.DealStatus
	DealDate     *time.Time
	Salesperson  *string
	Notes        *string
	BranchID     *int64
}

// DocumentInput attaches a file reference to a deal.
type DocumentInput struct {
	Name string
	Type string
	URL  string
}

// FinancingInput parameterizes a financing quote for a deal.
type FinancingInput struct {
	DownPayment       float64
	AnnualRatePercent float64
	TermMonths        int
}
