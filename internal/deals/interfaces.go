package deals

import (
	"context"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
)

// Repository defines persistence operations for the deals table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, deal *models.Deal) (*models.Deal, error)
	FindByID(ctx context.Context, id int64) (*models.Deal, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*DealList, error)
	ListAll(ctx context.Context) ([]models.Deal, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.Deal, error)
	ListCompleted(ctx context.Context) ([]models.Deal, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// VehicleSource exposes the inventory operations a deal needs: pricing
// inputs for margin math and the status flip when a sale closes.
type VehicleSource interface {
	FindByID(ctx context.Context, id int64) (*models.Vehicle, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
}

// ReconCostSource reports accumulated reconditioning spend per vehicle.
type ReconCostSource interface {
	TotalCostForVehicle(ctx context.Context, vehicleID int64) (float64, error)
}
