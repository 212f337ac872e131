package vehicles

import (
	"context"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

// Repository defines persistence operations for the vehicles table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	FindByID(ctx context.Context, id int64) (*models.Vehicle, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*VehicleList, error)
	ListAll(ctx context.Context) ([]models.Vehicle, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	UpdatePublications(ctx context.Context, id int64, publications types.PublicationMap) error
	IncrementDaysInInventory(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}
