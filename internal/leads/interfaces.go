package leads

import (
	"context"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
)

// Repository defines persistence operations for the leads table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, lead *models.Lead) (*models.Lead, error)
	FindByID(ctx context.Context, id int64) (*models.Lead, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*LeadList, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// VehicleLister supplies the inventory snapshot used for recommendations.
type VehicleLister interface {
	ListAll(ctx context.Context) ([]models.Vehicle, error)
}
