package vendors

import (
	"context"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
)

// Repository defines persistence operations for the vendors table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error)
	FindByID(ctx context.Context, id int64) (*models.Vendor, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*VendorList, error)
	ListByCategory(ctx context.Context, category string) ([]models.Vendor, error)
	ListByStatus(ctx context.Context, status enums.VendorStatus) ([]models.Vendor, error)
	Search(ctx context.Context, query string) ([]models.Vendor, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
}
