package invoices

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
)

// Repository defines persistence operations for the invoices table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error)
	FindByID(ctx context.Context, id int64) (*models.Invoice, error)
	FindByDealID(ctx context.Context, dealID int64) (*models.Invoice, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*InvoiceList, error)
	MaxSequenceForYear(ctx context.Context, year int) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	Stats(ctx context.Context) (*Stats, error)
	Delete(ctx context.Context, id int64) error
}

// DealSource exposes the deal lookup used when generating an invoice.
type DealSource interface {
	FindByID(ctx context.Context, id int64) (*models.Deal, error)
}

// VehicleSource exposes the vehicle lookup used for invoice line descriptions.
type VehicleSource interface {
	FindByID(ctx context.Context, id int64) (*models.Vehicle, error)
}
