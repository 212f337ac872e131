package recon

import (
	"context"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
)

// Repository defines persistence operations for recon appointments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, appointment *models.ReconAppointment) (*models.ReconAppointment, error)
	FindByID(ctx context.Context, id int64) (*models.ReconAppointment, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*AppointmentList, error)
	ListByVehicle(ctx context.Context, vehicleID int64) ([]models.ReconAppointment, error)
	TotalCostForVehicle(ctx context.Context, vehicleID int64) (float64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// TechnicianRepository defines persistence operations for technicians.
type TechnicianRepository interface {
	WithTx(tx *gorm.DB) TechnicianRepository
	Create(ctx context.Context, technician *models.Technician) (*models.Technician, error)
	FindByID(ctx context.Context, id int64) (*models.Technician, error)
	ListByStatus(ctx context.Context, status *enums.TechnicianStatus) ([]models.Technician, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
}
