package recon

import (
	"context"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a recon appointments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, appointment *models.ReconAppointment) (*models.ReconAppointment, error) {
	if err := r.db.WithContext(ctx).Create(appointment).Error; err != nil {
		return nil, err
	}
	return appointment, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.ReconAppointment, error) {
	var appointment models.ReconAppointment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters Filters) (*AppointmentList, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).Model(&models.ReconAppointment{})

	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}
	if filters.VehicleID != nil {
		qb = qb.Where("vehicle_id = ?", *filters.VehicleID)
	}
	if filters.TechnicianID != nil {
		qb = qb.Where("technician_id = ?", *filters.TechnicianID)
	}

	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var records []models.ReconAppointment
	err = qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&records).Error
	if err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(records) > pageSize {
		records = records[:pageSize]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return &AppointmentList{Appointments: records, NextCursor: nextCursor}, nil
}

func (r *repository) ListByVehicle(ctx context.Context, vehicleID int64) ([]models.ReconAppointment, error) {
	var records []models.ReconAppointment
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("start_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// TotalCostForVehicle sums recon spend excluding cancelled appointments.
func (r *repository) TotalCostForVehicle(ctx context.Context, vehicleID int64) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.ReconAppointment{}).
		Select("COALESCE(SUM(cost), 0)").
		Where("vehicle_id = ?", vehicleID).
		Where("status <> ?", enums.ReconStatusCancelled).
		Scan(&total).Error
	return total, err
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.ReconAppointment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ReconAppointment{}).Error
}

type technicianRepository struct {
	db *gorm.DB
}

// NewTechnicianRepository builds a technicians repository bound to the provided DB.
func NewTechnicianRepository(db *gorm.DB) TechnicianRepository {
	return &technicianRepository{db: db}
}

func (r *technicianRepository) WithTx(tx *gorm.DB) TechnicianRepository {
	if tx == nil {
		return r
	}
	return &technicianRepository{db: tx}
}

func (r *technicianRepository) Create(ctx context.Context, technician *models.Technician) (*models.Technician, error) {
	if err := r.db.WithContext(ctx).Create(technician).Error; err != nil {
		return nil, err
	}
	return technician, nil
}

func (r *technicianRepository) FindByID(ctx context.Context, id int64) (*models.Technician, error) {
	var technician models.Technician
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&technician).Error
	if err != nil {
		return nil, err
	}
	return &technician, nil
}

func (r *technicianRepository) ListByStatus(ctx context.Context, status *enums.TechnicianStatus) ([]models.Technician, error) {
	qb := r.db.WithContext(ctx).Model(&models.Technician{})
	if status != nil {
		qb = qb.Where("status = ?", *status)
	}

	var records []models.Technician
	if err := qb.Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *technicianRepository) Update(ctx context.Context, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Technician{}).
		Where("id = ?", id).
		Updates(updates).Error
}
