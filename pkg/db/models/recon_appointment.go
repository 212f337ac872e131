package models

import (
	"time"

	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

// ReconAppointment represents one reconditioning service booked for a vehicle.
type ReconAppointment struct {
	ID             int64             `gorm:"column:id;primaryKey;autoIncrement"`
	VehicleID      int64             `gorm:"column:vehicle_id;not null"`
	TechnicianID   *int64            `gorm:"column:technician_id"`
	ServiceType    string            `gorm:"column:service_type;not null"`
	Category       *string           `gorm:"column:category"`
	EstimatedHours float64           `gorm:"column:estimated_hours;type:numeric(5,2);not null;default:0"`
	StartAt        time.Time         `gorm:"column:start_at;not null"`
	EndAt          time.Time         `gorm:"column:end_at;not null"`
	Status         enums.ReconStatus `gorm:"column:status;type:text;not null;default:'Scheduled'"`
	Checklist      types.Checklist   `gorm:"column:checklist;type:jsonb;serializer:json"`
	Cost           *float64          `gorm:"column:cost;type:numeric(12,2)"`
	Notes          *string           `gorm:"column:notes"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
