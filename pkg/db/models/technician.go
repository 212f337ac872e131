package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
)

// Technician represents a shop employee who performs reconditioning work.
type Technician struct {
	ID          int64                  `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string                 `gorm:"column:name;not null"`
	Specialties pq.StringArray         `gorm:"column:specialties;type:text[];not null;default:ARRAY[]::text[]"`
	Status      enums.TechnicianStatus `gorm:"column:status;type:text;not null;default:'Available'"`
	BranchID    *int64                 `gorm:"column:branch_id"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
