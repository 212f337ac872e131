package models

import (
	"time"

	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
)

// Vendor represents an external service provider used for reconditioning work.
type Vendor struct {
	ID            int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string             `gorm:"column:name;not null"`
	Category      string             `gorm:"column:category;not null"`
	ContactPerson *string            `gorm:"column:contact_person"`
	Email         *string            `gorm:"column:email"`
	Phone         *string            `gorm:"column:phone"`
	Address       *string            `gorm:"column:address"`
	Status        enums.VendorStatus `gorm:"column:status;type:text;not null;default:'Active'"`
	Rating        *float64           `gorm:"column:rating;type:numeric(3,1)"`
	Notes         *string            `gorm:"column:notes"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
