package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

// Lead represents a prospective buyer in the sales pipeline.
type Lead struct {
	ID                 int64                `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName          string               `gorm:"column:first_name;not null"`
	LastName           string               `gorm:"column:last_name;not null"`
	Email              *string              `gorm:"column:email"`
	Phone              *string              `gorm:"column:phone"`
	Status             enums.LeadStatus     `gorm:"column:status;type:text;not null;default:'New'"`
	LeadScore          int                  `gorm:"column:lead_score;not null;default:50"`
	Source             *string              `gorm:"column:source"`
	Budget             *float64             `gorm:"column:budget;type:numeric(12,2)"`
	TradeIn            bool                 `gorm:"column:trade_in;not null;default:false"`
	InterestedVehicles pq.Int64Array        `gorm:"column:interested_vehicles;type:bigint[];not null;default:ARRAY[]::bigint[]"`
	ContactHistory     types.ContactHistory `gorm:"column:contact_history;type:jsonb;serializer:json"`
	Appointments       types.Appointments   `gorm:"column:appointments;type:jsonb;serializer:json"`
	LastContact        *time.Time           `gorm:"column:last_contact"`
	AssignedTo         *string              `gorm:"column:assigned_to"`
	Notes              *string              `gorm:"column:notes"`
	BranchID           *int64               `gorm:"column:branch_id"`
	CreatedAt          time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
