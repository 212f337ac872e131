package models

import (
	"time"

	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

// Deal represents a vehicle sale in progress or completed.
type Deal struct {
	ID           int64               `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID   int64               `gorm:"column:customer_id;not null"`
	VehicleID    int64               `gorm:"column:vehicle_id;not null"`
	SalePrice    float64             `gorm:"column:sale_price;type:numeric(12,2);not null"`
	TradeInValue float64             `gorm:"column:trade_in_value;type:numeric(12,2);not null;default:0"`
	Margin       *float64            `gorm:"column:margin;type:numeric(12,2)"`
	Status       enums.DealStatus    `gorm:"column:status;type:text;not null;default:'Draft'"`
	DealDate     time.Time           `gorm:"column:deal_date;not null"`
	Salesperson  *string             `gorm:"column:salesperson"`
	Notes        *string             `gorm:"column:notes"`
	Documents    types.DealDocuments `gorm:"column:documents;type:jsonb;serializer:json"`
	BranchID     *int64              `gorm:"column:branch_id"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
