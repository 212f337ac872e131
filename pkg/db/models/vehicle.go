package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

// Vehicle represents one unit of dealership inventory.
type Vehicle struct {
	ID              int64                `gorm:"column:id;primaryKey;autoIncrement"`
	VIN             string               `gorm:"column:vin;not null"`
	Make            string               `gorm:"column:make;not null"`
	Model           string               `gorm:"column:model;not null"`
	Year            int                  `gorm:"column:year;not null"`
	Trim            *string              `gorm:"column:trim"`
	Mileage         int                  `gorm:"column:mileage;not null;default:0"`
	Color           *string              `gorm:"column:color"`
	Price           float64              `gorm:"column:price;type:numeric(12,2);not null"`
	Cost            *float64             `gorm:"column:cost;type:numeric(12,2)"`
	MarketValue     *float64             `gorm:"column:market_value;type:numeric(12,2)"`
	Condition       *string              `gorm:"column:condition"`
	BodyType        *string              `gorm:"column:body_type"`
	FuelType        *string              `gorm:"column:fuel_type"`
	Transmission    *string              `gorm:"column:transmission"`
	Status          enums.VehicleStatus  `gorm:"column:status;type:text;not null;default:'Available'"`
	DaysInInventory int                  `gorm:"column:days_in_inventory;not null;default:0"`
	FloorplanRate   *float64             `gorm:"column:floorplan_rate;type:numeric(6,4)"`
	BranchID        *int64               `gorm:"column:branch_id"`
	Description     *string              `gorm:"column:description"`
	Features        pq.StringArray       `gorm:"column:features;type:text[];not null;default:ARRAY[]::text[]"`
	Images          pq.StringArray       `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	Publications    types.PublicationMap `gorm:"column:publications;type:jsonb;serializer:json"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
