package models

import (
	"time"

	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

// Invoice represents a billing document, usually generated from a completed deal.
type Invoice struct {
	ID            int64                  `gorm:"column:id;primaryKey;autoIncrement"`
	InvoiceNumber string                 `gorm:"column:invoice_number;not null;uniqueIndex"`
	DealID        *int64                 `gorm:"column:deal_id"`
	CustomerID    *int64                 `gorm:"column:customer_id"`
	CustomerName  *string                `gorm:"column:customer_name"`
	LineItems     types.InvoiceLineItems `gorm:"column:line_items;type:jsonb;serializer:json"`
	Subtotal      float64                `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	TaxRate       float64                `gorm:"column:tax_rate;type:numeric(6,3);not null;default:0"`
	TaxAmount     float64                `gorm:"column:tax_amount;type:numeric(12,2);not null;default:0"`
	TotalAmount   float64                `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	AmountPaid    float64                `gorm:"column:amount_paid;type:numeric(12,2);not null;default:0"`
	BalanceDue    float64                `gorm:"column:balance_due;type:numeric(12,2);not null;default:0"`
	Status        enums.InvoiceStatus    `gorm:"column:status;type:text;not null;default:'Draft'"`
	PaymentStatus enums.PaymentStatus    `gorm:"column:payment_status;type:text;not null;default:'Not Sent'"`
	IssueDate     time.Time              `gorm:"column:issue_date;not null"`
	DueDate       *time.Time             `gorm:"column:due_date"`
	PaymentDate   *time.Time             `gorm:"column:payment_date"`
	PaymentMethod *string                `gorm:"column:payment_method"`
	Notes         *string                `gorm:"column:notes"`
	Terms         *string                `gorm:"column:terms"`
	CreatedAt     time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
