package invoices

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an invoices repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) FindByDealID(ctx context.Context, dealID int64) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters Filters) (*InvoiceList, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).Model(&models.Invoice{})

	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}
	if filters.PaymentStatus != nil {
		qb = qb.Where("payment_status = ?", *filters.PaymentStatus)
	}
	if filters.CustomerID != nil {
		qb = qb.Where("customer_id = ?", *filters.CustomerID)
	}
	if search := strings.TrimSpace(filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(invoice_number) LIKE ? OR LOWER(customer_name) LIKE ?)", pattern, pattern)
	}

	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var records []models.Invoice
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

	return &InvoiceList{Invoices: records, NextCursor: nextCursor}, nil
}

// MaxSequenceForYear returns the highest numeric suffix issued in the
// given year's invoice numbers. Deleted invoices never free a number,
// so the sequence only moves forward.
func (r *repository) MaxSequenceForYear(ctx context.Context, year int) (int64, error) {
	prefix := fmt.Sprintf("INV-%d-", year)
	var seq int64
	err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Select("COALESCE(MAX(CAST(SUBSTR(invoice_number, ?) AS INTEGER)), 0)", len(prefix)+1).
		Scan(&seq).Error
	return seq, err
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// MarkOverdue flips every past-due invoice that still carries a balance.
func (r *repository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("due_date < ?", now).
		Where("balance_due > 0").
		Where("status <> ?", enums.InvoiceStatusOverdue).
		Updates(map[string]any{
			"status":         enums.InvoiceStatusOverdue,
			"payment_status": enums.PaymentStatusOverdue,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total_invoiced, COALESCE(SUM(amount_paid), 0) AS total_paid, COALESCE(SUM(balance_due), 0) AS total_outstanding").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("status = ?", enums.InvoiceStatusPaid).
		Count(&stats.PaidCount).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("status = ?", enums.InvoiceStatusOverdue).
		Count(&stats.OverdueCount).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Invoice{}).Error
}
