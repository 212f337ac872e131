package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/internal/finance"
	"github.com/dealerdesk/dealerdesk-backend/pkg/config"
	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

const documentationFeeLabel = "Documentation Fee"

// Service exposes billing operations on invoices.
type Service interface {
	List(ctx context.Context, params pagination.Params, filters Filters) (*InvoiceList, error)
	Get(ctx context.Context, id int64) (*models.Invoice, error)
	Create(ctx context.Context, input CreateInput) (*models.Invoice, error)
	GenerateFromDeal(ctx context.Context, dealID int64) (*models.Invoice, error)
	RecordPayment(ctx context.Context, id int64, input PaymentInput) (*models.Invoice, error)
	Send(ctx context.Context, id int64, sentTo string) (*SendReceipt, error)
	GeneratePDF(ctx context.Context, id int64) (*PDFDescriptor, error)
	MarkAsOverdue(ctx context.Context, id int64) (*models.Invoice, error)
	SweepOverdue(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*Stats, error)
	Delete(ctx context.Context, id int64) (*models.Invoice, error)
}

type service struct {
	repo     Repository
	deals    DealSource
	vehicles VehicleSource
	cfg      config.InvoicingConfig
	now      func() time.Time
}

// NewService builds an invoices service with the required dependencies.
func NewService(repo Repository, deals DealSource, vehicles VehicleSource, cfg config.InvoicingConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoices repository required")
	}
	if deals == nil {
		return nil, fmt.Errorf("deal source required")
	}
	if vehicles == nil {
		return nil, fmt.Errorf("vehicle source required")
	}
	return &service{
		repo:     repo,
		deals:    deals,
		vehicles: vehicles,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*InvoiceList, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	return invoice, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Invoice, error) {
	if len(input.LineItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line item required")
	}

	items := make(types.InvoiceLineItems, 0, len(input.LineItems))
	subtotal := 0.0
	for _, line := range input.LineItems {
		if strings.TrimSpace(line.Description) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item description required")
		}
		quantity := line.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		total := float64(quantity) * line.UnitPrice
		items = append(items, types.InvoiceLineItem{
			Description: line.Description,
			Quantity:    quantity,
			UnitPrice:   line.UnitPrice,
			Total:       finance.Round2(total),
		})
		subtotal += total
	}

	taxRate := s.cfg.TaxRate
	if input.TaxRate != nil {
		if *input.TaxRate < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax rate cannot be negative")
		}
		taxRate = *input.TaxRate
	}

	issueDate := s.now()
	dueDate := issueDate.AddDate(0, 0, s.cfg.DueDays)
	if input.DueDate != nil {
		dueDate = input.DueDate.UTC()
	}

	number, err := s.nextInvoiceNumber(ctx, issueDate)
	if err != nil {
		return nil, err
	}

	taxAmount := finance.Round2(subtotal * taxRate / 100)
	total := finance.Round2(subtotal + taxAmount)

	invoice := &models.Invoice{
		InvoiceNumber: number,
		CustomerID:    input.CustomerID,
		CustomerName:  input.CustomerName,
		LineItems:     items,
		Subtotal:      finance.Round2(subtotal),
		TaxRate:       taxRate,
		TaxAmount:     taxAmount,
		TotalAmount:   total,
		BalanceDue:    total,
		Status:        enums.InvoiceStatusDraft,
		PaymentStatus: enums.PaymentStatusNotSent,
		IssueDate:     issueDate,
		DueDate:       &dueDate,
		Notes:         input.Notes,
		Terms:         input.Terms,
	}

	created, err := s.repo.Create(ctx, invoice)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create invoice")
	}
	return created, nil
}

// GenerateFromDeal builds the standard invoice for a closed sale: the
// vehicle line, a trade-in credit when one applies, and the documentation
// fee, taxed at the configured rate.
func (s *service) GenerateFromDeal(ctx context.Context, dealID int64) (*models.Invoice, error) {
	deal, err := s.deals.FindByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load deal")
	}
	if deal.Status != enums.DealStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "only completed deals can be invoiced")
	}

	if _, err := s.repo.FindByDealID(ctx, dealID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "deal already invoiced")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing invoice")
	}

	vehicle, err := s.vehicles.FindByID(ctx, deal.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}

	items := types.InvoiceLineItems{
		{
			Description: fmt.Sprintf("%d %s %s (VIN: %s)", vehicle.Year, vehicle.Make, vehicle.Model, vehicle.VIN),
			Quantity:    1,
			UnitPrice:   deal.SalePrice,
			Total:       finance.Round2(deal.SalePrice),
		},
	}
	subtotal := deal.SalePrice

	if deal.TradeInValue > 0 {
		items = append(items, types.InvoiceLineItem{
			Description: "Trade-In Credit",
			Quantity:    1,
			UnitPrice:   -deal.TradeInValue,
			Total:       finance.Round2(-deal.TradeInValue),
		})
		subtotal -= deal.TradeInValue
	}

	items = append(items, types.InvoiceLineItem{
		Description: documentationFeeLabel,
		Quantity:    1,
		UnitPrice:   s.cfg.DocumentationFee,
		Total:       finance.Round2(s.cfg.DocumentationFee),
	})
	subtotal += s.cfg.DocumentationFee

	issueDate := s.now()
	dueDate := issueDate.AddDate(0, 0, s.cfg.DueDays)

	number, err := s.nextInvoiceNumber(ctx, issueDate)
	if err != nil {
		return nil, err
	}

	taxAmount := finance.Round2(subtotal * s.cfg.TaxRate / 100)
	total := finance.Round2(subtotal + taxAmount)

	notes := "Thank you for your business!"
	terms := fmt.Sprintf("Payment due within %d days of issue date.", s.cfg.DueDays)

	invoice := &models.Invoice{
		InvoiceNumber: number,
		DealID:        &deal.ID,
		CustomerID:    &deal.CustomerID,
		LineItems:     items,
		Subtotal:      finance.Round2(subtotal),
		TaxRate:       s.cfg.TaxRate,
		TaxAmount:     taxAmount,
		TotalAmount:   total,
		BalanceDue:    total,
		Status:        enums.InvoiceStatusDraft,
		PaymentStatus: enums.PaymentStatusNotSent,
		IssueDate:     issueDate,
		DueDate:       &dueDate,
		Notes:         &notes,
		Terms:         &terms,
	}

	created, err := s.repo.Create(ctx, invoice)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create invoice")
	}
	return created, nil
}

func (s *service) RecordPayment(ctx context.Context, id int64, input PaymentInput) (*models.Invoice, error) {
	if input.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}

	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	paid := finance.Round2(invoice.AmountPaid + input.Amount)
	balance := finance.Round2(invoice.TotalAmount - paid)
	if balance < 0 {
		balance = 0
	}

	updates := map[string]any{
		"amount_paid": paid,
		"balance_due": balance,
	}
	if input.Method != "" {
		updates["payment_method"] = input.Method
	}
	if balance == 0 {
		updates["status"] = enums.InvoiceStatusPaid
		updates["payment_status"] = enums.PaymentStatusCompleted
		updates["payment_date"] = s.now()
	} else {
		updates["status"] = enums.InvoiceStatusPartiallyPaid
		updates["payment_status"] = enums.PaymentStatusPartial
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment")
	}
	return s.Get(ctx, id)
}

func (s *service) Send(ctx context.Context, id int64, sentTo string) (*SendReceipt, error) {
	if strings.TrimSpace(sentTo) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient required")
	}

	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != enums.InvoiceStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "only draft invoices can be sent")
	}

	updates := map[string]any{
		"status":         enums.InvoiceStatusSent,
		"payment_status": enums.PaymentStatusPending,
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send invoice")
	}

	sent, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SendReceipt{Invoice: sent, SentTo: sentTo, SentAt: s.now()}, nil
}

func (s *service) GeneratePDF(ctx context.Context, id int64) (*PDFDescriptor, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PDFDescriptor{
		FileName:    invoice.InvoiceNumber + ".pdf",
		URL:         "/files/invoices/" + invoice.InvoiceNumber + ".pdf",
		GeneratedAt: s.now(),
	}, nil
}

func (s *service) MarkAsOverdue(ctx context.Context, id int64) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.BalanceDue <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "invoice has no outstanding balance")
	}

	updates := map[string]any{
		"status":         enums.InvoiceStatusOverdue,
		"payment_status": enums.PaymentStatusOverdue,
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark invoice overdue")
	}
	return s.Get(ctx, id)
}

// SweepOverdue flips every past-due invoice with an outstanding balance.
func (s *service) SweepOverdue(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkOverdue(ctx, s.now())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sweep overdue invoices")
	}
	return n, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice stats")
	}
	return stats, nil
}

func (s *service) Delete(ctx context.Context, id int64) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.AmountPaid > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "invoice with recorded payments cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete invoice")
	}
	return invoice, nil
}

func (s *service) nextInvoiceNumber(ctx context.Context, issueDate time.Time) (string, error) {
	year := issueDate.Year()
	seq, err := s.repo.MaxSequenceForYear(ctx, year)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate invoice number")
	}
	return fmt.Sprintf("INV-%d-%03d", year, seq+1), nil
}
