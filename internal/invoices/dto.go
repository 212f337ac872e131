package invoices

import (
	"time"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
)

// Filters describe the inputs supported by the invoice list.
type Filters struct {
	Status        *enums.InvoiceStatus
	PaymentStatus *enums.PaymentStatus
	CustomerID    *int64
	Query         string
}

// InvoiceList wraps the paginated invoices plus the next page cursor.
type InvoiceList struct {
	Invoices   []models.Invoice `json:"invoices"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// LineItemInput is one billed line on a manually created invoice.
type LineItemInput struct {
	Description string
	Quantity    int
	UnitPrice   float64
}

// CreateInput carries the fields accepted when creating an invoice by hand.
type CreateInput struct {
	CustomerID   *int64
	CustomerName *string
	LineItems    []LineItemInput
	TaxRate      *float64
	DueDate      *time.Time
	Notes        *string
	Terms        *string
}

// PaymentInput records money received against an invoice.
type PaymentInput struct {
	Amount float64
	Method string
}

// PDFDescriptor points at a rendered invoice document. Rendering is
// simulated: the descriptor is deterministic from the invoice number.
type PDFDescriptor struct {
	FileName    string    `json:"file_name"`
	URL         string    `json:"url"`
	GeneratedAt time.Time `json:"generated_at"`
}

// SendReceipt confirms delivery of an invoice to a recipient.
type SendReceipt struct {
	Invoice *models.Invoice `json:"invoice"`
	SentTo  string          `json:"sent_to"`
	SentAt  time.Time       `json:"sent_at"`
}

// Stats summarizes billing across all invoices.
type Stats struct {
	Count            int64   `json:"count"`
	TotalInvoiced    float64 `json:"total_invoiced"`
	TotalPaid        float64 `json:"total_paid"`
	TotalOutstanding float64 `json:"total_outstanding"`
	PaidCount        int64   `json:"paid_count"`
	OverdueCount     int64   `json:"overdue_count"`
}
