package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
)

func setupInvoicesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS invoices (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  invoice_number TEXT NOT NULL UNIQUE,
  deal_id INTEGER,
  customer_id INTEGER,
  customer_name TEXT,
  line_items TEXT,
  subtotal REAL NOT NULL DEFAULT 0,
  tax_rate REAL NOT NULL DEFAULT 0,
  tax_amount REAL NOT NULL DEFAULT 0,
  total_amount REAL NOT NULL DEFAULT 0,
  amount_paid REAL NOT NULL DEFAULT 0,
  balance_due REAL NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'Draft',
  payment_status TEXT NOT NULL DEFAULT 'Not Sent',
  issue_date DATETIME NOT NULL,
  due_date DATETIME,
  payment_date DATETIME,
  payment_method TEXT,
  notes TEXT,
  terms TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedInvoice(t *testing.T, repo Repository, number string) *models.Invoice {
	t.Helper()
	invoice := &models.Invoice{
		InvoiceNumber: number,
		Status:        enums.InvoiceStatusDraft,
		PaymentStatus: enums.PaymentStatusNotSent,
		IssueDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	created, err := repo.Create(context.Background(), invoice)
	require.NoError(t, err)
	return created
}

func TestInvoicesRepoMaxSequenceForYear(t *testing.T) {
	db := setupInvoicesTestDB(t)
	repo := NewRepository(db)

	seq, err := repo.MaxSequenceForYear(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)

	seedInvoice(t, repo, "INV-2024-001")
	seedInvoice(t, repo, "INV-2024-002")
	seedInvoice(t, repo, "INV-2023-009")

	seq, err = repo.MaxSequenceForYear(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)
}

func TestInvoicesRepoSequenceSurvivesDelete(t *testing.T) {
	db := setupInvoicesTestDB(t)
	repo := NewRepository(db)

	first := seedInvoice(t, repo, "INV-2024-001")
	seedInvoice(t, repo, "INV-2024-002")

	require.NoError(t, repo.Delete(context.Background(), first.ID))

	seq, err := repo.MaxSequenceForYear(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)

	// INV-2024-003 is still free even though only one row remains
	seedInvoice(t, repo, "INV-2024-003")
	seq, err = repo.MaxSequenceForYear(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(3), seq)
}
