package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/dealerdesk/dealerdesk-backend/pkg/logger"
)

type fakeOverdueSweeper struct {
	swept  int64
	err    error
	called int
}

func (f *fakeOverdueSweeper) SweepOverdue(context.Context) (int64, error) {
	f.called++
	return f.swept, f.err
}

type fakeInventoryAger struct {
	updated int64
	err     error
	called  int
}

func (f *fakeInventoryAger) IncrementDaysInInventory(context.Context) (int64, error) {
	f.called++
	return f.updated, f.err
}

func TestInvoiceOverdueJobSweeps(t *testing.T) {
	sweeper := &fakeOverdueSweeper{swept: 3}
	job, err := NewInvoiceOverdueJob(InvoiceOverdueJobParams{
		Logger:  logger.New(logger.Options{ServiceName: "test"}),
		Sweeper: sweeper,
	})
	if err != nil {
		t.Fatalf("NewInvoiceOverdueJob: %v", err)
	}
	if job.Name() != "invoice-overdue" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sweeper.called != 1 {
		t.Fatalf("expected sweeper called once, got %d", sweeper.called)
	}
}

func TestInvoiceOverdueJobPropagatesError(t *testing.T) {
	sweeper := &fakeOverdueSweeper{err: errors.New("boom")}
	job, err := NewInvoiceOverdueJob(InvoiceOverdueJobParams{
		Logger:  logger.New(logger.Options{ServiceName: "test"}),
		Sweeper: sweeper,
	})
	if err != nil {
		t.Fatalf("NewInvoiceOverdueJob: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestInvoiceOverdueJobValidation(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	if _, err := NewInvoiceOverdueJob(InvoiceOverdueJobParams{Sweeper: &fakeOverdueSweeper{}}); err == nil {
		t.Fatal("expected error when logger missing")
	}
	if _, err := NewInvoiceOverdueJob(InvoiceOverdueJobParams{Logger: logg}); err == nil {
		t.Fatal("expected error when sweeper missing")
	}
}

func TestInventoryAgingJobIncrements(t *testing.T) {
	ager := &fakeInventoryAger{updated: 12}
	job, err := NewInventoryAgingJob(InventoryAgingJobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Ager:   ager,
	})
	if err != nil {
		t.Fatalf("NewInventoryAgingJob: %v", err)
	}
	if job.Name() != "inventory-aging" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ager.called != 1 {
		t.Fatalf("expected ager called once, got %d", ager.called)
	}
}

func TestInventoryAgingJobPropagatesError(t *testing.T) {
	ager := &fakeInventoryAger{err: errors.New("boom")}
	job, err := NewInventoryAgingJob(InventoryAgingJobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Ager:   ager,
	})
	if err != nil {
		t.Fatalf("NewInventoryAgingJob: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
