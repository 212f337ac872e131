package cron

import (
	"context"
	"fmt"

	"github.com/dealerdesk/dealerdesk-backend/pkg/logger"
)

// InvoiceOverdueJobParams configure the overdue invoice sweeper.
type InvoiceOverdueJobParams struct {
	Logger  *logger.Logger
	Sweeper overdueSweeper
}

type overdueSweeper interface {
	SweepOverdue(ctx context.Context) (int64, error)
}

// NewInvoiceOverdueJob builds the cron job that flags past-due invoices.
func NewInvoiceOverdueJob(params InvoiceOverdueJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Sweeper == nil {
		return nil, fmt.Errorf("invoice sweeper required")
	}
	return &invoiceOverdueJob{
		logg:    params.Logger,
		sweeper: params.Sweeper,
	}, nil
}

type invoiceOverdueJob struct {
	logg    *logger.Logger
	sweeper overdueSweeper
}

func (j *invoiceOverdueJob) Name() string { return "invoice-overdue" }

func (j *invoiceOverdueJob) Run(ctx context.Context) error {
	swept, err := j.sweeper.SweepOverdue(ctx)
	if err != nil {
		return fmt.Errorf("sweep overdue invoices: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": swept})
	j.logg.Info(logCtx, "overdue invoice sweep complete")
	return nil
}
