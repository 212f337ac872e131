package cron

import (
	"context"
	"fmt"

	"github.com/dealerdesk/dealerdesk-backend/pkg/logger"
)

// InventoryAgingJobParams configure the daily inventory age counter.
type InventoryAgingJobParams struct {
	Logger *logger.Logger
	Ager   inventoryAger
}

type inventoryAger interface {
	IncrementDaysInInventory(ctx context.Context) (int64, error)
}

// NewInventoryAgingJob builds the cron job that advances days-in-inventory
// for every vehicle that has not sold.
func NewInventoryAgingJob(params InventoryAgingJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Ager == nil {
		return nil, fmt.Errorf("inventory ager required")
	}
	return &inventoryAgingJob{
		logg: params.Logger,
		ager: params.Ager,
	}, nil
}

type inventoryAgingJob struct {
	logg *logger.Logger
	ager inventoryAger
}

func (j *inventoryAgingJob) Name() string { return "inventory-aging" }

func (j *inventoryAgingJob) Run(ctx context.Context) error {
	updated, err := j.ager.IncrementDaysInInventory(ctx)
	if err != nil {
		return fmt.Errorf("increment days in inventory: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": updated})
	j.logg.Info(logCtx, "inventory aging pass complete")
	return nil
}
