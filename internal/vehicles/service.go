package vehicles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/internal/finance"
	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

// Service exposes inventory operations on vehicles.
type Service interface {
	List(ctx context.Context, params pagination.Params, filters Filters) (*VehicleList, error)
	Get(ctx context.Context, id int64) (*models.Vehicle, error)
	Create(ctx context.Context, input CreateInput) (*models.Vehicle, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.Vehicle, error)
	Delete(ctx context.Context, id int64) (*models.Vehicle, error)
	FloorplanCharges(ctx context.Context, id int64) (*finance.FloorplanCharges, error)
	RequestTransfer(ctx context.Context, id int64, input TransferInput) (*TransferReceipt, error)
}

type service struct {
	repo Repository
}

// NewService builds a vehicles service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vehicles repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*VehicleList, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vehicles")
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}
	return vehicle, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Vehicle, error) {
	if strings.TrimSpace(input.VIN) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vin required")
	}
	if strings.TrimSpace(input.Make) == "" || strings.TrimSpace(input.Model) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "make and model required")
	}
	if input.Price <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	vehicle := &models.Vehicle{
		VIN:           strings.ToUpper(strings.TrimSpace(input.VIN)),
		Make:          input.Make,
		Model:         input.Model,
		Year:          input.Year,
		Trim:          input.Trim,
		Mileage:       input.Mileage,
		Color:         input.Color,
		Price:         input.Price,
		Cost:          input.Cost,
		MarketValue:   input.MarketValue,
		Condition:     input.Condition,
		BodyType:      input.BodyType,
		FuelType:      input.FuelType,
		Transmission:  input.Transmission,
		Status:        enums.VehicleStatusAvailable,
		FloorplanRate: input.FloorplanRate,
		BranchID:      input.BranchID,
		Description:   input.Description,
		Features:      pq.StringArray(input.Features),
		Images:        pq.StringArray(input.Images),
		Publications:  types.PublicationMap{},
	}

	created, err := s.repo.Create(ctx, vehicle)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vehicle")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.Vehicle, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.VIN != nil {
		updates["vin"] = strings.ToUpper(strings.TrimSpace(*input.VIN))
	}
	if input.Make != nil {
		updates["make"] = *input.Make
	}
	if input.Model != nil {
		updates["model"] = *input.Model
	}
	if input.Year != nil {
		updates["year"] = *input.Year
	}
	if input.Trim != nil {
		updates["trim"] = *input.Trim
	}
	if input.Mileage != nil {
		updates["mileage"] = *input.Mileage
	}
	if input.Color != nil {
		updates["color"] = *input.Color
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		updates["price"] = *input.Price
	}
	if input.Cost != nil {
		updates["cost"] = *input.Cost
	}
	if input.MarketValue != nil {
		updates["market_value"] = *input.MarketValue
	}
	if input.Condition != nil {
		updates["condition"] = *input.Condition
	}
	if input.BodyType != nil {
		updates["body_type"] = *input.BodyType
	}
	if input.FuelType != nil {
		updates["fuel_type"] = *input.FuelType
	}
	if input.Transmission != nil {
		updates["transmission"] = *input.Transmission
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vehicle status")
		}
		updates["status"] = *input.Status
	}
	if input.DaysInInventory != nil {
		if *input.DaysInInventory < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "days in inventory cannot be negative")
		}
		updates["days_in_inventory"] = *input.DaysInInventory
	}
	if input.FloorplanRate != nil {
		updates["floorplan_rate"] = *input.FloorplanRate
	}
	if input.BranchID != nil {
		updates["branch_id"] = *input.BranchID
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Features != nil {
		updates["features"] = pq.StringArray(input.Features)
	}
	if input.Images != nil {
		updates["images"] = pq.StringArray(input.Images)
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vehicle")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) (*models.Vehicle, error) {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vehicle")
	}
	return vehicle, nil
}

func (s *service) FloorplanCharges(ctx context.Context, id int64) (*finance.FloorplanCharges, error) {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	cost := 0.0
	if vehicle.Cost != nil {
		cost = *vehicle.Cost
	}
	rate := 0.0
	if vehicle.FloorplanRate != nil {
		rate = *vehicle.FloorplanRate
	}

	charges := finance.CalculateFloorplanInterest(cost, vehicle.Price, rate, vehicle.DaysInInventory)
	return &charges, nil
}

func (s *service) RequestTransfer(ctx context.Context, id int64, input TransferInput) (*TransferReceipt, error) {
	if input.ToBranchID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination branch required")
	}

	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle.BranchID != nil && *vehicle.BranchID == input.ToBranchID {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "vehicle already at destination branch")
	}

	return &TransferReceipt{
		RequestID:    uuid.NewString(),
		VehicleID:    vehicle.ID,
		FromBranchID: vehicle.BranchID,
		ToBranchID:   input.ToBranchID,
		Status:       "accepted",
		RequestedAt:  time.Now().UTC(),
	}, nil
}
