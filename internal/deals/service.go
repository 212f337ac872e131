package deals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/internal/finance"
	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

// Service exposes sales deal operations.
type Service interface {
	List(ctx context.Context, params pagination.Params, filters Filters) (*DealList, error)
	Get(ctx context.Context, id int64) (*models.Deal, error)
	Create(ctx context.Context, input CreateInput) (*models.Deal, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.Deal, error)
	Delete(ctx context.Context, id int64) (*models.Deal, error)
	AddDocument(ctx context.Context, id int64, input DocumentInput) (*models.Deal, error)
	RemoveDocument(ctx context.Context, id int64, index int) (*models.Deal, error)
	Margin(ctx context.Context, id int64, otherCosts float64) (*finance.MarginBreakdown, error)
	Financing(ctx context.Context, id int64, input FinancingInput) (*finance.FinancingQuote, error)
	Loyalty(ctx context.Context, customerID int64) (*finance.LoyaltyProfile, error)
}

type service struct {
	repo       Repository
	vehicles   VehicleSource
	reconCosts ReconCostSource
}

// NewService builds a deals service with the required dependencies.
func NewService(repo Repository, vehicles VehicleSource, reconCosts ReconCostSource) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("deals repository required")
	}
	if vehicles == nil {
		return nil, fmt.Errorf("vehicle source required")
	}
	if reconCosts == nil {
		return nil, fmt.Errorf("recon cost source required")
	}
	return &service{repo: repo, vehicles: vehicles, reconCosts: reconCosts}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*DealList, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list deals")
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Deal, error) {
	deal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load deal")
	}
	return deal, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Deal, error) {
	if input.CustomerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if input.VehicleID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle id required")
	}
	if input.SalePrice <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale price must be positive")
	}
	if input.TradeInValue < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "trade-in value cannot be negative")
	}

	vehicle, err := s.vehicles.FindByID(ctx, input.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}
	if vehicle.Status == enums.VehicleStatusSold {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "vehicle already sold")
	}

	dealDate := time.Now().UTC()
	if input.DealDate != nil {
		dealDate = input.DealDate.UTC()
	}

	deal := &models.Deal{
		CustomerID:   input.CustomerID,
		VehicleID:    input.VehicleID,
		SalePrice:    input.SalePrice,
		TradeInValue: input.TradeInValue,
		Status:       enums.DealStatusDraft,
		DealDate:     dealDate,
		Salesperson:  input.Salesperson,
		Notes:        input.Notes,
		Documents:    types.DealDocuments{},
		BranchID:     input.BranchID,
	}

	created, err := s.repo.Create(ctx, deal)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create deal")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.Deal, error) {
	deal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.SalePrice != nil {
		if *input.SalePrice <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale price must be positive")
		}
		updates["sale_price"] = *input.SalePrice
	}
	if input.TradeInValue != nil {
		if *input.TradeInValue < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "trade-in value cannot be negative")
		}
		updates["trade_in_value"] = *input.TradeInValue
	}
	if input.DealDate != nil {
		updates["deal_date"] = input.DealDate.UTC()
	}
	if input.Salesperson != nil {
		updates["salesperson"] = *input.Salesperson
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.BranchID != nil {
		updates["branch_id"] = *input.BranchID
	}

	completing := false
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid deal status")
		}
		if deal.Status == enums.DealStatusCompleted && *input.Status != enums.DealStatusCompleted {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "completed deal cannot be reopened")
		}
		completing = *input.Status == enums.DealStatusCompleted && deal.Status != enums.DealStatusCompleted
		updates["status"] = *input.Status
	}

	if completing {
		breakdown, err := s.marginFor(ctx, deal, 0)
		if err != nil {
			return nil, err
		}
		updates["margin"] = breakdown.NetMargin
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update deal")
	}

	if completing {
		soldUpdates := map[string]any{"status": enums.VehicleStatusSold}
		if err := s.vehicles.Update(ctx, deal.VehicleID, soldUpdates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark vehicle sold")
		}
	}

	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) (*models.Deal, error) {
	deal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if deal.Status == enums.DealStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "completed deal cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete deal")
	}
	return deal, nil
}

func (s *service) AddDocument(ctx context.Context, id int64, input DocumentInput) (*models.Deal, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document name required")
	}

	deal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	document := types.DealDocument{
		Name:       input.Name,
		Type:       input.Type,
		URL:        input.URL,
		UploadedAt: time.Now().UTC(),
	}
	documents := append(types.DealDocuments{}, deal.Documents...)
	documents = append(documents, document)

	if err := s.repo.Update(ctx, id, map[string]any{"documents": documents}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach document")
	}
	return s.Get(ctx, id)
}

func (s *service) RemoveDocument(ctx context.Context, id int64, index int) (*models.Deal, error) {
	deal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(deal.Documents) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document index out of range")
	}

	documents := append(types.DealDocuments{}, deal.Documents[:index]...)
	documents = append(documents, deal.Documents[index+1:]...)

	if err := s.repo.Update(ctx, id, map[string]any{"documents": documents}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detach document")
	}
	return s.Get(ctx, id)
}

func (s *service) Margin(ctx context.Context, id int64, otherCosts float64) (*finance.MarginBreakdown, error) {
	deal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.marginFor(ctx, deal, otherCosts)
}

func (s *service) marginFor(ctx context.Context, deal *models.Deal, otherCosts float64) (*finance.MarginBreakdown, error) {
	vehicle, err := s.vehicles.FindByID(ctx, deal.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}

	cost := 0.0
	if vehicle.Cost != nil {
		cost = *vehicle.Cost
	}
	rate := 0.0
	if vehicle.FloorplanRate != nil {
		rate = *vehicle.FloorplanRate
	}
	floorplan := finance.CalculateFloorplanInterest(cost, vehicle.Price, rate, vehicle.DaysInInventory)

	reconCost, err := s.reconCosts.TotalCostForVehicle(ctx, deal.VehicleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recon costs")
	}

	breakdown := finance.CalculateDealMargin(deal.SalePrice, cost, floorplan.TotalInterest, reconCost, otherCosts)
	return &breakdown, nil
}

func (s *service) Financing(ctx context.Context, id int64, input FinancingInput) (*finance.FinancingQuote, error) {
	if input.TermMonths <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "term months must be positive")
	}
	if input.DownPayment < 0 || input.AnnualRatePercent < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "down payment and rate cannot be negative")
	}

	deal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	principal := deal.SalePrice - deal.TradeInValue
	quote := finance.CalculateFinancing(principal, input.DownPayment, input.AnnualRatePercent, input.TermMonths)
	return &quote, nil
}

func (s *service) Loyalty(ctx context.Context, customerID int64) (*finance.LoyaltyProfile, error) {
	if customerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	history, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer deals")
	}

	profile := finance.CalculateCustomerLoyalty(customerID, history, time.Now().UTC())
	return &profile, nil
}
