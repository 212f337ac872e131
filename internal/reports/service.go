package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dealerdesk/dealerdesk-backend/internal/finance"
	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
)

// VehicleSource supplies the inventory snapshot used by reports.
type VehicleSource interface {
	ListAll(ctx context.Context) ([]models.Vehicle, error)
}

// DealSource supplies the deal history used by reports.
type DealSource interface {
	ListAll(ctx context.Context) ([]models.Deal, error)
	ListCompleted(ctx context.Context) ([]models.Deal, error)
}

// AgingBucket groups inventory by how long it has sat on the lot.
type AgingBucket struct {
	Label     string  `json:"label"`
	Count     int     `json:"count"`
	TotalCost float64 `json:"total_cost"`
}

// FloorplanAnalysis breaks down carrying cost across inventory age bands.
type FloorplanAnalysis struct {
	Buckets            []AgingBucket `json:"buckets"`
	TotalFloorplanCost float64       `json:"total_floorplan_cost"`
	TotalCompletedSale float64       `json:"total_completed_sales"`
	MarginImpact       float64       `json:"margin_impact"`
}

// SalesSummary aggregates the deal pipeline.
type SalesSummary struct {
	TotalDeals     int     `json:"total_deals"`
	CompletedDeals int     `json:"completed_deals"`
	PendingDeals   int     `json:"pending_deals"`
	CancelledDeals int     `json:"cancelled_deals"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalTradeIn   float64 `json:"total_trade_in"`
	AverageSale    float64 `json:"average_sale"`
	AverageMargin  float64 `json:"average_margin"`
}

// InventorySummary aggregates the current vehicle stock.
type InventorySummary struct {
	TotalVehicles   int            `json:"total_vehicles"`
	ByStatus        map[string]int `json:"by_status"`
	TotalValue      float64        `json:"total_value"`
	AverageDaysHeld float64        `json:"average_days_held"`
	AgedOver90      int            `json:"aged_over_90"`
}

// Service produces the dealership's reporting views.
type Service interface {
	FloorplanAnalysis(ctx context.Context) (*FloorplanAnalysis, error)
	SalesSummary(ctx context.Context) (*SalesSummary, error)
	InventorySummary(ctx context.Context) (*InventorySummary, error)
	LoyaltyReport(ctx context.Context) ([]finance.LoyaltyProfile, error)
}

type service struct {
	vehicles VehicleSource
	deals    DealSource
	now      func() time.Time
}

// NewService builds a reports service with the required dependencies.
func NewService(vehicles VehicleSource, deals DealSource) (Service, error) {
	if vehicles == nil {
		return nil, fmt.Errorf("vehicle source required")
	}
	if deals == nil {
		return nil, fmt.Errorf("deal source required")
	}
	return &service{
		vehicles: vehicles,
		deals:    deals,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// FloorplanAnalysis buckets unsold inventory into age bands and reports
// how much carrying cost eats into completed-sale revenue.
func (s *service) FloorplanAnalysis(ctx context.Context) (*FloorplanAnalysis, error) {
	inventory, err := s.vehicles.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
	}
	completed, err := s.deals.ListCompleted(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load completed deals")
	}

	buckets := []AgingBucket{
		{Label: "0-30"},
		{Label: "31-60"},
		{Label: "61-90"},
		{Label: "90+"},
	}

	totalFloorplan := 0.0
	for _, vehicle := range inventory {
		if vehicle.Status == enums.VehicleStatusSold {
			continue
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
		totalFloorplan += charges.TotalInterest

		idx := bucketIndex(vehicle.DaysInInventory)
		buckets[idx].Count++
		buckets[idx].TotalCost = finance.Round2(buckets[idx].TotalCost + charges.TotalInterest)
	}

	totalSales := 0.0
	for _, deal := range completed {
		totalSales += deal.SalePrice
	}

	marginImpact := 0.0
	if totalSales > 0 {
		marginImpact = finance.Round2(totalFloorplan / totalSales * 100)
	}

	return &FloorplanAnalysis{
		Buckets:            buckets,
		TotalFloorplanCost: finance.Round2(totalFloorplan),
		TotalCompletedSale: finance.Round2(totalSales),
		MarginImpact:       marginImpact,
	}, nil
}

func bucketIndex(days int) int {
	switch {
	case days <= 30:
		return 0
	case days <= 60:
		return 1
	case days <= 90:
		return 2
	default:
		return 3
	}
}

func (s *service) SalesSummary(ctx context.Context) (*SalesSummary, error) {
	deals, err := s.deals.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load deals")
	}

	summary := &SalesSummary{TotalDeals: len(deals)}
	marginTotal := 0.0
	marginCount := 0

	for _, deal := range deals {
		switch deal.Status {
		case enums.DealStatusCompleted:
			summary.CompletedDeals++
			summary.TotalRevenue += deal.SalePrice
			summary.TotalTradeIn += deal.TradeInValue
			if deal.Margin != nil {
				marginTotal += *deal.Margin
				marginCount++
			}
		case enums.DealStatusPending:
			summary.PendingDeals++
		case enums.DealStatusCancelled:
			summary.CancelledDeals++
		}
	}

	if summary.CompletedDeals > 0 {
		summary.AverageSale = finance.Round2(summary.TotalRevenue / float64(summary.CompletedDeals))
	}
	if marginCount > 0 {
		summary.AverageMargin = finance.Round2(marginTotal / float64(marginCount))
	}
	summary.TotalRevenue = finance.Round2(summary.TotalRevenue)
	summary.TotalTradeIn = finance.Round2(summary.TotalTradeIn)

	return summary, nil
}

func (s *service) InventorySummary(ctx context.Context) (*InventorySummary, error) {
	inventory, err := s.vehicles.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
	}

	summary := &InventorySummary{
		TotalVehicles: len(inventory),
		ByStatus:      map[string]int{},
	}

	daysTotal := 0
	unsold := 0
	for _, vehicle := range inventory {
		summary.ByStatus[vehicle.Status.String()]++
		if vehicle.Status == enums.VehicleStatusSold {
			continue
		}
		unsold++
		summary.TotalValue += vehicle.Price
		daysTotal += vehicle.DaysInInventory
		if vehicle.DaysInInventory > 90 {
			summary.AgedOver90++
		}
	}

	if unsold > 0 {
		summary.AverageDaysHeld = finance.Round2(float64(daysTotal) / float64(unsold))
	}
	summary.TotalValue = finance.Round2(summary.TotalValue)

	return summary, nil
}

// LoyaltyReport profiles every customer with at least one completed deal,
// highest point totals first.
func (s *service) LoyaltyReport(ctx context.Context) ([]finance.LoyaltyProfile, error) {
	completed, err := s.deals.ListCompleted(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load completed deals")
	}

	byCustomer := map[int64][]models.Deal{}
	for _, deal := range completed {
		byCustomer[deal.CustomerID] = append(byCustomer[deal.CustomerID], deal)
	}

	now := s.now()
	profiles := make([]finance.LoyaltyProfile, 0, len(byCustomer))
	for customerID, deals := range byCustomer {
		profiles = append(profiles, finance.CalculateCustomerLoyalty(customerID, deals, now))
	}

	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].LoyaltyPoints != profiles[j].LoyaltyPoints {
			return profiles[i].LoyaltyPoints > profiles[j].LoyaltyPoints
		}
		return profiles[i].CustomerID < profiles[j].CustomerID
	})

	return profiles, nil
}
