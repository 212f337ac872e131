package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
)

type stubVehicles struct {
	vehicles []models.Vehicle
}

func (s *stubVehicles) ListAll(ctx context.Context) ([]models.Vehicle, error) {
	return s.vehicles, nil
}

type stubDeals struct {
	deals []models.Deal
}

func (s *stubDeals) ListAll(ctx context.Context) ([]models.Deal, error) {
	return s.deals, nil
}

func (s *stubDeals) ListCompleted(ctx context.Context) ([]models.Deal, error) {
	var out []models.Deal
	for _, d := range s.deals {
		if d.Status == enums.DealStatusCompleted {
			out = append(out, d)
		}
	}
	return out, nil
}

func ptr[T any](v T) *T { return &v }

func stockVehicle(id int64, cost float64, days int, status enums.VehicleStatus) models.Vehicle {
	return models.Vehicle{
		ID:              id,
		VIN:             "VIN",
		Price:           cost * 1.25,
		Cost:            &cost,
		DaysInInventory: days,
		Status:          status,
	}
}

func TestFloorplanAnalysisBucketsByAge(t *testing.T) {
	vehicles := &stubVehicles{vehicles: []models.Vehicle{
		stockVehicle(1, 20000, 10, enums.VehicleStatusAvailable),
		stockVehicle(2, 15000, 45, enums.VehicleStatusAvailable),
		stockVehicle(3, 30000, 70, enums.VehicleStatusAvailable),
		stockVehicle(4, 25000, 120, enums.VehicleStatusAvailable),
		stockVehicle(5, 18000, 200, enums.VehicleStatusSold),
	}}
	deals := &stubDeals{deals: []models.Deal{
		{ID: 1, CustomerID: 1, SalePrice: 100000, Status: enums.DealStatusCompleted, DealDate: time.Now()},
	}}

	svc, err := NewService(vehicles, deals)
	require.NoError(t, err)

	analysis, err := svc.FloorplanAnalysis(context.Background())
	require.NoError(t, err)

	require.Len(t, analysis.Buckets, 4)
	assert.Equal(t, 1, analysis.Buckets[0].Count)
	assert.Equal(t, 1, analysis.Buckets[1].Count)
	assert.Equal(t, 1, analysis.Buckets[2].Count)
	assert.Equal(t, 1, analysis.Buckets[3].Count)

	// daily rate 0.0002: 20000*10=40, 15000*45=135, 30000*70=420, 25000*120=600
	assert.InDelta(t, 40, analysis.Buckets[0].TotalCost, 0.01)
	assert.InDelta(t, 135, analysis.Buckets[1].TotalCost, 0.01)
	assert.InDelta(t, 420, analysis.Buckets[2].TotalCost, 0.01)
	assert.InDelta(t, 600, analysis.Buckets[3].TotalCost, 0.01)
	assert.InDelta(t, 1195, analysis.TotalFloorplanCost, 0.01)

	// 1195 / 100000 * 100
	assert.InDelta(t, 1.20, analysis.MarginImpact, 0.01)
}

func TestFloorplanAnalysisNoSalesMeansZeroImpact(t *testing.T) {
	vehicles := &stubVehicles{vehicles: []models.Vehicle{
		stockVehicle(1, 20000, 10, enums.VehicleStatusAvailable),
	}}
	svc, err := NewService(vehicles, &stubDeals{})
	require.NoError(t, err)

	analysis, err := svc.FloorplanAnalysis(context.Background())
	require.NoError(t, err)
	assert.Zero(t, analysis.MarginImpact)
}

func TestSalesSummary(t *testing.T) {
	now := time.Now().UTC()
	deals := &stubDeals{deals: []models.Deal{
		{ID: 1, CustomerID: 1, SalePrice: 28000, TradeInValue: 3000, Margin: ptr(5000.0), Status: enums.DealStatusCompleted, DealDate: now},
		{ID: 2, CustomerID: 2, SalePrice: 32000, Margin: ptr(7000.0), Status: enums.DealStatusCompleted, DealDate: now},
		{ID: 3, CustomerID: 3, SalePrice: 15000, Status: enums.DealStatusPending, DealDate: now},
		{ID: 4, CustomerID: 4, SalePrice: 18000, Status: enums.DealStatusCancelled, DealDate: now},
	}}

	svc, err := NewService(&stubVehicles{}, deals)
	require.NoError(t, err)

	summary, err := svc.SalesSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalDeals)
	assert.Equal(t, 2, summary.CompletedDeals)
	assert.Equal(t, 1, summary.PendingDeals)
	assert.Equal(t, 1, summary.CancelledDeals)
	assert.InDelta(t, 60000, summary.TotalRevenue, 0.01)
	assert.InDelta(t, 3000, summary.TotalTradeIn, 0.01)
	assert.InDelta(t, 30000, summary.AverageSale, 0.01)
	assert.InDelta(t, 6000, summary.AverageMargin, 0.01)
}

func TestInventorySummarySkipsSoldFromValue(t *testing.T) {
	vehicles := &stubVehicles{vehicles: []models.Vehicle{
		stockVehicle(1, 20000, 10, enums.VehicleStatusAvailable),
		stockVehicle(2, 16000, 100, enums.VehicleStatusAvailable),
		stockVehicle(3, 24000, 30, enums.VehicleStatusSold),
	}}

	svc, err := NewService(vehicles, &stubDeals{})
	require.NoError(t, err)

	summary, err := svc.InventorySummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalVehicles)
	assert.Equal(t, 2, summary.ByStatus["Available"])
	assert.Equal(t, 1, summary.ByStatus["Sold"])
	assert.InDelta(t, 45000, summary.TotalValue, 0.01)
	assert.InDelta(t, 55, summary.AverageDaysHeld, 0.01)
	assert.Equal(t, 1, summary.AgedOver90)
}

func TestLoyaltyReportRanksByPoints(t *testing.T) {
	now := time.Now().UTC()
	deals := &stubDeals{deals: []models.Deal{
		{ID: 1, CustomerID: 1, SalePrice: 30000, Status: enums.DealStatusCompleted, DealDate: now},
		{ID: 2, CustomerID: 2, SalePrice: 60000, Status: enums.DealStatusCompleted, DealDate: now},
		{ID: 3, CustomerID: 2, SalePrice: 40000, Status: enums.DealStatusCompleted, DealDate: now},
		{ID: 4, CustomerID: 3, SalePrice: 10000, Status: enums.DealStatusDraft, DealDate: now},
	}}

	svc, err := NewService(&stubVehicles{}, deals)
	require.NoError(t, err)

	report, err := svc.LoyaltyReport(context.Background())
	require.NoError(t, err)

	require.Len(t, report, 2)
	assert.Equal(t, int64(2), report[0].CustomerID)
	// 100000/100 + 500 for the second completed deal
	assert.Equal(t, 1500, report[0].LoyaltyPoints)
	assert.Equal(t, int64(1), report[1].CustomerID)
	assert.Equal(t, 300, report[1].LoyaltyPoints)
}
