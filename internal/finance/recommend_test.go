package finance

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

func ptr[T any](v T) *T {
	return &v
}

func availableVehicle(id int64, price float64) models.Vehicle {
	return models.Vehicle{
		ID:     id,
		Price:  price,
		Status: enums.VehicleStatusAvailable,
	}
}

func TestRecommendVehiclesSkipsUnavailable(t *testing.T) {
	lead := models.Lead{LeadScore: 50}
	vehicles := []models.Vehicle{
		{ID: 1, Price: 20000, Status: enums.VehicleStatusSold},
		{ID: 2, Price: 20000, Status: enums.VehicleStatusPending},
		availableVehicle(3, 20000),
	}

	recs := RecommendVehicles(lead, vehicles)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(3), recs[0].Vehicle.ID)
	assert.Equal(t, 1, recs[0].Rank)
}

func TestRecommendVehiclesLimitsToSix(t *testing.T) {
	lead := models.Lead{LeadScore: 80, Budget: ptr(30000.0)}
	var vehicles []models.Vehicle
	for i := int64(1); i <= 10; i++ {
		vehicles = append(vehicles, availableVehicle(i, 15000+float64(i)*1000))
	}

	recs := RecommendVehicles(lead, vehicles)
	require.Len(t, recs, 6)
	for i, rec := range recs {
		assert.Equal(t, i+1, rec.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, recs[i-1].Score, rec.Score)
		}
	}
}

func TestRecommendVehiclesStableTieBreakKeepsInputOrder(t *testing.T) {
	lead := models.Lead{LeadScore: 100}
	// identical vehicles score identically; input order must hold
	vehicles := []models.Vehicle{
		availableVehicle(11, 20000),
		availableVehicle(12, 20000),
		availableVehicle(13, 20000),
	}

	recs := RecommendVehicles(lead, vehicles)
	require.Len(t, recs, 3)
	assert.Equal(t, int64(11), recs[0].Vehicle.ID)
	assert.Equal(t, int64(12), recs[1].Vehicle.ID)
	assert.Equal(t, int64(13), recs[2].Vehicle.ID)
}

func TestScoreVehicleBudgetFit(t *testing.T) {
	lead := models.Lead{LeadScore: 100, Budget: ptr(20000.0)}
	vehicle := availableVehicle(1, 11500)
	vehicle.MarketValue = ptr(10000.0) // ratio 1.15, no market-value points
	vehicle.DaysInInventory = 45       // no inventory-age bonus

	score, reasons := scoreVehicle(lead, vehicle)

	// (1 - 11500/20000)*35 = 14.875, scaled by 100/100
	assert.Equal(t, 15, score)
	assert.Contains(t, reasons, fmt.Sprintf("Within $%.0f budget", 20000.0))
}

func TestScoreVehiclePriorInterestAndMarketValue(t *testing.T) {
	lead := models.Lead{LeadScore: 100, InterestedVehicles: []int64{42}}
	vehicle := availableVehicle(42, 21000)
	vehicle.MarketValue = ptr(20000.0)
	vehicle.DaysInInventory = 45

	score, reasons := scoreVehicle(lead, vehicle)

	// no budget +15, interest +30, ratio 1.05 < 1.1 +20
	assert.Equal(t, 65, score)
	assert.Contains(t, reasons, "Previously expressed interest")
	assert.Contains(t, reasons, "Great market value")
}

func TestScoreVehicleOverpricedPenalty(t *testing.T) {
	lead := models.Lead{LeadScore: 100}
	vehicle := availableVehicle(1, 25000)
	vehicle.MarketValue = ptr(20000.0)
	vehicle.DaysInInventory = 45

	score, _ := scoreVehicle(lead, vehicle)

	// no budget +15, ratio 1.25 > 1.2 −5
	assert.Equal(t, 10, score)
}

func TestScoreVehicleLeadScoreScalesBeforeBonuses(t *testing.T) {
	lead := models.Lead{LeadScore: 50, Budget: ptr(25000.0)}
	vehicle := availableVehicle(1, 20000)
	vehicle.MarketValue = ptr(17391.0) // ratio ~1.15, neutral
	vehicle.Condition = ptr("Excellent")
	vehicle.FuelType = ptr("Hybrid")
	vehicle.DaysInInventory = 45

	score, reasons := scoreVehicle(lead, vehicle)

	// budget (1-0.8)*35 = 7, halved by lead score = 3.5, then +5 +10 flat
	assert.Equal(t, 19, score)
	assert.Contains(t, reasons, "Excellent condition")
	assert.Contains(t, reasons, "Fuel-efficient hybrid")
}

func TestScoreVehicleInventoryAge(t *testing.T) {
	lead := models.Lead{LeadScore: 100}
	aged := availableVehicle(1, 20000)
	aged.MarketValue = ptr(17391.0)
	aged.DaysInInventory = 120
	fresh := availableVehicle(2, 20000)
	fresh.MarketValue = ptr(17391.0)
	fresh.DaysInInventory = 10

	agedScore, agedReasons := scoreVehicle(lead, aged)
	freshScore, freshReasons := scoreVehicle(lead, fresh)

	assert.Equal(t, 30, agedScore) // 15 base + 15 negotiation
	assert.Equal(t, 25, freshScore)
	assert.Contains(t, agedReasons, "Potential for negotiation")
	assert.Contains(t, freshReasons, "Recently acquired")
}

func TestEstimateMonthlyPayment(t *testing.T) {
	lead := models.Lead{TradeIn: true, Budget: ptr(30000.0)}

	got := estimateMonthlyPayment(lead, 25000)

	// trade min(9000, 8000)=8000, down min(3000, 3000)=3000, loan 14000
	loan := 14000.0
	r := 0.049 / 12
	factor := math.Pow(1+r, 60)
	want := math.Round(loan * r * factor / (factor - 1))
	assert.Equal(t, want, got)
}

func TestEstimateMonthlyPaymentLoanCovered(t *testing.T) {
	lead := models.Lead{TradeIn: true, Budget: ptr(30000.0)}
	assert.Equal(t, 0.0, estimateMonthlyPayment(lead, 9000))
}

func TestEngagementScore(t *testing.T) {
	lead := models.Lead{
		LeadScore: 60,
		TradeIn:   true,
		Budget:    ptr(20000.0),
		ContactHistory: types.ContactHistory{
			{Type: "Call"}, {Type: "Email"},
		},
		Appointments: types.Appointments{
			{Type: "Test Drive", Status: "Scheduled"},
		},
	}

	// 2*10 + 1*15 + 60*0.3 + 10 + 10 = 73
	assert.Equal(t, 73, EngagementScore(lead))

	empty := models.Lead{LeadScore: 50}
	assert.Equal(t, 15, EngagementScore(empty))
}
