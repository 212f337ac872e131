package finance

import (
	"fmt"
	"math"
	"sort"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
)

const (
	recommendationLimit = 6

	estimateAPR        = 0.049
	estimateTermMonths = 60
	maxTradeInEstimate = 8000
	maxDownEstimate    = 3000
)

// Recommendation pairs a vehicle with its match score against one lead.
type Recommendation struct {
	Vehicle                 models.Vehicle `json:"vehicle"`
	Score                   int            `json:"score"`
	Rank                    int            `json:"rank"`
	Reasons                 []string       `json:"reasons"`
	EstimatedMonthlyPayment float64        `json:"estimated_monthly_payment"`
}

// RecommendVehicles scores every available vehicle against the lead and
// returns the top matches, ranked. Equal scores keep input order.
func RecommendVehicles(lead models.Lead, vehicles []models.Vehicle) []Recommendation {
	recs := make([]Recommendation, 0, len(vehicles))
	for _, vehicle := range vehicles {
		if vehicle.Status != enums.VehicleStatusAvailable {
			continue
		}
		score, reasons := scoreVehicle(lead, vehicle)
		recs = append(recs, Recommendation{
			Vehicle:                 vehicle,
			Score:                   score,
			Reasons:                 reasons,
			EstimatedMonthlyPayment: estimateMonthlyPayment(lead, vehicle.Price),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > recommendationLimit {
		recs = recs[:recommendationLimit]
	}
	for i := range recs {
		recs[i].Rank = i + 1
	}
	return recs
}

func scoreVehicle(lead models.Lead, vehicle models.Vehicle) (int, []string) {
	var (
		score   float64
		reasons []string
	)

	budget := 0.0
	if lead.Budget != nil {
		budget = *lead.Budget
	}

	switch {
	case budget > 0 && vehicle.Price <= budget:
		score += (1 - vehicle.Price/budget) * 35
		reasons = append(reasons, fmt.Sprintf("Within $%.0f budget", budget))
	case budget <= 0:
		score += 15
	}

	for _, id := range lead.InterestedVehicles {
		if id == vehicle.ID {
			score += 30
			reasons = append(reasons, "Previously expressed interest")
			break
		}
	}

	ratio := 1.0
	if vehicle.MarketValue != nil && *vehicle.MarketValue > 0 {
		ratio = vehicle.Price / *vehicle.MarketValue
	}
	switch {
	case ratio < 1.1:
		score += 20
		reasons = append(reasons, "Great market value")
	case ratio > 1.2:
		score -= 5
	}

	switch {
	case vehicle.DaysInInventory > 90:
		score += 15
		reasons = append(reasons, "Potential for negotiation")
	case vehicle.DaysInInventory < 30:
		score += 10
		reasons = append(reasons, "Recently acquired")
	}

	score *= float64(lead.LeadScore) / 100

	if vehicle.Condition != nil && *vehicle.Condition == "Excellent" {
		score += 5
		reasons = append(reasons, "Excellent condition")
	}
	if vehicle.FuelType != nil && *vehicle.FuelType == "Hybrid" && budget > 0 && budget < 30000 {
		score += 10
		reasons = append(reasons, "Fuel-efficient hybrid")
	}

	return int(math.Round(score)), reasons
}

func estimateMonthlyPayment(lead models.Lead, price float64) float64 {
	budget := 0.0
	if lead.Budget != nil {
		budget = *lead.Budget
	}

	var tradeValue float64
	if lead.TradeIn {
		tradeValue = math.Min(budget*0.3, maxTradeInEstimate)
	}
	downPayment := math.Min(budget*0.1, maxDownEstimate)

	loan := price - tradeValue - downPayment
	if loan <= 0 {
		return 0
	}

	monthlyRate := estimateAPR / 12
	factor := math.Pow(1+monthlyRate, estimateTermMonths)
	return math.Round(loan * monthlyRate * factor / (factor - 1))
}

// EngagementScore is a quick heuristic of how engaged a lead is, derived
// from contact volume and profile completeness.
func EngagementScore(lead models.Lead) int {
	score := float64(len(lead.ContactHistory))*10 +
		float64(len(lead.Appointments))*15 +
		float64(lead.LeadScore)*0.3
	if lead.TradeIn {
		score += 10
	}
	if lead.Budget != nil && *lead.Budget > 0 {
		score += 10
	}
	return int(math.Round(score))
}
