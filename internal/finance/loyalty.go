package finance

import (
	"math"
	"time"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
)

// Loyalty points thresholds and bonuses. The repeat-buyer bonuses stack: a
// three-deal customer earns both the 500 and the 1000 point bonus.
const (
	loyaltyGoldThreshold   = 5000
	loyaltySilverThreshold = 2500
	loyaltyRepeatBonus     = 500
	loyaltyFrequentBonus   = 1000

	// A customer counts as active for 24 "months" of 30 days each.
	loyaltyActiveWindow = 720 * 24 * time.Hour
)

var tierBenefits = map[enums.LoyaltyTier][]string{
	enums.LoyaltyTierBronze: {
		"Standard service scheduling",
		"Complimentary annual inspection",
	},
	enums.LoyaltyTierSilver: {
		"Priority service scheduling",
		"Complimentary annual inspection",
		"Free oil changes",
		"10% off parts and accessories",
	},
	enums.LoyaltyTierGold: {
		"VIP service scheduling",
		"Complimentary annual inspection",
		"Free oil changes",
		"20% off parts and accessories",
		"Free loaner vehicle",
		"Dedicated sales contact",
	},
}

// LoyaltyProfile summarizes a customer's standing with the dealership.
type LoyaltyProfile struct {
	CustomerID     int64             `json:"customer_id"`
	CompletedDeals int               `json:"completed_deals"`
	TotalSpent     float64           `json:"total_spent"`
	LoyaltyPoints  int               `json:"loyalty_points"`
	Tier           enums.LoyaltyTier `json:"tier"`
	Benefits       []string          `json:"benefits"`
	IsActive       bool              `json:"is_active"`
	LastPurchase   *time.Time        `json:"last_purchase,omitempty"`
}

// CalculateCustomerLoyalty derives points, tier and benefits from a
// customer's completed deals. Deals for other customers or in non-completed
// states are ignored.
func CalculateCustomerLoyalty(customerID int64, deals []models.Deal, now time.Time) LoyaltyProfile {
	var (
		completed    int
		totalSpent   float64
		lastPurchase *time.Time
	)
	for _, deal := range deals {
		if deal.CustomerID != customerID || deal.Status != enums.DealStatusCompleted {
			continue
		}
		completed++
		totalSpent += deal.SalePrice
		dealDate := deal.DealDate
		if lastPurchase == nil || dealDate.After(*lastPurchase) {
			lastPurchase = &dealDate
		}
	}

	points := int(math.Floor(totalSpent / 100))
	if completed >= 2 {
		points += loyaltyRepeatBonus
	}
	if completed >= 3 {
		points += loyaltyFrequentBonus
	}

	tier := enums.LoyaltyTierBronze
	switch {
	case points >= loyaltyGoldThreshold:
		tier = enums.LoyaltyTierGold
	case points >= loyaltySilverThreshold:
		tier = enums.LoyaltyTierSilver
	}

	active := lastPurchase != nil && now.Sub(*lastPurchase) <= loyaltyActiveWindow

	return LoyaltyProfile{
		CustomerID:     customerID,
		CompletedDeals: completed,
		TotalSpent:     Round2(totalSpent),
		LoyaltyPoints:  points,
		Tier:           tier,
		Benefits:       tierBenefits[tier],
		IsActive:       active,
		LastPurchase:   lastPurchase,
	}
}
