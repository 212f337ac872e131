package listings

import (
	"context"
	"fmt"
	"strings"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
)

// PlatformAutoTrader is the publication map key for AutoTrader.
const PlatformAutoTrader = "autotrader"

type autoTraderPublisher struct {
	dealerID string
}

// NewAutoTraderPublisher builds the AutoTrader marketplace adapter.
func NewAutoTraderPublisher(dealerID string) Publisher {
	return &autoTraderPublisher{dealerID: dealerID}
}

func (p *autoTraderPublisher) Platform() string {
	return PlatformAutoTrader
}

func (p *autoTraderPublisher) Publish(ctx context.Context, vehicle *models.Vehicle) (*ListingResult, error) {
	if vehicle == nil || vehicle.VIN == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle with vin required")
	}
	vin := strings.ToUpper(vehicle.VIN)
	return &ListingResult{
		Platform:   PlatformAutoTrader,
		ListingID:  fmt.Sprintf("AT_%s", vin),
		ListingURL: fmt.Sprintf("https://autotrader.com/cars-for-sale/vehicledetails/%s", strings.ToLower(vin)),
	}, nil
}

func (p *autoTraderPublisher) Update(ctx context.Context, vehicle *models.Vehicle, listingID string) (*ListingResult, error) {
	if listingID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing id required")
	}
	return p.Publish(ctx, vehicle)
}

func (p *autoTraderPublisher) Remove(ctx context.Context, listingID string) error {
	if listingID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "listing id required")
	}
	return nil
}

func (p *autoTraderPublisher) Stats(ctx context.Context, listingID string) (*ListingStats, error) {
	if listingID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing id required")
	}
	seed := statSeed(listingID)
	impressions := 500 + int(seed%2000)
	clicks := impressions / 10
	return &ListingStats{
		Platform:    PlatformAutoTrader,
		ListingID:   listingID,
		Views:       clicks,
		Impressions: impressions,
		Clicks:      clicks,
		Leads:       int(seed % 12),
	}, nil
}
