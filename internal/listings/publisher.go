package listings

import (
	"context"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
)

// ListingResult is the marketplace's answer to a publish or update call.
type ListingResult struct {
	Platform   string `json:"platform"`
	ListingID  string `json:"listing_id"`
	ListingURL string `json:"listing_url"`
}

// ListingStats reports marketplace engagement for one listing.
type ListingStats struct {
	Platform    string `json:"platform"`
	ListingID   string `json:"listing_id"`
	Views       int    `json:"views"`
	Impressions int    `json:"impressions,omitempty"`
	Clicks      int    `json:"clicks,omitempty"`
	Leads       int    `json:"leads"`
}

// Publisher pushes vehicle listings to one external marketplace.
type Publisher interface {
	Platform() string
	Publish(ctx context.Context, vehicle *models.Vehicle) (*ListingResult, error)
	Update(ctx context.Context, vehicle *models.Vehicle, listingID string) (*ListingResult, error)
	Remove(ctx context.Context, listingID string) error
	Stats(ctx context.Context, listingID string) (*ListingStats, error)
}
