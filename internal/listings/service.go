package listings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

// VehicleStore exposes the inventory operations listings need.
type VehicleStore interface {
	FindByID(ctx context.Context, id int64) (*models.Vehicle, error)
	UpdatePublications(ctx context.Context, id int64, publications types.PublicationMap) error
}

// PlatformResult is the per-marketplace outcome of a publish sweep.
type PlatformResult struct {
	Platform   string              `json:"platform"`
	Status     enums.ListingStatus `json:"status"`
	ListingID  string              `json:"listing_id,omitempty"`
	ListingURL string              `json:"listing_url,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// PublishReport collects the outcomes of publishing one vehicle everywhere.
type PublishReport struct {
	VehicleID int64            `json:"vehicle_id"`
	Results   []PlatformResult `json:"results"`
}

// Service syncs vehicles to external marketplaces and tracks the
// per-platform publication state on the vehicle record.
type Service interface {
	PublishAll(ctx context.Context, vehicleID int64) (*PublishReport, error)
	Publish(ctx context.Context, vehicleID int64, platform string) (*PlatformResult, error)
	Refresh(ctx context.Context, vehicleID int64) (*PublishReport, error)
	Remove(ctx context.Context, vehicleID int64, platform string) (*models.Vehicle, error)
	Stats(ctx context.Context, vehicleID int64) ([]ListingStats, error)
}

type service struct {
	vehicles   VehicleStore
	publishers []Publisher
	now        func() time.Time
}

// NewService builds a listings service over the given marketplace adapters.
func NewService(vehicles VehicleStore, publishers ...Publisher) (Service, error) {
	if vehicles == nil {
		return nil, fmt.Errorf("vehicle store required")
	}
	if len(publishers) == 0 {
		return nil, fmt.Errorf("at least one publisher required")
	}
	return &service{
		vehicles:   vehicles,
		publishers: publishers,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) loadVehicle(ctx context.Context, vehicleID int64) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}
	return vehicle, nil
}

func (s *service) publisherFor(platform string) (Publisher, error) {
	for _, publisher := range s.publishers {
		if publisher.Platform() == platform {
			return publisher, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown platform %q", platform))
}

// PublishAll pushes the vehicle to every configured marketplace. A failure
// on one platform does not stop the others; each outcome lands in the report
// and in the vehicle's publication map.
func (s *service) PublishAll(ctx context.Context, vehicleID int64) (*PublishReport, error) {
	vehicle, err := s.loadVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != enums.VehicleStatusAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "only available vehicles can be listed")
	}

	publications := clonePublications(vehicle.Publications)
	report := &PublishReport{VehicleID: vehicleID}
	now := s.now()

	for _, publisher := range s.publishers {
		result := PlatformResult{Platform: publisher.Platform()}
		listing, err := publisher.Publish(ctx, vehicle)
		if err != nil {
			result.Status = enums.ListingStatusFailed
			result.Error = err.Error()
			publications[publisher.Platform()] = types.Publication{
				Status:      enums.ListingStatusFailed.String(),
				LastUpdated: &now,
			}
		} else {
			result.Status = enums.ListingStatusPublished
			result.ListingID = listing.ListingID
			result.ListingURL = listing.ListingURL
			publications[publisher.Platform()] = types.Publication{
				Status:      enums.ListingStatusPublished.String(),
				ListingID:   listing.ListingID,
				ListingURL:  listing.ListingURL,
				PublishedAt: &now,
				LastUpdated: &now,
			}
		}
		report.Results = append(report.Results, result)
	}

	if err := s.vehicles.UpdatePublications(ctx, vehicleID, publications); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save publications")
	}
	return report, nil
}

func (s *service) Publish(ctx context.Context, vehicleID int64, platform string) (*PlatformResult, error) {
	publisher, err := s.publisherFor(platform)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.loadVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != enums.VehicleStatusAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "only available vehicles can be listed")
	}

	listing, err := publisher.Publish(ctx, vehicle)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "publish listing")
	}

	now := s.now()
	publications := clonePublications(vehicle.Publications)
	publications[platform] = types.Publication{
		Status:      enums.ListingStatusPublished.String(),
		ListingID:   listing.ListingID,
		ListingURL:  listing.ListingURL,
		PublishedAt: &now,
		LastUpdated: &now,
	}
	if err := s.vehicles.UpdatePublications(ctx, vehicleID, publications); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save publications")
	}

	return &PlatformResult{
		Platform:   platform,
		Status:     enums.ListingStatusPublished,
		ListingID:  listing.ListingID,
		ListingURL: listing.ListingURL,
	}, nil
}

// Refresh pushes the current vehicle data to every marketplace that
// already carries a published listing. A failed platform stays published
// with its previous data.
func (s *service) Refresh(ctx context.Context, vehicleID int64) (*PublishReport, error) {
	vehicle, err := s.loadVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	publications := clonePublications(vehicle.Publications)
	report := &PublishReport{VehicleID: vehicleID}
	now := s.now()

	for _, publisher := range s.publishers {
		publication, ok := publications[publisher.Platform()]
		if !ok || publication.Status != enums.ListingStatusPublished.String() {
			continue
		}
		result := PlatformResult{Platform: publisher.Platform()}
		listing, err := publisher.Update(ctx, vehicle, publication.ListingID)
		if err != nil {
			result.Status = enums.ListingStatusFailed
			result.Error = err.Error()
		} else {
			result.Status = enums.ListingStatusPublished
			result.ListingID = listing.ListingID
			result.ListingURL = listing.ListingURL
			publication.ListingID = listing.ListingID
			publication.ListingURL = listing.ListingURL
			publication.LastUpdated = &now
			publications[publisher.Platform()] = publication
		}
		report.Results = append(report.Results, result)
	}

	if len(report.Results) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "vehicle has no published listings")
	}

	if err := s.vehicles.UpdatePublications(ctx, vehicleID, publications); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save publications")
	}
	return report, nil
}

func (s *service) Remove(ctx context.Context, vehicleID int64, platform string) (*models.Vehicle, error) {
	publisher, err := s.publisherFor(platform)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.loadVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	publication, ok := vehicle.Publications[platform]
	if !ok || publication.Status != enums.ListingStatusPublished.String() {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "vehicle is not listed on this platform")
	}

	if err := publisher.Remove(ctx, publication.ListingID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove listing")
	}

	now := s.now()
	publications := clonePublications(vehicle.Publications)
	publication.Status = enums.ListingStatusRemoved.String()
	publication.LastUpdated = &now
	publications[platform] = publication

	if err := s.vehicles.UpdatePublications(ctx, vehicleID, publications); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save publications")
	}

	vehicle.Publications = publications
	return vehicle, nil
}

// Stats collects marketplace engagement for every published platform.
func (s *service) Stats(ctx context.Context, vehicleID int64) ([]ListingStats, error) {
	vehicle, err := s.loadVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	var stats []ListingStats
	for _, publisher := range s.publishers {
		publication, ok := vehicle.Publications[publisher.Platform()]
		if !ok || publication.Status != enums.ListingStatusPublished.String() {
			continue
		}
		platformStats, err := publisher.Stats(ctx, publication.ListingID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing stats")
		}
		stats = append(stats, *platformStats)
	}
	return stats, nil
}

func clonePublications(publications types.PublicationMap) types.PublicationMap {
	cloned := types.PublicationMap{}
	for platform, publication := range publications {
		cloned[platform] = publication
	}
	return cloned
}
