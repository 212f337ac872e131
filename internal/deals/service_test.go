package deals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

type stubDealsRepo struct {
	byID    map[int64]*models.Deal
	nextID  int64
	updates map[string]any
	deleted []int64
}

func newStubDealsRepo() *stubDealsRepo {
	return &stubDealsRepo{byID: map[int64]*models.Deal{}, nextID: 1}
}

func (s *stubDealsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubDealsRepo) Create(ctx context.Context, deal *models.Deal) (*models.Deal, error) {
	deal.ID = s.nextID
	s.nextID++
	s.byID[deal.ID] = deal
	return deal, nil
}

func (s *stubDealsRepo) FindByID(ctx context.Context, id int64) (*models.Deal, error) {
	deal, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return deal, nil
}

func (s *stubDealsRepo) List(ctx context.Context, params pagination.Params, filters Filters) (*DealList, error) {
	var all []models.Deal
	for _, d := range s.byID {
		all = append(all, *d)
	}
	return &DealList{Deals: all}, nil
}

func (s *stubDealsRepo) ListAll(ctx context.Context) ([]models.Deal, error) {
	var out []models.Deal
	for _, d := range s.byID {
		out = append(out, *d)
	}
	return out, nil
}

func (s *stubDealsRepo) ListByCustomer(ctx context.Context, customerID int64) ([]models.Deal, error) {
	var out []models.Deal
	for _, d := range s.byID {
		if d.CustomerID == customerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *stubDealsRepo) ListCompleted(ctx context.Context) ([]models.Deal, error) {
	var out []models.Deal
	for _, d := range s.byID {
		if d.Status == enums.DealStatusCompleted {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *stubDealsRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	s.updates = updates
	deal := s.byID[id]
	if status, ok := updates["status"]; ok {
		deal.Status = status.(enums.DealStatus)
	}
	if margin, ok := updates["margin"]; ok {
		m := margin.(float64)
		deal.Margin = &m
	}
	if documents, ok := updates["documents"]; ok {
		deal.Documents = documents.(types.DealDocuments)
	}
	if price, ok := updates["sale_price"]; ok {
		deal.SalePrice = price.(float64)
	}
	return nil
}

func (s *stubDealsRepo) Delete(ctx context.Context, id int64) error {
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubVehicleSource struct {
	byID    map[int64]*models.Vehicle
	updates map[int64]map[string]any
}

func (s *stubVehicleSource) FindByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	vehicle, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return vehicle, nil
}

func (s *stubVehicleSource) Update(ctx context.Context, id int64, updates map[string]any) error {
	if s.updates == nil {
		s.updates = map[int64]map[string]any{}
	}
	s.updates[id] = updates
	if status, ok := updates["status"]; ok {
		s.byID[id].Status = status.(enums.VehicleStatus)
	}
	return nil
}

type stubReconCosts struct {
	byVehicle map[int64]float64
}

func (s *stubReconCosts) TotalCostForVehicle(ctx context.Context, vehicleID int64) (float64, error) {
	return s.byVehicle[vehicleID], nil
}

func ptr[T any](v T) *T { return &v }

func newTestService(t *testing.T) (Service, *stubDealsRepo, *stubVehicleSource, *stubReconCosts) {
	t.Helper()
	repo := newStubDealsRepo()
	cost := 22000.0
	vehicles := &stubVehicleSource{byID: map[int64]*models.Vehicle{
		7: {
			ID:              7,
			VIN:             "VIN-7",
			Make:            "Honda",
			Model:           "Accord",
			Price:           26000,
			Cost:            &cost,
			Status:          enums.VehicleStatusAvailable,
			DaysInInventory: 45,
		},
	}}
	recon := &stubReconCosts{byVehicle: map[int64]float64{7: 350}}
	svc, err := NewService(repo, vehicles, recon)
	require.NoError(t, err)
	return svc, repo, vehicles, recon
}

func createDeal(t *testing.T, svc Service) *models.Deal {
	t.Helper()
	deal, err := svc.Create(context.Background(), CreateInput{
		CustomerID: 3,
		VehicleID:  7,
		SalePrice:  28000,
	})
	require.NoError(t, err)
	return deal
}

func TestCreateDefaultsToDraft(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	deal := createDeal(t, svc)
	assert.Equal(t, enums.DealStatusDraft, deal.Status)
	assert.WithinDuration(t, time.Now().UTC(), deal.DealDate, 5*time.Second)
	assert.NotNil(t, deal.Documents)
	assert.Empty(t, deal.Documents)
}

func TestCreateRejectsSoldVehicle(t *testing.T) {
	svc, _, vehicles, _ := newTestService(t)
	vehicles.byID[7].Status = enums.VehicleStatusSold

	_, err := svc.Create(context.Background(), CreateInput{CustomerID: 3, VehicleID: 7, SalePrice: 28000})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestCreateValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{VehicleID: 7, SalePrice: 28000})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(context.Background(), CreateInput{CustomerID: 3, VehicleID: 7})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCompletingDealMarksVehicleSoldAndStoresMargin(t *testing.T) {
	svc, repo, vehicles, _ := newTestService(t)
	deal := createDeal(t, svc)

	updated, err := svc.Update(context.Background(), deal.ID, UpdateInput{Status: ptr(enums.DealStatusCompleted)})
	require.NoError(t, err)

	assert.Equal(t, enums.DealStatusCompleted, updated.Status)
	assert.Equal(t, enums.VehicleStatusSold, vehicles.byID[7].Status)
	require.NotNil(t, updated.Margin)
	// gross 6000, floorplan 22000*0.0002*45 = 198, recon 350
	assert.InDelta(t, 5452.00, *updated.Margin, 0.01)
	assert.Contains(t, repo.updates, "margin")
}

func TestCompletedDealCannotReopenOrDelete(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	deal := createDeal(t, svc)

	_, err := svc.Update(context.Background(), deal.ID, UpdateInput{Status: ptr(enums.DealStatusCompleted)})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), deal.ID, UpdateInput{Status: ptr(enums.DealStatusPending)})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	_, err = svc.Delete(context.Background(), deal.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestAddDocumentAppends(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	deal := createDeal(t, svc)

	updated, err := svc.AddDocument(context.Background(), deal.ID, DocumentInput{
		Name: "purchase-agreement.pdf",
		Type: "contract",
		URL:  "https://files.internal/purchase-agreement.pdf",
	})
	require.NoError(t, err)

	require.Len(t, updated.Documents, 1)
	assert.Equal(t, "purchase-agreement.pdf", updated.Documents[0].Name)
	assert.False(t, updated.Documents[0].UploadedAt.IsZero())
}

func TestRemoveDocumentSplicesByIndex(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	deal := createDeal(t, svc)

	for _, name := range []string{"title.pdf", "odometer.pdf", "warranty.pdf"} {
		_, err := svc.AddDocument(context.Background(), deal.ID, DocumentInput{Name: name})
		require.NoError(t, err)
	}

	updated, err := svc.RemoveDocument(context.Background(), deal.ID, 1)
	require.NoError(t, err)
	require.Len(t, updated.Documents, 2)
	assert.Equal(t, "title.pdf", updated.Documents[0].Name)
	assert.Equal(t, "warranty.pdf", updated.Documents[1].Name)

	_, err = svc.RemoveDocument(context.Background(), deal.ID, 5)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestMarginBreakdown(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	deal := createDeal(t, svc)

	breakdown, err := svc.Margin(context.Background(), deal.ID, 250)
	require.NoError(t, err)

	assert.InDelta(t, 6000, breakdown.GrossMargin, 0.01)
	assert.InDelta(t, 198, breakdown.FloorplanCost, 0.01)
	assert.InDelta(t, 350, breakdown.ReconCost, 0.01)
	assert.InDelta(t, 5202.00, breakdown.NetMargin, 0.01)
}

func TestFinancingQuoteUsesTradeInAsPrincipalOffset(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	deal, err := svc.Create(context.Background(), CreateInput{
		CustomerID:   3,
		VehicleID:    7,
		SalePrice:    28000,
		TradeInValue: 3000,
	})
	require.NoError(t, err)

	quote, err := svc.Financing(context.Background(), deal.ID, FinancingInput{
		DownPayment:       5000,
		AnnualRatePercent: 6.0,
		TermMonths:        60,
	})
	require.NoError(t, err)

	assert.InDelta(t, 20000, quote.LoanAmount, 0.01)
	assert.InDelta(t, 386.66, quote.MonthlyPayment, 0.5)
}

func TestFinancingValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	deal := createDeal(t, svc)

	_, err := svc.Financing(context.Background(), deal.ID, FinancingInput{TermMonths: 0})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestLoyaltyCountsCompletedDealsOnly(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	now := time.Now().UTC()
	repo.byID[50] = &models.Deal{ID: 50, CustomerID: 3, SalePrice: 30000, Status: enums.DealStatusCompleted, DealDate: now}
	repo.byID[51] = &models.Deal{ID: 51, CustomerID: 3, SalePrice: 9000, Status: enums.DealStatusDraft, DealDate: now}
	repo.byID[52] = &models.Deal{ID: 52, CustomerID: 9, SalePrice: 40000, Status: enums.DealStatusCompleted, DealDate: now}

	profile, err := svc.Loyalty(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 1, profile.CompletedDeals)
	assert.InDelta(t, 30000, profile.TotalSpent, 0.01)
	assert.Equal(t, 300, profile.LoyaltyPoints)
	assert.Equal(t, enums.LoyaltyTierBronze, profile.Tier)
	assert.True(t, profile.IsActive)
}
