package vehicles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

type stubVehiclesRepo struct {
	byID    map[int64]*models.Vehicle
	nextID  int64
	updates map[string]any
	deleted []int64
}

func newStubVehiclesRepo() *stubVehiclesRepo {
	return &stubVehiclesRepo{byID: map[int64]*models.Vehicle{}, nextID: 1}
}

func (s *stubVehiclesRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubVehiclesRepo) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	vehicle.ID = s.nextID
	s.nextID++
	s.byID[vehicle.ID] = vehicle
	return vehicle, nil
}

func (s *stubVehiclesRepo) FindByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	vehicle, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return vehicle, nil
}

func (s *stubVehiclesRepo) List(ctx context.Context, params pagination.Params, filters Filters) (*VehicleList, error) {
	var all []models.Vehicle
	for _, v := range s.byID {
		all = append(all, *v)
	}
	return &VehicleList{Vehicles: all}, nil
}

func (s *stubVehiclesRepo) ListAll(ctx context.Context) ([]models.Vehicle, error) {
	var all []models.Vehicle
	for _, v := range s.byID {
		all = append(all, *v)
	}
	return all, nil
}

func (s *stubVehiclesRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	s.updates = updates
	if price, ok := updates["price"]; ok {
		s.byID[id].Price = price.(float64)
	}
	if status, ok := updates["status"]; ok {
		s.byID[id].Status = status.(enums.VehicleStatus)
	}
	return nil
}

func (s *stubVehiclesRepo) UpdatePublications(ctx context.Context, id int64, publications types.PublicationMap) error {
	s.byID[id].Publications = publications
	return nil
}

func (s *stubVehiclesRepo) IncrementDaysInInventory(ctx context.Context) (int64, error) {
	var n int64
	for _, v := range s.byID {
		if v.Status != enums.VehicleStatusSold {
			v.DaysInInventory++
			n++
		}
	}
	return n, nil
}

func (s *stubVehiclesRepo) Delete(ctx context.Context, id int64) error {
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func newTestService(t *testing.T) (Service, *stubVehiclesRepo) {
	t.Helper()
	repo := newStubVehiclesRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestCreateDefaultsToAvailable(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		VIN:   "1hgcm82633a004352",
		Make:  "Honda",
		Model: "Accord",
		Year:  2021,
		Price: 24500,
	})
	require.NoError(t, err)

	assert.Equal(t, enums.VehicleStatusAvailable, created.Status)
	assert.Equal(t, "1HGCM82633A004352", created.VIN)
	assert.Equal(t, 0, created.DaysInInventory)
	assert.NotNil(t, created.Publications)
	assert.Empty(t, created.Publications)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Make: "Honda", Model: "Civic", Price: 10000})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(context.Background(), CreateInput{VIN: "X", Make: "Honda", Model: "Civic"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc, repo := newTestService(t)
	created, err := svc.Create(context.Background(), CreateInput{
		VIN: "VIN1", Make: "Toyota", Model: "Camry", Year: 2020, Price: 21000,
	})
	require.NoError(t, err)

	price := 19995.0
	status := enums.VehicleStatusPending
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{
		Price:  &price,
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, 19995.0, updated.Price)
	assert.Equal(t, enums.VehicleStatusPending, updated.Status)
	assert.Len(t, repo.updates, 2)
	assert.Equal(t, "Toyota", updated.Make)
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(context.Background(), CreateInput{
		VIN: "VIN2", Make: "Ford", Model: "F-150", Year: 2019, Price: 32000,
	})
	require.NoError(t, err)

	bad := enums.VehicleStatus("Totaled")
	_, err = svc.Update(context.Background(), created.ID, UpdateInput{Status: &bad})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDeleteReturnsRemovedVehicle(t *testing.T) {
	svc, repo := newTestService(t)
	created, err := svc.Create(context.Background(), CreateInput{
		VIN: "VIN3", Make: "Mazda", Model: "CX-5", Year: 2022, Price: 28000,
	})
	require.NoError(t, err)

	removed, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)
	assert.Contains(t, repo.deleted, created.ID)

	_, err = svc.Get(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestFloorplanChargesUsesVehicleFields(t *testing.T) {
	svc, repo := newTestService(t)
	created, err := svc.Create(context.Background(), CreateInput{
		VIN: "VIN4", Make: "Kia", Model: "Sorento", Year: 2021, Price: 30000,
	})
	require.NoError(t, err)
	repo.byID[created.ID].DaysInInventory = 50

	charges, err := svc.FloorplanCharges(context.Background(), created.ID)
	require.NoError(t, err)

	// no cost on file: 80% of price, default annual rate
	assert.Equal(t, 24000.0, charges.Cost)
	assert.Greater(t, charges.TotalInterest, 0.0)
}

func TestRequestTransferAcknowledges(t *testing.T) {
	svc, repo := newTestService(t)
	branch := int64(2)
	created, err := svc.Create(context.Background(), CreateInput{
		VIN: "VIN5", Make: "Ford", Model: "Escape", Year: 2023, Price: 31000, BranchID: &branch,
	})
	require.NoError(t, err)
	repo.byID[created.ID].BranchID = &branch

	receipt, err := svc.RequestTransfer(context.Background(), created.ID, TransferInput{ToBranchID: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.RequestID)
	assert.Equal(t, created.ID, receipt.VehicleID)
	assert.Equal(t, int64(3), receipt.ToBranchID)
	assert.Equal(t, "accepted", receipt.Status)
	require.NotNil(t, receipt.FromBranchID)
	assert.Equal(t, branch, *receipt.FromBranchID)

	_, err = svc.RequestTransfer(context.Background(), created.ID, TransferInput{ToBranchID: branch})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	_, err = svc.RequestTransfer(context.Background(), created.ID, TransferInput{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
