package recon

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

type stubReconRepo struct {
	byID   map[int64]*models.ReconAppointment
	nextID int64
}

func newStubReconRepo() *stubReconRepo {
	return &stubReconRepo{byID: map[int64]*models.ReconAppointment{}, nextID: 1}
}

func (s *stubReconRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubReconRepo) Create(ctx context.Context, appointment *models.ReconAppointment) (*models.ReconAppointment, error) {
	appointment.ID = s.nextID
	s.nextID++
	s.byID[appointment.ID] = appointment
	return appointment, nil
}

func (s *stubReconRepo) FindByID(ctx context.Context, id int64) (*models.ReconAppointment, error) {
	appointment, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return appointment, nil
}

func (s *stubReconRepo) List(ctx context.Context, params pagination.Params, filters Filters) (*AppointmentList, error) {
	var all []models.ReconAppointment
	for _, a := range s.byID {
		all = append(all, *a)
	}
	return &AppointmentList{Appointments: all}, nil
}

func (s *stubReconRepo) ListByVehicle(ctx context.Context, vehicleID int64) ([]models.ReconAppointment, error) {
	var out []models.ReconAppointment
	for _, a := range s.byID {
		if a.VehicleID == vehicleID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *stubReconRepo) TotalCostForVehicle(ctx context.Context, vehicleID int64) (float64, error) {
	var total float64
	for _, a := range s.byID {
		if a.VehicleID == vehicleID && a.Status != enums.ReconStatusCancelled && a.Cost != nil {
			total += *a.Cost
		}
	}
	return total, nil
}

func (s *stubReconRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	appointment := s.byID[id]
	if status, ok := updates["status"]; ok {
		appointment.Status = status.(enums.ReconStatus)
	}
	if checklist, ok := updates["checklist"]; ok {
		appointment.Checklist = checklist.(types.Checklist)
	}
	if startAt, ok := updates["start_at"]; ok {
		appointment.StartAt = startAt.(time.Time)
	}
	if endAt, ok := updates["end_at"]; ok {
		appointment.EndAt = endAt.(time.Time)
	}
	if cost, ok := updates["cost"]; ok {
		c := cost.(float64)
		appointment.Cost = &c
	}
	return nil
}

func (s *stubReconRepo) Delete(ctx context.Context, id int64) error {
	delete(s.byID, id)
	return nil
}

type stubTechnicianRepo struct {
	byID   map[int64]*models.Technician
	nextID int64
}

func newStubTechnicianRepo() *stubTechnicianRepo {
	return &stubTechnicianRepo{byID: map[int64]*models.Technician{}, nextID: 1}
}

func (s *stubTechnicianRepo) WithTx(tx *gorm.DB) TechnicianRepository {
	return s
}

func (s *stubTechnicianRepo) Create(ctx context.Context, technician *models.Technician) (*models.Technician, error) {
	technician.ID = s.nextID
	s.nextID++
	s.byID[technician.ID] = technician
	return technician, nil
}

func (s *stubTechnicianRepo) FindByID(ctx context.Context, id int64) (*models.Technician, error) {
	technician, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return technician, nil
}

func (s *stubTechnicianRepo) ListByStatus(ctx context.Context, status *enums.TechnicianStatus) ([]models.Technician, error) {
	var out []models.Technician
	for _, tech := range s.byID {
		if status == nil || tech.Status == *status {
			out = append(out, *tech)
		}
	}
	return out, nil
}

func (s *stubTechnicianRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	if status, ok := updates["status"]; ok {
		s.byID[id].Status = status.(enums.TechnicianStatus)
	}
	return nil
}

func newTestService(t *testing.T) (Service, *stubReconRepo, *stubTechnicianRepo) {
	t.Helper()
	repo := newStubReconRepo()
	techs := newStubTechnicianRepo()
	svc, err := NewService(repo, techs)
	require.NoError(t, err)
	return svc, repo, techs
}

func seedTechnician(t *testing.T, techs *stubTechnicianRepo) int64 {
	t.Helper()
	tech, err := techs.Create(context.Background(), &models.Technician{
		Name:   "Luis Ortega",
		Status: enums.TechnicianStatusAvailable,
	})
	require.NoError(t, err)
	return tech.ID
}

func TestCatalogListsAllOfferings(t *testing.T) {
	svc, _, _ := newTestService(t)

	catalog := svc.Catalog(context.Background())
	require.Len(t, catalog, 8)

	byName := map[string]ServiceOffering{}
	for _, offering := range catalog {
		byName[offering.Name] = offering
	}
	assert.Equal(t, 6.0, byName["Full Detail"].EstimatedHours)
	assert.Equal(t, "Detailing", byName["Full Detail"].Category)
	assert.Equal(t, 4.0, byName["Mechanical Inspection"].EstimatedHours)
	assert.Equal(t, 8.0, byName["Body Work"].EstimatedHours)
	assert.Equal(t, 2.0, byName["Tire Service"].EstimatedHours)
}

func TestScheduleDerivesEndTimeAndChecklist(t *testing.T) {
	svc, _, techs := newTestService(t)
	techID := seedTechnician(t, techs)

	startAt := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	appointment, err := svc.Schedule(context.Background(), ScheduleInput{
		VehicleID:    7,
		ServiceType:  "Full Detail",
		TechnicianID: techID,
		StartAt:      startAt,
	})
	require.NoError(t, err)

	require.NotNil(t, appointment.TechnicianID)
	assert.Equal(t, techID, *appointment.TechnicianID)
	assert.Equal(t, startAt.Add(6*time.Hour), appointment.EndAt)
	assert.Equal(t, enums.ReconStatusScheduled, appointment.Status)
	require.NotNil(t, appointment.Category)
	assert.Equal(t, "Detailing", *appointment.Category)
	require.Len(t, appointment.Checklist, 6)
	assert.Equal(t, "Exterior wash and dry", appointment.Checklist[0].Item)
	assert.False(t, appointment.Checklist[0].Completed)
}

func TestScheduleUnknownServiceFallsToValidation(t *testing.T) {
	svc, _, techs := newTestService(t)
	techID := seedTechnician(t, techs)

	_, err := svc.Schedule(context.Background(), ScheduleInput{
		VehicleID:    7,
		ServiceType:  "Undercoating",
		TechnicianID: techID,
		StartAt:      time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestScheduleRequiresAssignedTechnician(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Schedule(context.Background(), ScheduleInput{
		VehicleID:   7,
		ServiceType: "Full Detail",
		StartAt:     time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Schedule(context.Background(), ScheduleInput{
		VehicleID:    7,
		ServiceType:  "Full Detail",
		TechnicianID: 99,
		StartAt:      time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestScheduleUncatalogedTemplateGetsDefaultChecklist(t *testing.T) {
	svc, _, techs := newTestService(t)

	appointment, err := svc.Schedule(context.Background(), ScheduleInput{
		VehicleID:    7,
		ServiceType:  "Tire Service",
		TechnicianID: seedTechnician(t, techs),
		StartAt:      time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, appointment.Checklist, 4)
	assert.Equal(t, "Initial inspection", appointment.Checklist[0].Item)
}

func TestUpdateChecklistItemByIndex(t *testing.T) {
	svc, _, techs := newTestService(t)

	appointment, err := svc.Schedule(context.Background(), ScheduleInput{
		VehicleID:    7,
		ServiceType:  "Mechanical Inspection",
		TechnicianID: seedTechnician(t, techs),
		StartAt:      time.Now(),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateChecklistItem(context.Background(), appointment.ID, 2, true)
	require.NoError(t, err)
	assert.True(t, updated.Checklist[2].Completed)
	assert.False(t, updated.Checklist[0].Completed)

	_, err = svc.UpdateChecklistItem(context.Background(), appointment.ID, 6, true)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCancelledAppointmentLocksStatus(t *testing.T) {
	svc, _, techs := newTestService(t)

	appointment, err := svc.Schedule(context.Background(), ScheduleInput{
		VehicleID:    7,
		ServiceType:  "Body Work",
		TechnicianID: seedTechnician(t, techs),
		StartAt:      time.Now(),
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ReconStatusCancelled, cancelled.Status)

	_, err = svc.UpdateStatus(context.Background(), appointment.ID, enums.ReconStatusInProgress)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestTotalCostExcludesCancelled(t *testing.T) {
	svc, _, techs := newTestService(t)
	techID := seedTechnician(t, techs)

	cost1 := 250.0
	first, err := svc.Schedule(context.Background(), ScheduleInput{
		VehicleID:    7,
		ServiceType:  "Express Detail",
		TechnicianID: techID,
		StartAt:      time.Now(),
		Cost:         &cost1,
	})
	require.NoError(t, err)

	cost2 := 400.0
	_, err = svc.Schedule(context.Background(), ScheduleInput{
		VehicleID:    7,
		ServiceType:  "Engine Diagnostic",
		TechnicianID: techID,
		StartAt:      time.Now(),
		Cost:         &cost2,
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), first.ID)
	require.NoError(t, err)

	total, err := svc.TotalCostForVehicle(context.Background(), 7)
	require.NoError(t, err)
	assert.InDelta(t, 400, total, 0.01)
}

func TestTechnicianLifecycle(t *testing.T) {
	svc, _, _ := newTestService(t)

	tech, err := svc.RegisterTechnician(context.Background(), TechnicianInput{
		Name:        "Luis Ortega",
		Specialties: []string{"Detailing", "Paint"},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.TechnicianStatusAvailable, tech.Status)

	busy, err := svc.UpdateTechnicianStatus(context.Background(), tech.ID, enums.TechnicianStatusBusy)
	require.NoError(t, err)
	assert.Equal(t, enums.TechnicianStatusBusy, busy.Status)

	available, err := svc.ListAvailableTechnicians(context.Background())
	require.NoError(t, err)
	assert.Empty(t, available)

	all, err := svc.ListTechnicians(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestRegisterTechnicianRequiresName(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.RegisterTechnician(context.Background(), TechnicianInput{Name: "  "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
