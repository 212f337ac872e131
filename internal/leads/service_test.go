package leads

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

type stubLeadsRepo struct {
	byID    map[int64]*models.Lead
	nextID  int64
	updates map[string]any
	deleted []int64
}

func newStubLeadsRepo() *stubLeadsRepo {
	return &stubLeadsRepo{byID: map[int64]*models.Lead{}, nextID: 1}
}

func (s *stubLeadsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubLeadsRepo) Create(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	lead.ID = s.nextID
	s.nextID++
	s.byID[lead.ID] = lead
	return lead, nil
}

func (s *stubLeadsRepo) FindByID(ctx context.Context, id int64) (*models.Lead, error) {
	lead, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return lead, nil
}

func (s *stubLeadsRepo) List(ctx context.Context, params pagination.Params, filters Filters) (*LeadList, error) {
	var all []models.Lead
	for _, l := range s.byID {
		all = append(all, *l)
	}
	return &LeadList{Leads: all}, nil
}

func (s *stubLeadsRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	s.updates = updates
	lead := s.byID[id]
	if history, ok := updates["contact_history"]; ok {
		lead.ContactHistory = history.(types.ContactHistory)
	}
	if last, ok := updates["last_contact"]; ok {
		at := last.(time.Time)
		lead.LastContact = &at
	}
	if appointments, ok := updates["appointments"]; ok {
		lead.Appointments = appointments.(types.Appointments)
	}
	if status, ok := updates["status"]; ok {
		lead.Status = status.(enums.LeadStatus)
	}
	if score, ok := updates["lead_score"]; ok {
		lead.LeadScore = score.(int)
	}
	return nil
}

func (s *stubLeadsRepo) Delete(ctx context.Context, id int64) error {
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubInventory struct {
	vehicles []models.Vehicle
}

func (s *stubInventory) ListAll(ctx context.Context) ([]models.Vehicle, error) {
	return s.vehicles, nil
}

func newTestService(t *testing.T, inventory ...models.Vehicle) (Service, *stubLeadsRepo) {
	t.Helper()
	repo := newStubLeadsRepo()
	svc, err := NewService(repo, &stubInventory{vehicles: inventory})
	require.NoError(t, err)
	return svc, repo
}

func TestCreateDefaultsToNewWithBaseScore(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		FirstName: "  Maria ",
		LastName:  "Santos",
	})
	require.NoError(t, err)

	assert.Equal(t, enums.LeadStatusNew, created.Status)
	assert.Equal(t, 50, created.LeadScore)
	assert.Equal(t, "Maria", created.FirstName)
	assert.NotNil(t, created.ContactHistory)
	assert.Empty(t, created.ContactHistory)
	assert.Empty(t, created.Appointments)
}

func TestCreateRejectsMissingName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{FirstName: "Maria"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateValidatesScoreRange(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{FirstName: "Maria", LastName: "Santos"})
	require.NoError(t, err)

	bad := 120
	_, err = svc.Update(context.Background(), created.ID, UpdateInput{LeadScore: &bad})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	good := 85
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{LeadScore: &good})
	require.NoError(t, err)
	assert.Equal(t, 85, updated.LeadScore)
}

func TestAddContactPrependsAndStampsLastContact(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{FirstName: "Maria", LastName: "Santos"})
	require.NoError(t, err)

	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err = svc.AddContact(context.Background(), created.ID, ContactInput{Type: "Call", Notes: "left voicemail", Date: &first})
	require.NoError(t, err)

	second := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	updated, err := svc.AddContact(context.Background(), created.ID, ContactInput{Type: "Email", Date: &second})
	require.NoError(t, err)

	require.Len(t, updated.ContactHistory, 2)
	assert.Equal(t, "Email", updated.ContactHistory[0].Type)
	assert.Equal(t, "Call", updated.ContactHistory[1].Type)
	require.NotNil(t, updated.LastContact)
	assert.Equal(t, second, *updated.LastContact)
	assert.Contains(t, repo.updates, "last_contact")
}

func TestAddContactRequiresType(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{FirstName: "Maria", LastName: "Santos"})
	require.NoError(t, err)

	_, err = svc.AddContact(context.Background(), created.ID, ContactInput{Notes: "no type"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestScheduleAppointmentAppendsScheduled(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{FirstName: "Maria", LastName: "Santos"})
	require.NoError(t, err)

	when := time.Date(2024, 4, 12, 14, 30, 0, 0, time.UTC)
	updated, err := svc.ScheduleAppointment(context.Background(), created.ID, AppointmentInput{
		Date:  when,
		Type:  "Test Drive",
		Notes: "wants the blue one",
	})
	require.NoError(t, err)

	require.Len(t, updated.Appointments, 1)
	assert.Equal(t, "Scheduled", updated.Appointments[0].Status)
	assert.Equal(t, "Test Drive", updated.Appointments[0].Type)
	assert.Equal(t, when, updated.Appointments[0].Date)

	later, err := svc.ScheduleAppointment(context.Background(), created.ID, AppointmentInput{
		Date: when.Add(48 * time.Hour),
		Type: "Follow-up",
	})
	require.NoError(t, err)
	require.Len(t, later.Appointments, 2)
	assert.Equal(t, "Test Drive", later.Appointments[0].Type)
}

func TestScheduleAppointmentRequiresDate(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{FirstName: "Maria", LastName: "Santos"})
	require.NoError(t, err)

	_, err = svc.ScheduleAppointment(context.Background(), created.ID, AppointmentInput{Type: "Test Drive"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestRecommendationsSkipUnavailableInventory(t *testing.T) {
	available := models.Vehicle{ID: 1, Make: "Honda", Model: "Civic", Price: 18000, Status: enums.VehicleStatusAvailable}
	sold := models.Vehicle{ID: 2, Make: "Ford", Model: "F-150", Price: 32000, Status: enums.VehicleStatusSold}
	svc, _ := newTestService(t, available, sold)

	budget := 25000.0
	created, err := svc.Create(context.Background(), CreateInput{FirstName: "Maria", LastName: "Santos", Budget: &budget})
	require.NoError(t, err)

	recs, err := svc.Recommendations(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(1), recs[0].Vehicle.ID)
	assert.Equal(t, 1, recs[0].Rank)
}

func TestEngagementReflectsActivity(t *testing.T) {
	svc, _ := newTestService(t)

	budget := 20000.0
	created, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Maria",
		LastName:  "Santos",
		Budget:    &budget,
		TradeIn:   true,
	})
	require.NoError(t, err)

	// 0 contacts, 0 appointments, score 50*0.3, trade-in 10, budget 10.
	score, err := svc.Engagement(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 35, score)
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteReturnsRemovedLead(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{FirstName: "Maria", LastName: "Santos"})
	require.NoError(t, err)

	removed, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)
	assert.Equal(t, []int64{created.ID}, repo.deleted)
}
