package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/internal/finance"
	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

const defaultLeadScore = 50

// Service exposes pipeline operations on sales leads.
type Service interface {
	List(ctx context.Context, params pagination.Params, filters Filters) (*LeadList, error)
	Get(ctx context.Context, id int64) (*models.Lead, error)
	Create(ctx context.Context, input CreateInput) (*models.Lead, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.Lead, error)
	Delete(ctx context.Context, id int64) (*models.Lead, error)
	AddContact(ctx context.Context, id int64, input ContactInput) (*models.Lead, error)
	ScheduleAppointment(ctx context.Context, id int64, input AppointmentInput) (*models.Lead, error)
	Recommendations(ctx context.Context, id int64) ([]finance.Recommendation, error)
	Engagement(ctx context.Context, id int64) (int, error)
}

type service struct {
	repo     Repository
	vehicles VehicleLister
}

// NewService builds a leads service with the required dependencies.
func NewService(repo Repository, vehicles VehicleLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("leads repository required")
	}
	if vehicles == nil {
		return nil, fmt.Errorf("vehicle lister required")
	}
	return &service{repo: repo, vehicles: vehicles}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*LeadList, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list leads")
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load lead")
	}
	return lead, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Lead, error) {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first and last name required")
	}
	if input.Budget != nil && *input.Budget < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget cannot be negative")
	}

	lead := &models.Lead{
		FirstName:          strings.TrimSpace(input.FirstName),
		LastName:           strings.TrimSpace(input.LastName),
		Email:              input.Email,
		Phone:              input.Phone,
		Status:             enums.LeadStatusNew,
		LeadScore:          defaultLeadScore,
		Source:             input.Source,
		Budget:             input.Budget,
		TradeIn:            input.TradeIn,
		InterestedVehicles: pq.Int64Array(input.InterestedVehicles),
		ContactHistory:     types.ContactHistory{},
		Appointments:       types.Appointments{},
		AssignedTo:         input.AssignedTo,
		Notes:              input.Notes,
		BranchID:           input.BranchID,
	}

	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create lead")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.Lead, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead status")
		}
		updates["status"] = *input.Status
	}
	if input.LeadScore != nil {
		if *input.LeadScore < 0 || *input.LeadScore > 100 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "lead score must be between 0 and 100")
		}
		updates["lead_score"] = *input.LeadScore
	}
	if input.Source != nil {
		updates["source"] = *input.Source
	}
	if input.Budget != nil {
		if *input.Budget < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget cannot be negative")
		}
		updates["budget"] = *input.Budget
	}
	if input.TradeIn != nil {
		updates["trade_in"] = *input.TradeIn
	}
	if input.InterestedVehicles != nil {
		updates["interested_vehicles"] = pq.Int64Array(input.InterestedVehicles)
	}
	if input.AssignedTo != nil {
		updates["assigned_to"] = *input.AssignedTo
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.BranchID != nil {
		updates["branch_id"] = *input.BranchID
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update lead")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) (*models.Lead, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete lead")
	}
	return lead, nil
}

// AddContact prepends a touchpoint so the newest contact stays first,
// and stamps the lead's last contact time.
func (s *service) AddContact(ctx context.Context, id int64, input ContactInput) (*models.Lead, error) {
	if strings.TrimSpace(input.Type) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact type required")
	}

	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	contactedAt := time.Now().UTC()
	if input.Date != nil {
		contactedAt = input.Date.UTC()
	}
	entry := types.ContactEntry{
		Date:  contactedAt,
		Type:  input.Type,
		Notes: input.Notes,
	}

	history := make(types.ContactHistory, 0, len(lead.ContactHistory)+1)
	history = append(history, entry)
	history = append(history, lead.ContactHistory...)

	updates := map[string]any{
		"contact_history": history,
		"last_contact":    contactedAt,
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record contact")
	}
	return s.Get(ctx, id)
}

func (s *service) ScheduleAppointment(ctx context.Context, id int64, input AppointmentInput) (*models.Lead, error) {
	if strings.TrimSpace(input.Type) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "appointment type required")
	}
	if input.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "appointment date required")
	}

	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	appointment := types.Appointment{
		Date:   input.Date.UTC(),
		Type:   input.Type,
		Notes:  input.Notes,
		Status: "Scheduled",
	}
	appointments := append(types.Appointments{}, lead.Appointments...)
	appointments = append(appointments, appointment)

	if err := s.repo.Update(ctx, id, map[string]any{"appointments": appointments}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "schedule appointment")
	}
	return s.Get(ctx, id)
}

func (s *service) Recommendations(ctx context.Context, id int64) ([]finance.Recommendation, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	inventory, err := s.vehicles.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
	}

	return finance.RecommendVehicles(*lead, inventory), nil
}

func (s *service) Engagement(ctx context.Context, id int64) (int, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return finance.EngagementScore(*lead), nil
}
