package recon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
)

// Service exposes reconditioning shop operations.
type Service interface {
	Catalog(ctx context.Context) []ServiceOffering
	Schedule(ctx context.Context, input ScheduleInput) (*models.ReconAppointment, error)
	Get(ctx context.Context, id int64) (*models.ReconAppointment, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*AppointmentList, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.ReconAppointment, error)
	UpdateStatus(ctx context.Context, id int64, status enums.ReconStatus) (*models.ReconAppointment, error)
	UpdateChecklistItem(ctx context.Context, id int64, index int, completed bool) (*models.ReconAppointment, error)
	Cancel(ctx context.Context, id int64) (*models.ReconAppointment, error)
	TotalCostForVehicle(ctx context.Context, vehicleID int64) (float64, error)

	RegisterTechnician(ctx context.Context, input TechnicianInput) (*models.Technician, error)
	ListTechnicians(ctx context.Context, status *enums.TechnicianStatus) ([]models.Technician, error)
	ListAvailableTechnicians(ctx context.Context) ([]models.Technician, error)
	UpdateTechnicianStatus(ctx context.Context, id int64, status enums.TechnicianStatus) (*models.Technician, error)
}

type service struct {
	repo        Repository
	technicians TechnicianRepository
}

// NewService builds a recon service with the required dependencies.
func NewService(repo Repository, technicians TechnicianRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("recon repository required")
	}
	if technicians == nil {
		return nil, fmt.Errorf("technician repository required")
	}
	return &service{repo: repo, technicians: technicians}, nil
}

func (s *service) Catalog(ctx context.Context) []ServiceOffering {
	return Catalog()
}

// Schedule books a catalog service. The end time follows from the
// offering's estimated hours and the checklist comes from its template.
func (s *service) Schedule(ctx context.Context, input ScheduleInput) (*models.ReconAppointment, error) {
	if input.VehicleID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle id required")
	}
	if input.TechnicianID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "technician required")
	}
	if input.StartAt.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start time required")
	}

	offering, ok := findOffering(input.ServiceType)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown service type %q", input.ServiceType))
	}
	if input.Cost != nil && *input.Cost < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
	}

	if _, err := s.technicians.FindByID(ctx, input.TechnicianID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "technician not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load technician")
	}

	startAt := input.StartAt.UTC()
	endAt := startAt.Add(time.Duration(offering.EstimatedHours * float64(time.Hour)))
	technicianID := input.TechnicianID

	appointment := &models.ReconAppointment{
		VehicleID:      input.VehicleID,
		TechnicianID:   &technicianID,
		ServiceType:    offering.Name,
		Category:       &offering.Category,
		EstimatedHours: offering.EstimatedHours,
		StartAt:        startAt,
		EndAt:          endAt,
		Status:         enums.ReconStatusScheduled,
		Checklist:      checklistFor(offering.Name),
		Cost:           input.Cost,
		Notes:          input.Notes,
	}

	created, err := s.repo.Create(ctx, appointment)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "schedule appointment")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.ReconAppointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "appointment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load appointment")
	}
	return appointment, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*AppointmentList, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list appointments")
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.ReconAppointment, error) {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.TechnicianID != nil {
		updates["technician_id"] = *input.TechnicianID
	}
	if input.StartAt != nil {
		startAt := input.StartAt.UTC()
		updates["start_at"] = startAt
		updates["end_at"] = startAt.Add(time.Duration(appointment.EstimatedHours * float64(time.Hour)))
	}
	if input.Cost != nil {
		if *input.Cost < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
		}
		updates["cost"] = *input.Cost
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update appointment")
	}
	return s.Get(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status enums.ReconStatus) (*models.ReconAppointment, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid appointment status")
	}

	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status == enums.ReconStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cancelled appointment cannot change status")
	}

	if err := s.repo.Update(ctx, id, map[string]any{"status": status}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update appointment status")
	}
	return s.Get(ctx, id)
}

func (s *service) UpdateChecklistItem(ctx context.Context, id int64, index int, completed bool) (*models.ReconAppointment, error) {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(appointment.Checklist) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checklist index out of range")
	}

	checklist := append(appointment.Checklist[:0:0], appointment.Checklist...)
	checklist[index].Completed = completed

	if err := s.repo.Update(ctx, id, map[string]any{"checklist": checklist}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update checklist")
	}
	return s.Get(ctx, id)
}

func (s *service) Cancel(ctx context.Context, id int64) (*models.ReconAppointment, error) {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status == enums.ReconStatusComplete {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "completed appointment cannot be cancelled")
	}

	if err := s.repo.Update(ctx, id, map[string]any{"status": enums.ReconStatusCancelled}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel appointment")
	}
	return s.Get(ctx, id)
}

func (s *service) TotalCostForVehicle(ctx context.Context, vehicleID int64) (float64, error) {
	total, err := s.repo.TotalCostForVehicle(ctx, vehicleID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum recon costs")
	}
	return total, nil
}

func (s *service) RegisterTechnician(ctx context.Context, input TechnicianInput) (*models.Technician, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "technician name required")
	}

	technician := &models.Technician{
		Name:        strings.TrimSpace(input.Name),
		Specialties: pq.StringArray(input.Specialties),
		Status:      enums.TechnicianStatusAvailable,
		BranchID:    input.BranchID,
	}

	created, err := s.technicians.Create(ctx, technician)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register technician")
	}
	return created, nil
}

func (s *service) ListTechnicians(ctx context.Context, status *enums.TechnicianStatus) ([]models.Technician, error) {
	technicians, err := s.technicians.ListByStatus(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list technicians")
	}
	return technicians, nil
}

func (s *service) ListAvailableTechnicians(ctx context.Context) ([]models.Technician, error) {
	available := enums.TechnicianStatusAvailable
	return s.ListTechnicians(ctx, &available)
}

func (s *service) UpdateTechnicianStatus(ctx context.Context, id int64, status enums.TechnicianStatus) (*models.Technician, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid technician status")
	}

	if _, err := s.technicians.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "technician not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load technician")
	}

	if err := s.technicians.Update(ctx, id, map[string]any{"status": status}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update technician status")
	}

	technician, err := s.technicians.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load technician")
	}
	return technician, nil
}
