package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dealerdesk/dealerdesk-backend/api/responses"
	"github.com/dealerdesk/dealerdesk-backend/api/validators"
	"github.com/dealerdesk/dealerdesk-backend/internal/recon"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/logger"
)

type reconScheduleRequest struct {
	VehicleID    int64     `json:"vehicle_id" validate:"required,gt=0"`
	ServiceType  string    `json:"service_type" validate:"required"`
	TechnicianID int64     `json:"technician_id" validate:"required,gt=0"`
	StartAt      time.Time `json:"start_at" validate:"required"`
	Cost         *float64  `json:"cost,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

type reconUpdateRequest struct {
	TechnicianID *int64     `json:"technician_id,omitempty"`
	StartAt      *time.Time `json:"start_at,omitempty"`
	Cost         *float64   `json:"cost,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

type reconStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type reconChecklistRequest struct {
	Completed bool `json:"completed"`
}

type technicianCreateRequest struct {
	Name        string   `json:"name" validate:"required"`
	Specialties []string `json:"specialties,omitempty"`
	BranchID    *int64   `json:"branch_id,omitempty"`
}

type technicianStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func ReconCatalog(svc recon.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Catalog(r.Context()))
	}
}

func ReconSchedule(svc recon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload reconScheduleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		appointment, err := svc.Schedule(r.Context(), recon.ScheduleInput{
			VehicleID:    payload.VehicleID,
			ServiceType:  payload.ServiceType,
			TechnicianID: payload.TechnicianID,
			StartAt:      payload.StartAt,
			Cost:         payload.Cost,
			Notes:        payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, appointment)
	}
}

func ReconList(svc recon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := listParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := recon.Filters{}
		if raw := queryString(r, "status"); raw != "" {
			status, parseErr := enums.ParseReconStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid appointment status"))
				return
			}
			filters.Status = &status
		}
		vehicleID, err := optionalID(r, "vehicle_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.VehicleID = vehicleID
		technicianID, err := optionalID(r, "technician_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.TechnicianID = technicianID

		page, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func ReconDetail(svc recon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		appointment, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, appointment)
	}
}

func ReconUpdate(svc recon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload reconUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		appointment, err := svc.Update(r.Context(), id, recon.UpdateInput{
			TechnicianID: payload.TechnicianID,
			StartAt:      payload.StartAt,
			Cost:         payload.Cost,
			Notes:        payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, appointment)
	}
}

func ReconUpdateStatus(svc recon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload reconStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, parseErr := enums.ParseReconStatus(payload.Status)
		if parseErr != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid appointment status"))
			return
		}
		appointment, err := svc.UpdateStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, appointment)
	}
}

func ReconUpdateChecklistItem(svc recon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// checklist positions are zero-based
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil || index < 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "checklist index must be a non-negative number"))
			return
		}
		var payload reconChecklistRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		appointment, err := svc.UpdateChecklistItem(r.Context(), id, index, payload.Completed)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, appointment)
	}
}

func ReconCancel(svc recon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		appointment, err := svc.Cancel(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, appointment)
	}
}

func VehicleReconCost(svc recon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total, err := svc.TotalCostForVehicle(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]float64{"total_cost": total})
	}
}

func TechnicianCreate(svc recon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload technicianCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		technician, err := svc.RegisterTechnician(r.Context(), recon.TechnicianInput{
			Name:        payload.Name,
			Specialties: payload.Specialties,
			BranchID:    payload.BranchID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, technician)
	}
}

func TechnicianList(svc recon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status *enums.TechnicianStatus
		if raw := queryString(r, "status"); raw != "" {
			parsed, parseErr := enums.ParseTechnicianStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid technician status"))
				return
			}
			status = &parsed
		}
		technicians, err := svc.ListTechnicians(r.Context(), status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, technicians)
	}
}

func TechnicianUpdateStatus(svc recon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload technicianStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, parseErr := enums.ParseTechnicianStatus(payload.Status)
		if parseErr != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid technician status"))
			return
		}
		technician, err := svc.UpdateTechnicianStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, technician)
	}
}
