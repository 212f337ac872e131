package controllers

import (
	"net/http"
	"time"

	"github.com/dealerdesk/dealerdesk-backend/api/responses"
	"github.com/dealerdesk/dealerdesk-backend/api/validators"
	"github.com/dealerdesk/dealerdesk-backend/internal/leads"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/logger"
)

type leadCreateRequest struct {
	FirstName          string   `json:"first_name" validate:"required"`
	LastName           string   `json:"last_name" validate:"required"`
	Email              *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone              *string  `json:"phone,omitempty"`
	Source             *string  `json:"source,omitempty"`
	Budget             *float64 `json:"budget,omitempty"`
	TradeIn            bool     `json:"trade_in"`
	InterestedVehicles []int64  `json:"interested_vehicles,omitempty"`
	AssignedTo         *string  `json:"assigned_to,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
	BranchID           *int64   `json:"branch_id,omitempty"`
}

func (r leadCreateRequest) toInput() leads.CreateInput {
	return leads.CreateInput{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Email:              r.Email,
		Phone:              r.Phone,
		Source:             r.Source,
		Budget:             r.Budget,
		TradeIn:            r.TradeIn,
		InterestedVehicles: r.InterestedVehicles,
		AssignedTo:         r.AssignedTo,
		Notes:              r.Notes,
		BranchID:           r.BranchID,
	}
}

type leadUpdateRequest struct {
	FirstName          *string  `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName           *string  `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Email              *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone              *string  `json:"phone,omitempty"`
	Status             *string  `json:"status,omitempty"`
	LeadScore          *int     `json:"lead_score,omitempty"`
	Source             *string  `json:"source,omitempty"`
	Budget             *float64 `json:"budget,omitempty"`
	TradeIn            *bool    `json:"trade_in,omitempty"`
	InterestedVehicles []int64  `json:"interested_vehicles,omitempty"`
	AssignedTo         *string  `json:"assigned_to,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
	BranchID           *int64   `json:"branch_id,omitempty"`
}

func (r leadUpdateRequest) toInput() (leads.UpdateInput, error) {
	input := leads.UpdateInput{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Email:              r.Email,
		Phone:              r.Phone,
		LeadScore:          r.LeadScore,
		Source:             r.Source,
		Budget:             r.Budget,
		TradeIn:            r.TradeIn,
		InterestedVehicles: r.InterestedVehicles,
		AssignedTo:         r.AssignedTo,
		Notes:              r.Notes,
		BranchID:           r.BranchID,
	}
	if r.Status != nil {
		status, err := enums.ParseLeadStatus(*r.Status)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid lead status")
		}
		input.Status = &status
	}
	return input, nil
}

type leadContactRequest struct {
	Type  string     `json:"type" validate:"required"`
	Notes string     `json:"notes,omitempty"`
	Date  *time.Time `json:"date,omitempty"`
}

type leadAppointmentRequest struct {
	Date  time.Time `json:"date" validate:"required"`
	Type  string    `json:"type" validate:"required"`
	Notes string    `json:"notes,omitempty"`
}

func LeadList(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := listParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := leads.Filters{
			AssignedTo: queryString(r, "assigned_to"),
			Source:     queryString(r, "source"),
			Query:      queryString(r, "q"),
		}
		if raw := queryString(r, "status"); raw != "" {
			status, parseErr := enums.ParseLeadStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid lead status"))
				return
			}
			filters.Status = &status
		}
		branchID, err := optionalID(r, "branch_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.BranchID = branchID

		page, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func LeadDetail(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lead, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lead)
	}
}

func LeadCreate(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload leadCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lead, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, lead)
	}
}

func LeadUpdate(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload leadUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lead, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lead)
	}
}

func LeadDelete(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lead, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lead)
	}
}

func LeadAddContact(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload leadContactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lead, err := svc.AddContact(r.Context(), id, leads.ContactInput{
			Type:  payload.Type,
			Notes: payload.Notes,
			Date:  payload.Date,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lead)
	}
}

func LeadScheduleAppointment(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload leadAppointmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lead, err := svc.ScheduleAppointment(r.Context(), id, leads.AppointmentInput{
			Date:  payload.Date,
			Type:  payload.Type,
			Notes: payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lead)
	}
}

func LeadRecommendations(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recs, err := svc.Recommendations(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, recs)
	}
}

func LeadEngagement(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		score, err := svc.Engagement(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"engagement_score": score})
	}
}
