package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dealerdesk/dealerdesk-backend/api/responses"
	"github.com/dealerdesk/dealerdesk-backend/api/validators"
	"github.com/dealerdesk/dealerdesk-backend/internal/deals"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/logger"
)

type dealCreateRequest struct {
	CustomerID   int64      `json:"customer_id" validate:"required,gt=0"`
	VehicleID    int64      `json:"vehicle_id" validate:"required,gt=0"`
	SalePrice    float64    `json:"sale_price" validate:"required,gt=0"`
	TradeInValue float64    `json:"trade_in_value" validate:"min=0"`
	DealDate     *time.Time `json:"deal_date,omitempty"`
	Salesperson  *string    `json:"salesperson,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	BranchID     *int64     `json:"branch_id,omitempty"`
}

func (r dealCreateRequest) toInput() deals.CreateInput {
	return deals.CreateInput{
		CustomerID:   r.CustomerID,
		VehicleID:    r.VehicleID,
		SalePrice:    r.SalePrice,
		TradeInValue: r.TradeInValue,
		DealDate:     r.DealDate,
		Salesperson:  r.Salesperson,
		Notes:        r.Notes,
		BranchID:     r.BranchID,
	}
}

type dealUpdateRequest struct {
	SalePrice    *float64   `json:"sale_price,omitempty" validate:"omitempty,gt=0"`
	TradeInValue *float64   `json:"trade_in_value,omitempty" validate:"omitempty,min=0"`
	Status       *string    `json:"status,omitempty"`
	DealDate     *time.Time `json:"deal_date,omitempty"`
	Salesperson  *string    `json:"salesperson,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	BranchID     *int64     `json:"branch_id,omitempty"`
}

func (r dealUpdateRequest) toInput() (deals.UpdateInput, error) {
	input := deals.UpdateInput{
		SalePrice:    r.SalePrice,
		TradeInValue: r.TradeInValue,
		DealDate:     r.DealDate,
		Salesperson:  r.Salesperson,
		Notes:        r.Notes,
		BranchID:     r.BranchID,
	}
	if r.Status != nil {
		status, err := enums.ParseDealStatus(*r.Status)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid deal status")
		}
		input.Status = &status
	}
	return input, nil
}

type dealDocumentRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

type dealFinancingRequest struct {
	DownPayment       float64 `json:"down_payment" validate:"min=0"`
	AnnualRatePercent float64 `json:"annual_rate_percent" validate:"min=0"`
	TermMonths        int     `json:"term_months" validate:"required,gt=0"`
}

func DealList(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := listParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := deals.Filters{}
		if raw := queryString(r, "status"); raw != "" {
			status, parseErr := enums.ParseDealStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid deal status"))
				return
			}
			filters.Status = &status
		}
		for key, dest := range map[string]**int64{
			"customer_id": &filters.CustomerID,
			"vehicle_id":  &filters.VehicleID,
			"branch_id":   &filters.BranchID,
		} {
			value, parseErr := optionalID(r, key)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, parseErr)
				return
			}
			*dest = value
		}

		page, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func DealDetail(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deal, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

func DealCreate(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dealCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deal, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, deal)
	}
}

func DealUpdate(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload dealUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deal, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

func DealDelete(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deal, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

func DealAddDocument(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload dealDocumentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deal, err := svc.AddDocument(r.Context(), id, deals.DocumentInput{
			Name: payload.Name,
			Type: payload.Type,
			URL:  payload.URL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

func DealRemoveDocument(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// document positions are zero-based
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil || index < 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid document index"))
			return
		}
		deal, err := svc.RemoveDocument(r.Context(), id, index)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

func DealMargin(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		otherCosts, err := validators.ParseQueryInt(r, "other_costs", 0, 0, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		margin, err := svc.Margin(r.Context(), id, float64(otherCosts))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, margin)
	}
}

func DealFinancing(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload dealFinancingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Financing(r.Context(), id, deals.FinancingInput{
			DownPayment:       payload.DownPayment,
			AnnualRatePercent: payload.AnnualRatePercent,
			TermMonths:        payload.TermMonths,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

func CustomerLoyalty(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := svc.Loyalty(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}
