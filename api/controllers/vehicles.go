package controllers

import (
	"net/http"

	"github.com/dealerdesk/dealerdesk-backend/api/responses"
	"github.com/dealerdesk/dealerdesk-backend/api/validators"
	"github.com/dealerdesk/dealerdesk-backend/internal/vehicles"
	"github.com/dealerdesk/dealerdesk-backend/pkg/enums"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/logger"
)

type vehicleCreateRequest struct {
	VIN           string   `json:"vin" validate:"required,min=11,max=17"`
	Make          string   `json:"make" validate:"required"`
	Model         string   `json:"model" validate:"required"`
	Year          int      `json:"year" validate:"required,min=1900"`
	Trim          *string  `json:"trim,omitempty"`
	Mileage       int      `json:"mileage" validate:"min=0"`
	Color         *string  `json:"color,omitempty"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	Cost          *float64 `json:"cost,omitempty"`
	MarketValue   *float64 `json:"market_value,omitempty"`
	Condition     *string  `json:"condition,omitempty"`
	BodyType      *string  `json:"body_type,omitempty"`
	FuelType      *string  `json:"fuel_type,omitempty"`
	Transmission  *string  `json:"transmission,omitempty"`
	FloorplanRate *float64 `json:"floorplan_rate,omitempty"`
	BranchID      *int64   `json:"branch_id,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Features      []string `json:"features,omitempty"`
	Images        []string `json:"images,omitempty"`
}

func (r vehicleCreateRequest) toInput() vehicles.CreateInput {
	return vehicles.CreateInput{
		VIN:           r.VIN,
		Make:          r.Make,
		Model:         r.Model,
		Year:          r.Year,
		Trim:          r.Trim,
		Mileage:       r.Mileage,
		Color:         r.Color,
		Price:         r.Price,
		Cost:          r.Cost,
		MarketValue:   r.MarketValue,
		Condition:     r.Condition,
		BodyType:      r.BodyType,
		FuelType:      r.FuelType,
		Transmission:  r.Transmission,
		FloorplanRate: r.FloorplanRate,
		BranchID:      r.BranchID,
		Description:   r.Description,
		Features:      r.Features,
		Images:        r.Images,
	}
}

type vehicleUpdateRequest struct {
	VIN             *string  `json:"vin,omitempty" validate:"omitempty,min=11,max=17"`
	Make            *string  `json:"make,omitempty" validate:"omitempty,min=1"`
	Model           *string  `json:"model,omitempty" validate:"omitempty,min=1"`
	Year            *int     `json:"year,omitempty" validate:"omitempty,min=1900"`
	Trim            *string  `json:"trim,omitempty"`
	Mileage         *int     `json:"mileage,omitempty" validate:"omitempty,min=0"`
	Color           *string  `json:"color,omitempty"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Cost            *float64 `json:"cost,omitempty"`
	MarketValue     *float64 `json:"market_value,omitempty"`
	Condition       *string  `json:"condition,omitempty"`
	BodyType        *string  `json:"body_type,omitempty"`
	FuelType        *string  `json:"fuel_type,omitempty"`
	Transmission    *string  `json:"transmission,omitempty"`
	Status          *string  `json:"status,omitempty"`
	DaysInInventory *int     `json:"days_in_inventory,omitempty" validate:"omitempty,min=0"`
	FloorplanRate   *float64 `json:"floorplan_rate,omitempty"`
	BranchID        *int64   `json:"branch_id,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Features        []string `json:"features,omitempty"`
	Images          []string `json:"images,omitempty"`
}

func (r vehicleUpdateRequest) toInput() (vehicles.UpdateInput, error) {
	input := vehicles.UpdateInput{
		VIN:             r.VIN,
		Make:            r.Make,
		Model:           r.Model,
		Year:            r.Year,
		Trim:            r.Trim,
		Mileage:         r.Mileage,
		Color:           r.Color,
		Price:           r.Price,
		Cost:            r.Cost,
		MarketValue:     r.MarketValue,
		Condition:       r.Condition,
		BodyType:        r.BodyType,
		FuelType:        r.FuelType,
		Transmission:    r.Transmission,
		DaysInInventory: r.DaysInInventory,
		FloorplanRate:   r.FloorplanRate,
		BranchID:        r.BranchID,
		Description:     r.Description,
		Features:        r.Features,
		Images:          r.Images,
	}
	if r.Status != nil {
		status, err := enums.ParseVehicleStatus(*r.Status)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle status")
		}
		input.Status = &status
	}
	return input, nil
}

func VehicleList(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := listParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := vehicles.Filters{
			Make:  queryString(r, "make"),
			Query: queryString(r, "q"),
		}
		if raw := queryString(r, "status"); raw != "" {
			status, parseErr := enums.ParseVehicleStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid vehicle status"))
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

func VehicleDetail(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vehicle, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vehicle)
	}
}

func VehicleCreate(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload vehicleCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vehicle, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, vehicle)
	}
}

func VehicleUpdate(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload vehicleUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vehicle, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vehicle)
	}
}

func VehicleDelete(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vehicle, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vehicle)
	}
}

func VehicleFloorplan(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		charges, err := svc.FloorplanCharges(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, charges)
	}
}

type vehicleTransferRequest struct {
	ToBranchID int64  `json:"to_branch_id" validate:"required,gt=0"`
	Notes      string `json:"notes"`
}

func (req vehicleTransferRequest) toInput() vehicles.TransferInput {
	return vehicles.TransferInput{ToBranchID: req.ToBranchID, Notes: req.Notes}
}

func VehicleTransfer(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req vehicleTransferRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		receipt, err := svc.RequestTransfer(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
