package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dealerdesk/dealerdesk-backend/internal/branches"
	"github.com/dealerdesk/dealerdesk-backend/internal/finance"
	"github.com/dealerdesk/dealerdesk-backend/internal/vehicles"
	"github.com/dealerdesk/dealerdesk-backend/pkg/config"
	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/logger"
	"github.com/dealerdesk/dealerdesk-backend/pkg/pagination"
	"github.com/dealerdesk/dealerdesk-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubVehiclesService struct{}

func (stubVehiclesService) List(context.Context, pagination.Params, vehicles.Filters) (*vehicles.VehicleList, error) {
	return &vehicles.VehicleList{Vehicles: []models.Vehicle{}}, nil
}

func (stubVehiclesService) Get(_ context.Context, id int64) (*models.Vehicle, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
}

func (stubVehiclesService) Create(context.Context, vehicles.CreateInput) (*models.Vehicle, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubVehiclesService) Update(context.Context, int64, vehicles.UpdateInput) (*models.Vehicle, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubVehiclesService) Delete(context.Context, int64) (*models.Vehicle, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubVehiclesService) FloorplanCharges(context.Context, int64) (*finance.FloorplanCharges, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubVehiclesService) RequestTransfer(context.Context, int64, vehicles.TransferInput) (*vehicles.TransferReceipt, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

type stubBranchesService struct{}

func (stubBranchesService) List(context.Context) ([]models.Branch, error) {
	return []models.Branch{{ID: 1, Name: "Main Street", IsActive: true}}, nil
}

func (stubBranchesService) Get(context.Context, int64) (*models.Branch, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "branch not found")
}

func (stubBranchesService) Create(context.Context, branches.CreateInput) (*models.Branch, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubBranchesService) Update(context.Context, int64, branches.UpdateInput) (*models.Branch, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubBranchesService) Delete(context.Context, int64) (*models.Branch, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func testConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "test", Port: "0"}}
}

func newTestRouter() http.Handler {
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	return NewRouter(
		testConfig(),
		logg,
		stubPinger{},
		nil,
		stubVehiclesService{},
		nil,
		nil,
		nil,
		nil,
		nil,
		stubBranchesService{},
		nil,
		nil,
	)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-DealerDesk-Env"); got != "test" {
		t.Fatalf("expected env header, got %q", got)
	}
}

func TestVehicleListRouteReturnsEnvelope(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var body types.SuccessEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if body.Data == nil {
		t.Fatal("expected data payload")
	}
}

func TestVehicleDetailRouteMapsNotFound(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles/42", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	var body types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
}

func TestVehicleDetailRejectsBadID(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles/abc", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestVehicleListRejectsBadStatus(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles?status=Bogus", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestBranchListRoute(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/branches", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
