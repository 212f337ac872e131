package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/dealerdesk/dealerdesk-backend/api/routes"
	"github.com/dealerdesk/dealerdesk-backend/internal/branches"
	"github.com/dealerdesk/dealerdesk-backend/internal/deals"
	"github.com/dealerdesk/dealerdesk-backend/internal/invoices"
	"github.com/dealerdesk/dealerdesk-backend/internal/leads"
	"github.com/dealerdesk/dealerdesk-backend/internal/listings"
	"github.com/dealerdesk/dealerdesk-backend/internal/recon"
	"github.com/dealerdesk/dealerdesk-backend/internal/reports"
	"github.com/dealerdesk/dealerdesk-backend/internal/vehicles"
	"github.com/dealerdesk/dealerdesk-backend/internal/vendors"
	"github.com/dealerdesk/dealerdesk-backend/pkg/config"
	"github.com/dealerdesk/dealerdesk-backend/pkg/db"
	"github.com/dealerdesk/dealerdesk-backend/pkg/logger"
	"github.com/dealerdesk/dealerdesk-backend/pkg/migrate"
	"github.com/dealerdesk/dealerdesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		_ = dbClient.Close()
		os.Exit(1)
	}
	defer func() {
		if err := multierr.Combine(redisClient.Close(), dbClient.Close()); err != nil {
			logg.Error(context.Background(), "error closing resources", err)
		}
	}()

	vehicleRepo := vehicles.NewRepository(dbClient.DB())
	dealRepo := deals.NewRepository(dbClient.DB())
	invoiceRepo := invoices.NewRepository(dbClient.DB())
	reconRepo := recon.NewRepository(dbClient.DB())
	technicianRepo := recon.NewTechnicianRepository(dbClient.DB())

	vehiclesService, err := vehicles.NewService(vehicleRepo)
	requireService(logg, "vehicles", err)

	leadsService, err := leads.NewService(leads.NewRepository(dbClient.DB()), vehicleRepo)
	requireService(logg, "leads", err)

	reconService, err := recon.NewService(reconRepo, technicianRepo)
	requireService(logg, "recon", err)

	dealsService, err := deals.NewService(dealRepo, vehicleRepo, reconRepo)
	requireService(logg, "deals", err)

	invoicesService, err := invoices.NewService(invoiceRepo, dealRepo, vehicleRepo, cfg.Invoicing)
	requireService(logg, "invoices", err)

	vendorsService, err := vendors.NewService(vendors.NewRepository(dbClient.DB()))
	requireService(logg, "vendors", err)

	branchesService, err := branches.NewService(branches.NewRepository(dbClient.DB()))
	requireService(logg, "branches", err)

	listingsService, err := listings.NewService(vehicleRepo,
		listings.NewCarsComPublisher(cfg.Listings.CarsComDealerID),
		listings.NewAutoTraderPublisher(cfg.Listings.AutoTraderDealerID),
	)
	requireService(logg, "listings", err)

	reportsService, err := reports.NewService(vehicleRepo, dealRepo)
	requireService(logg, "reports", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			vehiclesService,
			leadsService,
			dealsService,
			invoicesService,
			reconService,
			vendorsService,
			branchesService,
			listingsService,
			reportsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}
