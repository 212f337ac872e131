package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dealerdesk/dealerdesk-backend/api/controllers"
	"github.com/dealerdesk/dealerdesk-backend/api/middleware"
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
	"github.com/dealerdesk/dealerdesk-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	vehiclesService vehicles.Service,
	leadsService leads.Service,
	dealsService deals.Service,
	invoicesService invoices.Service,
	reconService recon.Service,
	vendorsService vendors.Service,
	branchesService branches.Service,
	listingsService listings.Service,
	reportsService reports.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.BranchScope(logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", controllers.VehicleList(vehiclesService, logg))
			r.Post("/", controllers.VehicleCreate(vehiclesService, logg))
			r.Get("/{id}", controllers.VehicleDetail(vehiclesService, logg))
			r.Put("/{id}", controllers.VehicleUpdate(vehiclesService, logg))
			r.Delete("/{id}", controllers.VehicleDelete(vehiclesService, logg))
			r.Get("/{id}/floorplan", controllers.VehicleFloorplan(vehiclesService, logg))
			r.Post("/{id}/transfer", controllers.VehicleTransfer(vehiclesService, logg))
			r.Get("/{id}/recon-cost", controllers.VehicleReconCost(reconService, logg))
			r.Post("/{id}/publish", controllers.VehiclePublish(listingsService, logg))
			r.Post("/{id}/listings/refresh", controllers.VehicleListingRefresh(listingsService, logg))
			r.Delete("/{id}/listings/{platform}", controllers.VehicleListingRemove(listingsService, logg))
			r.Get("/{id}/listings/stats", controllers.VehicleListingStats(listingsService, logg))
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", controllers.LeadList(leadsService, logg))
			r.Post("/", controllers.LeadCreate(leadsService, logg))
			r.Get("/{id}", controllers.LeadDetail(leadsService, logg))
			r.Put("/{id}", controllers.LeadUpdate(leadsService, logg))
			r.Delete("/{id}", controllers.LeadDelete(leadsService, logg))
			r.Post("/{id}/contacts", controllers.LeadAddContact(leadsService, logg))
			r.Post("/{id}/appointments", controllers.LeadScheduleAppointment(leadsService, logg))
			r.Get("/{id}/recommendations", controllers.LeadRecommendations(leadsService, logg))
			r.Get("/{id}/engagement", controllers.LeadEngagement(leadsService, logg))
		})

		r.Route("/deals", func(r chi.Router) {
			r.Get("/", controllers.DealList(dealsService, logg))
			r.Post("/", controllers.DealCreate(dealsService, logg))
			r.Get("/{id}", controllers.DealDetail(dealsService, logg))
			r.Put("/{id}", controllers.DealUpdate(dealsService, logg))
			r.Delete("/{id}", controllers.DealDelete(dealsService, logg))
			r.Post("/{id}/documents", controllers.DealAddDocument(dealsService, logg))
			r.Delete("/{id}/documents/{index}", controllers.DealRemoveDocument(dealsService, logg))
			r.Get("/{id}/margin", controllers.DealMargin(dealsService, logg))
			r.Post("/{id}/financing", controllers.DealFinancing(dealsService, logg))
			r.Post("/{id}/invoice", controllers.InvoiceGenerate(invoicesService, logg))
		})

		r.Get("/customers/{id}/loyalty", controllers.CustomerLoyalty(dealsService, logg))

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", controllers.InvoiceList(invoicesService, logg))
			r.Post("/", controllers.InvoiceCreate(invoicesService, logg))
			r.Get("/stats", controllers.InvoiceStats(invoicesService, logg))
			r.Get("/{id}", controllers.InvoiceDetail(invoicesService, logg))
			r.Delete("/{id}", controllers.InvoiceDelete(invoicesService, logg))
			r.Post("/{id}/payments", controllers.InvoiceRecordPayment(invoicesService, logg))
			r.Post("/{id}/send", controllers.InvoiceSend(invoicesService, logg))
			r.Get("/{id}/pdf", controllers.InvoicePDF(invoicesService, logg))
			r.Post("/{id}/overdue", controllers.InvoiceMarkOverdue(invoicesService, logg))
		})

		r.Route("/recon", func(r chi.Router) {
			r.Get("/services", controllers.ReconCatalog(reconService))
			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", controllers.ReconList(reconService, logg))
				r.Post("/", controllers.ReconSchedule(reconService, logg))
				r.Get("/{id}", controllers.ReconDetail(reconService, logg))
				r.Put("/{id}", controllers.ReconUpdate(reconService, logg))
				r.Post("/{id}/status", controllers.ReconUpdateStatus(reconService, logg))
				r.Put("/{id}/checklist/{index}", controllers.ReconUpdateChecklistItem(reconService, logg))
				r.Post("/{id}/cancel", controllers.ReconCancel(reconService, logg))
			})
		})

		r.Route("/technicians", func(r chi.Router) {
			r.Get("/", controllers.TechnicianList(reconService, logg))
			r.Post("/", controllers.TechnicianCreate(reconService, logg))
			r.Post("/{id}/status", controllers.TechnicianUpdateStatus(reconService, logg))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.VendorList(vendorsService, logg))
			r.Post("/", controllers.VendorCreate(vendorsService, logg))
			r.Get("/search", controllers.VendorSearch(vendorsService, logg))
			r.Get("/{id}", controllers.VendorDetail(vendorsService, logg))
			r.Put("/{id}", controllers.VendorUpdate(vendorsService, logg))
			r.Delete("/{id}", controllers.VendorDelete(vendorsService, logg))
		})

		r.Route("/branches", func(r chi.Router) {
			r.Get("/", controllers.BranchList(branchesService, logg))
			r.Post("/", controllers.BranchCreate(branchesService, logg))
			r.Get("/{id}", controllers.BranchDetail(branchesService, logg))
			r.Put("/{id}", controllers.BranchUpdate(branchesService, logg))
			r.Delete("/{id}", controllers.BranchDelete(branchesService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/floorplan", controllers.ReportFloorplan(reportsService, logg))
			r.Get("/sales", controllers.ReportSales(reportsService, logg))
			r.Get("/inventory", controllers.ReportInventory(reportsService, logg))
			r.Get("/loyalty", controllers.ReportLoyalty(reportsService, logg))
		})
	})

	return r
}
