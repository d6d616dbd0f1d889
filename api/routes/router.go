package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karimelbaz/photodesk-backend/api/controllers"
	"github.com/karimelbaz/photodesk-backend/api/middleware"
	"github.com/karimelbaz/photodesk-backend/internal/branches"
	"github.com/karimelbaz/photodesk-backend/internal/dashboard"
	"github.com/karimelbaz/photodesk-backend/internal/invoices"
	"github.com/karimelbaz/photodesk-backend/internal/orders"
	"github.com/karimelbaz/photodesk-backend/internal/packages"
	"github.com/karimelbaz/photodesk-backend/internal/photos"
	"github.com/karimelbaz/photodesk-backend/internal/printrequests"
	"github.com/karimelbaz/photodesk-backend/internal/registry"
	"github.com/karimelbaz/photodesk-backend/internal/selections"
	"github.com/karimelbaz/photodesk-backend/internal/staff"
	"github.com/karimelbaz/photodesk-backend/pkg/config"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	"github.com/karimelbaz/photodesk-backend/pkg/logger"
)

// RouterParams carries everything the HTTP surface depends on.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Media    http.Handler
	Staff    staff.Service
	Registry registry.Service
	Photos   photos.Service
	Branches *branches.Repository
	Packages *packages.Repository

	Selections    selections.Service
	PrintRequests printrequests.Service
	Invoices      invoices.Service
	Orders        orders.Service
	Dashboard     dashboard.Service
}

// NewRouter assembles the HTTP surface. Staff and manager areas sit
// behind JWT auth; kiosk endpoints authenticate with barcode + phone
// inside their own payloads.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.Media != nil {
		r.Mount(cfg.Storage.PublicBaseURL, p.Media)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.StaffLogin(p.Staff, logg))

		r.Route("/staff", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireRole(logg,
				string(enums.StaffRoleStaff),
				string(enums.StaffRolePhotographer),
				string(enums.StaffRoleBranchManager),
				string(enums.StaffRoleAdmin),
			))

			r.Post("/users", controllers.RegisterUser(p.Registry, logg))
			r.Get("/users/{barcode}", controllers.UserByBarcode(p.Registry, logg))

			r.Post("/photos/{prefix}", controllers.PhotoUpload(p.Photos, p.Branches, cfg.Storage, logg))
			r.Get("/photos/{prefix}", controllers.PhotoList(p.Photos, logg))
			r.Post("/photos/tag", controllers.PhotoTag(p.Photos, logg))
			r.Delete("/photos/{photoId}", controllers.PhotoDelete(p.Photos, logg))

			r.Post("/invoices/confirm", controllers.InvoiceConfirm(p.Invoices, logg))
			r.Get("/invoices/{invoiceId}", controllers.InvoiceGet(p.Invoices, logg))
			r.Get("/invoices/prefix/{prefix}", controllers.InvoiceList(p.Invoices, logg))

			r.Get("/packages", controllers.PackageList(p.Packages, logg))
			r.Get("/print-requests/{requestId}", controllers.PrintRequestGet(p.PrintRequests, logg))
			r.Get("/print-requests/prefix/{prefix}", controllers.PrintRequestList(p.PrintRequests, logg))
			r.Post("/print-requests/{requestId}/pay", controllers.PrintRequestMarkPaid(p.PrintRequests, logg))
		})

		r.Route("/branch-manager", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireRole(logg,
				string(enums.StaffRoleBranchManager),
				string(enums.StaffRoleAdmin),
			))

			r.Post("/staff/{staffId}/reset-password", controllers.StaffResetPassword(p.Staff, logg))
			r.Post("/orders", controllers.OrderCreate(p.Orders, logg))
			r.Post("/orders/{orderId}/complete", controllers.OrderComplete(p.Orders, logg))
			r.Get("/orders/{orderId}", controllers.OrderGet(p.Orders, logg))
			r.Get("/orders", controllers.OrderList(p.Orders, logg))
			r.Post("/invoices/{invoiceId}/cancel", controllers.InvoiceCancel(p.Invoices, logg))
		})

		r.Route("/user-interface", func(r chi.Router) {
			r.Post("/session", controllers.ResolveSession(p.Registry, logg))
			r.Post("/selections", controllers.SelectionReplace(p.Selections, logg))
			r.Get("/selections/{userId}/{prefix}", controllers.SelectionList(p.Selections, logg))
			r.Post("/print-requests", controllers.PrintRequestCreate(p.PrintRequests, logg))
			r.Post("/orders", controllers.OrderCreate(p.Orders, logg))
			r.Get("/packages", controllers.PackageList(p.Packages, logg))
			r.Post("/invoices/confirm", controllers.InvoiceConfirm(p.Invoices, logg))
		})

		r.Route("/onlinedashboard", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireRole(logg,
				string(enums.StaffRoleBranchManager),
				string(enums.StaffRoleAdmin),
			))

			r.Get("/stats", controllers.DashboardStats(p.Dashboard, logg))
			r.Get("/invoices", controllers.DashboardInvoices(p.Dashboard, logg))
			r.Get("/orders", controllers.DashboardOrders(p.Dashboard, logg))
		})
	})

	return r
}
