package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/auth"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/billing"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/documents"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/fleet"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/loads"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/onboarding"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/usecase"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	SettingsUC   *usecase.SettingsUseCase
	CustomerUC   *usecase.CustomerUseCase
	DriverUC     *fleet.DriverUseCase
	VehicleUC    *fleet.VehicleUseCase
	AssignmentUC *fleet.AssignmentUseCase
	LoadUC       *loads.LoadUseCase
	QuoteUC      *billing.QuoteUseCase
	InvoiceUC    *billing.InvoiceUseCase
	PDFUC        *billing.PDFUseCase
	DocumentUC   *documents.DocumentUseCase
	OnboardingUC *onboarding.OnboardingUseCase
	JWTSecret    string
}

// Router registers the API routes. Every protected route names its allowed
// roles explicitly; there is no role hierarchy.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Role allow-sets. Aliased here so each route reads as a set.
	var (
		admins     = []string{entity.RoleSuperAdmin, entity.RoleCompanyAdmin}
		managers   = []string{entity.RoleSuperAdmin, entity.RoleCompanyAdmin, entity.RoleManager}
		dispatch   = []string{entity.RoleSuperAdmin, entity.RoleCompanyAdmin, entity.RoleManager, entity.RoleDispatcher}
		operations = []string{entity.RoleSuperAdmin, entity.RoleCompanyAdmin, entity.RoleManager, entity.RoleDispatcher, entity.RoleDriver}
	)

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Fleet onboarding: submission is public, review is platform-only.
	onboardingHandler := NewOnboardingHandler(deps.OnboardingUC)
	api.Post("/applications", onboardingHandler.Create)
	applications := api.Group("/applications", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleSuperAdmin))
	applications.Get("/", onboardingHandler.List)
	applications.Get("/:id", onboardingHandler.GetByID)
	applications.Post("/:id/approve", onboardingHandler.Approve)
	applications.Post("/:id/reject", onboardingHandler.Reject)

	// Signed-URL downloads: the token is the credential.
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	api.Get("/documents/download", documentHandler.Download)

	// Everything below requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.SettingsUC)
	companies := protected.Group("/companies")
	companies.Get("/", RequireRole(entity.RoleSuperAdmin), companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	// Tenant-scoped routes additionally require a company binding.
	tenant := protected.Group("/", RequireCompany())

	// Company settings
	settings := tenant.Group("/settings")
	settings.Get("/", RequireRole(managers...), companyHandler.GetSettings)
	settings.Put("/", RequireRole(admins...), companyHandler.UpdateSettings)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := tenant.Group("/customers")
	customers.Post("/", RequireRole(managers...), customerHandler.Create)
	customers.Get("/", RequireRole(dispatch...), customerHandler.List)
	customers.Get("/:id", RequireRole(dispatch...), customerHandler.GetByID)
	customers.Put("/:id", RequireRole(managers...), customerHandler.Update)
	customers.Delete("/:id", RequireRole(admins...), customerHandler.Delete)

	// Drivers
	driverHandler := NewDriverHandler(deps.DriverUC)
	drivers := tenant.Group("/drivers")
	drivers.Post("/", RequireRole(admins...), driverHandler.Create)
	drivers.Get("/", RequireRole(dispatch...), driverHandler.List)
	drivers.Get("/:id", RequireRole(dispatch...), driverHandler.GetByID)
	drivers.Put("/:id", RequireRole(managers...), driverHandler.Update)
	drivers.Patch("/:id/active", RequireRole(admins...), driverHandler.SetActive)
	drivers.Delete("/:id", RequireRole(admins...), driverHandler.Delete)

	// Vehicles and driver<->vehicle assignments
	vehicleHandler := NewVehicleHandler(deps.VehicleUC, deps.AssignmentUC)
	vehicles := tenant.Group("/vehicles")
	vehicles.Post("/", RequireRole(admins...), vehicleHandler.Create)
	vehicles.Get("/", RequireRole(dispatch...), vehicleHandler.List)
	vehicles.Get("/:id", RequireRole(dispatch...), vehicleHandler.GetByID)
	vehicles.Patch("/:id/status", RequireRole(managers...), vehicleHandler.UpdateStatus)

	assignments := tenant.Group("/assignments")
	assignments.Post("/", RequireRole(dispatch...), vehicleHandler.Assign)
	assignments.Get("/driver/:driverId", RequireRole(dispatch...), vehicleHandler.AssignmentHistory)
	assignments.Delete("/driver/:driverId", RequireRole(dispatch...), vehicleHandler.Unassign)

	// Loads
	loadHandler := NewLoadHandler(deps.LoadUC)
	loadGroup := tenant.Group("/loads")
	loadGroup.Post("/", RequireRole(dispatch...), loadHandler.Create)
	loadGroup.Get("/", RequireRole(operations...), loadHandler.List)
	loadGroup.Get("/:id", RequireRole(operations...), loadHandler.GetByID)
	loadGroup.Post("/:id/assign", RequireRole(dispatch...), loadHandler.Assign)
	loadGroup.Post("/:id/unassign", RequireRole(dispatch...), loadHandler.Unassign)
	loadGroup.Patch("/:id/status", RequireRole(dispatch...), loadHandler.UpdateStatus)
	loadGroup.Get("/:id/tracking", RequireRole(operations...), loadHandler.Tracking)

	// Quotes
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	quotes := tenant.Group("/quotes")
	quotes.Post("/", RequireRole(managers...), quoteHandler.Create)
	quotes.Get("/", RequireRole(dispatch...), quoteHandler.List)
	quotes.Get("/:id", RequireRole(dispatch...), quoteHandler.GetByID)
	quotes.Patch("/:id/status", RequireRole(managers...), quoteHandler.UpdateStatus)
	quotes.Post("/:id/convert", RequireRole(managers...), quoteHandler.Convert)

	// Invoices
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices := tenant.Group("/invoices")
	invoices.Post("/", RequireRole(managers...), invoiceHandler.Create)
	invoices.Get("/", RequireRole(managers...), invoiceHandler.List)
	invoices.Get("/:id", RequireRole(managers...), invoiceHandler.GetByID)
	invoices.Patch("/:id/status", RequireRole(managers...), invoiceHandler.UpdateStatus)
	invoices.Get("/:id/pdf", RequireRole(managers...), invoiceHandler.PDF)

	// Documents
	docs := tenant.Group("/documents")
	docs.Post("/", RequireRole(dispatch...), documentHandler.Upload)
	docs.Get("/", RequireRole(dispatch...), documentHandler.List)
	docs.Get("/:id", RequireRole(dispatch...), documentHandler.GetByID)
	docs.Post("/:id/url", RequireRole(dispatch...), documentHandler.SignedURL)
	docs.Delete("/:id", RequireRole(admins...), documentHandler.Delete)
}
