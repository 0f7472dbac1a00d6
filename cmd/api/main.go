package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/auth"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/billing"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/documents"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/fleet"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/loads"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/onboarding"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/usecase"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/numbering"
	infrapdf "github.com/nkwe-logistics/fleetflow-api/internal/infrastructure/pdf"
	"github.com/nkwe-logistics/fleetflow-api/internal/infrastructure/postgres"
	"github.com/nkwe-logistics/fleetflow-api/internal/infrastructure/sequence"
	"github.com/nkwe-logistics/fleetflow-api/internal/infrastructure/storage"
	httpRouter "github.com/nkwe-logistics/fleetflow-api/internal/interfaces/http"
	"github.com/nkwe-logistics/fleetflow-api/pkg/config"
	"github.com/nkwe-logistics/fleetflow-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	driverRepo := postgres.NewDriverRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	loadRepo := postgres.NewLoadRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	applicationRepo := postgres.NewApplicationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Document numbers come from Redis; when it is unreachable the generator
	// falls back to locally computed candidates, so startup does not block on it.
	var seq numbering.Sequencer
	if rs, err := sequence.NewRedisSequencer(ctx, cfg.Redis); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("sequence service unavailable, using local fallback")
	} else {
		defer rs.Close()
		seq = rs
	}
	numbers := numbering.NewGenerator(seq)

	blobStore, err := storage.NewDiskStore(cfg.Storage.Root)
	if err != nil {
		log.Fatal().Err(err).Str("root", cfg.Storage.Root).Msg("document store")
	}
	urlSigner := storage.NewTokenSigner(cfg.Storage.URLSecret)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	driverUC := fleet.NewDriverUseCase(driverRepo, loadRepo)
	vehicleUC := fleet.NewVehicleUseCase(vehicleRepo)
	assignmentUC := fleet.NewAssignmentUseCase(assignmentRepo, driverRepo, vehicleRepo)
	loadUC := loads.NewLoadUseCase(loadRepo, customerRepo, driverRepo, vehicleRepo, numbers)
	quoteUC := billing.NewQuoteUseCase(quoteRepo, customerRepo, txRunner, numbers)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, customerRepo, loadRepo, settingsRepo, numbers)
	pdfUC := billing.NewPDFUseCase(invoiceRepo, companyRepo, customerRepo, infrapdf.NewMarotoPDFGenerator())
	documentUC := documents.NewDocumentUseCase(documentRepo, blobStore, urlSigner, cfg.Storage.MaxUploadMB, cfg.HTTP.BaseURL, log)
	onboardingUC := onboarding.NewOnboardingUseCase(applicationRepo, txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    (cfg.Storage.MaxUploadMB + 1) << 20,
	})
	app.Use(recover.New())

	// Swagger UI in local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FleetFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		SettingsUC:   settingsUC,
		CustomerUC:   customerUC,
		DriverUC:     driverUC,
		VehicleUC:    vehicleUC,
		AssignmentUC: assignmentUC,
		LoadUC:       loadUC,
		QuoteUC:      quoteUC,
		InvoiceUC:    invoiceUC,
		PDFUC:        pdfUC,
		DocumentUC:   documentUC,
		OnboardingUC: onboardingUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
