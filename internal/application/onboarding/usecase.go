package onboarding

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/guard"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
	"github.com/nkwe-logistics/fleetflow-api/pkg/validation"
)

// OnboardingUseCase fleet applications: public submission, platform-side
// review, and the processed-once approve that creates the tenant.
type OnboardingUseCase struct {
	apps     repository.ApplicationRepository
	txRunner ApprovalTxRunner
}

// NewOnboardingUseCase builds the usecase.
func NewOnboardingUseCase(apps repository.ApplicationRepository, txRunner ApprovalTxRunner) *OnboardingUseCase {
	return &OnboardingUseCase{apps: apps, txRunner: txRunner}
}

// Create registers a pending application. This is the one unauthenticated
// write in the system.
func (uc *OnboardingUseCase) Create(in dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	app := &entity.FleetApplication{
		ID:           uuid.New().String(),
		CompanyName:  in.CompanyName,
		RegNumber:    in.RegNumber,
		ContactName:  in.ContactName,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		FleetSize:    in.FleetSize,
		Status:       entity.ApplicationPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.apps.Create(app); err != nil {
		return nil, err
	}
	return toApplicationResponse(app), nil
}

// GetByID fetches one application.
func (uc *OnboardingUseCase) GetByID(id string) (*dto.ApplicationResponse, error) {
	app, err := uc.apps.GetByID(id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	return toApplicationResponse(app), nil
}

// List pages applications, optionally filtered by status.
func (uc *OnboardingUseCase) List(status string, page dto.PageRequest) ([]*dto.ApplicationResponse, error) {
	page.DefaultPage()
	list, err := uc.apps.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ApplicationResponse, 0, len(list))
	for _, app := range list {
		out = append(out, toApplicationResponse(app))
	}
	return out, nil
}

// Approve creates the company and flips the application, in one transaction.
// The flip is conditional on the application still being pending; losing that
// race rolls the company insert back and reports the application as absent.
func (uc *OnboardingUseCase) Approve(ctx context.Context, id, processedBy string) (*dto.ApplicationResponse, error) {
	app, err := uc.apps.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := guard.CanProcessApplication(app); err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      app.CompanyName,
		RegNumber: app.RegNumber,
		Email:     app.ContactEmail,
		Phone:     app.ContactPhone,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.txRunner.RunApproval(ctx, func(apps repository.ApplicationRepository, companies repository.CompanyRepository) error {
		if err := companies.Create(company); err != nil {
			return err
		}
		rows, err := apps.MarkProcessed(id, entity.ApplicationApproved, &company.ID, processedBy)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	app.Status = entity.ApplicationApproved
	app.CompanyID = &company.ID
	app.ProcessedBy = &processedBy
	app.ProcessedAt = &now
	return toApplicationResponse(app), nil
}

// Reject flips a pending application to rejected, processed-once like Approve.
func (uc *OnboardingUseCase) Reject(id, processedBy string) (*dto.ApplicationResponse, error) {
	app, err := uc.apps.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := guard.CanProcessApplication(app); err != nil {
		return nil, err
	}
	rows, err := uc.apps.MarkProcessed(id, entity.ApplicationRejected, nil, processedBy)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	app.Status = entity.ApplicationRejected
	app.ProcessedBy = &processedBy
	app.ProcessedAt = &now
	return toApplicationResponse(app), nil
}

func toApplicationResponse(app *entity.FleetApplication) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:           app.ID,
		CompanyName:  app.CompanyName,
		RegNumber:    app.RegNumber,
		ContactName:  app.ContactName,
		ContactEmail: app.ContactEmail,
		ContactPhone: app.ContactPhone,
		FleetSize:    app.FleetSize,
		Status:       app.Status,
		CompanyID:    app.CompanyID,
		ProcessedAt:  app.ProcessedAt,
		CreatedAt:    app.CreatedAt,
	}
}
