package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
	"github.com/nkwe-logistics/fleetflow-api/pkg/validation"
)

// SettingsUseCase per-company defaults. Get returns sensible defaults when no
// row exists yet; Update upserts.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase builds the usecase.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get fetches the company settings, falling back to defaults.
func (uc *SettingsUseCase) Get(companyID string) (*dto.SettingsResponse, error) {
	s, err := uc.repo.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &dto.SettingsResponse{
			CompanyID:       companyID,
			DefaultCurrency: "ZAR",
			DefaultTaxRate:  decimal.NewFromInt(15),
			InvoiceDueDays:  30,
		}, nil
	}
	return toSettingsResponse(s), nil
}

// Update validates and upserts the settings row.
func (uc *SettingsUseCase) Update(companyID string, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.DefaultTaxRate.LessThan(decimal.Zero) {
		return nil, domain.NewValidationError(map[string]string{"default_tax_rate": "must not be negative"})
	}
	now := time.Now()
	s, err := uc.repo.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &entity.CompanySettings{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			CreatedAt: now,
		}
	}
	s.DefaultCurrency = in.DefaultCurrency
	s.DefaultTaxRate = in.DefaultTaxRate
	s.InvoiceDueDays = in.InvoiceDueDays
	s.NotifyOnAssignment = in.NotifyOnAssignment
	s.NotifyOnDelivery = in.NotifyOnDelivery
	s.UpdatedAt = now
	if err := uc.repo.Upsert(s); err != nil {
		return nil, err
	}
	return toSettingsResponse(s), nil
}

func toSettingsResponse(s *entity.CompanySettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		CompanyID:          s.CompanyID,
		DefaultCurrency:    s.DefaultCurrency,
		DefaultTaxRate:     s.DefaultTaxRate,
		InvoiceDueDays:     s.InvoiceDueDays,
		NotifyOnAssignment: s.NotifyOnAssignment,
		NotifyOnDelivery:   s.NotifyOnDelivery,
	}
}
