package repository

import "github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"

// CompanyRepository is the persistence port for Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
	Update(company *entity.Company) error
}

// SettingsRepository is the persistence port for the per-company settings row.
type SettingsRepository interface {
	GetByCompany(companyID string) (*entity.CompanySettings, error)
	Upsert(settings *entity.CompanySettings) error
}
