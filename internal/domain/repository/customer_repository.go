package repository

import "github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"

// CustomerRepository is the persistence port for Customer. Reads are scoped by
// company: a row in another tenant behaves as absent.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(companyID, id string) (*entity.Customer, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(companyID, id string) error
}
