package repository

import "github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"

// DocumentRepository is the persistence port for document metadata.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	GetByID(companyID, id string) (*entity.Document, error)
	ListByCompany(companyID string, loadID string, limit, offset int) ([]*entity.Document, error)
	Delete(companyID, id string) error
}
