package repository

import "github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"

// ApplicationRepository is the persistence port for fleet onboarding
// applications. Applications are not tenant-scoped: they exist before the
// company does.
type ApplicationRepository interface {
	Create(app *entity.FleetApplication) error
	GetByID(id string) (*entity.FleetApplication, error)
	List(status string, limit, offset int) ([]*entity.FleetApplication, error)

	// MarkProcessed flips a pending application to approved/rejected in one
	// conditional statement (WHERE status = 'pending'). Returns rows affected;
	// 0 means absent or already processed.
	MarkProcessed(id, status string, companyID *string, processedBy string) (int64, error)
}
